// Package analytics turns an already-filtered set of call reports into the
// dashboard aggregates: KPIs, a daily series, the fronter leaderboard and
// the onsite/WFH comparison. Every function is pure over its input and
// degrades to zero values on empty input.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"callcenter/metrics"
	"callcenter/models"

	"github.com/shopspring/decimal"
)

const (
	unknownAgent = "Unknown"

	bucketOnsite = "Onsite"
	bucketWFH    = "WFH"
	bucketOther  = "Other"
)

// Grouping selects the leaderboard key.
type Grouping string

const (
	// GroupByName groups on the free-text fronter name, so two spellings of
	// one person are two rows.
	GroupByName Grouping = "name"
	// GroupByAgent groups on the report owner's user id.
	GroupByAgent Grouping = "agent"
)

func ParseGrouping(value string) Grouping {
	if Grouping(strings.ToLower(strings.TrimSpace(value))) == GroupByAgent {
		return GroupByAgent
	}
	return GroupByName
}

type Options struct {
	Grouping Grouping
	FillGaps bool
}

type Engine struct {
	grouping Grouping
	fillGaps bool
}

func NewEngine(opts Options) *Engine {
	grouping := opts.Grouping
	if grouping != GroupByAgent {
		grouping = GroupByName
	}
	return &Engine{grouping: grouping, fillGaps: opts.FillGaps}
}

type Totals struct {
	TotalCalls     int    `json:"totalCalls"`
	TotalTransfers int    `json:"totalTransfers"`
	TotalSales     int    `json:"totalSales"`
	ConversionRate string `json:"conversionRate"`
}

type KPIs struct {
	Totals
	TotalAgents int `json:"totalAgents"`
}

type DailyStat struct {
	Date      string `json:"date"`
	Transfers int    `json:"transfers"`
	Sales     int    `json:"sales"`
}

type AgentPerformance struct {
	AgentName string `json:"agentName"`
	Transfers int    `json:"transfers"`
	Sales     int    `json:"sales"`
}

type PerformerComparison struct {
	Name      string `json:"name"`
	Transfers int    `json:"transfers"`
	Sales     int    `json:"sales"`
}

type Dashboard struct {
	KPIs                KPIs                  `json:"kpis"`
	DailyStats          []DailyStat           `json:"dailyStats"`
	AgentPerformance    []AgentPerformance    `json:"agentPerformance"`
	PerformerComparison []PerformerComparison `json:"performerComparison"`
}

// counts is the transfer/sale tally shared by every grouping.
type counts struct {
	transfers int
	sales     int
}

func (c *counts) add(r *models.Report) {
	if r.IsTransfer() {
		c.transfers++
	}
	if r.IsSale {
		c.sales++
	}
}

// Dashboard aggregates reports. users is the full user list; it supplies the
// agent count, which is never narrowed by the report filter, and display
// names for agent-id grouping.
func (e *Engine) Dashboard(reports []models.Report, users []models.User) Dashboard {
	defer metrics.ObserveAggregation("dashboard", time.Now(), len(reports))

	agents := 0
	names := make(map[uint]string, len(users))
	for i := range users {
		if users[i].IsAgent() {
			agents++
		}
		names[users[i].ID] = users[i].DisplayName()
	}

	return Dashboard{
		KPIs:                KPIs{Totals: Summarize(reports), TotalAgents: agents},
		DailyStats:          e.Daily(reports),
		AgentPerformance:    e.Leaderboard(reports, names),
		PerformerComparison: CompareLocations(reports),
	}
}

func Summarize(reports []models.Report) Totals {
	var c counts
	for i := range reports {
		c.add(&reports[i])
	}
	return Totals{
		TotalCalls:     len(reports),
		TotalTransfers: c.transfers,
		TotalSales:     c.sales,
		ConversionRate: ConversionRate(c.sales, c.transfers),
	}
}

// ConversionRate is sales/transfers as a percentage with one decimal,
// rounded half away from zero, or "0%" when there are no transfers.
func ConversionRate(sales, transfers int) string {
	if transfers == 0 {
		return "0%"
	}
	rate := decimal.NewFromInt(int64(sales)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(transfers)))
	return rate.StringFixed(1) + "%"
}

// Daily groups by the UTC calendar date of the report timestamp, ascending.
// Reports without a timestamp are skipped. With gap filling enabled, days
// between the first and last date with no reports appear as zero rows.
func (e *Engine) Daily(reports []models.Report) []DailyStat {
	byDate := make(map[string]*counts)
	for i := range reports {
		r := &reports[i]
		if r.Timestamp.IsZero() {
			continue
		}
		date := r.Timestamp.UTC().Format(models.DayLayout)
		c, ok := byDate[date]
		if !ok {
			c = &counts{}
			byDate[date] = c
		}
		c.add(r)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if e.fillGaps && len(dates) > 1 {
		dates = fillDates(dates[0], dates[len(dates)-1])
	}

	stats := make([]DailyStat, 0, len(dates))
	for _, date := range dates {
		stat := DailyStat{Date: date}
		if c, ok := byDate[date]; ok {
			stat.Transfers = c.transfers
			stat.Sales = c.sales
		}
		stats = append(stats, stat)
	}
	return stats
}

func fillDates(first, last string) []string {
	start, err := time.Parse(models.DayLayout, first)
	if err != nil {
		return []string{first, last}
	}
	end, err := time.Parse(models.DayLayout, last)
	if err != nil {
		return []string{first, last}
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(models.DayLayout))
	}
	return dates
}

// Leaderboard ranks by transfers desc, then sales desc, then name asc.
func (e *Engine) Leaderboard(reports []models.Report, names map[uint]string) []AgentPerformance {
	order := make([]string, 0)
	byKey := make(map[string]*counts)
	for i := range reports {
		r := &reports[i]
		key := e.leaderboardKey(r, names)
		c, ok := byKey[key]
		if !ok {
			c = &counts{}
			byKey[key] = c
			order = append(order, key)
		}
		c.add(r)
	}

	board := make([]AgentPerformance, 0, len(order))
	for _, key := range order {
		c := byKey[key]
		board = append(board, AgentPerformance{AgentName: key, Transfers: c.transfers, Sales: c.sales})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Transfers != board[j].Transfers {
			return board[i].Transfers > board[j].Transfers
		}
		if board[i].Sales != board[j].Sales {
			return board[i].Sales > board[j].Sales
		}
		return board[i].AgentName < board[j].AgentName
	})
	return board
}

func (e *Engine) leaderboardKey(r *models.Report, names map[uint]string) string {
	if e.grouping == GroupByAgent {
		if r.AgentID == 0 {
			return unknownAgent
		}
		if name, ok := names[r.AgentID]; ok && name != "" {
			return name
		}
		return fmt.Sprintf("Agent #%d", r.AgentID)
	}
	if name := strings.TrimSpace(r.FronterName); name != "" {
		return r.FronterName
	}
	return unknownAgent
}

// CompareLocations always returns the Onsite and WFH buckets, in that order.
// Reports with any other location value land in a trailing Other bucket,
// which is only present when at least one report fell into it.
func CompareLocations(reports []models.Report) []PerformerComparison {
	buckets := map[string]*counts{
		bucketOnsite: {},
		bucketWFH:    {},
	}
	for i := range reports {
		r := &reports[i]
		name := locationBucket(r.Location)
		c, ok := buckets[name]
		if !ok {
			c = &counts{}
			buckets[name] = c
		}
		c.add(r)
	}

	names := []string{bucketOnsite, bucketWFH}
	if _, ok := buckets[bucketOther]; ok {
		names = append(names, bucketOther)
	}
	out := make([]PerformerComparison, 0, len(names))
	for _, name := range names {
		c := buckets[name]
		out = append(out, PerformerComparison{Name: name, Transfers: c.transfers, Sales: c.sales})
	}
	return out
}

func locationBucket(loc models.Location) string {
	switch loc {
	case models.LocationOnsite:
		return bucketOnsite
	case models.LocationWFH:
		return bucketWFH
	}
	return bucketOther
}
