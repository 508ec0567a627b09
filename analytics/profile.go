package analytics

import (
	"time"

	"callcenter/metrics"
	"callcenter/models"

	"github.com/shopspring/decimal"
)

const profileDays = 7

type DayActivity struct {
	Date  string `json:"date"`
	Calls int    `json:"calls"`
	Sales int    `json:"sales"`
}

type AttendanceTotals struct {
	DaysPresent int     `json:"daysPresent"`
	WorkedHours float64 `json:"workedHours"`
	SalesCount  int     `json:"salesCount"`
	Bonus       int     `json:"bonus"`
	Dock        int     `json:"dock"`
}

type AgentProfile struct {
	Agent      models.User      `json:"agent"`
	KPIs       Totals           `json:"kpis"`
	LastWeek   []DayActivity    `json:"lastWeek"`
	Attendance AttendanceTotals `json:"attendance"`
}

// AgentProfile summarizes one agent's reports and attendance. LastWeek
// covers the seven local calendar days ending today, oldest first, with
// empty days present as zeros.
func (e *Engine) AgentProfile(agent models.User, reports []models.Report, attendance []models.Attendance, now time.Time) AgentProfile {
	defer metrics.ObserveAggregation("agent_profile", time.Now(), len(reports))

	return AgentProfile{
		Agent:      agent,
		KPIs:       Summarize(reports),
		LastWeek:   lastWeek(reports, now),
		Attendance: SumAttendance(attendance),
	}
}

func lastWeek(reports []models.Report, now time.Time) []DayActivity {
	loc := now.Location()
	today := startOfDay(now)

	days := make([]DayActivity, profileDays)
	index := make(map[string]int, profileDays)
	for i := 0; i < profileDays; i++ {
		date := today.AddDate(0, 0, i-(profileDays-1)).Format(models.DayLayout)
		days[i] = DayActivity{Date: date}
		index[date] = i
	}

	for i := range reports {
		r := &reports[i]
		if r.Timestamp.IsZero() {
			continue
		}
		idx, ok := index[r.Timestamp.In(loc).Format(models.DayLayout)]
		if !ok {
			continue
		}
		days[idx].Calls++
		if r.IsSale {
			days[idx].Sales++
		}
	}
	return days
}

// SumAttendance totals worked shifts. Salary-day settlements are not shifts
// and are left out.
func SumAttendance(rows []models.Attendance) AttendanceTotals {
	var totals AttendanceTotals
	hours := decimal.Zero
	for i := range rows {
		row := &rows[i]
		if row.IsSalaryDay {
			continue
		}
		if row.SignInTime != nil {
			totals.DaysPresent++
		}
		hours = hours.Add(decimal.NewFromFloat(row.WorkedHours))
		totals.SalesCount += row.SalesCount
		totals.Bonus += row.BonusAmount
		totals.Dock += row.DockAmount
	}
	totals.WorkedHours = hours.InexactFloat64()
	return totals
}
