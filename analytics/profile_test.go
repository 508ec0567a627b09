package analytics

import (
	"testing"
	"time"

	"callcenter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentProfile(t *testing.T) {
	now := time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC)
	agent := models.User{ID: 3, Username: "agent", Name: "Hassam Sheikh", Role: models.RoleAgent}
	reports := []models.Report{
		{Timestamp: ts(25, 9), CloserName: "X", AgentID: 3},
		{Timestamp: ts(25, 10), CloserName: "X", IsSale: true, AgentID: 3},
		{Timestamp: ts(19, 10), CloserName: "X", AgentID: 3},
		{Timestamp: ts(18, 10), CloserName: "X", AgentID: 3},
	}
	in := ts(20, 9)
	attendance := []models.Attendance{
		{UserID: 3, Day: "2026-01-20", SignInTime: &in, WorkedHours: 7.5, SalesCount: 2, BonusAmount: 1000, DockAmount: 500},
		{UserID: 3, Day: "2026-01-21", SignInTime: &in, WorkedHours: 9, SalesCount: 1, BonusAmount: 500},
		{UserID: 3, Day: "2026-01-22", WorkedHours: 0.1},
		{UserID: 3, Day: "2026-01-01", IsSalaryDay: true, BonusAmount: 33000, DockAmount: 3000},
	}

	profile := NewEngine(Options{}).AgentProfile(agent, reports, attendance, now)

	assert.Equal(t, "Hassam Sheikh", profile.Agent.Name)
	assert.Equal(t, Totals{TotalCalls: 4, TotalTransfers: 3, TotalSales: 1, ConversionRate: "33.3%"}, profile.KPIs)

	require.Len(t, profile.LastWeek, 7)
	assert.Equal(t, DayActivity{Date: "2026-01-19", Calls: 1}, profile.LastWeek[0])
	assert.Equal(t, DayActivity{Date: "2026-01-25", Calls: 2, Sales: 1}, profile.LastWeek[6])
	assert.Equal(t, DayActivity{Date: "2026-01-22"}, profile.LastWeek[3])

	assert.Equal(t, AttendanceTotals{DaysPresent: 2, WorkedHours: 16.6, SalesCount: 3, Bonus: 1500, Dock: 500}, profile.Attendance)
}

func TestFinances(t *testing.T) {
	attendance := []models.Attendance{
		{IsSalaryDay: true, PunctualityBonus: 5000, DockAmount: 3000},
		{DockAmount: 500},
		{DockAmount: 500, PunctualityBonus: 200},
	}
	reports := []models.Report{{BonusAmount: 1000}, {BonusAmount: 250}, {}}

	assert.Equal(t, FinanceTotals{Punctuality: 5200, Bonus: 1250, Docks: 4000}, Finances(attendance, reports))

	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	summary := PersonalFinances(attendance, reports, 30000, now)
	assert.Equal(t, 30000, summary.Salary)
	assert.Equal(t, 11, summary.DaysToSalary)
	assert.Equal(t, 5200, summary.Punctuality)
}

func TestDaysToSalary(t *testing.T) {
	assert.Equal(t, 0, DaysToSalary(time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, DaysToSalary(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 27, DaysToSalary(time.Date(2026, 2, 1, 6, 0, 0, 0, time.UTC)))
}
