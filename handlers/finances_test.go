package handlers

import (
	"net/http"
	"testing"

	"callcenter/analytics"
	"callcenter/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFinances(ts *testServer) {
	ts.addAttendance(models.Attendance{UserID: ts.agent.ID, Day: "2026-01-01", Date: testNow.AddDate(0, 0, -24), IsSalaryDay: true, PunctualityBonus: 5000, DockAmount: 3000})
	ts.addAttendance(models.Attendance{UserID: ts.agent.ID, Day: "2026-01-24", Date: testNow.AddDate(0, 0, -1), DockAmount: 500})
	ts.addAttendance(models.Attendance{UserID: ts.other.ID, Day: "2026-01-24", Date: testNow.AddDate(0, 0, -1), PunctualityBonus: 200})
	ts.addReport(models.Report{AgentID: ts.agent.ID, IsSale: true, BonusAmount: 1000, Timestamp: testNow})
	ts.addReport(models.Report{AgentID: ts.other.ID, IsSale: true, BonusAmount: 250, Timestamp: testNow})
}

func TestFinances_Personal(t *testing.T) {
	ts := newTestServer(t)
	seedFinances(ts)

	rec := ts.do(http.MethodGet, "/api/financials", nil, ts.agent)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[analytics.FinancialSummary](t, rec)

	assert.Equal(t, 30000, summary.Salary)
	assert.Equal(t, 5000, summary.Punctuality)
	assert.Equal(t, 3500, summary.Docks)
	assert.Equal(t, 1000, summary.Bonus)
	assert.Equal(t, 6, summary.DaysToSalary)
}

func TestFinances_Summary(t *testing.T) {
	ts := newTestServer(t)
	seedFinances(ts)

	rec := ts.do(http.MethodGet, "/api/admin/financials", nil, ts.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"punctuality":5200,"bonus":1250,"docks":3500}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/admin/financials", nil, ts.deo).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/admin/financials", nil, ts.agent).Code)
}
