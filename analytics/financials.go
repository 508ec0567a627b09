package analytics

import (
	"time"

	"callcenter/models"
)

type FinanceTotals struct {
	Punctuality int `json:"punctuality"`
	Bonus       int `json:"bonus"`
	Docks       int `json:"docks"`
}

type FinancialSummary struct {
	FinanceTotals
	Salary       int `json:"salary"`
	DaysToSalary int `json:"daysToSalary"`
}

// Finances totals punctuality bonuses and docks over attendance rows and
// sale bonuses over reports. Amounts are plain integers in one currency.
func Finances(attendance []models.Attendance, reports []models.Report) FinanceTotals {
	var totals FinanceTotals
	for i := range attendance {
		totals.Punctuality += attendance[i].PunctualityBonus
		totals.Docks += attendance[i].DockAmount
	}
	for i := range reports {
		totals.Bonus += reports[i].BonusAmount
	}
	return totals
}

func PersonalFinances(attendance []models.Attendance, reports []models.Report, baseSalary int, now time.Time) FinancialSummary {
	return FinancialSummary{
		FinanceTotals: Finances(attendance, reports),
		Salary:        baseSalary,
		DaysToSalary:  DaysToSalary(now),
	}
}

// DaysToSalary counts whole days from now until local midnight on the first
// of next month, when salaries are released.
func DaysToSalary(now time.Time) int {
	y, m, _ := now.Date()
	release := time.Date(y, m+1, 1, 0, 0, 0, 0, now.Location())
	return int(release.Sub(now).Hours() / 24)
}
