package models

import (
	"encoding/json"
	"time"
)

const DayLayout = "2006-01-02"

type AttendanceState string

const (
	StateNotStarted AttendanceState = "not_started"
	StateSignedIn   AttendanceState = "signed_in"
	StateSignedOut  AttendanceState = "signed_out"
	StateSalaryDay  AttendanceState = "salary_day"
)

// Attendance is one user's entry for one local calendar day. Day holds the
// date as YYYY-MM-DD and, together with UserID, is unique among worked
// shifts. Salary-day rows are settlements and sit outside that constraint.
type Attendance struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	UserID           uint       `gorm:"not null;uniqueIndex:idx_attendance_user_day,where:is_salary_day = false" json:"userId"`
	Day              string     `gorm:"not null;size:10;uniqueIndex:idx_attendance_user_day" json:"day"`
	Date             time.Time  `gorm:"not null;index" json:"date"`
	SignInTime       *time.Time `json:"signInTime"`
	SignOutTime      *time.Time `json:"signOutTime"`
	WorkedHours      float64    `gorm:"not null;default:0" json:"workedHours"`
	SalesCount       int        `gorm:"not null;default:0" json:"salesCount"`
	BonusAmount      int        `gorm:"not null;default:0" json:"bonusAmount"`
	DockAmount       int        `gorm:"not null;default:0" json:"dockAmount"`
	Remark           string     `gorm:"size:500" json:"remark"`
	IsSalaryDay      bool       `gorm:"not null;default:false" json:"isSalaryDay"`
	SalaryAmount     int        `gorm:"not null;default:0" json:"salaryAmount"`
	PunctualityBonus int        `gorm:"not null;default:0" json:"punctualityBonus"`
}

func (a *Attendance) State() AttendanceState {
	switch {
	case a.IsSalaryDay:
		return StateSalaryDay
	case a.SignOutTime != nil:
		return StateSignedOut
	case a.SignInTime != nil:
		return StateSignedIn
	}
	return StateNotStarted
}

// MarshalJSON adds the derived state to the wire form.
func (a Attendance) MarshalJSON() ([]byte, error) {
	type plain Attendance
	return json.Marshal(struct {
		plain
		State AttendanceState `json:"state"`
	}{plain(a), a.State()})
}

// AttendancePatch is the administrative edit of a record. Only fields that
// are present are written.
type AttendancePatch struct {
	SignInTime       *time.Time `json:"signInTime"`
	SignOutTime      *time.Time `json:"signOutTime"`
	WorkedHours      *float64   `json:"workedHours" validate:"omitempty,min=0,max=24"`
	SalesCount       *int       `json:"salesCount" validate:"omitempty,min=0"`
	BonusAmount      *int       `json:"bonusAmount" validate:"omitempty,min=0"`
	DockAmount       *int       `json:"dockAmount" validate:"omitempty,min=0"`
	Remark           *string    `json:"remark" validate:"omitempty,max=500"`
	IsSalaryDay      *bool      `json:"isSalaryDay"`
	SalaryAmount     *int       `json:"salaryAmount" validate:"omitempty,min=0"`
	PunctualityBonus *int       `json:"punctualityBonus" validate:"omitempty,min=0"`
}

func (p AttendancePatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.SignInTime != nil {
		updates["sign_in_time"] = *p.SignInTime
	}
	if p.SignOutTime != nil {
		updates["sign_out_time"] = *p.SignOutTime
	}
	if p.WorkedHours != nil {
		updates["worked_hours"] = *p.WorkedHours
	}
	if p.SalesCount != nil {
		updates["sales_count"] = *p.SalesCount
	}
	if p.BonusAmount != nil {
		updates["bonus_amount"] = *p.BonusAmount
	}
	if p.DockAmount != nil {
		updates["dock_amount"] = *p.DockAmount
	}
	if p.Remark != nil {
		updates["remark"] = *p.Remark
	}
	if p.IsSalaryDay != nil {
		updates["is_salary_day"] = *p.IsSalaryDay
	}
	if p.SalaryAmount != nil {
		updates["salary_amount"] = *p.SalaryAmount
	}
	if p.PunctualityBonus != nil {
		updates["punctuality_bonus"] = *p.PunctualityBonus
	}
	return updates
}
