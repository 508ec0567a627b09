package models

import (
	"strings"
	"time"
)

type Report struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
	PhoneNo      string    `gorm:"not null;size:32" json:"phoneNo"`
	AccidentYear string    `gorm:"size:8" json:"accidentYear"`
	State        string    `gorm:"size:32" json:"state"`
	ZipCode      string    `gorm:"size:16" json:"zipCode"`
	FronterName  string    `gorm:"not null;size:200" json:"fronterName"`
	CloserName   string    `gorm:"not null;size:200" json:"closerName"`
	Remarks      string    `json:"remarks"`
	Location     Location  `gorm:"not null;size:20;default:onsite;index" json:"location"`
	IsSale       bool      `gorm:"not null;default:false" json:"isSale"`
	Amount       int       `gorm:"not null;default:0" json:"amount"`
	BonusAmount  int       `gorm:"not null;default:0" json:"bonusAmount"`
	AgentID      uint      `gorm:"index" json:"agentId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsTransfer reports a call handed to a closer that did not end in a sale.
func (r *Report) IsTransfer() bool {
	return strings.TrimSpace(r.CloserName) != "" && !r.IsSale
}

// ReportFilter is the normalized query the record store understands. Zero
// values mean "no restriction".
type ReportFilter struct {
	AgentID   uint
	Location  Location
	StartDate *time.Time
	EndDate   *time.Time
}

// ReportPatch carries the fields admins and data entry operators may edit.
type ReportPatch struct {
	Timestamp    *time.Time `json:"timestamp"`
	PhoneNo      *string    `json:"phoneNo" validate:"omitempty,min=1,max=32"`
	AccidentYear *string    `json:"accidentYear" validate:"omitempty,max=8"`
	State        *string    `json:"state" validate:"omitempty,max=32"`
	ZipCode      *string    `json:"zipCode" validate:"omitempty,max=16"`
	FronterName  *string    `json:"fronterName" validate:"omitempty,min=1,max=200"`
	CloserName   *string    `json:"closerName" validate:"omitempty,max=200"`
	Remarks      *string    `json:"remarks"`
	Location     *Location  `json:"location" validate:"omitempty,oneof=onsite wfh"`
	IsSale       *bool      `json:"isSale"`
	Amount       *int       `json:"amount" validate:"omitempty,min=0"`
	BonusAmount  *int       `json:"bonusAmount" validate:"omitempty,min=0"`
}

// Updates returns the column map for the fields present in the patch.
func (p ReportPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Timestamp != nil {
		updates["timestamp"] = *p.Timestamp
	}
	if p.PhoneNo != nil {
		updates["phone_no"] = *p.PhoneNo
	}
	if p.AccidentYear != nil {
		updates["accident_year"] = *p.AccidentYear
	}
	if p.State != nil {
		updates["state"] = *p.State
	}
	if p.ZipCode != nil {
		updates["zip_code"] = *p.ZipCode
	}
	if p.FronterName != nil {
		updates["fronter_name"] = *p.FronterName
	}
	if p.CloserName != nil {
		updates["closer_name"] = *p.CloserName
	}
	if p.Remarks != nil {
		updates["remarks"] = *p.Remarks
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.IsSale != nil {
		updates["is_sale"] = *p.IsSale
	}
	if p.Amount != nil {
		updates["amount"] = *p.Amount
	}
	if p.BonusAmount != nil {
		updates["bonus_amount"] = *p.BonusAmount
	}
	return updates
}
