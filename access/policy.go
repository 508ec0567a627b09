// Package access derives what a caller may see and do from their role.
package access

import (
	"errors"
	"time"

	"callcenter/analytics"
	"callcenter/models"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Principal is the authenticated caller.
type Principal struct {
	ID   uint
	Role models.Role
}

func PrincipalOf(user *models.User) *Principal {
	if user == nil {
		return nil
	}
	return &Principal{ID: user.ID, Role: user.Role}
}

type Action string

const (
	ListUsers         Action = "users:list"
	CreateUser        Action = "users:create"
	DeleteUser        Action = "users:delete"
	EditReport        Action = "reports:edit"
	DeleteReport      Action = "reports:delete"
	ListAllAttendance Action = "attendance:list_all"
	CreateAttendance  Action = "attendance:create"
	EditAttendance    Action = "attendance:edit"
	DeleteAttendance  Action = "attendance:delete"
	ViewAllFinances   Action = "finances:view_all"
	ViewAgentProfile  Action = "agents:profile"
)

var permissions = map[Action][]models.Role{
	ListUsers:         {models.RoleAdmin, models.RoleDEO},
	CreateUser:        {models.RoleAdmin, models.RoleDEO},
	DeleteUser:        {models.RoleAdmin},
	EditReport:        {models.RoleAdmin, models.RoleDEO},
	DeleteReport:      {models.RoleAdmin, models.RoleDEO},
	ListAllAttendance: {models.RoleAdmin},
	CreateAttendance:  {models.RoleAdmin},
	EditAttendance:    {models.RoleAdmin},
	DeleteAttendance:  {models.RoleAdmin},
	ViewAllFinances:   {models.RoleAdmin},
	ViewAgentProfile:  {models.RoleAdmin},
}

// Authorize returns ErrUnauthenticated without a principal and ErrForbidden
// when the role is not allowed the action. Unknown actions are forbidden.
func Authorize(p *Principal, action Action) error {
	if p == nil {
		return ErrUnauthenticated
	}
	for _, role := range permissions[action] {
		if p.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// SeesAll reports whether the principal's reads span every agent.
func (p *Principal) SeesAll() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleDEO
}

// ReportQuery is what a client asked for when reading reports or the
// dashboard. Nil or empty fields mean "not supplied".
type ReportQuery struct {
	AgentID   *uint
	Location  string
	Days      *int
	StartDate *time.Time
	EndDate   *time.Time
}

// ReportScope normalizes a client query into the filter the record store
// runs. Agents are pinned to their own id whatever they asked for; admins and
// DEOs pass agentId through. location "all" or empty means every location. A
// days window and an explicit start date combine by taking the later bound.
func ReportScope(p *Principal, q ReportQuery, now time.Time) (models.ReportFilter, error) {
	if p == nil {
		return models.ReportFilter{}, ErrUnauthenticated
	}

	var filter models.ReportFilter
	switch {
	case !p.SeesAll():
		filter.AgentID = p.ID
	case q.AgentID != nil:
		filter.AgentID = *q.AgentID
	}

	if q.Location != "" && q.Location != "all" {
		filter.Location = models.Location(q.Location)
	}

	filter.StartDate = q.StartDate
	if since, ok := analytics.Since(q.Days, now); ok {
		if filter.StartDate == nil || since.After(*filter.StartDate) {
			filter.StartDate = &since
		}
	}
	filter.EndDate = q.EndDate

	return filter, nil
}
