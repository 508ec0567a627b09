package models

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleDEO   Role = "deo"
	RoleAgent Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDEO, RoleAgent:
		return true
	}
	return false
}

type Location string

const (
	LocationOnsite Location = "onsite"
	LocationWFH    Location = "wfh"
)

func (l Location) Valid() bool {
	return l == LocationOnsite || l == LocationWFH
}

// User deletion is a hard delete. Reports and attendance rows keep their
// owner id after the user is gone; there is deliberately no foreign key.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Username  string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"not null;size:20;default:agent" json:"role"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	LastIP    string    `gorm:"size:64" json:"lastIp"`
	Location  Location  `gorm:"not null;size:20;default:onsite" json:"location"`
}

func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsDEO() bool {
	return u.Role == RoleDEO
}

func (u *User) IsAgent() bool {
	return u.Role == RoleAgent
}
