package group

import (
	"fmt"
	"strings"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	DefaultMaxTeams          = 4
	DefaultMaxPlayersPerTeam = 5
)

// Group is a sport group that plays one game day per local calendar day.
type Group struct {
	ID                string
	Name              string
	MaxTeams          int
	MaxPlayersPerTeam int
	Timezone          string
}

// Membership links a user account to a group with a role.
type Membership struct {
	ID       string
	GroupID  string
	UserID   string
	Name     string
	Role     string
	Approved bool
}

func (m Membership) IsAdmin() bool {
	return m.Approved && m.Role == RoleAdmin
}

func (g Group) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("group id is required")
	}
	if g.MaxTeams < 2 {
		return fmt.Errorf("group max teams must be >= 2")
	}
	if g.MaxPlayersPerTeam < 1 {
		return fmt.Errorf("group max players per team must be >= 1")
	}
	return nil
}

// Location resolves the group's timezone, falling back to UTC.
func (g Group) Location() *time.Location {
	name := strings.TrimSpace(g.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalDate returns the group-local calendar date (YYYY-MM-DD) of t.
func (g Group) LocalDate(t time.Time) string {
	return t.In(g.Location()).Format(time.DateOnly)
}

// OpenPoolSize is how many arrivals are held for the captain draft of teams 1 and 2.
func (g Group) OpenPoolSize() int {
	return 2 * g.MaxPlayersPerTeam
}
