package player

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusExpected Status = "expected"
	StatusArrived  Status = "arrived"
	StatusDelayed  Status = "delayed"
	StatusAbsent   Status = "absent"
)

// Player is a registered group member taking part in a game day.
type Player struct {
	ID          string
	GameID      string
	MemberID    string
	Name        string
	Status      Status
	ArrivedAt   *time.Time
	TeamID      string
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

func (p Player) HasArrived() bool {
	return p.Status == StatusArrived
}

// ManualParticipant is a walk-in added by an admin; it belongs to a team by number.
type ManualParticipant struct {
	ID         string
	GameID     string
	Name       string
	Email      string
	Phone      string
	TeamNumber int
	CreatedAt  time.Time
}

func (m ManualParticipant) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("participant name is required")
	}
	if m.TeamNumber < 0 {
		return fmt.Errorf("participant team number must be >= 0")
	}
	return nil
}

// Stats are the per-game counters a referee records for a player.
type Stats struct {
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

func (s Stats) Validate() error {
	if s.Goals < 0 || s.Assists < 0 || s.YellowCards < 0 || s.RedCards < 0 {
		return fmt.Errorf("player stats must be >= 0")
	}
	return nil
}
