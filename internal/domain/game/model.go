package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// DefaultMatchDuration is the shared countdown length of one rotation match.
const DefaultMatchDuration = 420 * time.Second

// Game is one sport group's game day.
type Game struct {
	ID        string
	GroupID   string
	Date      string
	Status    string
	RefereeID string
	Timer     Timer
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(g.GroupID) == "" {
		return fmt.Errorf("game group id is required")
	}
	if _, err := time.Parse(time.DateOnly, g.Date); err != nil {
		return fmt.Errorf("game date must be YYYY-MM-DD: %w", err)
	}
	switch g.Status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("unknown game status %q", g.Status)
	}
	return nil
}

func (g Game) IsInProgress() bool {
	return g.Status == StatusInProgress
}
