package team

import (
	"fmt"
	"sort"
	"time"
)

// Team is a numbered side inside one game. Numbers are stable for the day.
type Team struct {
	ID        string
	GameID    string
	Name      string
	Number    int
	CaptainID string
	Goals     int
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.GameID == "" {
		return fmt.Errorf("team game id is required")
	}
	if t.Number < 1 {
		return fmt.Errorf("team number must be >= 1")
	}
	return nil
}

func (t Team) HasCaptain() bool {
	return t.CaptainID != ""
}

func DefaultName(number int) string {
	return fmt.Sprintf("Team %d", number)
}

// SortByNumber orders teams by ascending team number in place.
func SortByNumber(teams []Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Number < teams[j].Number
	})
}
