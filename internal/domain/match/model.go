package match

import (
	"errors"
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

// DrawType labels how a draw was reached.
const (
	DrawTypeGoalless  = "0-0"
	DrawTypeWithGoals = "with_goals"
)

// CoinTossType is the closed set of reasons a toss is needed.
type CoinTossType string

const (
	CoinTossNone         CoinTossType = ""
	CoinTossDrawDecider  CoinTossType = "draw_decider"
	CoinTossStartingTeam CoinTossType = "starting_team"
)

var ErrUnknownCoinTossType = errors.New("unknown coin toss type")

// ParseCoinTossType normalizes external input; the empty string maps to CoinTossNone.
func ParseCoinTossType(v string) (CoinTossType, error) {
	switch CoinTossType(strings.ToLower(strings.TrimSpace(v))) {
	case CoinTossNone:
		return CoinTossNone, nil
	case CoinTossDrawDecider:
		return CoinTossDrawDecider, nil
	case CoinTossStartingTeam:
		return CoinTossStartingTeam, nil
	default:
		return CoinTossNone, fmt.Errorf("%w: %q", ErrUnknownCoinTossType, v)
	}
}

type Face string

const (
	Heads Face = "heads"
	Tails Face = "tails"
)

// CoinToss is the audit record of a resolved toss.
type CoinToss struct {
	Type         CoinTossType `json:"type"`
	TeamAChoice  Face         `json:"team_a_choice"`
	TeamBChoice  Face         `json:"team_b_choice"`
	Result       Face         `json:"result"`
	WinnerTeamID string       `json:"winner_team_id"`
	LoserTeamID  string       `json:"loser_team_id"`
	TossedAt     time.Time    `json:"tossed_at"`
}

// Match is one pairing between two teams of a game.
type Match struct {
	ID               string
	GameID           string
	Sequence         int
	TeamAID          string
	TeamBID          string
	ScoreA           int
	ScoreB           int
	Status           string
	WinnerID         string
	IsDraw           bool
	DrawType         string
	RequiresCoinToss bool
	CoinTossType     CoinTossType
	CoinToss         *CoinToss
	RefereeID        string
	AutoCompleted    bool
	StartedAt        *time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
}

func (m Match) IsActive() bool {
	return m.Status == StatusScheduled || m.Status == StatusInProgress
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.TeamAID == teamID || m.TeamBID == teamID)
}

// Pairs reports whether the match was between a and b in either order.
func (m Match) Pairs(a, b string) bool {
	return (m.TeamAID == a && m.TeamBID == b) || (m.TeamAID == b && m.TeamBID == a)
}

// Opponent returns the other side of the match, or "" if teamID did not play.
func (m Match) Opponent(teamID string) string {
	switch teamID {
	case m.TeamAID:
		return m.TeamBID
	case m.TeamBID:
		return m.TeamAID
	default:
		return ""
	}
}

// PendingCoinToss reports a toss that was required but not yet resolved.
func (m Match) PendingCoinToss() bool {
	return m.RequiresCoinToss && m.CoinToss == nil
}

func (m Match) LoserID() string {
	if m.WinnerID == "" {
		return ""
	}
	return m.Opponent(m.WinnerID)
}
