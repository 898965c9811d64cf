package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

// Repositories are the stores visible inside one transaction.
type Repositories struct {
	Games   game.Repository
	Teams   team.Repository
	Players player.Repository
	Manual  player.ManualParticipantRepository
	Matches match.Repository
}

// Transactor runs fn atomically. If fn returns an error nothing it wrote is kept.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Actor is the authenticated caller.
type Actor struct {
	UserID string
}

const (
	EventPlayerCheckedIn   = "player.checked_in"
	EventRosterUpdated     = "roster.updated"
	EventTimerStarted      = "timer.started"
	EventTimerPaused       = "timer.paused"
	EventRefereeAssigned   = "referee.assigned"
	EventMatchCreated      = "match.created"
	EventMatchStarted      = "match.started"
	EventScoreUpdated      = "match.score_updated"
	EventMatchCompleted    = "match.completed"
	EventMatchCancelled    = "match.cancelled"
	EventCoinTossResolved  = "coin_toss.resolved"
	EventCoinTossRequested = "coin_toss.requested"
)

// GameEvent tells live subscribers that a game's state changed.
type GameEvent struct {
	GameID     string    `json:"game_id"`
	Type       string    `json:"type"`
	MatchID    string    `json:"match_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishGameEvent(ctx context.Context, event GameEvent) error
}

type Metrics interface {
	CheckIn(kind string)
	MatchCompleted(outcome string, automatic bool)
	CoinTossResolved(tossType string)
	ExpirySweep(checked, completed, failed int)
}

type nopPublisher struct{}

func (nopPublisher) PublishGameEvent(context.Context, GameEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) CheckIn(string) {}
func (nopMetrics) MatchCompleted(string, bool) {}
func (nopMetrics) CoinTossResolved(string) {}
func (nopMetrics) ExpirySweep(int, int, int) {}
