package usecase

import (
	"context"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/rotation"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

type PendingCoinToss struct {
	MatchID  string
	Type     match.CoinTossType
	TeamAID  string
	TeamBID  string
	DrawType string
}

type TeamRoster struct {
	Team      team.Team
	Stats     rotation.Stats
	Populated bool
	Players   []player.Player
	Manual    []player.ManualParticipant
}

// GameState is the read model served to clients polling a game.
type GameState struct {
	Game              game.Game
	RemainingSeconds  int
	Stage             rotation.Stage
	CurrentMatch      *match.Match
	UpcomingMatch     *match.Match
	CompletedMatches  []match.Match
	PendingCoinToss   *PendingCoinToss
	Teams             []TeamRoster
	UnassignedPlayers []player.Player
	ParticipantPool   []player.ManualParticipant
	AutoCompleted     bool
}

type CandidatesView struct {
	Stage      rotation.Stage
	Candidates []rotation.Candidate
}

// GetState projects the game for display. The upcoming match stays hidden
// while a coin toss is outstanding.
func (s *MatchService) GetState(ctx context.Context, actor Actor, gameID string) (GameState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetState", gameIDAttr(gameID))
	defer span.End()

	var out GameState
	autoCompleted, err := s.inGame(ctx, actor, gameID, func(_ context.Context, _ Repositories, day *gameDay, _ group.Membership, batch *eventBatch) error {
		out = projectState(day, batch)
		return nil
	})
	if err != nil {
		return GameState{}, err
	}
	out.AutoCompleted = autoCompleted
	return out, nil
}

func (s *MatchService) ListCandidates(ctx context.Context, actor Actor, gameID string) (CandidatesView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListCandidates", gameIDAttr(gameID))
	defer span.End()

	var out CandidatesView
	_, err := s.inGame(ctx, actor, gameID, func(_ context.Context, _ Repositories, day *gameDay, _ group.Membership, _ *eventBatch) error {
		exclude := make([]string, 0, 2)
		if active, ok := day.activeMatch(); ok {
			exclude = append(exclude, active.TeamAID, active.TeamBID)
		}
		out = CandidatesView{
			Stage:      day.stage(),
			Candidates: rotation.NextCandidates(day.populated(), day.stats(), exclude...),
		}
		return nil
	})
	return out, err
}

func projectState(day *gameDay, batch *eventBatch) GameState {
	populated := day.populated()
	stats := day.stats()

	state := GameState{
		Game:             day.game,
		RemainingSeconds: day.game.Timer.Remaining(batch.now),
		Stage:            day.stage(),
		CompletedMatches: make([]match.Match, 0, len(day.matches)),
	}

	for _, m := range day.matches {
		switch m.Status {
		case match.StatusInProgress:
			current := m
			state.CurrentMatch = &current
		case match.StatusScheduled:
			upcoming := m
			state.UpcomingMatch = &upcoming
		case match.StatusCompleted:
			state.CompletedMatches = append(state.CompletedMatches, m)
		}
	}

	if pending, ok := day.pendingToss(); ok {
		state.PendingCoinToss = &PendingCoinToss{
			MatchID:  pending.ID,
			Type:     pending.CoinTossType,
			TeamAID:  pending.TeamAID,
			TeamBID:  pending.TeamBID,
			DrawType: pending.DrawType,
		}
		state.UpcomingMatch = nil
	}

	populatedIDs := make(map[string]struct{}, len(populated))
	for _, t := range populated {
		populatedIDs[t.ID] = struct{}{}
	}
	for _, t := range day.teams {
		roster := TeamRoster{Team: t, Stats: stats[t.ID]}
		_, roster.Populated = populatedIDs[t.ID]
		for _, p := range day.players {
			if p.TeamID == t.ID {
				roster.Players = append(roster.Players, p)
			}
		}
		for _, m := range day.manuals {
			if m.TeamNumber == t.Number {
				roster.Manual = append(roster.Manual, m)
			}
		}
		state.Teams = append(state.Teams, roster)
	}

	for _, p := range day.players {
		if p.TeamID == "" {
			state.UnassignedPlayers = append(state.UnassignedPlayers, p)
		}
	}
	for _, m := range day.manuals {
		if _, ok := day.teamByNumber(m.TeamNumber); !ok {
			state.ParticipantPool = append(state.ParticipantPool, m)
		}
	}
	return state
}
