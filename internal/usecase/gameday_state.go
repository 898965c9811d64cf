package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/rotation"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

// gameDay is everything one game-scoped operation reads, loaded once per
// transaction. Rotation stats are always recomputed from matches.
type gameDay struct {
	game    game.Game
	teams   []team.Team
	players []player.Player
	manuals []player.ManualParticipant
	matches []match.Match
}

func loadGameDay(ctx context.Context, repos Repositories, gameID string) (*gameDay, error) {
	g, exists, err := repos.Games.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	teams, err := repos.Teams.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	players, err := repos.Players.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	manuals, err := repos.Manual.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list manual participants: %w", err)
	}
	matches, err := repos.Matches.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	team.SortByNumber(teams)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Sequence < matches[j].Sequence })

	return &gameDay{
		game:    g,
		teams:   teams,
		players: players,
		manuals: manuals,
		matches: matches,
	}, nil
}

func (d *gameDay) populated() []team.Team {
	return rotation.TeamsWithPlayers(d.teams, d.players, d.manuals)
}

func (d *gameDay) stats() map[string]rotation.Stats {
	return rotation.ComputeStats(d.teams, d.matches)
}

func (d *gameDay) stage() rotation.Stage {
	return rotation.CurrentStage(d.populated(), d.stats())
}

// playsFor reports whether memberID captains or plays for one of teamIDs.
func (d *gameDay) playsFor(memberID string, teamIDs ...string) bool {
	if memberID == "" {
		return false
	}
	for _, id := range teamIDs {
		if t, ok := d.teamByID(id); ok && t.CaptainID == memberID {
			return true
		}
		for _, p := range d.players {
			if p.TeamID == id && p.MemberID == memberID {
				return true
			}
		}
	}
	return false
}

func (d *gameDay) teamByID(id string) (team.Team, bool) {
	for _, t := range d.teams {
		if t.ID == id {
			return t, true
		}
	}
	return team.Team{}, false
}

func (d *gameDay) teamByNumber(number int) (team.Team, bool) {
	for _, t := range d.teams {
		if t.Number == number {
			return t, true
		}
	}
	return team.Team{}, false
}

func (d *gameDay) playerByID(id string) (player.Player, bool) {
	for _, p := range d.players {
		if p.ID == id {
			return p, true
		}
	}
	return player.Player{}, false
}

func (d *gameDay) playerByMember(memberID string) (player.Player, bool) {
	for _, p := range d.players {
		if p.MemberID == memberID {
			return p, true
		}
	}
	return player.Player{}, false
}

// activeMatch returns the scheduled or in-progress match; there is at most one.
func (d *gameDay) activeMatch() (match.Match, bool) {
	for _, m := range d.matches {
		if m.IsActive() {
			return m, true
		}
	}
	return match.Match{}, false
}

func (d *gameDay) matchWithStatus(status string) (match.Match, bool) {
	for _, m := range d.matches {
		if m.Status == status {
			return m, true
		}
	}
	return match.Match{}, false
}

// pendingToss returns the latest match waiting on a coin toss.
func (d *gameDay) pendingToss() (match.Match, bool) {
	for i := len(d.matches) - 1; i >= 0; i-- {
		m := d.matches[i]
		if m.Status == match.StatusCancelled {
			continue
		}
		if m.PendingCoinToss() {
			return m, true
		}
	}
	return match.Match{}, false
}

func (d *gameDay) hasStartedRotation() bool {
	for _, m := range d.matches {
		if m.IsActive() || m.IsCompleted() {
			return true
		}
	}
	return false
}

func (d *gameDay) nextSequence() int {
	next := 1
	for _, m := range d.matches {
		if m.Sequence >= next {
			next = m.Sequence + 1
		}
	}
	return next
}

func (d *gameDay) arrivals() []player.Player {
	out := make([]player.Player, 0, len(d.players))
	for _, p := range d.players {
		if p.HasArrived() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return arrivedAt(out[i]).Before(arrivedAt(out[j]))
	})
	return out
}

func arrivedAt(p player.Player) time.Time {
	if p.ArrivedAt == nil {
		return time.Time{}
	}
	return *p.ArrivedAt
}

func (d *gameDay) rosterSize(t team.Team) int {
	return rotation.RosterSize(t, d.players, d.manuals)
}

func (d *gameDay) putMatch(m match.Match) {
	for i := range d.matches {
		if d.matches[i].ID == m.ID {
			d.matches[i] = m
			return
		}
	}
	d.matches = append(d.matches, m)
}

func (d *gameDay) putTeam(t team.Team) {
	for i := range d.teams {
		if d.teams[i].ID == t.ID {
			d.teams[i] = t
			return
		}
	}
	d.teams = append(d.teams, t)
	team.SortByNumber(d.teams)
}

func (d *gameDay) putPlayer(p player.Player) {
	for i := range d.players {
		if d.players[i].ID == p.ID {
			d.players[i] = p
			return
		}
	}
	d.players = append(d.players, p)
}

func (d *gameDay) putManual(m player.ManualParticipant) {
	for i := range d.manuals {
		if d.manuals[i].ID == m.ID {
			d.manuals[i] = m
			return
		}
	}
	d.manuals = append(d.manuals, m)
}

// eventBatch collects notifications during a transaction; they are only
// published once it commits.
type eventBatch struct {
	gameID string
	now    time.Time
	events []GameEvent
}

func (b *eventBatch) add(eventType, matchID string) {
	b.events = append(b.events, GameEvent{
		GameID:     b.gameID,
		Type:       eventType,
		MatchID:    matchID,
		OccurredAt: b.now,
	})
}
