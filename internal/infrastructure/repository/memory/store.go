package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

// Store keeps game-day state in process. WithinTx serialises transactions
// behind one mutex and works on a copy, so a failed transaction leaves no
// trace.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

type dataset struct {
	games   map[string]game.Game
	teams   map[string]team.Team
	players map[string]player.Player
	manuals map[string]player.ManualParticipant
	matches map[string]match.Match
}

func newDataset() *dataset {
	return &dataset{
		games:   make(map[string]game.Game),
		teams:   make(map[string]team.Team),
		players: make(map[string]player.Player),
		manuals: make(map[string]player.ManualParticipant),
		matches: make(map[string]match.Match),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		games:   maps.Clone(d.games),
		teams:   maps.Clone(d.teams),
		players: maps.Clone(d.players),
		manuals: maps.Clone(d.manuals),
		matches: maps.Clone(d.matches),
	}
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	if err := fn(ctx, repositoriesFor(working)); err != nil {
		return err
	}
	s.data = working
	return nil
}

// Games exposes a committed view for reads that happen outside a transaction,
// such as the expiry sweep listing running timers.
func (s *Store) Games() game.Repository {
	return &committedGames{store: s}
}

func repositoriesFor(d *dataset) usecase.Repositories {
	return usecase.Repositories{
		Games:   &GameRepository{data: d},
		Teams:   &TeamRepository{data: d},
		Players: &PlayerRepository{data: d},
		Manual:  &ManualParticipantRepository{data: d},
		Matches: &MatchRepository{data: d},
	}
}

type committedGames struct {
	store *Store
}

func (c *committedGames) view() *GameRepository {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return &GameRepository{data: c.store.data.clone()}
}

func (c *committedGames) Get(ctx context.Context, gameID string) (game.Game, bool, error) {
	return c.view().Get(ctx, gameID)
}

func (c *committedGames) GetByGroupDate(ctx context.Context, groupID, date string) (game.Game, bool, error) {
	return c.view().GetByGroupDate(ctx, groupID, date)
}

func (c *committedGames) LockGroupDay(context.Context, string, string) error {
	return nil
}

func (c *committedGames) Create(ctx context.Context, g game.Game) error {
	return c.store.WithinTx(ctx, func(ctx context.Context, repos usecase.Repositories) error {
		return repos.Games.Create(ctx, g)
	})
}

func (c *committedGames) Update(ctx context.Context, g game.Game) error {
	return c.store.WithinTx(ctx, func(ctx context.Context, repos usecase.Repositories) error {
		return repos.Games.Update(ctx, g)
	})
}

func (c *committedGames) ListRunningTimerIDs(ctx context.Context) ([]string, error) {
	return c.view().ListRunningTimerIDs(ctx)
}
