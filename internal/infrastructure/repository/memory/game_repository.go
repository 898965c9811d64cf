package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

type GameRepository struct {
	data *dataset
}

func (r *GameRepository) Get(_ context.Context, gameID string) (game.Game, bool, error) {
	g, ok := r.data.games[gameID]
	return g, ok, nil
}

func (r *GameRepository) GetByGroupDate(_ context.Context, groupID, date string) (game.Game, bool, error) {
	for _, g := range r.data.games {
		if g.GroupID == groupID && g.Date == date {
			return g, true, nil
		}
	}
	return game.Game{}, false, nil
}

// LockGroupDay is a no-op: the store mutex already serialises transactions.
func (r *GameRepository) LockGroupDay(context.Context, string, string) error {
	return nil
}

func (r *GameRepository) Create(_ context.Context, g game.Game) error {
	if _, exists := r.data.games[g.ID]; exists {
		return fmt.Errorf("%w: game=%s already exists", usecase.ErrConflict, g.ID)
	}
	for _, existing := range r.data.games {
		if existing.GroupID == g.GroupID && existing.Date == g.Date {
			return fmt.Errorf("%w: group=%s already has a game on %s", usecase.ErrConflict, g.GroupID, g.Date)
		}
	}
	r.data.games[g.ID] = g
	return nil
}

func (r *GameRepository) Update(_ context.Context, g game.Game) error {
	if _, exists := r.data.games[g.ID]; !exists {
		return fmt.Errorf("%w: game=%s", usecase.ErrNotFound, g.ID)
	}
	r.data.games[g.ID] = g
	return nil
}

func (r *GameRepository) ListRunningTimerIDs(context.Context) ([]string, error) {
	out := make([]string, 0)
	for _, g := range r.data.games {
		if g.Status == game.StatusInProgress && g.Timer.Running {
			out = append(out, g.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}
