package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

type TeamRepository struct {
	data *dataset
}

func (r *TeamRepository) ListByGame(_ context.Context, gameID string) ([]team.Team, error) {
	out := make([]team.Team, 0)
	for _, item := range r.data.teams {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	team.SortByNumber(out)
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	for _, existing := range r.data.teams {
		if existing.ID == t.ID || (existing.GameID == t.GameID && existing.Number == t.Number) {
			return fmt.Errorf("%w: team %d already exists in game=%s", usecase.ErrConflict, t.Number, t.GameID)
		}
	}
	r.data.teams[t.ID] = t
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	if _, exists := r.data.teams[t.ID]; !exists {
		return fmt.Errorf("%w: team=%s", usecase.ErrNotFound, t.ID)
	}
	r.data.teams[t.ID] = t
	return nil
}
