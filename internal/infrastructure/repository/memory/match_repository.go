package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

type MatchRepository struct {
	data *dataset
}

func (r *MatchRepository) ListByGame(_ context.Context, gameID string) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, item := range r.data.matches {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	if _, exists := r.data.matches[m.ID]; exists {
		return fmt.Errorf("%w: match=%s already exists", usecase.ErrConflict, m.ID)
	}
	if err := r.checkSingleActive(m); err != nil {
		return err
	}
	r.data.matches[m.ID] = m
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	if _, exists := r.data.matches[m.ID]; !exists {
		return fmt.Errorf("%w: match=%s", usecase.ErrNotFound, m.ID)
	}
	if err := r.checkSingleActive(m); err != nil {
		return err
	}
	r.data.matches[m.ID] = m
	return nil
}

// checkSingleActive mirrors the partial unique index on active matches.
func (r *MatchRepository) checkSingleActive(m match.Match) error {
	if !m.IsActive() {
		return nil
	}
	for _, existing := range r.data.matches {
		if existing.GameID == m.GameID && existing.ID != m.ID && existing.IsActive() {
			return fmt.Errorf("%w: game=%s already has active match=%s", usecase.ErrConflict, m.GameID, existing.ID)
		}
	}
	return nil
}
