package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

type PlayerRepository struct {
	data *dataset
}

func (r *PlayerRepository) ListByGame(_ context.Context, gameID string) ([]player.Player, error) {
	out := make([]player.Player, 0)
	for _, item := range r.data.players {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) GetByMember(_ context.Context, gameID, memberID string) (player.Player, bool, error) {
	for _, item := range r.data.players {
		if item.GameID == gameID && item.MemberID == memberID {
			return item, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	for _, existing := range r.data.players {
		if existing.ID == p.ID || (existing.GameID == p.GameID && existing.MemberID == p.MemberID) {
			return fmt.Errorf("%w: member=%s already registered in game=%s", usecase.ErrConflict, p.MemberID, p.GameID)
		}
	}
	r.data.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	if _, exists := r.data.players[p.ID]; !exists {
		return fmt.Errorf("%w: player=%s", usecase.ErrNotFound, p.ID)
	}
	r.data.players[p.ID] = p
	return nil
}

type ManualParticipantRepository struct {
	data *dataset
}

func (r *ManualParticipantRepository) ListByGame(_ context.Context, gameID string) ([]player.ManualParticipant, error) {
	out := make([]player.ManualParticipant, 0)
	for _, item := range r.data.manuals {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ManualParticipantRepository) Create(_ context.Context, m player.ManualParticipant) error {
	if _, exists := r.data.manuals[m.ID]; exists {
		return fmt.Errorf("%w: participant=%s already exists", usecase.ErrConflict, m.ID)
	}
	r.data.manuals[m.ID] = m
	return nil
}

func (r *ManualParticipantRepository) Update(_ context.Context, m player.ManualParticipant) error {
	if _, exists := r.data.manuals[m.ID]; !exists {
		return fmt.Errorf("%w: participant=%s", usecase.ErrNotFound, m.ID)
	}
	r.data.manuals[m.ID] = m
	return nil
}
