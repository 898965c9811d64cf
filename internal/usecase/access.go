package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
)

type accessPolicy struct {
	groups group.Repository
}

// member resolves the caller's approved membership in groupID.
func (a accessPolicy) member(ctx context.Context, groupID string, actor Actor) (group.Membership, error) {
	userID := strings.TrimSpace(actor.UserID)
	if userID == "" {
		return group.Membership{}, fmt.Errorf("%w: missing user", ErrUnauthorized)
	}

	m, exists, err := a.groups.GetMembership(ctx, groupID, userID)
	if err != nil {
		return group.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	if !exists || !m.Approved {
		return group.Membership{}, fmt.Errorf("%w: user is not an approved member of group=%s", ErrForbidden, groupID)
	}
	return m, nil
}

func (a accessPolicy) group(ctx context.Context, groupID string) (group.Group, error) {
	g, exists, err := a.groups.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return group.Group{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	return g, nil
}

func requireAdmin(m group.Membership) error {
	if m.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: admin role required", ErrForbidden)
}

// requireOfficial allows the game's referee or a group admin.
func requireOfficial(m group.Membership, g game.Game) error {
	if m.IsAdmin() || (g.RefereeID != "" && g.RefereeID == m.ID) {
		return nil
	}
	return fmt.Errorf("%w: referee or admin role required", ErrForbidden)
}
