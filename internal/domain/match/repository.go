package match

import "context"

// Repository persists matches. ListByGame returns matches ordered by Sequence.
type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Match, error)
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) error
}
