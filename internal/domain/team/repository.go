package team

import "context"

type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Team, error)
	Create(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error
}
