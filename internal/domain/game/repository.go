package game

import "context"

// Repository persists games. Get is expected to be called inside a
// transaction; database implementations lock the game row until commit so
// every operation on one game is serialised.
type Repository interface {
	Get(ctx context.Context, gameID string) (Game, bool, error)
	GetByGroupDate(ctx context.Context, groupID, date string) (Game, bool, error)
	LockGroupDay(ctx context.Context, groupID, date string) error
	Create(ctx context.Context, g Game) error
	Update(ctx context.Context, g Game) error
	ListRunningTimerIDs(ctx context.Context) ([]string, error)
}
