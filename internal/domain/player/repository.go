package player

import "context"

type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Player, error)
	GetByMember(ctx context.Context, gameID, memberID string) (Player, bool, error)
	Create(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) error
}

type ManualParticipantRepository interface {
	ListByGame(ctx context.Context, gameID string) ([]ManualParticipant, error)
	Create(ctx context.Context, m ManualParticipant) error
	Update(ctx context.Context, m ManualParticipant) error
}
