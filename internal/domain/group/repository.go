package group

import "context"

// Repository exposes the group directory and role lookups owned by the account system.
type Repository interface {
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
	GetMembership(ctx context.Context, groupID, userID string) (Membership, bool, error)
}
