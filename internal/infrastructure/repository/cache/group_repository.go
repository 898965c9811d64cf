package cache

import (
	"context"

	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	basecache "github.com/riskibarqy/gameday-rotation/internal/platform/cache"
)

// GroupRepository caches group and membership lookups, which every game
// operation repeats for its access check. Negative lookups are cached too.
type GroupRepository struct {
	next  group.Repository
	cache *basecache.Store
}

func NewGroupRepository(next group.Repository, cache *basecache.Store) *GroupRepository {
	return &GroupRepository{next: next, cache: cache}
}

type cachedGroupByID struct {
	value  group.Group
	exists bool
}

type cachedMembership struct {
	value  group.Membership
	exists bool
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	key := "group:id:" + groupID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return cachedGroupByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return group.Group{}, false, err
	}

	cached, _ := v.(cachedGroupByID)
	return cached.value, cached.exists, nil
}

func (r *GroupRepository) GetMembership(ctx context.Context, groupID, userID string) (group.Membership, bool, error) {
	key := "group:membership:" + groupID + ":" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetMembership(ctx, groupID, userID)
		if err != nil {
			return nil, err
		}
		return cachedMembership{value: item, exists: exists}, nil
	})
	if err != nil {
		return group.Membership{}, false, err
	}

	cached, _ := v.(cachedMembership)
	return cached.value, cached.exists, nil
}

// Invalidate drops every cached entry of the group.
func (r *GroupRepository) Invalidate(ctx context.Context, groupID string) {
	r.cache.Delete(ctx, "group:id:"+groupID)
	r.cache.DeletePrefix(ctx, "group:membership:"+groupID+":")
}
