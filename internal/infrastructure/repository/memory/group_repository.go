package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
)

type GroupRepository struct {
	mu          sync.RWMutex
	groups      map[string]group.Group
	memberships map[string]group.Membership
}

func NewGroupRepository(groups []group.Group, memberships []group.Membership) *GroupRepository {
	r := &GroupRepository{
		groups:      make(map[string]group.Group, len(groups)),
		memberships: make(map[string]group.Membership, len(memberships)),
	}
	for _, item := range groups {
		r.groups[item.ID] = item
	}
	for _, item := range memberships {
		r.memberships[membershipKey(item.GroupID, item.UserID)] = item
	}
	return r
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.groups[strings.TrimSpace(groupID)]
	return item, ok, nil
}

func (r *GroupRepository) GetMembership(_ context.Context, groupID, userID string) (group.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.memberships[membershipKey(strings.TrimSpace(groupID), strings.TrimSpace(userID))]
	return item, ok, nil
}

func (r *GroupRepository) UpsertMembership(m group.Membership) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.memberships[membershipKey(m.GroupID, m.UserID)] = m
}

func membershipKey(groupID, userID string) string {
	return groupID + "/" + userID
}
