package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	qb "github.com/riskibarqy/gameday-rotation/internal/platform/querybuilder"
)

type groupTableModel struct {
	ID                string `db:"id"`
	Name              string `db:"name"`
	MaxTeams          int    `db:"max_teams"`
	MaxPlayersPerTeam int    `db:"max_players_per_team"`
	Timezone          string `db:"timezone"`
}

type groupMemberTableModel struct {
	ID       string `db:"id"`
	GroupID  string `db:"group_id"`
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Role     string `db:"role"`
	Approved bool   `db:"approved"`
}

// GroupRepository reads the group directory. Writes belong to the account
// system; only the bootstrap seed inserts here.
type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	query, args, err := qb.Select("id", "name", "max_teams", "max_players_per_team", "timezone").
		From("groups").
		Where(qb.Eq("id", strings.TrimSpace(groupID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return group.Group{}, false, fmt.Errorf("build get group query: %w", err)
	}

	var row groupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Group{}, false, nil
		}
		return group.Group{}, false, fmt.Errorf("get group: %w", err)
	}

	return group.Group{
		ID:                row.ID,
		Name:              row.Name,
		MaxTeams:          row.MaxTeams,
		MaxPlayersPerTeam: row.MaxPlayersPerTeam,
		Timezone:          row.Timezone,
	}, true, nil
}

func (r *GroupRepository) GetMembership(ctx context.Context, groupID, userID string) (group.Membership, bool, error) {
	query, args, err := qb.Select("id", "group_id", "user_id", "name", "role", "approved").
		From("group_members").
		Where(
			qb.Eq("group_id", strings.TrimSpace(groupID)),
			qb.Eq("user_id", strings.TrimSpace(userID)),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return group.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row groupMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Membership{}, false, nil
		}
		return group.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return group.Membership{
		ID:       row.ID,
		GroupID:  row.GroupID,
		UserID:   row.UserID,
		Name:     row.Name,
		Role:     row.Role,
		Approved: row.Approved,
	}, true, nil
}
