package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gameday-rotation/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo groups when the directory is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM groups`); err != nil {
		return fmt.Errorf("count groups for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, g := range memory.SeedGroups() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO groups (id, name, max_teams, max_players_per_team, timezone)
VALUES (:id, :name, :max_teams, :max_players_per_team, :timezone)
ON CONFLICT (id) DO NOTHING`, groupTableModel{
			ID:                g.ID,
			Name:              g.Name,
			MaxTeams:          g.MaxTeams,
			MaxPlayersPerTeam: g.MaxPlayersPerTeam,
			Timezone:          g.Timezone,
		})
		if err != nil {
			return fmt.Errorf("bind seed group %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed group %s: %w", g.ID, err)
		}
	}

	for _, m := range memory.SeedMemberships() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO group_members (id, group_id, user_id, name, role, approved)
VALUES (:id, :group_id, :user_id, :name, :role, :approved)
ON CONFLICT (group_id, user_id) DO NOTHING`, groupMemberTableModel{
			ID:       m.ID,
			GroupID:  m.GroupID,
			UserID:   m.UserID,
			Name:     m.Name,
			Role:     m.Role,
			Approved: m.Approved,
		})
		if err != nil {
			return fmt.Errorf("bind seed membership %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed membership %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
