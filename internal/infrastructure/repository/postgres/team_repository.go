package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
	qb "github.com/riskibarqy/gameday-rotation/internal/platform/querybuilder"
)

type TeamRepository struct {
	db sqlx.ExtContext
}

func (r *TeamRepository) ListByGame(ctx context.Context, gameID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("team_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by game query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by game: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:        row.ID,
			GameID:    row.GameID,
			Name:      row.Name,
			Number:    row.Number,
			CaptainID: row.CaptainID,
			Goals:     row.Goals,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	query, args, err := qb.InsertModel("teams", teamToRow(t))
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "insert team")
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", t.Name).
		Set("captain_id", t.CaptainID).
		Set("goals", t.Goals).
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "update team")
	}
	return nil
}

func teamToRow(t team.Team) teamTableModel {
	return teamTableModel{
		ID:        t.ID,
		GameID:    t.GameID,
		Name:      t.Name,
		Number:    t.Number,
		CaptainID: t.CaptainID,
		Goals:     t.Goals,
		CreatedAt: t.CreatedAt.UTC(),
	}
}
