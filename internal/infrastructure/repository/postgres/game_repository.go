package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	qb "github.com/riskibarqy/gameday-rotation/internal/platform/querybuilder"
)

type GameRepository struct {
	db       sqlx.ExtContext
	lockRows bool
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Get(ctx context.Context, gameID string) (game.Game, bool, error) {
	builder := qb.Select("*").From("games").
		Where(qb.Eq("id", gameID)).
		Limit(1)
	if r.lockRows {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *GameRepository) GetByGroupDate(ctx context.Context, groupID, date string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("group_id", groupID),
			qb.Expr("game_date = ?::date", date),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game by group date query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by group date: %w", err)
	}
	return gameFromRow(row), true, nil
}

// LockGroupDay takes a transaction-scoped advisory lock so two first arrivals
// cannot both create the day's game.
func (r *GameRepository) LockGroupDay(ctx context.Context, groupID, date string) error {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, groupID+"/"+date); err != nil {
		return fmt.Errorf("advisory lock group day: %w", err)
	}
	return nil
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	query, args, err := qb.InsertModel("games", gameToRow(g))
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "insert game")
	}
	return nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	query, args, err := qb.UpdateModel("games", "id", gameToRow(g))
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "update game")
	}
	return nil
}

func (r *GameRepository) ListRunningTimerIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("id").From("games").
		Where(
			qb.Eq("status", game.StatusInProgress),
			qb.Expr("timer_running"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list running timers query: %w", err)
	}

	var ids []string
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list running timers: %w", err)
	}
	return ids, nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:        row.ID,
		GroupID:   row.GroupID,
		Date:      row.GameDate.Format(time.DateOnly),
		Status:    row.Status,
		RefereeID: row.RefereeID,
		Timer: game.Timer{
			DurationSeconds:  row.TimerDurationSeconds,
			RemainingSeconds: row.TimerRemainingSeconds,
			StartedAt:        timePtr(row.TimerStartedAt),
			Running:          row.TimerRunning,
		},
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func gameToRow(g game.Game) gameWriteModel {
	return gameWriteModel{
		ID:                    g.ID,
		GroupID:               g.GroupID,
		GameDate:              g.Date,
		Status:                g.Status,
		RefereeID:             g.RefereeID,
		TimerDurationSeconds:  g.Timer.DurationSeconds,
		TimerRemainingSeconds: g.Timer.RemainingSeconds,
		TimerStartedAt:        nullTime(g.Timer.StartedAt),
		TimerRunning:          g.Timer.Running,
		CreatedAt:             g.CreatedAt.UTC(),
		UpdatedAt:             g.UpdatedAt.UTC(),
	}
}
