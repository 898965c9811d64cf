package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	qb "github.com/riskibarqy/gameday-rotation/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db sqlx.ExtContext
}

func (r *PlayerRepository) ListByGame(ctx context.Context, gameID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("arrived_at NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by game query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by game: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetByMember(ctx context.Context, gameID, memberID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("game_id", gameID),
			qb.Eq("member_id", memberID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by member query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by member: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerToRow(p))
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "insert player")
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.UpdateModel("players", "id", playerToRow(p))
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "update player")
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:          row.ID,
		GameID:      row.GameID,
		MemberID:    row.MemberID,
		Name:        row.Name,
		Status:      player.Status(row.Status),
		ArrivedAt:   timePtr(row.ArrivedAt),
		TeamID:      row.TeamID.String,
		Goals:       row.Goals,
		Assists:     row.Assists,
		YellowCards: row.YellowCards,
		RedCards:    row.RedCards,
	}
}

func playerToRow(p player.Player) playerTableModel {
	return playerTableModel{
		ID:          p.ID,
		GameID:      p.GameID,
		MemberID:    p.MemberID,
		Name:        p.Name,
		Status:      string(p.Status),
		ArrivedAt:   nullTime(p.ArrivedAt),
		TeamID:      nullString(p.TeamID),
		Goals:       p.Goals,
		Assists:     p.Assists,
		YellowCards: p.YellowCards,
		RedCards:    p.RedCards,
	}
}

type ManualParticipantRepository struct {
	db sqlx.ExtContext
}

func (r *ManualParticipantRepository) ListByGame(ctx context.Context, gameID string) ([]player.ManualParticipant, error) {
	query, args, err := qb.Select("*").From("manual_participants").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select manual participants query: %w", err)
	}

	var rows []manualParticipantTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select manual participants: %w", err)
	}

	out := make([]player.ManualParticipant, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.ManualParticipant{
			ID:         row.ID,
			GameID:     row.GameID,
			Name:       row.Name,
			Email:      row.Email,
			Phone:      row.Phone,
			TeamNumber: row.TeamNumber,
			CreatedAt:  row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *ManualParticipantRepository) Create(ctx context.Context, m player.ManualParticipant) error {
	query, args, err := qb.InsertModel("manual_participants", manualParticipantToRow(m))
	if err != nil {
		return fmt.Errorf("build insert manual participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "insert manual participant")
	}
	return nil
}

func (r *ManualParticipantRepository) Update(ctx context.Context, m player.ManualParticipant) error {
	query, args, err := qb.UpdateModel("manual_participants", "id", manualParticipantToRow(m))
	if err != nil {
		return fmt.Errorf("build update manual participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "update manual participant")
	}
	return nil
}

func manualParticipantToRow(m player.ManualParticipant) manualParticipantTableModel {
	return manualParticipantTableModel{
		ID:         m.ID,
		GameID:     m.GameID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		TeamNumber: m.TeamNumber,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}
