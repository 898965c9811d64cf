package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	qb "github.com/riskibarqy/gameday-rotation/internal/platform/querybuilder"
)

type MatchRepository struct {
	db sqlx.ExtContext
}

func (r *MatchRepository) ListByGame(ctx context.Context, gameID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by game query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by game: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	row, err := matchToRow(m)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("matches", row)
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "insert match")
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	row, err := matchToRow(m)
	if err != nil {
		return err
	}
	query, args, err := qb.UpdateModel("matches", "id", row)
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err, "update match")
	}
	return nil
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	out := match.Match{
		ID:               row.ID,
		GameID:           row.GameID,
		Sequence:         row.Sequence,
		TeamAID:          row.TeamAID,
		TeamBID:          row.TeamBID,
		ScoreA:           row.ScoreA,
		ScoreB:           row.ScoreB,
		Status:           row.Status,
		WinnerID:         row.WinnerID,
		IsDraw:           row.IsDraw,
		DrawType:         row.DrawType,
		RequiresCoinToss: row.RequiresCoinToss,
		CoinTossType:     match.CoinTossType(row.CoinTossType),
		RefereeID:        row.RefereeID,
		AutoCompleted:    row.AutoCompleted,
		StartedAt:        timePtr(row.StartedAt),
		CompletedAt:      timePtr(row.CompletedAt),
		CreatedAt:        row.CreatedAt.UTC(),
	}
	if row.CoinToss.Valid && row.CoinToss.String != "" && row.CoinToss.String != "null" {
		var toss match.CoinToss
		if err := jsoniter.UnmarshalFromString(row.CoinToss.String, &toss); err != nil {
			return match.Match{}, fmt.Errorf("decode coin toss for match %s: %w", row.ID, err)
		}
		out.CoinToss = &toss
	}
	return out, nil
}

func matchToRow(m match.Match) (matchTableModel, error) {
	row := matchTableModel{
		ID:               m.ID,
		GameID:           m.GameID,
		Sequence:         m.Sequence,
		TeamAID:          m.TeamAID,
		TeamBID:          m.TeamBID,
		ScoreA:           m.ScoreA,
		ScoreB:           m.ScoreB,
		Status:           m.Status,
		WinnerID:         m.WinnerID,
		IsDraw:           m.IsDraw,
		DrawType:         m.DrawType,
		RequiresCoinToss: m.RequiresCoinToss,
		CoinTossType:     string(m.CoinTossType),
		RefereeID:        m.RefereeID,
		AutoCompleted:    m.AutoCompleted,
		StartedAt:        nullTime(m.StartedAt),
		CompletedAt:      nullTime(m.CompletedAt),
		CreatedAt:        m.CreatedAt.UTC(),
	}
	if m.CoinToss != nil {
		raw, err := jsoniter.MarshalToString(m.CoinToss)
		if err != nil {
			return matchTableModel{}, fmt.Errorf("encode coin toss for match %s: %w", m.ID, err)
		}
		row.CoinToss = nullString(raw)
	}
	return row, nil
}
