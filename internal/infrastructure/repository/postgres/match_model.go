package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID               string         `db:"id"`
	GameID           string         `db:"game_id"`
	Sequence         int            `db:"sequence"`
	TeamAID          string         `db:"team_a_id"`
	TeamBID          string         `db:"team_b_id"`
	ScoreA           int            `db:"score_a"`
	ScoreB           int            `db:"score_b"`
	Status           string         `db:"status"`
	WinnerID         string         `db:"winner_id"`
	IsDraw           bool           `db:"is_draw"`
	DrawType         string         `db:"draw_type"`
	RequiresCoinToss bool           `db:"requires_coin_toss"`
	CoinTossType     string         `db:"coin_toss_type"`
	CoinToss         sql.NullString `db:"coin_toss"`
	RefereeID        string         `db:"referee_id"`
	AutoCompleted    bool           `db:"auto_completed"`
	StartedAt        sql.NullTime   `db:"started_at"`
	CompletedAt      sql.NullTime   `db:"completed_at"`
	CreatedAt        time.Time      `db:"created_at"`
}
