package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID                    string       `db:"id"`
	GroupID               string       `db:"group_id"`
	GameDate              time.Time    `db:"game_date"`
	Status                string       `db:"status"`
	RefereeID             string       `db:"referee_id"`
	TimerDurationSeconds  int          `db:"timer_duration_seconds"`
	TimerRemainingSeconds int          `db:"timer_remaining_seconds"`
	TimerStartedAt        sql.NullTime `db:"timer_started_at"`
	TimerRunning          bool         `db:"timer_running"`
	CreatedAt             time.Time    `db:"created_at"`
	UpdatedAt             time.Time    `db:"updated_at"`
}

type gameWriteModel struct {
	ID                    string       `db:"id"`
	GroupID               string       `db:"group_id"`
	GameDate              string       `db:"game_date"`
	Status                string       `db:"status"`
	RefereeID             string       `db:"referee_id"`
	TimerDurationSeconds  int          `db:"timer_duration_seconds"`
	TimerRemainingSeconds int          `db:"timer_remaining_seconds"`
	TimerStartedAt        sql.NullTime `db:"timer_started_at"`
	TimerRunning          bool         `db:"timer_running"`
	CreatedAt             time.Time    `db:"created_at"`
	UpdatedAt             time.Time    `db:"updated_at"`
}
