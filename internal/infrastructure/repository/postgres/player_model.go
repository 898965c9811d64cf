package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          string         `db:"id"`
	GameID      string         `db:"game_id"`
	MemberID    string         `db:"member_id"`
	Name        string         `db:"name"`
	Status      string         `db:"status"`
	ArrivedAt   sql.NullTime   `db:"arrived_at"`
	TeamID      sql.NullString `db:"team_id"`
	Goals       int            `db:"goals"`
	Assists     int            `db:"assists"`
	YellowCards int            `db:"yellow_cards"`
	RedCards    int            `db:"red_cards"`
}

type manualParticipantTableModel struct {
	ID         string    `db:"id"`
	GameID     string    `db:"game_id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Phone      string    `db:"phone"`
	TeamNumber int       `db:"team_number"`
	CreatedAt  time.Time `db:"created_at"`
}
