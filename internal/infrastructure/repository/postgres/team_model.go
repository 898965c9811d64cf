package postgres

import "time"

type teamTableModel struct {
	ID        string    `db:"id"`
	GameID    string    `db:"game_id"`
	Name      string    `db:"name"`
	Number    int       `db:"team_number"`
	CaptainID string    `db:"captain_id"`
	Goals     int       `db:"goals"`
	CreatedAt time.Time `db:"created_at"`
}
