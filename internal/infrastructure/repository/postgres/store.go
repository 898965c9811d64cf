package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

// Store runs game-day transactions on Postgres. Repositories built inside
// WithinTx share one *sqlx.Tx; GameRepository.Get takes the row lock that
// serialises every operation on a game.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos usecase.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin game-day tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game-day tx: %w", err)
	}
	return nil
}

// Games reads outside any transaction; Get does not lock here.
func (s *Store) Games() game.Repository {
	return &GameRepository{db: s.db, lockRows: false}
}

func repositoriesFor(tx *sqlx.Tx) usecase.Repositories {
	return usecase.Repositories{
		Games:   &GameRepository{db: tx, lockRows: true},
		Teams:   &TeamRepository{db: tx},
		Players: &PlayerRepository{db: tx},
		Manual:  &ManualParticipantRepository{db: tx},
		Matches: &MatchRepository{db: tx},
	}
}
