package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PlayerStore keeps balances in the players table. Credits are a single upsert so
// concurrent settlements never lose an increment.
type PlayerStore struct {
	pool *pgxpool.Pool
}

func NewPlayerStore(pool *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{pool: pool}
}

func (s *PlayerStore) CreditBalance(ctx context.Context, playerID string, amount int64) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO players (id, balance) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET balance = players.balance + EXCLUDED.balance`, playerID, amount)
	if err != nil {
		return fmt.Errorf("credit player %s: %w", playerID, err)
	}
	return nil
}

func (s *PlayerStore) Balance(ctx context.Context, playerID string) (int64, error) {
	var balance int64
	err := s.pool.QueryRow(ctx, `SELECT balance FROM players WHERE id=$1`, playerID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load balance: %w", err)
	}
	return balance, nil
}
