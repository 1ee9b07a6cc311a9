package database

import (
	"context"
	"errors"
)

var (
	ErrLeftoverNotFound = errors.New("leftover not found")
)

// ListLeftovers returns every reported leftover keyed by ingredient
func (db *DB) ListLeftovers(ctx context.Context) (map[string]float64, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT ingredient_key, quantity
		FROM leftovers
		ORDER BY ingredient_key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leftovers := make(map[string]float64)
	for rows.Next() {
		var key string
		var qty float64
		if err := rows.Scan(&key, &qty); err != nil {
			return nil, err
		}
		leftovers[key] = qty
	}

	return leftovers, rows.Err()
}

// UpsertLeftover stores a reported leftover quantity
func (db *DB) UpsertLeftover(ctx context.Context, key string, qty float64) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO leftovers (ingredient_key, quantity, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (ingredient_key) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, key, qty)
	return err
}

// DeleteLeftover unsets a leftover
func (db *DB) DeleteLeftover(ctx context.Context, key string) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM leftovers WHERE ingredient_key = $1`, key)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrLeftoverNotFound
	}

	return nil
}

// DeleteAllLeftovers unsets every leftover
func (db *DB) DeleteAllLeftovers(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM leftovers`)
	return err
}
