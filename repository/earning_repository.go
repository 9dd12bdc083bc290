package repository

import (
	"context"
	"fmt"

	"volleybank/database"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EarningRepository implements the EarningRepository interface
type EarningRepository struct {
	q Queryable
}

// NewEarningRepository creates a new earning repository on the pool
func NewEarningRepository(db *database.DB) *EarningRepository {
	return &EarningRepository{q: db.Pool}
}

func newEarningRepository(tx Queryable) interfaces.EarningRepository {
	return &EarningRepository{q: tx}
}

// Create persists one earning row. The UNIQUE (match_id, player_id)
// constraint guarantees a player is credited at most once per match.
func (r *EarningRepository) Create(ctx context.Context, earning *entities.Earning) error {
	query := `
		INSERT INTO earnings (match_id, player_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		earning.MatchID, earning.PlayerID, earning.Amount.StringFixed(2),
	).Scan(&earning.ID, &earning.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create earning for player %s in match %s: %w", earning.PlayerID, earning.MatchID, err)
	}
	return nil
}

// GetByMatch returns all earnings for a match
func (r *EarningRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entities.Earning, error) {
	query := `
		SELECT id, match_id, player_id, amount::text, created_at
		FROM earnings
		WHERE match_id = $1
		ORDER BY player_id
	`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get earnings for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var earnings []*entities.Earning
	for rows.Next() {
		var e entities.Earning
		var amountStr string
		if err := rows.Scan(&e.ID, &e.MatchID, &e.PlayerID, &amountStr, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan earning: %w", err)
		}
		if e.Amount, err = parseAmount(amountStr); err != nil {
			return nil, err
		}
		earnings = append(earnings, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate earnings: %w", err)
	}
	return earnings, nil
}

// DeleteByMatch removes all earnings for a match (admin correction path)
func (r *EarningRepository) DeleteByMatch(ctx context.Context, matchID uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM earnings WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("failed to delete earnings for match %s: %w", matchID, err)
	}
	return nil
}

// GetTotalByPlayer returns the summed earnings for one player
func (r *EarningRepository) GetTotalByPlayer(ctx context.Context, playerID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0)::text FROM earnings WHERE player_id = $1`

	var totalStr string
	if err := r.q.QueryRow(ctx, query, playerID).Scan(&totalStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to total earnings for player %s: %w", playerID, err)
	}
	return parseAmount(totalStr)
}
