package repository

import (
	"context"
	"fmt"
	"strings"

	"volleybank/database"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MatchRepository implements the MatchRepository interface
type MatchRepository struct {
	q Queryable
}

// NewMatchRepository creates a new match repository on the pool
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

func newMatchRepository(tx Queryable) interfaces.MatchRepository {
	return &MatchRepository{q: tx}
}

const matchColumns = `id, date, winning_team, stake_amount::text, created_by, created_at, updated_at`

func scanMatch(row pgx.Row) (*entities.Match, error) {
	var m entities.Match
	var stakeStr string
	err := row.Scan(&m.ID, &m.Date, &m.WinningTeam, &stakeStr, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.StakeAmount, err = parseAmount(stakeStr)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persists a new match row
func (r *MatchRepository) Create(ctx context.Context, match *entities.Match) error {
	query := `
		INSERT INTO matches (id, date, winning_team, stake_amount, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		match.ID, match.Date, match.WinningTeam, match.StakeAmount.StringFixed(2), match.CreatedBy,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match %s: %w", match.ID, err)
	}
	return nil
}

// GetByID retrieves a match by id, nil when not found
func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id = $1`, matchColumns)

	match, err := scanMatch(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return match, nil
}

// List returns matches matching the filter, newest first, with the total count
func (r *MatchRepository) List(ctx context.Context, filter interfaces.MatchFilter, limit, offset int) ([]*entities.Match, int64, error) {
	var conditions []string
	var args []any

	if filter.WinningTeam != "" {
		args = append(args, filter.WinningTeam)
		conditions = append(conditions, fmt.Sprintf("winning_team = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM matches %s`, whereClause)
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM matches %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, matchColumns, whereClause, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches, err := collectMatches(rows)
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

// GetRecent returns the most recently played matches
func (r *MatchRepository) GetRecent(ctx context.Context, limit int) ([]*entities.Match, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM matches
		ORDER BY date DESC, created_at DESC
		LIMIT $1
	`, matchColumns)

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// Update persists winning team / stake corrections
func (r *MatchRepository) Update(ctx context.Context, match *entities.Match) error {
	query := `
		UPDATE matches
		SET winning_team = $2, stake_amount = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, match.ID, match.WinningTeam, match.StakeAmount.StringFixed(2)).
		Scan(&match.UpdatedAt)
	if err == pgx.ErrNoRows {
		return &entities.MatchNotFoundError{MatchID: match.ID}
	}
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", match.ID, err)
	}
	return nil
}

// Delete removes a match; participations and earnings cascade
func (r *MatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &entities.MatchNotFoundError{MatchID: id}
	}
	return nil
}

// GetClubStats returns club-wide match aggregates
func (r *MatchRepository) GetClubStats(ctx context.Context) (*entities.ClubStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(stake_amount), 0)::text,
			COALESCE(ROUND(AVG(stake_amount), 2), 0)::text,
			COUNT(DISTINCT winning_team),
			MIN(date),
			MAX(date)
		FROM matches
	`

	var stats entities.ClubStats
	var totalStr, avgStr string
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalMatches,
		&totalStr,
		&avgStr,
		&stats.UniqueWinningTeams,
		&stats.FirstMatchDate,
		&stats.LatestMatchDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get club stats: %w", err)
	}

	if stats.TotalStakes, err = parseAmount(totalStr); err != nil {
		return nil, err
	}
	if stats.AverageStake, err = parseAmount(avgStr); err != nil {
		return nil, err
	}
	return &stats, nil
}

func collectMatches(rows pgx.Rows) ([]*entities.Match, error) {
	var matches []*entities.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}
