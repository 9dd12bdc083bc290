package repository

import (
	"context"
	"fmt"

	"volleybank/database"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
)

// LedgerRepository implements the read-only aggregation queries behind
// leaderboards and dashboards. Win/loss attribution always uses the team
// captured on the participation row, never the player's current team.
type LedgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository on the pool
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

func newLedgerRepository(tx Queryable) interfaces.LedgerRepository {
	return &LedgerRepository{q: tx}
}

// orderings maps the interfaces.LeaderboardOrderings keys to ORDER BY
// clauses. Keys are checked by the ledger service before they reach this
// query.
var orderings = map[string]string{
	interfaces.OrderByTotalEarnings: "total_earnings DESC",
	interfaces.OrderByTotalPoints:   "total_points DESC",
	interfaces.OrderByWinRate:       "win_rate DESC, total_matches DESC",
}

// GetLeaderboard returns per-player aggregates ordered by the given column
func (r *LedgerRepository) GetLeaderboard(ctx context.Context, orderBy string, limit int) ([]*entities.LeaderboardEntry, error) {
	orderClause, ok := orderings[orderBy]
	if !ok {
		return nil, fmt.Errorf("unknown leaderboard ordering %q", orderBy)
	}

	query := fmt.Sprintf(`
		SELECT
			p.id,
			p.name,
			COALESCE(p.team, ''),
			COUNT(DISTINCT mp.match_id) AS total_matches,
			COALESCE(SUM(CASE WHEN m.winning_team = mp.team THEN 1 ELSE 0 END), 0) AS wins,
			CASE
				WHEN COUNT(DISTINCT mp.match_id) > 0
				THEN ROUND(SUM(CASE WHEN m.winning_team = mp.team THEN 1 ELSE 0 END) * 100.0 / COUNT(DISTINCT mp.match_id), 2)
				ELSE 0
			END::float8 AS win_rate,
			COALESCE(SUM(mp.smashes), 0),
			COALESCE(SUM(mp.spikes), 0),
			COALESCE(SUM(mp.saves), 0),
			COALESCE(SUM(mp.smashes + mp.spikes + mp.saves), 0) AS total_points,
			COALESCE(SUM(e.amount), 0)::text AS total_earnings
		FROM players p
		JOIN match_participants mp ON mp.player_id = p.id
		JOIN matches m ON m.id = mp.match_id
		LEFT JOIN earnings e ON e.match_id = mp.match_id AND e.player_id = mp.player_id
		WHERE p.role = 'player'
		GROUP BY p.id, p.name, p.team
		HAVING COUNT(DISTINCT mp.match_id) > 0
		ORDER BY %s
		LIMIT $1
	`, orderClause)

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		var entry entities.LeaderboardEntry
		var earningsStr string
		err := rows.Scan(
			&entry.PlayerID, &entry.Name, &entry.Team,
			&entry.TotalMatches, &entry.Wins, &entry.WinRate,
			&entry.TotalSmashes, &entry.TotalSpikes, &entry.TotalSaves,
			&entry.TotalPoints, &earningsStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if entry.TotalEarnings, err = parseAmount(earningsStr); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}
	return entries, nil
}

// GetTeamStandings returns per-team aggregates
func (r *LedgerRepository) GetTeamStandings(ctx context.Context) ([]*entities.TeamStanding, error) {
	query := `
		SELECT
			mp.team,
			COUNT(DISTINCT mp.match_id) AS total_matches,
			COUNT(DISTINCT CASE WHEN m.winning_team = mp.team THEN mp.match_id END) AS wins,
			COALESCE(SUM(e.amount), 0)::text AS total_earnings,
			COUNT(DISTINCT mp.player_id) AS player_count
		FROM match_participants mp
		JOIN matches m ON m.id = mp.match_id
		LEFT JOIN earnings e ON e.match_id = mp.match_id AND e.player_id = mp.player_id
		GROUP BY mp.team
		ORDER BY wins DESC, total_matches DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team standings: %w", err)
	}
	defer rows.Close()

	var standings []*entities.TeamStanding
	for rows.Next() {
		var s entities.TeamStanding
		var earningsStr string
		if err := rows.Scan(&s.Team, &s.TotalMatches, &s.Wins, &earningsStr, &s.PlayerCount); err != nil {
			return nil, fmt.Errorf("failed to scan team standing: %w", err)
		}
		if s.TotalEarnings, err = parseAmount(earningsStr); err != nil {
			return nil, err
		}
		s.Losses = s.TotalMatches - s.Wins
		if s.TotalMatches > 0 {
			s.WinRate = float64(s.Wins) / float64(s.TotalMatches) * 100
		}
		standings = append(standings, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team standings: %w", err)
	}
	return standings, nil
}

// GetPlayerAggregates returns the summed figures for one player
func (r *LedgerRepository) GetPlayerAggregates(ctx context.Context, playerID uuid.UUID) (*entities.PlayerAggregates, error) {
	query := `
		SELECT
			COUNT(DISTINCT mp.match_id),
			COALESCE(SUM(CASE WHEN m.winning_team = mp.team THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(mp.smashes), 0),
			COALESCE(SUM(mp.spikes), 0),
			COALESCE(SUM(mp.saves), 0),
			(SELECT COALESCE(SUM(amount), 0) FROM earnings WHERE player_id = $1)::text
		FROM match_participants mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.player_id = $1
	`

	var agg entities.PlayerAggregates
	var earningsStr string
	err := r.q.QueryRow(ctx, query, playerID).Scan(
		&agg.TotalMatches, &agg.Wins,
		&agg.TotalSmashes, &agg.TotalSpikes, &agg.TotalSaves,
		&earningsStr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregates for player %s: %w", playerID, err)
	}
	if agg.TotalEarnings, err = parseAmount(earningsStr); err != nil {
		return nil, err
	}
	return &agg, nil
}

// GetPlayerMatches returns a player's match history, newest first
func (r *LedgerRepository) GetPlayerMatches(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*entities.PlayerMatchEntry, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM match_participants WHERE player_id = $1`
	if err := r.q.QueryRow(ctx, countQuery, playerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count matches for player %s: %w", playerID, err)
	}

	query := `
		SELECT
			m.id, m.date, m.winning_team, m.stake_amount::text, m.created_by, m.created_at, m.updated_at,
			mp.role, mp.smashes, mp.spikes, mp.saves,
			(m.winning_team = mp.team) AS is_winner,
			e.amount::text
		FROM matches m
		JOIN match_participants mp ON mp.match_id = m.id
		LEFT JOIN earnings e ON e.match_id = m.id AND e.player_id = mp.player_id
		WHERE mp.player_id = $1
		ORDER BY m.date DESC, m.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, playerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get matches for player %s: %w", playerID, err)
	}
	defer rows.Close()

	var entries []*entities.PlayerMatchEntry
	for rows.Next() {
		var entry entities.PlayerMatchEntry
		var match entities.Match
		var stakeStr string
		var amountStr *string
		err := rows.Scan(
			&match.ID, &match.Date, &match.WinningTeam, &stakeStr, &match.CreatedBy, &match.CreatedAt, &match.UpdatedAt,
			&entry.Role, &entry.Smashes, &entry.Spikes, &entry.Saves,
			&entry.IsWinner,
			&amountStr,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan player match: %w", err)
		}
		if match.StakeAmount, err = parseAmount(stakeStr); err != nil {
			return nil, 0, err
		}
		if amountStr != nil {
			amount, err := parseAmount(*amountStr)
			if err != nil {
				return nil, 0, err
			}
			entry.Earned = &amount
		}
		entry.Match = &match
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate player matches: %w", err)
	}
	return entries, total, nil
}
