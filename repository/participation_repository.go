package repository

import (
	"context"
	"fmt"

	"volleybank/database"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
)

// ParticipationRepository implements the ParticipationRepository interface
type ParticipationRepository struct {
	q Queryable
}

// NewParticipationRepository creates a new participation repository on the pool
func NewParticipationRepository(db *database.DB) *ParticipationRepository {
	return &ParticipationRepository{q: db.Pool}
}

func newParticipationRepository(tx Queryable) interfaces.ParticipationRepository {
	return &ParticipationRepository{q: tx}
}

// Create persists one participation row
func (r *ParticipationRepository) Create(ctx context.Context, p *entities.Participation) error {
	query := `
		INSERT INTO match_participants (match_id, player_id, team, role, smashes, spikes, saves)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		p.MatchID, p.PlayerID, p.Team, p.Role, p.Smashes, p.Spikes, p.Saves,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create participation for player %s in match %s: %w", p.PlayerID, p.MatchID, err)
	}
	return nil
}

// GetByMatch returns all participations for a match joined with player
// identity and any earning, ordered by player name
func (r *ParticipationRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entities.ParticipantDetail, error) {
	query := `
		SELECT
			mp.id, mp.match_id, mp.player_id, mp.team, mp.role,
			mp.smashes, mp.spikes, mp.saves, mp.created_at,
			p.name, COALESCE(p.team, ''),
			e.amount::text
		FROM match_participants mp
		JOIN players p ON p.id = mp.player_id
		LEFT JOIN earnings e ON e.match_id = mp.match_id AND e.player_id = mp.player_id
		WHERE mp.match_id = $1
		ORDER BY p.name
	`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var details []*entities.ParticipantDetail
	for rows.Next() {
		var d entities.ParticipantDetail
		var amountStr *string
		err := rows.Scan(
			&d.ID, &d.MatchID, &d.PlayerID, &d.Team, &d.Role,
			&d.Smashes, &d.Spikes, &d.Saves, &d.CreatedAt,
			&d.PlayerName, &d.PlayerTeam,
			&amountStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if amountStr != nil {
			amount, err := parseAmount(*amountStr)
			if err != nil {
				return nil, err
			}
			d.Earned = &amount
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return details, nil
}

// UpdateStats corrects the raw counters for one participant
func (r *ParticipationRepository) UpdateStats(ctx context.Context, matchID, playerID uuid.UUID, smashes, spikes, saves int) error {
	query := `
		UPDATE match_participants
		SET smashes = $3, spikes = $4, saves = $5
		WHERE match_id = $1 AND player_id = $2
	`

	tag, err := r.q.Exec(ctx, query, matchID, playerID, smashes, spikes, saves)
	if err != nil {
		return fmt.Errorf("failed to update stats for player %s in match %s: %w", playerID, matchID, err)
	}
	if tag.RowsAffected() == 0 {
		return &entities.PlayerNotFoundError{PlayerID: playerID}
	}
	return nil
}
