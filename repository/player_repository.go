package repository

import (
	"context"
	"fmt"

	"volleybank/database"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlayerRepository implements the PlayerRepository interface
type PlayerRepository struct {
	q Queryable
}

// NewPlayerRepository creates a new player repository on the pool
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

func newPlayerRepository(tx Queryable) interfaces.PlayerRepository {
	return &PlayerRepository{q: tx}
}

const playerColumns = `id, name, email, role, COALESCE(team, ''), created_at, updated_at`

func scanPlayer(row pgx.Row) (*entities.Player, error) {
	var p entities.Player
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &p.Team, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a player by id, nil when not found
func (r *PlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)

	player, err := scanPlayer(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return player, nil
}

// GetByEmail retrieves a player by email, nil when not found
func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*entities.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE email = $1`, playerColumns)

	player, err := scanPlayer(r.q.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by email %s: %w", email, err)
	}
	return player, nil
}

// Create persists a new player
func (r *PlayerRepository) Create(ctx context.Context, player *entities.Player) error {
	query := `
		INSERT INTO players (id, name, email, role, team)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, player.ID, player.Name, player.Email, player.Role, player.Team).
		Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player %s: %w", player.ID, err)
	}
	return nil
}

// Update persists name/team changes for a player
func (r *PlayerRepository) Update(ctx context.Context, player *entities.Player) error {
	query := `
		UPDATE players
		SET name = $2, team = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, player.ID, player.Name, player.Team).Scan(&player.UpdatedAt)
	if err == pgx.ErrNoRows {
		return &entities.PlayerNotFoundError{PlayerID: player.ID}
	}
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", player.ID, err)
	}
	return nil
}

// Delete removes a player
func (r *PlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &entities.PlayerNotFoundError{PlayerID: id}
	}
	return nil
}

// List returns all players ordered by name
func (r *PlayerRepository) List(ctx context.Context) ([]*entities.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players ORDER BY name`, playerColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// ListByTeam returns all players on the given team
func (r *PlayerRepository) ListByTeam(ctx context.Context, team string) ([]*entities.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE team = $1 ORDER BY name`, playerColumns)

	rows, err := r.q.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %q: %w", team, err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func collectPlayers(rows pgx.Rows) ([]*entities.Player, error) {
	var players []*entities.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}
