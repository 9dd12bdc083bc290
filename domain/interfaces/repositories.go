package interfaces

import (
	"context"
	"time"

	"volleybank/domain/entities"
	"volleybank/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlayerRepository defines the interface for player directory access
type PlayerRepository interface {
	// GetByID retrieves a player by id, nil when not found
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Player, error)

	// GetByEmail retrieves a player by email, nil when not found
	GetByEmail(ctx context.Context, email string) (*entities.Player, error)

	// Create persists a new player
	Create(ctx context.Context, player *entities.Player) error

	// Update persists name/team changes for a player
	Update(ctx context.Context, player *entities.Player) error

	// Delete removes a player
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all players ordered by name
	List(ctx context.Context) ([]*entities.Player, error)

	// ListByTeam returns all players on the given team
	ListByTeam(ctx context.Context, team string) ([]*entities.Player, error)
}

// MatchFilter narrows match listings
type MatchFilter struct {
	WinningTeam string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// Create persists a new match row
	Create(ctx context.Context, match *entities.Match) error

	// GetByID retrieves a match by id, nil when not found
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Match, error)

	// List returns matches matching the filter, newest first, with the
	// total count for pagination
	List(ctx context.Context, filter MatchFilter, limit, offset int) ([]*entities.Match, int64, error)

	// GetRecent returns the most recently played matches
	GetRecent(ctx context.Context, limit int) ([]*entities.Match, error)

	// Update persists winning team / stake corrections
	Update(ctx context.Context, match *entities.Match) error

	// Delete removes a match; participations and earnings cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// GetClubStats returns club-wide match aggregates
	GetClubStats(ctx context.Context) (*entities.ClubStats, error)
}

// ParticipationRepository defines the interface for match roster access
type ParticipationRepository interface {
	// Create persists one participation row
	Create(ctx context.Context, participation *entities.Participation) error

	// GetByMatch returns all participations for a match joined with player
	// identity and any earning, ordered by player name
	GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entities.ParticipantDetail, error)

	// UpdateStats corrects the raw counters for one participant
	UpdateStats(ctx context.Context, matchID, playerID uuid.UUID, smashes, spikes, saves int) error
}

// EarningRepository defines the interface for earnings access.
// Earnings are written only through the distribution path, never directly
// by transport handlers.
type EarningRepository interface {
	// Create persists one earning row
	Create(ctx context.Context, earning *entities.Earning) error

	// GetByMatch returns all earnings for a match
	GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entities.Earning, error)

	// DeleteByMatch removes all earnings for a match (admin correction path)
	DeleteByMatch(ctx context.Context, matchID uuid.UUID) error

	// GetTotalByPlayer returns the summed earnings for one player
	GetTotalByPlayer(ctx context.Context, playerID uuid.UUID) (decimal.Decimal, error)
}

// Order keys accepted by LedgerRepository.GetLeaderboard. Both the service
// validation and the repository's ORDER BY mapping key off these.
const (
	OrderByTotalEarnings = "total_earnings"
	OrderByTotalPoints   = "total_points"
	OrderByWinRate       = "win_rate"
)

// LeaderboardOrderings lists every supported leaderboard order key
var LeaderboardOrderings = []string{OrderByTotalEarnings, OrderByTotalPoints, OrderByWinRate}

// LedgerRepository defines the read-only aggregation queries behind
// leaderboards and dashboards
type LedgerRepository interface {
	// GetLeaderboard returns per-player aggregates ordered by one of the
	// LeaderboardOrderings keys
	GetLeaderboard(ctx context.Context, orderBy string, limit int) ([]*entities.LeaderboardEntry, error)

	// GetTeamStandings returns per-team aggregates
	GetTeamStandings(ctx context.Context) ([]*entities.TeamStanding, error)

	// GetPlayerAggregates returns the summed figures for one player
	GetPlayerAggregates(ctx context.Context, playerID uuid.UUID) (*entities.PlayerAggregates, error)

	// GetPlayerMatches returns a player's match history, newest first,
	// with the total count for pagination
	GetPlayerMatches(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*entities.PlayerMatchEntry, int64, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to all repositories.
// All repository operations within a unit of work share one transaction.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	PlayerRepository() PlayerRepository
	MatchRepository() MatchRepository
	ParticipationRepository() ParticipationRepository
	EarningRepository() EarningRepository
	LedgerRepository() LedgerRepository

	// EventBus returns the transactional event publisher for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work bound to the shared pool
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
