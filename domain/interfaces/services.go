package interfaces

import (
	"context"
	"time"

	"volleybank/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParticipantInput is one roster entry of a match being recorded
type ParticipantInput struct {
	PlayerID uuid.UUID
	Role     string
	Smashes  int
	Spikes   int
	Saves    int
}

// RecordMatchParams carries everything needed to record a match
type RecordMatchParams struct {
	Date         time.Time
	WinningTeam  string
	StakeAmount  decimal.Decimal
	CreatedBy    *uuid.UUID
	Participants []ParticipantInput
}

// MatchUpdateParams carries admin corrections to a recorded match
type MatchUpdateParams struct {
	WinningTeam *string
	StakeAmount *decimal.Decimal
}

// MatchService defines match recording and administration
type MatchService interface {
	// RecordMatch validates the roster, persists the match with its
	// participations and distributes the stake among the winners, all in
	// the enclosing unit of work
	RecordMatch(ctx context.Context, params RecordMatchParams) (*entities.MatchDetail, error)

	// GetMatch returns a match with its participant and earnings breakdown
	GetMatch(ctx context.Context, id uuid.UUID) (*entities.MatchDetail, error)

	// ListMatches returns matches matching the filter with pagination
	ListMatches(ctx context.Context, filter MatchFilter, page, limit int) ([]*entities.Match, int64, error)

	// GetRecentMatches returns the most recently played matches
	GetRecentMatches(ctx context.Context, limit int) ([]*entities.Match, error)

	// UpdateMatch corrects winning team and/or stake and redistributes the
	// earnings from the captured participation teams
	UpdateMatch(ctx context.Context, id uuid.UUID, params MatchUpdateParams) (*entities.MatchDetail, error)

	// UpdateParticipantStats corrects one participant's raw counters
	UpdateParticipantStats(ctx context.Context, matchID, playerID uuid.UUID, smashes, spikes, saves int) error

	// DeleteMatch removes a match with its participations and earnings
	DeleteMatch(ctx context.Context, id uuid.UUID) error

	// GetClubStats returns club-wide match aggregates
	GetClubStats(ctx context.Context) (*entities.ClubStats, error)
}

// LedgerService defines the read-only aggregation views
type LedgerService interface {
	// GetLeaderboard returns the player leaderboard ordered by the given
	// column (total_earnings, total_points or win_rate)
	GetLeaderboard(ctx context.Context, orderBy string, limit int) ([]*entities.LeaderboardEntry, error)

	// GetTeamStandings returns per-team aggregates
	GetTeamStandings(ctx context.Context) ([]*entities.TeamStanding, error)

	// GetPlayerSummary returns the dashboard view for one player
	GetPlayerSummary(ctx context.Context, playerID uuid.UUID) (*entities.PlayerSummary, error)

	// GetPlayerMatches returns a player's match history with pagination
	GetPlayerMatches(ctx context.Context, playerID uuid.UUID, page, limit int) ([]*entities.PlayerMatchEntry, int64, error)
}

// PlayerUpdateParams carries mutable player attributes
type PlayerUpdateParams struct {
	Name *string
	Team *string
}

// PlayerService defines player directory operations
type PlayerService interface {
	// CreatePlayer registers a new club member
	CreatePlayer(ctx context.Context, name, email, team string, role entities.Role) (*entities.Player, error)

	// GetPlayer returns a player by id
	GetPlayer(ctx context.Context, id uuid.UUID) (*entities.Player, error)

	// ListPlayers returns all players, optionally restricted to one team
	ListPlayers(ctx context.Context, team string) ([]*entities.Player, error)

	// UpdatePlayer changes a player's name and/or team
	UpdatePlayer(ctx context.Context, id uuid.UUID, params PlayerUpdateParams) (*entities.Player, error)

	// DeletePlayer removes a player
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}
