package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one row of the player leaderboard
type LeaderboardEntry struct {
	PlayerID      uuid.UUID
	Name          string
	Team          string
	TotalMatches  int
	Wins          int
	WinRate       float64
	TotalSmashes  int
	TotalSpikes   int
	TotalSaves    int
	TotalPoints   int
	TotalEarnings decimal.Decimal
}

// TeamStanding aggregates match results per team label
type TeamStanding struct {
	Team          string
	TotalMatches  int
	Wins          int
	Losses        int
	WinRate       float64
	TotalEarnings decimal.Decimal
	PlayerCount   int
}

// PlayerAggregates holds the raw per-player sums the dashboard is built from
type PlayerAggregates struct {
	TotalMatches  int
	Wins          int
	TotalSmashes  int
	TotalSpikes   int
	TotalSaves    int
	TotalEarnings decimal.Decimal
}

// PlayerSummary is the per-player dashboard view
type PlayerSummary struct {
	Player *Player
	PlayerAggregates
	WinRate float64
}

// PlayerMatchEntry is one row of a player's match history
type PlayerMatchEntry struct {
	Match    *Match
	Role     string
	Smashes  int
	Spikes   int
	Saves    int
	IsWinner bool
	Earned   *decimal.Decimal
}

// ClubStats aggregates club-wide match figures
type ClubStats struct {
	TotalMatches       int
	TotalStakes        decimal.Decimal
	AverageStake       decimal.Decimal
	UniqueWinningTeams int
	FirstMatchDate     *time.Time
	LatestMatchDate    *time.Time
}
