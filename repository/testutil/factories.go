package testutil

import (
	"fmt"
	"time"

	"volleybank/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTestPlayer creates a player entity with default values
func CreateTestPlayer(name, team string) *entities.Player {
	id := uuid.New()
	return &entities.Player{
		ID:    id,
		Name:  name,
		Email: fmt.Sprintf("%s@test.local", id),
		Role:  entities.RolePlayer,
		Team:  team,
	}
}

// CreateTestAdmin creates an admin entity
func CreateTestAdmin(name string) *entities.Player {
	admin := CreateTestPlayer(name, "")
	admin.Role = entities.RoleAdmin
	return admin
}

// CreateTestMatch creates a match entity with default values
func CreateTestMatch(winningTeam, stake string) *entities.Match {
	return &entities.Match{
		ID:          uuid.New(),
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		WinningTeam: winningTeam,
		StakeAmount: decimal.RequireFromString(stake),
	}
}

// CreateTestParticipation creates a participation entity linking a player to
// a match, capturing the given team
func CreateTestParticipation(matchID uuid.UUID, player *entities.Player) *entities.Participation {
	return &entities.Participation{
		MatchID:  matchID,
		PlayerID: player.ID,
		Team:     player.Team,
		Role:     "Player",
		Smashes:  3,
		Spikes:   2,
		Saves:    1,
	}
}
