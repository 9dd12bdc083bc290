package services

import (
	"context"
	"testing"

	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_GetLeaderboard_DefaultOrdering(t *testing.T) {
	ctx := context.Background()
	playerRepo := new(MockPlayerRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := NewLedgerService(playerRepo, ledgerRepo)

	expected := []*entities.LeaderboardEntry{
		{PlayerID: uuid.New(), Name: "Ana", TotalEarnings: decimal.RequireFromString("120.00")},
	}
	ledgerRepo.On("GetLeaderboard", ctx, "total_earnings", 20).Return(expected, nil)

	entries, err := service.GetLeaderboard(ctx, "", 0)

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
	ledgerRepo.AssertExpectations(t)
}

func TestLedgerService_GetLeaderboard_AcceptsAllOrderingKeys(t *testing.T) {
	ctx := context.Background()

	for _, orderBy := range interfaces.LeaderboardOrderings {
		t.Run(orderBy, func(t *testing.T) {
			ledgerRepo := new(MockLedgerRepository)
			service := NewLedgerService(new(MockPlayerRepository), ledgerRepo)
			ledgerRepo.On("GetLeaderboard", ctx, orderBy, 20).Return([]*entities.LeaderboardEntry{}, nil)

			_, err := service.GetLeaderboard(ctx, orderBy, 20)

			require.NoError(t, err)
			ledgerRepo.AssertExpectations(t)
		})
	}
}

func TestLedgerService_GetLeaderboard_UnknownOrdering(t *testing.T) {
	ctx := context.Background()
	service := NewLedgerService(new(MockPlayerRepository), new(MockLedgerRepository))

	_, err := service.GetLeaderboard(ctx, "shoe_size", 10)

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "orderBy", validationErr.Field)
}

func TestLedgerService_GetPlayerSummary(t *testing.T) {
	ctx := context.Background()
	playerRepo := new(MockPlayerRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := NewLedgerService(playerRepo, ledgerRepo)

	player := &entities.Player{ID: uuid.New(), Name: "Bruno", Role: entities.RolePlayer, Team: "Team A"}
	playerRepo.On("GetByID", ctx, player.ID).Return(player, nil)
	ledgerRepo.On("GetPlayerAggregates", ctx, player.ID).Return(&entities.PlayerAggregates{
		TotalMatches:  10,
		Wins:          4,
		TotalEarnings: decimal.RequireFromString("85.50"),
	}, nil)

	summary, err := service.GetPlayerSummary(ctx, player.ID)

	require.NoError(t, err)
	assert.Equal(t, player, summary.Player)
	assert.Equal(t, 10, summary.TotalMatches)
	assert.InDelta(t, 40.0, summary.WinRate, 0.001)
}

func TestLedgerService_GetPlayerSummary_UnknownPlayer(t *testing.T) {
	ctx := context.Background()
	playerRepo := new(MockPlayerRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := NewLedgerService(playerRepo, ledgerRepo)

	playerID := uuid.New()
	playerRepo.On("GetByID", ctx, playerID).Return(nil, nil)

	_, err := service.GetPlayerSummary(ctx, playerID)

	var notFound *entities.PlayerNotFoundError
	require.ErrorAs(t, err, &notFound)
	ledgerRepo.AssertNotCalled(t, "GetPlayerAggregates", ctx, playerID)
}

func TestLedgerService_GetPlayerMatches_Pagination(t *testing.T) {
	ctx := context.Background()
	playerRepo := new(MockPlayerRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := NewLedgerService(playerRepo, ledgerRepo)

	player := &entities.Player{ID: uuid.New(), Name: "Carla", Role: entities.RolePlayer}
	playerRepo.On("GetByID", ctx, player.ID).Return(player, nil)

	// page 3 with limit 5 translates to offset 10
	ledgerRepo.On("GetPlayerMatches", ctx, player.ID, 5, 10).
		Return([]*entities.PlayerMatchEntry{}, int64(17), nil)

	_, total, err := service.GetPlayerMatches(ctx, player.ID, 3, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(17), total)
	ledgerRepo.AssertExpectations(t)
}

func TestCalculateWinRate(t *testing.T) {
	assert.Equal(t, 0.0, calculateWinRate(0, 0))
	assert.Equal(t, 50.0, calculateWinRate(1, 2))
	assert.Equal(t, 100.0, calculateWinRate(5, 5))
	assert.InDelta(t, 33.333, calculateWinRate(1, 3), 0.001)
}
