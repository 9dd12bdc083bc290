package services

import (
	"context"
	"fmt"

	"volleybank/domain/entities"
	"volleybank/domain/interfaces"

	"github.com/google/uuid"
)

// calculateWinRate calculates win percentage from wins and total matches
func calculateWinRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

type ledgerService struct {
	playerRepo interfaces.PlayerRepository
	ledgerRepo interfaces.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	playerRepo interfaces.PlayerRepository,
	ledgerRepo interfaces.LedgerRepository,
) interfaces.LedgerService {
	return &ledgerService{
		playerRepo: playerRepo,
		ledgerRepo: ledgerRepo,
	}
}

// GetLeaderboard returns the player leaderboard ordered by the given column
func (s *ledgerService) GetLeaderboard(ctx context.Context, orderBy string, limit int) ([]*entities.LeaderboardEntry, error) {
	if orderBy == "" {
		orderBy = interfaces.OrderByTotalEarnings
	}
	if !validLeaderboardOrdering(orderBy) {
		return nil, &entities.ValidationError{Field: "orderBy", Message: fmt.Sprintf("unknown ordering %q", orderBy)}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, err := s.ledgerRepo.GetLeaderboard(ctx, orderBy, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return entries, nil
}

func validLeaderboardOrdering(orderBy string) bool {
	for _, key := range interfaces.LeaderboardOrderings {
		if key == orderBy {
			return true
		}
	}
	return false
}

// GetTeamStandings returns per-team aggregates
func (s *ledgerService) GetTeamStandings(ctx context.Context) ([]*entities.TeamStanding, error) {
	standings, err := s.ledgerRepo.GetTeamStandings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get team standings: %w", err)
	}
	return standings, nil
}

// GetPlayerSummary returns the dashboard view for one player
func (s *ledgerService) GetPlayerSummary(ctx context.Context, playerID uuid.UUID) (*entities.PlayerSummary, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, &entities.PlayerNotFoundError{PlayerID: playerID}
	}

	aggregates, err := s.ledgerRepo.GetPlayerAggregates(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get aggregates for player %s: %w", playerID, err)
	}

	return &entities.PlayerSummary{
		Player:           player,
		PlayerAggregates: *aggregates,
		WinRate:          calculateWinRate(aggregates.Wins, aggregates.TotalMatches),
	}, nil
}

// GetPlayerMatches returns a player's match history with pagination
func (s *ledgerService) GetPlayerMatches(ctx context.Context, playerID uuid.UUID, page, limit int) ([]*entities.PlayerMatchEntry, int64, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, 0, &entities.PlayerNotFoundError{PlayerID: playerID}
	}

	page, limit = sanitizePagination(page, limit)
	entries, total, err := s.ledgerRepo.GetPlayerMatches(ctx, playerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get matches for player %s: %w", playerID, err)
	}
	return entries, total, nil
}
