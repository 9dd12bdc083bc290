package services

import (
	"context"
	"fmt"

	"volleybank/config"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"
	"volleybank/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type matchService struct {
	config            *config.Config
	matchRepo         interfaces.MatchRepository
	playerRepo        interfaces.PlayerRepository
	participationRepo interfaces.ParticipationRepository
	earningRepo       interfaces.EarningRepository
	distributor       *StakeDistributor
	eventPublisher    interfaces.EventPublisher
}

// NewMatchService creates a new match service
func NewMatchService(
	matchRepo interfaces.MatchRepository,
	playerRepo interfaces.PlayerRepository,
	participationRepo interfaces.ParticipationRepository,
	earningRepo interfaces.EarningRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.MatchService {
	return &matchService{
		config:            config.Get(),
		matchRepo:         matchRepo,
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		earningRepo:       earningRepo,
		distributor:       NewStakeDistributor(),
		eventPublisher:    eventPublisher,
	}
}

// RecordMatch validates the roster, persists the match with its participants
// and distributes the stake among the winners. All writes share the unit of
// work's transaction; any failure rolls back the whole call.
func (s *matchService) RecordMatch(ctx context.Context, params interfaces.RecordMatchParams) (*entities.MatchDetail, error) {
	if err := s.validateRecordParams(params); err != nil {
		return nil, err
	}

	// Resolve every roster entry against the player directory before any
	// write, capturing each player's current team on the participation row
	participations := make([]*entities.Participation, 0, len(params.Participants))
	for _, input := range params.Participants {
		player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up player %s: %w", input.PlayerID, err)
		}
		if player == nil {
			return nil, &entities.PlayerNotFoundError{PlayerID: input.PlayerID}
		}
		if !player.CanParticipate() {
			return nil, &entities.PlayerNotEligibleError{PlayerID: player.ID, Role: player.Role}
		}

		role := input.Role
		if role == "" {
			role = "Player"
		}
		participations = append(participations, &entities.Participation{
			PlayerID: player.ID,
			Team:     player.Team,
			Role:     role,
			Smashes:  input.Smashes,
			Spikes:   input.Spikes,
			Saves:    input.Saves,
		})
	}

	// Precondition: the declared winning team must be represented on the
	// roster, otherwise nothing is persisted
	winnerCount := 0
	for _, p := range participations {
		if p.IsWinner(params.WinningTeam) {
			winnerCount++
		}
	}
	if winnerCount == 0 {
		return nil, &entities.NoWinningParticipantsError{WinningTeam: params.WinningTeam}
	}

	match := &entities.Match{
		ID:          uuid.New(),
		Date:        params.Date,
		WinningTeam: params.WinningTeam,
		StakeAmount: params.StakeAmount,
		CreatedBy:   params.CreatedBy,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	for _, p := range participations {
		p.MatchID = match.ID
		if err := s.participationRepo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to add participant %s: %w", p.PlayerID, err)
		}
	}

	if err := s.distributeEarnings(ctx, match, participations); err != nil {
		return nil, err
	}

	s.eventPublisher.Publish(events.MatchRecordedEvent{
		MatchID:          match.ID,
		WinningTeam:      match.WinningTeam,
		StakeAmount:      match.StakeAmount,
		ParticipantCount: len(participations),
		WinnerCount:      winnerCount,
	})

	log.WithFields(log.Fields{
		"matchId":     match.ID,
		"winningTeam": match.WinningTeam,
		"stake":       match.StakeAmount.StringFixed(2),
		"winners":     winnerCount,
	}).Info("Match recorded")

	return s.buildMatchDetail(ctx, match)
}

// distributeEarnings splits the stake and writes one earning row per winner
func (s *matchService) distributeEarnings(ctx context.Context, match *entities.Match, participations []*entities.Participation) error {
	result, err := s.distributor.Distribute(match.StakeAmount, match.WinningTeam, participations)
	if err != nil {
		// The recorder precondition already rejected zero-winner rosters, so
		// this is an invariant violation rather than a recoverable failure
		return fmt.Errorf("earnings distribution invariant violated for match %s: %w", match.ID, err)
	}

	for _, winner := range result.Winners {
		earning := &entities.Earning{
			MatchID:  match.ID,
			PlayerID: winner.PlayerID,
			Amount:   result.Shares[winner.PlayerID],
		}
		if err := s.earningRepo.Create(ctx, earning); err != nil {
			return fmt.Errorf("failed to credit earning for player %s: %w", winner.PlayerID, err)
		}
	}

	return nil
}

// GetMatch returns a match with its participant and earnings breakdown
func (s *matchService) GetMatch(ctx context.Context, id uuid.UUID) (*entities.MatchDetail, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, &entities.MatchNotFoundError{MatchID: id}
	}
	return s.buildMatchDetail(ctx, match)
}

// ListMatches returns matches matching the filter with pagination
func (s *matchService) ListMatches(ctx context.Context, filter interfaces.MatchFilter, page, limit int) ([]*entities.Match, int64, error) {
	page, limit = sanitizePagination(page, limit)
	matches, total, err := s.matchRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, total, nil
}

// GetRecentMatches returns the most recently played matches
func (s *matchService) GetRecentMatches(ctx context.Context, limit int) ([]*entities.Match, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	matches, err := s.matchRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}
	return matches, nil
}

// UpdateMatch applies admin corrections to winning team and/or stake and
// redistributes the earnings from the captured participation teams so the
// money-conservation invariant holds after the correction.
func (s *matchService) UpdateMatch(ctx context.Context, id uuid.UUID, params interfaces.MatchUpdateParams) (*entities.MatchDetail, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, &entities.MatchNotFoundError{MatchID: id}
	}

	if params.WinningTeam != nil {
		if !s.config.IsKnownTeam(*params.WinningTeam) {
			return nil, &entities.ValidationError{Field: "winningTeam", Message: fmt.Sprintf("unknown team %q", *params.WinningTeam)}
		}
		match.WinningTeam = *params.WinningTeam
	}
	if params.StakeAmount != nil {
		if err := validateStake(*params.StakeAmount); err != nil {
			return nil, err
		}
		match.StakeAmount = *params.StakeAmount
	}

	details, err := s.participationRepo.GetByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	participations := make([]*entities.Participation, 0, len(details))
	winnerCount := 0
	for _, d := range details {
		p := d.Participation
		if p.IsWinner(match.WinningTeam) {
			winnerCount++
		}
		participations = append(participations, &p)
	}
	if winnerCount == 0 {
		return nil, &entities.NoWinningParticipantsError{WinningTeam: match.WinningTeam}
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	if err := s.earningRepo.DeleteByMatch(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to clear earnings: %w", err)
	}
	if err := s.distributeEarnings(ctx, match, participations); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"matchId":     match.ID,
		"winningTeam": match.WinningTeam,
		"stake":       match.StakeAmount.StringFixed(2),
	}).Info("Match corrected, earnings redistributed")

	return s.buildMatchDetail(ctx, match)
}

// UpdateParticipantStats corrects one participant's raw counters
func (s *matchService) UpdateParticipantStats(ctx context.Context, matchID, playerID uuid.UUID, smashes, spikes, saves int) error {
	if smashes < 0 || spikes < 0 || saves < 0 {
		return &entities.ValidationError{Field: "stats", Message: "stat counters cannot be negative"}
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return &entities.MatchNotFoundError{MatchID: matchID}
	}

	return s.participationRepo.UpdateStats(ctx, matchID, playerID, smashes, spikes, saves)
}

// DeleteMatch removes a match; participations and earnings cascade
func (s *matchService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return &entities.MatchNotFoundError{MatchID: id}
	}

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	s.eventPublisher.Publish(events.MatchDeletedEvent{MatchID: id})
	return nil
}

// GetClubStats returns club-wide match aggregates
func (s *matchService) GetClubStats(ctx context.Context) (*entities.ClubStats, error) {
	stats, err := s.matchRepo.GetClubStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get club stats: %w", err)
	}
	return stats, nil
}

func (s *matchService) validateRecordParams(params interfaces.RecordMatchParams) error {
	if params.Date.IsZero() {
		return &entities.ValidationError{Field: "date", Message: "match date is required"}
	}
	if err := validateStake(params.StakeAmount); err != nil {
		return err
	}
	if !s.config.IsKnownTeam(params.WinningTeam) {
		return &entities.ValidationError{Field: "winningTeam", Message: fmt.Sprintf("unknown team %q", params.WinningTeam)}
	}
	if len(params.Participants) == 0 {
		return &entities.ValidationError{Field: "participants", Message: "at least one participant is required"}
	}

	seen := make(map[uuid.UUID]bool, len(params.Participants))
	for _, p := range params.Participants {
		if seen[p.PlayerID] {
			return &entities.ValidationError{Field: "participants", Message: fmt.Sprintf("duplicate player %s", p.PlayerID)}
		}
		seen[p.PlayerID] = true

		if p.Smashes < 0 || p.Spikes < 0 || p.Saves < 0 {
			return &entities.ValidationError{Field: "participants", Message: "stat counters cannot be negative"}
		}
	}
	return nil
}

// validateStake rejects non-positive stakes and stakes finer than whole
// cents. The distributor splits the stake in integer cents and the store
// persists it at two decimal places, so a sub-cent stake could not be
// credited back to the winners in full.
func validateStake(stake decimal.Decimal) error {
	if !stake.IsPositive() {
		return &entities.ValidationError{Field: "stakeAmount", Message: "stake amount must be positive"}
	}
	if !stake.Equal(stake.Truncate(2)) {
		return &entities.ValidationError{Field: "stakeAmount", Message: "stake amount cannot be finer than whole cents"}
	}
	return nil
}

func (s *matchService) buildMatchDetail(ctx context.Context, match *entities.Match) (*entities.MatchDetail, error) {
	participants, err := s.participationRepo.GetByMatch(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants for match %s: %w", match.ID, err)
	}
	return &entities.MatchDetail{Match: match, Participants: participants}, nil
}

func sanitizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
