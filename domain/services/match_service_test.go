package services

import (
	"context"
	"testing"
	"time"

	"volleybank/config"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"
	"volleybank/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type matchServiceMocks struct {
	matchRepo         *MockMatchRepository
	playerRepo        *MockPlayerRepository
	participationRepo *MockParticipationRepository
	earningRepo       *MockEarningRepository
	publisher         *RecordingPublisher
}

func setupMatchService(t *testing.T) (interfaces.MatchService, *matchServiceMocks) {
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	m := &matchServiceMocks{
		matchRepo:         new(MockMatchRepository),
		playerRepo:        new(MockPlayerRepository),
		participationRepo: new(MockParticipationRepository),
		earningRepo:       new(MockEarningRepository),
		publisher:         new(RecordingPublisher),
	}
	service := NewMatchService(m.matchRepo, m.playerRepo, m.participationRepo, m.earningRepo, m.publisher)
	return service, m
}

func (m *matchServiceMocks) assertExpectations(t *testing.T) {
	m.matchRepo.AssertExpectations(t)
	m.playerRepo.AssertExpectations(t)
	m.participationRepo.AssertExpectations(t)
	m.earningRepo.AssertExpectations(t)
}

func clubPlayer(id string, team string) *entities.Player {
	return &entities.Player{
		ID:   uuid.MustParse(id),
		Name: "Player " + id[len(id)-2:],
		Role: entities.RolePlayer,
		Team: team,
	}
}

func TestMatchService_RecordMatch(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	winner1 := clubPlayer("00000000-0000-0000-0000-000000000001", "Team A")
	winner2 := clubPlayer("00000000-0000-0000-0000-000000000002", "Team A")
	loser := clubPlayer("00000000-0000-0000-0000-000000000003", "Team B")

	m.playerRepo.On("GetByID", ctx, winner1.ID).Return(winner1, nil)
	m.playerRepo.On("GetByID", ctx, winner2.ID).Return(winner2, nil)
	m.playerRepo.On("GetByID", ctx, loser.ID).Return(loser, nil)

	m.matchRepo.On("Create", ctx, mock.AnythingOfType("*entities.Match")).Return(nil)
	m.participationRepo.On("Create", ctx, mock.AnythingOfType("*entities.Participation")).Return(nil).Times(3)

	// 100.00 between two winners splits cleanly
	m.earningRepo.On("Create", ctx, mock.MatchedBy(func(e *entities.Earning) bool {
		return e.Amount.Equal(decimal.RequireFromString("50.00"))
	})).Return(nil).Times(2)

	m.participationRepo.On("GetByMatch", ctx, mock.AnythingOfType("uuid.UUID")).
		Return([]*entities.ParticipantDetail{}, nil)

	detail, err := service.RecordMatch(ctx, interfaces.RecordMatchParams{
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("100.00"),
		Participants: []interfaces.ParticipantInput{
			{PlayerID: winner1.ID, Smashes: 5},
			{PlayerID: winner2.ID, Spikes: 3},
			{PlayerID: loser.ID, Saves: 2},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Team A", detail.Match.WinningTeam)

	require.Len(t, m.publisher.Events, 1)
	event, ok := m.publisher.Events[0].(events.MatchRecordedEvent)
	require.True(t, ok)
	assert.Equal(t, detail.Match.ID, event.MatchID)
	assert.Equal(t, 3, event.ParticipantCount)
	assert.Equal(t, 2, event.WinnerCount)

	m.assertExpectations(t)
}

func TestMatchService_RecordMatch_CapturesRosterTeam(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	player := clubPlayer("00000000-0000-0000-0000-000000000001", "Team A")
	m.playerRepo.On("GetByID", ctx, player.ID).Return(player, nil)
	m.matchRepo.On("Create", ctx, mock.Anything).Return(nil)

	m.participationRepo.On("Create", ctx, mock.MatchedBy(func(p *entities.Participation) bool {
		return p.Team == "Team A" && p.PlayerID == player.ID
	})).Return(nil)

	m.earningRepo.On("Create", ctx, mock.Anything).Return(nil)
	m.participationRepo.On("GetByMatch", ctx, mock.Anything).Return([]*entities.ParticipantDetail{}, nil)

	_, err := service.RecordMatch(ctx, interfaces.RecordMatchParams{
		Date:         time.Now(),
		WinningTeam:  "Team A",
		StakeAmount:  decimal.RequireFromString("10.00"),
		Participants: []interfaces.ParticipantInput{{PlayerID: player.ID}},
	})

	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestMatchService_RecordMatch_UnknownPlayer(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	unknownID := uuid.New()
	m.playerRepo.On("GetByID", ctx, unknownID).Return(nil, nil)

	_, err := service.RecordMatch(ctx, interfaces.RecordMatchParams{
		Date:         time.Now(),
		WinningTeam:  "Team A",
		StakeAmount:  decimal.RequireFromString("100.00"),
		Participants: []interfaces.ParticipantInput{{PlayerID: unknownID}},
	})

	var notFound *entities.PlayerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, unknownID, notFound.PlayerID)

	// Nothing may be written when the roster fails to resolve
	m.matchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.participationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.earningRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, m.publisher.Events)
}

func TestMatchService_RecordMatch_AdminNotEligible(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	admin := &entities.Player{ID: uuid.New(), Name: "Admin", Role: entities.RoleAdmin}
	m.playerRepo.On("GetByID", ctx, admin.ID).Return(admin, nil)

	_, err := service.RecordMatch(ctx, interfaces.RecordMatchParams{
		Date:         time.Now(),
		WinningTeam:  "Team A",
		StakeAmount:  decimal.RequireFromString("100.00"),
		Participants: []interfaces.ParticipantInput{{PlayerID: admin.ID}},
	})

	var notEligible *entities.PlayerNotEligibleError
	require.ErrorAs(t, err, &notEligible)
	assert.Equal(t, entities.RoleAdmin, notEligible.Role)
	m.matchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMatchService_RecordMatch_NoWinningParticipants(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	p1 := clubPlayer("00000000-0000-0000-0000-000000000001", "Team B")
	p2 := clubPlayer("00000000-0000-0000-0000-000000000002", "Team C")
	m.playerRepo.On("GetByID", ctx, p1.ID).Return(p1, nil)
	m.playerRepo.On("GetByID", ctx, p2.ID).Return(p2, nil)

	_, err := service.RecordMatch(ctx, interfaces.RecordMatchParams{
		Date:        time.Now(),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("100.00"),
		Participants: []interfaces.ParticipantInput{
			{PlayerID: p1.ID},
			{PlayerID: p2.ID},
		},
	})

	var noWinners *entities.NoWinningParticipantsError
	require.ErrorAs(t, err, &noWinners)
	assert.Equal(t, "Team A", noWinners.WinningTeam)

	m.matchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.participationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, m.publisher.Events)
}

func TestMatchService_RecordMatch_Validation(t *testing.T) {
	ctx := context.Background()
	service, _ := setupMatchService(t)

	playerID := uuid.New()
	valid := interfaces.RecordMatchParams{
		Date:         time.Now(),
		WinningTeam:  "Team A",
		StakeAmount:  decimal.RequireFromString("100.00"),
		Participants: []interfaces.ParticipantInput{{PlayerID: playerID}},
	}

	tests := []struct {
		name   string
		mutate func(p *interfaces.RecordMatchParams)
		field  string
	}{
		{
			name:   "missing date",
			mutate: func(p *interfaces.RecordMatchParams) { p.Date = time.Time{} },
			field:  "date",
		},
		{
			name:   "zero stake",
			mutate: func(p *interfaces.RecordMatchParams) { p.StakeAmount = decimal.Zero },
			field:  "stakeAmount",
		},
		{
			name:   "negative stake",
			mutate: func(p *interfaces.RecordMatchParams) { p.StakeAmount = decimal.RequireFromString("-5.00") },
			field:  "stakeAmount",
		},
		{
			// A stake finer than whole cents cannot be conserved: the split
			// works in integer cents while the store rounds to two decimals,
			// so 100.005 would persist as 100.01 but pay out 100.00
			name:   "sub-cent stake",
			mutate: func(p *interfaces.RecordMatchParams) { p.StakeAmount = decimal.RequireFromString("100.005") },
			field:  "stakeAmount",
		},
		{
			name:   "unknown team",
			mutate: func(p *interfaces.RecordMatchParams) { p.WinningTeam = "Team Z" },
			field:  "winningTeam",
		},
		{
			name:   "empty roster",
			mutate: func(p *interfaces.RecordMatchParams) { p.Participants = nil },
			field:  "participants",
		},
		{
			name: "duplicate player",
			mutate: func(p *interfaces.RecordMatchParams) {
				p.Participants = []interfaces.ParticipantInput{{PlayerID: playerID}, {PlayerID: playerID}}
			},
			field: "participants",
		},
		{
			name: "negative counters",
			mutate: func(p *interfaces.RecordMatchParams) {
				p.Participants = []interfaces.ParticipantInput{{PlayerID: playerID, Smashes: -1}}
			},
			field: "participants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)

			_, err := service.RecordMatch(ctx, params)

			var validationErr *entities.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestValidateStake_AllowsTrailingZeroCents(t *testing.T) {
	// 0.010 is one cent written with a trailing zero, not a sub-cent amount
	require.NoError(t, validateStake(decimal.RequireFromString("0.010")))
	require.NoError(t, validateStake(decimal.RequireFromString("100.000")))

	var validationErr *entities.ValidationError
	require.ErrorAs(t, validateStake(decimal.RequireFromString("0.001")), &validationErr)
}

func TestMatchService_UpdateMatch_Redistributes(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	matchID := uuid.New()
	existing := &entities.Match{
		ID:          matchID,
		Date:        time.Now(),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("100.00"),
	}
	m.matchRepo.On("GetByID", ctx, matchID).Return(existing, nil)

	// One participant per side, teams as captured at record time
	details := []*entities.ParticipantDetail{
		{Participation: entities.Participation{MatchID: matchID, PlayerID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Team: "Team A"}},
		{Participation: entities.Participation{MatchID: matchID, PlayerID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Team: "Team B"}},
	}
	m.participationRepo.On("GetByMatch", ctx, matchID).Return(details, nil)

	newWinner := "Team B"
	m.matchRepo.On("Update", ctx, mock.MatchedBy(func(match *entities.Match) bool {
		return match.WinningTeam == "Team B"
	})).Return(nil)
	m.earningRepo.On("DeleteByMatch", ctx, matchID).Return(nil)
	m.earningRepo.On("Create", ctx, mock.MatchedBy(func(e *entities.Earning) bool {
		return e.PlayerID == details[1].PlayerID && e.Amount.Equal(decimal.RequireFromString("100.00"))
	})).Return(nil)

	detail, err := service.UpdateMatch(ctx, matchID, interfaces.MatchUpdateParams{WinningTeam: &newWinner})

	require.NoError(t, err)
	assert.Equal(t, "Team B", detail.Match.WinningTeam)
	m.assertExpectations(t)
}

func TestMatchService_UpdateMatch_NoWinnersAfterCorrection(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	matchID := uuid.New()
	existing := &entities.Match{
		ID:          matchID,
		Date:        time.Now(),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("100.00"),
	}
	m.matchRepo.On("GetByID", ctx, matchID).Return(existing, nil)
	m.participationRepo.On("GetByMatch", ctx, matchID).Return([]*entities.ParticipantDetail{
		{Participation: entities.Participation{MatchID: matchID, PlayerID: uuid.New(), Team: "Team A"}},
	}, nil)

	newWinner := "Team C"
	_, err := service.UpdateMatch(ctx, matchID, interfaces.MatchUpdateParams{WinningTeam: &newWinner})

	var noWinners *entities.NoWinningParticipantsError
	require.ErrorAs(t, err, &noWinners)

	// The correction must not touch the stored match or its earnings
	m.matchRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.earningRepo.AssertNotCalled(t, "DeleteByMatch", mock.Anything, mock.Anything)
}

func TestMatchService_UpdateMatch_RejectsSubCentStake(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	matchID := uuid.New()
	existing := &entities.Match{
		ID:          matchID,
		Date:        time.Now(),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("100.00"),
	}
	m.matchRepo.On("GetByID", ctx, matchID).Return(existing, nil)

	subCent := decimal.RequireFromString("100.005")
	_, err := service.UpdateMatch(ctx, matchID, interfaces.MatchUpdateParams{StakeAmount: &subCent})

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "stakeAmount", validationErr.Field)

	// The stored match and its earnings stay untouched
	m.matchRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.earningRepo.AssertNotCalled(t, "DeleteByMatch", mock.Anything, mock.Anything)
}

func TestMatchService_UpdateMatch_NotFound(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	matchID := uuid.New()
	m.matchRepo.On("GetByID", ctx, matchID).Return(nil, nil)

	team := "Team A"
	_, err := service.UpdateMatch(ctx, matchID, interfaces.MatchUpdateParams{WinningTeam: &team})

	var notFound *entities.MatchNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, matchID, notFound.MatchID)
}

func TestMatchService_UpdateParticipantStats_RejectsNegative(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	err := service.UpdateParticipantStats(ctx, uuid.New(), uuid.New(), -1, 0, 0)

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	m.participationRepo.AssertNotCalled(t, "UpdateStats",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMatchService_DeleteMatch(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	matchID := uuid.New()
	existing := &entities.Match{ID: matchID, Date: time.Now(), WinningTeam: "Team A", StakeAmount: decimal.RequireFromString("50.00")}
	m.matchRepo.On("GetByID", ctx, matchID).Return(existing, nil)
	m.matchRepo.On("Delete", ctx, matchID).Return(nil)

	err := service.DeleteMatch(ctx, matchID)

	require.NoError(t, err)
	require.Len(t, m.publisher.Events, 1)
	event, ok := m.publisher.Events[0].(events.MatchDeletedEvent)
	require.True(t, ok)
	assert.Equal(t, matchID, event.MatchID)
	m.assertExpectations(t)
}

func TestMatchService_DeleteMatch_NotFound(t *testing.T) {
	ctx := context.Background()
	service, m := setupMatchService(t)

	matchID := uuid.New()
	m.matchRepo.On("GetByID", ctx, matchID).Return(nil, nil)

	err := service.DeleteMatch(ctx, matchID)

	var notFound *entities.MatchNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, m.publisher.Events)
}
