package services

import (
	"context"

	"volleybank/domain/entities"
	"volleybank/domain/interfaces"
	"volleybank/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByEmail(ctx context.Context, email string) (*entities.Player, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) Create(ctx context.Context, player *entities.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) Update(ctx context.Context, player *entities.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlayerRepository) List(ctx context.Context) ([]*entities.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) ListByTeam(ctx context.Context, team string) ([]*entities.Player, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Player), args.Error(1)
}

// MockMatchRepository is a mock implementation of MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) List(ctx context.Context, filter interfaces.MatchFilter, limit, offset int) ([]*entities.Match, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Match), args.Get(1).(int64), args.Error(2)
}

func (m *MockMatchRepository) GetRecent(ctx context.Context, limit int) ([]*entities.Match, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Match), args.Error(1)
}

func (m *MockMatchRepository) Update(ctx context.Context, match *entities.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMatchRepository) GetClubStats(ctx context.Context) (*entities.ClubStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ClubStats), args.Error(1)
}

// MockParticipationRepository is a mock implementation of ParticipationRepository
type MockParticipationRepository struct {
	mock.Mock
}

func (m *MockParticipationRepository) Create(ctx context.Context, participation *entities.Participation) error {
	args := m.Called(ctx, participation)
	return args.Error(0)
}

func (m *MockParticipationRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entities.ParticipantDetail, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ParticipantDetail), args.Error(1)
}

func (m *MockParticipationRepository) UpdateStats(ctx context.Context, matchID, playerID uuid.UUID, smashes, spikes, saves int) error {
	args := m.Called(ctx, matchID, playerID, smashes, spikes, saves)
	return args.Error(0)
}

// MockEarningRepository is a mock implementation of EarningRepository
type MockEarningRepository struct {
	mock.Mock
}

func (m *MockEarningRepository) Create(ctx context.Context, earning *entities.Earning) error {
	args := m.Called(ctx, earning)
	return args.Error(0)
}

func (m *MockEarningRepository) GetByMatch(ctx context.Context, matchID uuid.UUID) ([]*entities.Earning, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Earning), args.Error(1)
}

func (m *MockEarningRepository) DeleteByMatch(ctx context.Context, matchID uuid.UUID) error {
	args := m.Called(ctx, matchID)
	return args.Error(0)
}

func (m *MockEarningRepository) GetTotalByPlayer(ctx context.Context, playerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetLeaderboard(ctx context.Context, orderBy string, limit int) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, orderBy, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

func (m *MockLedgerRepository) GetTeamStandings(ctx context.Context) ([]*entities.TeamStanding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamStanding), args.Error(1)
}

func (m *MockLedgerRepository) GetPlayerAggregates(ctx context.Context, playerID uuid.UUID) (*entities.PlayerAggregates, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerAggregates), args.Error(1)
}

func (m *MockLedgerRepository) GetPlayerMatches(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*entities.PlayerMatchEntry, int64, error) {
	args := m.Called(ctx, playerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.PlayerMatchEntry), args.Get(1).(int64), args.Error(2)
}

// RecordingPublisher captures published events for assertions
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(e events.Event) {
	p.Events = append(p.Events, e)
}
