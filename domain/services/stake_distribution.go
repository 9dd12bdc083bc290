package services

import (
	"errors"
	"sort"

	"volleybank/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoWinners signals a distribution call with zero winning participants.
// The recorder's precondition makes this unreachable through public paths,
// so hitting it means an invariant was violated upstream.
var ErrNoWinners = errors.New("stake distribution requires at least one winning participant")

// StakeDistributor contains the pure stake-splitting logic
type StakeDistributor struct{}

// NewStakeDistributor creates a new StakeDistributor
func NewStakeDistributor() *StakeDistributor {
	return &StakeDistributor{}
}

// DistributionResult contains the outcome of splitting a stake
type DistributionResult struct {
	Winners []*entities.Participation
	Shares  map[uuid.UUID]decimal.Decimal // player id -> amount credited
	Total   decimal.Decimal
}

// Distribute splits the stake evenly among the participants whose captured
// team equals the winning team.
//
// Shares are computed in whole cents: every winner receives
// floor(stake/|winners|) cents and the first winner in player-id order is
// additionally credited the residual, so the shares always sum to the stake
// exactly. The captured participation team is used rather than a live player
// lookup, keeping the result deterministic across later team changes.
func (d *StakeDistributor) Distribute(stake decimal.Decimal, winningTeam string, participants []*entities.Participation) (*DistributionResult, error) {
	var winners []*entities.Participation
	for _, p := range participants {
		if p.IsWinner(winningTeam) {
			winners = append(winners, p)
		}
	}

	if len(winners) == 0 {
		return nil, ErrNoWinners
	}

	// Stable order so the residual cent always lands on the same player
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].PlayerID.String() < winners[j].PlayerID.String()
	})

	n := int64(len(winners))
	totalCents := stake.Mul(decimal.NewFromInt(100)).IntPart()
	baseCents := totalCents / n
	residualCents := totalCents % n

	centsToDecimal := func(cents int64) decimal.Decimal {
		return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	}

	result := &DistributionResult{
		Winners: winners,
		Shares:  make(map[uuid.UUID]decimal.Decimal, len(winners)),
		Total:   stake,
	}

	for i, winner := range winners {
		cents := baseCents
		if i == 0 {
			cents += residualCents
		}
		result.Shares[winner.PlayerID] = centsToDecimal(cents)
	}

	return result, nil
}
