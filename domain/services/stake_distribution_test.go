package services

import (
	"fmt"
	"testing"

	"volleybank/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participation(id string, team string) *entities.Participation {
	return &entities.Participation{
		PlayerID: uuid.MustParse(id),
		Team:     team,
	}
}

func TestStakeDistributor_EvenSplit(t *testing.T) {
	d := NewStakeDistributor()

	participants := []*entities.Participation{
		participation("00000000-0000-0000-0000-000000000001", "Team A"),
		participation("00000000-0000-0000-0000-000000000002", "Team A"),
		participation("00000000-0000-0000-0000-000000000003", "Team A"),
		participation("00000000-0000-0000-0000-000000000004", "Team B"),
	}

	result, err := d.Distribute(decimal.RequireFromString("300.00"), "Team A", participants)

	require.NoError(t, err)
	assert.Len(t, result.Winners, 3)
	for _, w := range result.Winners {
		assert.True(t, result.Shares[w.PlayerID].Equal(decimal.RequireFromString("100.00")),
			"expected 100.00, got %s", result.Shares[w.PlayerID])
	}
}

func TestStakeDistributor_ResidualGoesToFirstWinner(t *testing.T) {
	d := NewStakeDistributor()

	// 100.00 across three winners leaves one cent over; it lands on the
	// first winner in player-id order
	participants := []*entities.Participation{
		participation("00000000-0000-0000-0000-000000000003", "Team A"),
		participation("00000000-0000-0000-0000-000000000001", "Team A"),
		participation("00000000-0000-0000-0000-000000000002", "Team A"),
	}

	result, err := d.Distribute(decimal.RequireFromString("100.00"), "Team A", participants)

	require.NoError(t, err)
	first := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.True(t, result.Shares[first].Equal(decimal.RequireFromString("33.34")))
	assert.True(t, result.Shares[uuid.MustParse("00000000-0000-0000-0000-000000000002")].Equal(decimal.RequireFromString("33.33")))
	assert.True(t, result.Shares[uuid.MustParse("00000000-0000-0000-0000-000000000003")].Equal(decimal.RequireFromString("33.33")))
}

func TestStakeDistributor_SharesAlwaysSumToStake(t *testing.T) {
	d := NewStakeDistributor()

	stakes := []string{"0.01", "1.00", "99.99", "100.00", "250.10", "1234.56"}
	for _, stakeStr := range stakes {
		stake := decimal.RequireFromString(stakeStr)
		for n := 1; n <= 9; n++ {
			t.Run(fmt.Sprintf("%s across %d", stakeStr, n), func(t *testing.T) {
				var participants []*entities.Participation
				for i := 0; i < n; i++ {
					participants = append(participants,
						participation(fmt.Sprintf("00000000-0000-0000-0000-0000000000%02d", i+1), "Team A"))
				}

				result, err := d.Distribute(stake, "Team A", participants)
				require.NoError(t, err)

				sum := decimal.Zero
				var min, max decimal.Decimal
				for i, w := range result.Winners {
					share := result.Shares[w.PlayerID]
					sum = sum.Add(share)
					if i == 0 {
						min, max = share, share
					} else {
						if share.LessThan(min) {
							min = share
						}
						if share.GreaterThan(max) {
							max = share
						}
					}
				}

				assert.True(t, sum.Equal(stake), "shares sum to %s, stake is %s", sum, stake)
				// No winner's share may exceed another's by more than the residual
				assert.True(t, max.Sub(min).LessThan(decimal.RequireFromString("0.10")),
					"shares too uneven: min %s, max %s", min, max)
			})
		}
	}
}

func TestStakeDistributor_NoWinners(t *testing.T) {
	d := NewStakeDistributor()

	participants := []*entities.Participation{
		participation("00000000-0000-0000-0000-000000000001", "Team B"),
		participation("00000000-0000-0000-0000-000000000002", "Team C"),
	}

	result, err := d.Distribute(decimal.RequireFromString("100.00"), "Team A", participants)

	assert.ErrorIs(t, err, ErrNoWinners)
	assert.Nil(t, result)
}

func TestStakeDistributor_UsesCapturedTeam(t *testing.T) {
	d := NewStakeDistributor()

	// Only the team captured on the participation row counts, so a single
	// winning-side participant takes the whole stake
	participants := []*entities.Participation{
		participation("00000000-0000-0000-0000-000000000001", "Team A"),
		participation("00000000-0000-0000-0000-000000000002", "Team B"),
	}

	result, err := d.Distribute(decimal.RequireFromString("75.50"), "Team A", participants)

	require.NoError(t, err)
	require.Len(t, result.Winners, 1)
	assert.True(t, result.Shares[participants[0].PlayerID].Equal(decimal.RequireFromString("75.50")))
}
