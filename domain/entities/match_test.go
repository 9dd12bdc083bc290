package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Validate(t *testing.T) {
	valid := Match{
		Date:        time.Now(),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("10.00"),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(m *Match)
		field  string
	}{
		{"missing date", func(m *Match) { m.Date = time.Time{} }, "date"},
		{"missing team", func(m *Match) { m.WinningTeam = "" }, "winningTeam"},
		{"zero stake", func(m *Match) { m.StakeAmount = decimal.Zero }, "stakeAmount"},
		{"negative stake", func(m *Match) { m.StakeAmount = decimal.RequireFromString("-1") }, "stakeAmount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)

			err := m.Validate()

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestMatchDetail_TotalDistributed(t *testing.T) {
	share1 := decimal.RequireFromString("33.34")
	share2 := decimal.RequireFromString("33.33")

	detail := MatchDetail{
		Participants: []*ParticipantDetail{
			{Earned: &share1},
			{Earned: &share2},
			{Earned: nil}, // losing side
		},
	}

	assert.True(t, detail.TotalDistributed().Equal(decimal.RequireFromString("66.67")))
}

func TestParticipation_IsWinner(t *testing.T) {
	p := Participation{Team: "Team A"}
	assert.True(t, p.IsWinner("Team A"))
	assert.False(t, p.IsWinner("Team B"))
}

func TestPlayer_CanParticipate(t *testing.T) {
	player := Player{Role: RolePlayer}
	admin := Player{Role: RoleAdmin}
	assert.True(t, player.CanParticipate())
	assert.False(t, admin.CanParticipate())
	assert.True(t, admin.IsAdmin())
}
