package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Match represents a recorded volleyball match with its stake
type Match struct {
	ID          uuid.UUID       `db:"id"`
	Date        time.Time       `db:"date"`
	WinningTeam string          `db:"winning_team"`
	StakeAmount decimal.Decimal `db:"stake_amount"`
	CreatedBy   *uuid.UUID      `db:"created_by"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Validate performs basic validation on the match
func (m *Match) Validate() error {
	if m.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "match date is required"}
	}
	if m.WinningTeam == "" {
		return &ValidationError{Field: "winningTeam", Message: "winning team is required"}
	}
	if !m.StakeAmount.IsPositive() {
		return &ValidationError{Field: "stakeAmount", Message: "stake amount must be positive"}
	}
	return nil
}

// ParticipantDetail is a participation row joined with player identity and
// the earning credited for this match, if any
type ParticipantDetail struct {
	Participation
	PlayerName string
	PlayerTeam string // current team, may differ from the captured one
	Earned     *decimal.Decimal
}

// MatchDetail is a match with its full participant and earnings breakdown
type MatchDetail struct {
	Match        *Match
	Participants []*ParticipantDetail
}

// TotalDistributed sums the earnings credited for this match
func (d *MatchDetail) TotalDistributed() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.Participants {
		if p.Earned != nil {
			total = total.Add(*p.Earned)
		}
	}
	return total
}
