package entities

import (
	"time"

	"github.com/google/uuid"
)

// Participation records a player's presence and raw counters in one match.
// Team is captured when the match is recorded so that earnings stay
// deterministic even if the player later changes teams.
type Participation struct {
	ID        int64     `db:"id"`
	MatchID   uuid.UUID `db:"match_id"`
	PlayerID  uuid.UUID `db:"player_id"`
	Team      string    `db:"team"`
	Role      string    `db:"role"`
	Smashes   int       `db:"smashes"`
	Spikes    int       `db:"spikes"`
	Saves     int       `db:"saves"`
	CreatedAt time.Time `db:"created_at"`
}

// Validate performs basic validation on the participation counters
func (p *Participation) Validate() error {
	if p.Smashes < 0 || p.Spikes < 0 || p.Saves < 0 {
		return &ValidationError{Field: "stats", Message: "stat counters cannot be negative"}
	}
	return nil
}

// IsWinner returns true if this participant was on the winning side
func (p *Participation) IsWinner(winningTeam string) bool {
	return p.Team == winningTeam
}

// TotalPoints returns the combined raw counters for this participation
func (p *Participation) TotalPoints() int {
	return p.Smashes + p.Spikes + p.Saves
}
