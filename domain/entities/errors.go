package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports malformed input, surfaced before any write
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PlayerNotFoundError reports a roster reference to an unknown player
type PlayerNotFoundError struct {
	PlayerID uuid.UUID
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player %s not found", e.PlayerID)
}

// PlayerNotEligibleError reports a roster reference to an account that
// cannot play (e.g. an admin account)
type PlayerNotEligibleError struct {
	PlayerID uuid.UUID
	Role     Role
}

func (e *PlayerNotEligibleError) Error() string {
	return fmt.Sprintf("player %s has role %q and cannot participate in matches", e.PlayerID, e.Role)
}

// NoWinningParticipantsError reports a match whose declared winning team has
// no participant on the roster
type NoWinningParticipantsError struct {
	WinningTeam string
}

func (e *NoWinningParticipantsError) Error() string {
	return fmt.Sprintf("no participants from winning team %q in the match", e.WinningTeam)
}

// MatchNotFoundError reports an operation against an unknown match
type MatchNotFoundError struct {
	MatchID uuid.UUID
}

func (e *MatchNotFoundError) Error() string {
	return fmt.Sprintf("match %s not found", e.MatchID)
}
