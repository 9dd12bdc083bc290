package entities

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a club member is allowed to do
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// Player represents a registered club member
type Player struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      Role      `db:"role"`
	Team      string    `db:"team"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if the player has administrative privileges
func (p *Player) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanParticipate returns true if the player may appear on a match roster.
// Admin accounts record matches but do not play in them.
func (p *Player) CanParticipate() bool {
	return p.Role == RolePlayer
}
