package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Earning is a monetary credit to one player for one match, derived from
// the stake split. At most one earning exists per (match, player).
type Earning struct {
	ID        int64           `db:"id"`
	MatchID   uuid.UUID       `db:"match_id"`
	PlayerID  uuid.UUID       `db:"player_id"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}
