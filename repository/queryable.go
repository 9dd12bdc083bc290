package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Queryable abstracts over a pgx pool or transaction so repositories work
// identically inside and outside a unit of work
type Queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// parseAmount converts a numeric column selected as text into a decimal.
// Amounts travel through Postgres as numeric(10,2) and through the wire as
// text so no floating point representation is ever involved.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return d, nil
}
