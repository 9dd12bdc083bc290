package repository

import (
	"context"
	"fmt"

	"volleybank/database"
	"volleybank/domain/interfaces"
	"volleybank/events"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the interfaces.UnitOfWork interface
type unitOfWork struct {
	db                *database.DB
	tx                pgx.Tx
	ctx               context.Context
	publisher         *events.TransactionalBus
	playerRepo        interfaces.PlayerRepository
	matchRepo         interfaces.MatchRepository
	participationRepo interfaces.ParticipationRepository
	earningRepo       interfaces.EarningRepository
	ledgerRepo        interfaces.LedgerRepository
}

type unitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory bound to the pool
// and the process-wide event bus
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, bus: bus}
}

// Create returns a unit of work with its own transactional event publisher
func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:        f.db,
		publisher: events.NewTransactionalBus(f.bus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.playerRepo = newPlayerRepository(tx)
	u.matchRepo = newMatchRepository(tx)
	u.participationRepo = newParticipationRepository(tx)
	u.earningRepo = newEarningRepository(tx)
	u.ledgerRepo = newLedgerRepository(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events only after a successful commit
	u.publisher.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	u.publisher.Discard()

	return nil
}

// PlayerRepository returns the player repository for this unit of work
func (u *unitOfWork) PlayerRepository() interfaces.PlayerRepository {
	if u.playerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.playerRepo
}

// MatchRepository returns the match repository for this unit of work
func (u *unitOfWork) MatchRepository() interfaces.MatchRepository {
	if u.matchRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.matchRepo
}

// ParticipationRepository returns the participation repository for this unit of work
func (u *unitOfWork) ParticipationRepository() interfaces.ParticipationRepository {
	if u.participationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.participationRepo
}

// EarningRepository returns the earning repository for this unit of work
func (u *unitOfWork) EarningRepository() interfaces.EarningRepository {
	if u.earningRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.earningRepo
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.publisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.publisher
}
