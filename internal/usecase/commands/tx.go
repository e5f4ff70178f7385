package commands

import (
	"context"
	"errors"
	"log/slog"

	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner executes a function inside a single database transaction,
// committing when it returns nil and rolling back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx infra.DBTX) error) error
}

type pgxTxRunner struct {
	db *pgxpool.Pool
}

func NewPgxTxRunner(db *pgxpool.Pool) TxRunner {
	return &pgxTxRunner{db: db}
}

func (r *pgxTxRunner) RunInTx(ctx context.Context, fn func(tx infra.DBTX) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}
	return nil
}

func notifyCalendarChange(ctx context.Context, reportCache ReportInvalidator, changeNotifier ChangeNotifier) {
	if reportCache != nil {
		if err := reportCache.InvalidateReports(ctx); err != nil {
			slog.Warn("failed to invalidate analytics cache", "error", err.Error())
		}
	}
	if changeNotifier != nil {
		changeNotifier.BookingsChanged()
	}
}
