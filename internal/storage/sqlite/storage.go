package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goserg/hackathon/gen/model"
	"github.com/goserg/hackathon/gen/table"
	"github.com/goserg/hackathon/internal/domain"
	sqlite3 "github.com/goserg/hackathon/internal/migrate"
	"github.com/goserg/hackathon/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	sqlite3drv "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.TokenLedger = (*Storage)(nil)
var _ storage.Journal = (*Storage)(nil)

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "hackathon-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpHackathonDB(db)
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", fileName, err)
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("hackathon storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) BalanceOf(ctx context.Context, account domain.Account, class domain.TokenClass) (uint64, error) {
	var dest model.Balances
	err := table.Balances.
		SELECT(table.Balances.Amount).
		WHERE(
			table.Balances.Account.EQ(sqlite.String(account.String())).
				AND(table.Balances.Class.EQ(sqlite.Int(int64(class)))),
		).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(dest.Amount), nil
}

// Append inserts the event and adds its mints to the balances in one
// transaction.
func (s *Storage) Append(ctx context.Context, event domain.Event, mints []domain.Mint) error {
	dbEvent, err := convertEventFromDomain(event)
	if err != nil {
		return err
	}
	return inTxSimple(ctx, s.db, func(tx *sql.Tx) error {
		_, err := table.Events.
			INSERT(table.Events.AllColumns).
			MODEL(dbEvent).
			ExecContext(ctx, tx)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("seq %d: %w", event.Seq, storage.ErrDuplicateEvent)
			}
			return fmt.Errorf("insert event %d: %w", event.Seq, err)
		}
		for _, m := range mints {
			_, err := table.Balances.
				INSERT(table.Balances.AllColumns).
				MODEL(convertMintFromDomain(m)).
				ON_CONFLICT(table.Balances.Account, table.Balances.Class).
				DO_UPDATE(sqlite.SET(
					table.Balances.Amount.SET(table.Balances.Amount.ADD(table.Balances.EXCLUDED.Amount)),
				)).
				ExecContext(ctx, tx)
			if err != nil {
				return fmt.Errorf("mint class %d to %s: %w", m.Class, m.Account, err)
			}
		}
		s.log.WithFields(logrus.Fields{
			"seq":   event.Seq,
			"mints": len(mints),
		}).Debug("event journaled")
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3drv.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3drv.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3drv.ErrConstraintPrimaryKey
}

func (s *Storage) List(ctx context.Context) ([]domain.Event, error) {
	var events []model.Events
	err := table.Events.
		SELECT(table.Events.AllColumns).
		ORDER_BY(table.Events.Seq.ASC()).
		QueryContext(ctx, s.db, &events)
	if err != nil {
		return nil, err
	}
	return convertEventsToDomain(events)
}

func inTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	value, err := fn(tx)
	if err != nil {
		return zero, errors.Join(err, tx.Rollback())
	}
	return value, tx.Commit()
}

func inTxSimple(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	_, err := inTx(ctx, db, func(tx *sql.Tx) (struct{}, error) { return struct{}{}, fn(tx) })
	return err
}
