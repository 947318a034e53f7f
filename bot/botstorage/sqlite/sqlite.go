package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goserg/hackathon/bot/botstorage"
	dbmodel "github.com/goserg/hackathon/bot/gen/model"
	"github.com/goserg/hackathon/bot/gen/table"
	"github.com/goserg/hackathon/bot/model"
	sqlite3 "github.com/goserg/hackathon/internal/migrate"

	"github.com/go-jet/jet/v2/sqlite"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ botstorage.BotStorage = (*Storage)(nil)

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "bot-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpBotDB(db)
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", fileName, err)
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("bot storage connected")
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

func (s *Storage) Subscribe(ctx context.Context, chatID int64, event model.EventType) error {
	_, err := table.Subscriptions.
		INSERT(table.Subscriptions.AllColumns).
		MODEL(dbmodel.Subscriptions{
			ChatID:    chatID,
			Event:     string(event),
			CreatedAt: time.Now().UTC(),
		}).
		ON_CONFLICT(table.Subscriptions.ChatID, table.Subscriptions.Event).
		DO_NOTHING().
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) Unsubscribe(ctx context.Context, chatID int64, event model.EventType) error {
	_, err := table.Subscriptions.
		DELETE().
		WHERE(
			table.Subscriptions.ChatID.EQ(sqlite.Int(chatID)).
				AND(table.Subscriptions.Event.EQ(sqlite.String(string(event)))),
		).ExecContext(ctx, s.db)
	return err
}

func (s *Storage) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	var dest []dbmodel.Subscriptions
	err := table.Subscriptions.
		SELECT(table.Subscriptions.AllColumns).
		ORDER_BY(table.Subscriptions.ChatID.ASC()).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		return nil, err
	}
	subs := make([]model.Subscription, 0, len(dest))
	for _, d := range dest {
		subs = append(subs, model.Subscription{
			ChatID:    d.ChatID,
			Event:     model.EventType(d.Event),
			CreatedAt: d.CreatedAt,
		})
	}
	return subs, nil
}
