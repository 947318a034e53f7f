package botstorage

import (
	"context"

	"github.com/goserg/hackathon/bot/model"
)

type BotStorage interface {
	Subscribe(ctx context.Context, chatID int64, event model.EventType) error
	Unsubscribe(ctx context.Context, chatID int64, event model.EventType) error
	ListSubscriptions(ctx context.Context) ([]model.Subscription, error)
}
