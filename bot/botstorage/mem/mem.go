package mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goserg/hackathon/bot/botstorage"
	"github.com/goserg/hackathon/bot/model"
)

type subscription struct {
	chatID int64
	event  model.EventType
}

// Storage keeps subscriptions for the lifetime of the process.
type Storage struct {
	mu   sync.RWMutex
	subs map[subscription]time.Time
}

var _ botstorage.BotStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		subs: make(map[subscription]time.Time),
	}
}

func (s *Storage) Subscribe(_ context.Context, chatID int64, event model.EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := subscription{chatID: chatID, event: event}
	if _, ok := s.subs[key]; !ok {
		s.subs[key] = time.Now()
	}
	return nil
}

func (s *Storage) Unsubscribe(_ context.Context, chatID int64, event model.EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, subscription{chatID: chatID, event: event})
	return nil
}

func (s *Storage) ListSubscriptions(_ context.Context) ([]model.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := make([]model.Subscription, 0, len(s.subs))
	for key, createdAt := range s.subs {
		subs = append(subs, model.Subscription{
			ChatID:    key.chatID,
			Event:     key.event,
			CreatedAt: createdAt,
		})
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].ChatID < subs[j].ChatID
	})
	return subs, nil
}
