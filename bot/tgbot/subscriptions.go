package tgbot

import (
	botmodel "github.com/goserg/hackathon/bot/model"

	mapset "github.com/deckarep/golang-set/v2"
)

type subscriptions struct {
	m map[botmodel.EventType]mapset.Set[int64]
}

func newSubs() subscriptions {
	m := make(map[botmodel.EventType]mapset.Set[int64])
	return subscriptions{
		m: m,
	}
}

func (s *subscriptions) Add(t botmodel.EventType, chatID int64) {
	if s.m[t] == nil {
		s.m[t] = mapset.NewSet[int64]()
	}
	s.m[t].Add(chatID)
}

func (s *subscriptions) Remove(t botmodel.EventType, chatID int64) {
	if s.m[t] == nil {
		return
	}
	s.m[t].Remove(chatID)
}

func (s *subscriptions) GetChatIDs(t botmodel.EventType) []int64 {
	if s.m[t] == nil {
		return nil
	}
	return s.m[t].ToSlice()
}
