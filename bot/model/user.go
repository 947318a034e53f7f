package model

import (
	"strconv"
	"time"

	"github.com/goserg/hackathon/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
)

type EventType string

const (
	PhaseChanged EventType = "phase_changed"
)

// RoleGuest stands for a chat user holding no hackathon role.
const RoleGuest domain.Role = 0

type User struct {
	ID        int64
	ChatID    int64
	FirstName string
	Username  string

	Roles mapset.Set[domain.Role]
}

// Account is the hackathon identity of a telegram user.
func (u User) Account() domain.Account {
	return domain.Account("tg:" + strconv.FormatInt(u.ID, 10))
}

type Subscription struct {
	ChatID    int64
	Event     EventType
	CreatedAt time.Time
}
