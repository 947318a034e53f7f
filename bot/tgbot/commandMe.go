package tgbot

import (
	"context"
	"sort"
	"strings"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
)

type MeCommand struct {
	hackathon *service.Hackathon
}

func (c *MeCommand) Run(_ context.Context, user model.User, _ string) (string, error) {
	var names []string
	for _, r := range user.Roles.ToSlice() {
		if r != model.RoleGuest {
			names = append(names, r.String())
		}
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Account: " + user.Account().String() + "\n")
	if len(names) == 0 {
		b.WriteString("Roles: none, use /join to register")
	} else {
		b.WriteString("Roles: " + strings.Join(names, ", "))
	}
	if t, ok := c.hackathon.TeamOf(user.Account()); ok {
		b.WriteString("\n" + printTeam(t))
	}
	return b.String(), nil
}

func (c *MeCommand) Help() string {
	return "Shows your account, roles and team"
}

func (c *MeCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *MeCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}
