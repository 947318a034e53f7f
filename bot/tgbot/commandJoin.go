package tgbot

import (
	"context"
	"strings"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
)

type JoinCommand struct {
	hackathon *service.Hackathon
}

func (c *JoinCommand) Run(ctx context.Context, user model.User, args string) (string, error) {
	secret := strings.TrimSpace(args)
	if secret == "" {
		return "", usageError("/join <registration token>")
	}
	if err := c.hackathon.JoinHackathon(ctx, user.Account(), secret); err != nil {
		return "", err
	}
	return "Welcome! You joined the hackathon as " + user.Account().String(), nil
}

func (c *JoinCommand) Help() string {
	return "Join the hackathon with your registration token. Usage: /join <token>"
}

func (c *JoinCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *JoinCommand) Visibility() mapset.Set[domain.Role] {
	return roles(model.RoleGuest)
}
