package tgbot

import (
	"context"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
)

type SubCommand struct {
	sub func(ctx context.Context, chatID int64) error
}

func (c *SubCommand) Run(ctx context.Context, user model.User, _ string) (string, error) {
	if err := c.sub(ctx, user.ChatID); err != nil {
		return "", err
	}
	return "Subscribed to phase changes, to unsubscribe: /unsub", nil
}

func (c *SubCommand) Help() string {
	return "Subscribe to phase change notifications"
}

func (c *SubCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *SubCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}

type UnsubCommand struct {
	unsub func(ctx context.Context, chatID int64) error
}

func (c *UnsubCommand) Run(ctx context.Context, user model.User, _ string) (string, error) {
	if err := c.unsub(ctx, user.ChatID); err != nil {
		return "", err
	}
	return "Unsubscribed", nil
}

func (c *UnsubCommand) Help() string {
	return "Unsubscribe from phase change notifications"
}

func (c *UnsubCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *UnsubCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}
