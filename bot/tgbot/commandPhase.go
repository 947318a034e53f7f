package tgbot

import (
	"context"
	"strings"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
)

type PhaseCommand struct {
	hackathon *service.Hackathon
}

func (c *PhaseCommand) Run(context.Context, model.User, string) (string, error) {
	return "The hackathon is in " + c.hackathon.Phase().String() + " mode", nil
}

func (c *PhaseCommand) Help() string {
	return "Shows the current phase"
}

func (c *PhaseCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *PhaseCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}

type AdvanceCommand struct {
	hackathon *service.Hackathon
	notify    func(msg string)
}

func (c *AdvanceCommand) Run(ctx context.Context, user model.User, args string) (string, error) {
	var err error
	switch strings.TrimSpace(args) {
	case domain.PhaseHacking.String():
		err = c.hackathon.SetPhaseToHacking(ctx, user.Account())
	case domain.PhaseVoting.String():
		err = c.hackathon.SetPhaseToVoting(ctx, user.Account())
	case domain.PhaseFinished.String():
		err = c.hackathon.SetPhaseToFinished(ctx, user.Account())
	default:
		return "", usageError("/advance hacking|voting|finished")
	}
	if err != nil {
		return "", err
	}
	text := "The hackathon is now in " + c.hackathon.Phase().String() + " mode"
	c.notify(text)
	return text, nil
}

func (c *AdvanceCommand) Help() string {
	return "Moves the hackathon to the next phase. Usage: /advance hacking|voting|finished"
}

func (c *AdvanceCommand) Permission() mapset.Set[domain.Role] {
	return admins()
}

func (c *AdvanceCommand) Visibility() mapset.Set[domain.Role] {
	return admins()
}
