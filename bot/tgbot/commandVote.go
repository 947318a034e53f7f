package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
)

type PrizeCommand struct {
	hackathon *service.Hackathon
}

func (c *PrizeCommand) Run(ctx context.Context, user model.User, args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "", usageError("/prize <name>")
	}
	p, err := c.hackathon.CreatePrizeCategory(ctx, user.Account(), args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Prize %q created with id %d", p.Name, p.ID), nil
}

func (c *PrizeCommand) Help() string {
	return "Creates a prize category. Usage: /prize <name>"
}

func (c *PrizeCommand) Permission() mapset.Set[domain.Role] {
	return admins()
}

func (c *PrizeCommand) Visibility() mapset.Set[domain.Role] {
	return admins()
}

type VoteCommand struct {
	hackathon *service.Hackathon
}

func (c *VoteCommand) Run(ctx context.Context, user model.User, args string) (string, error) {
	a := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(a) != 2 {
		return "", usageError("/vote <team id> <prize>")
	}
	id, err := strconv.ParseUint(a[0], 10, 64)
	if err != nil {
		return "", usageError("/vote <team id> <prize>")
	}
	votes, err := c.hackathon.Vote(ctx, user.Account(), domain.TeamID(id), a[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Vote counted, team #%d has %d votes for %s", id, votes, a[1]), nil
}

func (c *VoteCommand) Help() string {
	return "Votes for a team in a prize category. Usage: /vote <team id> <prize>"
}

func (c *VoteCommand) Permission() mapset.Set[domain.Role] {
	return roles(domain.RoleJuror)
}

func (c *VoteCommand) Visibility() mapset.Set[domain.Role] {
	return roles(domain.RoleJuror)
}

type WinnerCommand struct {
	hackathon *service.Hackathon
}

func (c *WinnerCommand) Run(_ context.Context, _ model.User, args string) (string, error) {
	name := strings.TrimSpace(args)
	if name == "" {
		return "", usageError("/winner <prize>")
	}
	id, votes, err := c.hackathon.Winner(name)
	if err != nil {
		return "", err
	}
	t, err := c.hackathon.Team(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is leading %s with %d votes", printTeam(t), name, votes), nil
}

func (c *WinnerCommand) Help() string {
	return "Shows the leading team of a prize. Usage: /winner <prize>"
}

func (c *WinnerCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *WinnerCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}
