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

type TeamCommand struct {
	hackathon *service.Hackathon
}

func (c *TeamCommand) Run(ctx context.Context, user model.User, args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "", usageError("/team <name>")
	}
	t, err := c.hackathon.CreateTeam(ctx, user.Account(), args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Team created, others can join with /jointeam %d", t.ID), nil
}

func (c *TeamCommand) Help() string {
	return "Creates a team you own. Usage: /team <name>"
}

func (c *TeamCommand) Permission() mapset.Set[domain.Role] {
	return roles(domain.RoleParticipant)
}

func (c *TeamCommand) Visibility() mapset.Set[domain.Role] {
	return roles(domain.RoleParticipant)
}

type JoinTeamCommand struct {
	hackathon *service.Hackathon
}

func (c *JoinTeamCommand) Run(ctx context.Context, user model.User, args string) (string, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return "", usageError("/jointeam <team id>")
	}
	t, err := c.hackathon.JoinTeam(ctx, user.Account(), domain.TeamID(id))
	if err != nil {
		return "", err
	}
	return "You joined the team\n" + printTeam(t), nil
}

func (c *JoinTeamCommand) Help() string {
	return "Joins an existing team. Usage: /jointeam <team id>"
}

func (c *JoinTeamCommand) Permission() mapset.Set[domain.Role] {
	return roles(domain.RoleParticipant)
}

func (c *JoinTeamCommand) Visibility() mapset.Set[domain.Role] {
	return roles(domain.RoleParticipant)
}

type TeamsCommand struct {
	hackathon *service.Hackathon
}

func (c *TeamsCommand) Run(context.Context, model.User, string) (string, error) {
	teams := c.hackathon.Teams()
	if len(teams) == 0 {
		return "There are no teams yet", nil
	}
	lines := make([]string, 0, len(teams))
	for _, t := range teams {
		lines = append(lines, printTeam(t))
	}
	return strings.Join(lines, "\n"), nil
}

func (c *TeamsCommand) Help() string {
	return "Lists all teams"
}

func (c *TeamsCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *TeamsCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}

func printTeam(t domain.Team) string {
	return fmt.Sprintf("#%d %s (%d/%d members)", t.ID, t.Name, t.Size(), domain.MaxMembersPerTeam)
}
