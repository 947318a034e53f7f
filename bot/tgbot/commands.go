package tgbot

import (
	"context"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
)

type Command interface {
	Run(ctx context.Context, user model.User, args string) (string, error)
	Help() string
	Permission() mapset.Set[domain.Role]
	Visibility() mapset.Set[domain.Role]
}

func roles(rs ...domain.Role) mapset.Set[domain.Role] {
	return mapset.NewSet[domain.Role](rs...)
}

func everyone() mapset.Set[domain.Role] {
	return roles(model.RoleGuest, domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleJuror, domain.RoleParticipant)
}

func admins() mapset.Set[domain.Role] {
	return roles(domain.RoleSuperAdmin, domain.RoleAdmin)
}

type Commands struct {
	list map[string]Command
}

func NewCommands(
	h *service.Hackathon,
	subFn func(ctx context.Context, chatID int64) error,
	unsubFn func(ctx context.Context, chatID int64) error,
	sendNotifFn func(msg string),
) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":  hc,
			"start": hc,
			"join": &JoinCommand{
				hackathon: h,
			},
			"me": &MeCommand{
				hackathon: h,
			},
			"team": &TeamCommand{
				hackathon: h,
			},
			"jointeam": &JoinTeamCommand{
				hackathon: h,
			},
			"teams": &TeamsCommand{
				hackathon: h,
			},
			"phase": &PhaseCommand{
				hackathon: h,
			},
			"advance": &AdvanceCommand{
				hackathon: h,
				notify:    sendNotifFn,
			},
			"prize": &PrizeCommand{
				hackathon: h,
			},
			"vote": &VoteCommand{
				hackathon: h,
			},
			"winner": &WinnerCommand{
				hackathon: h,
			},
			"sub": &SubCommand{
				sub: subFn,
			},
			"unsub": &UnsubCommand{
				unsub: unsubFn,
			},
		},
	}
	hc.commands = uc.list
	return &uc
}

func (uc *Commands) RunCommand(ctx context.Context, user model.User, cmd string, args string) (string, error) {
	command, ok := uc.list[cmd]
	if !ok || command.Permission().Intersect(user.Roles).Cardinality() == 0 {
		return "", ErrBadRequest
	}
	return command.Run(ctx, user, args)
}

// withRoles loads the hackathon roles of user; users without any are guests.
func withRoles(h *service.Hackathon, user model.User) model.User {
	user.Roles = roles(h.Roles(user.Account())...)
	if user.Roles.Cardinality() == 0 {
		user.Roles.Add(model.RoleGuest)
	}
	return user
}
