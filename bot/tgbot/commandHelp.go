package tgbot

import (
	"context"
	"sort"
	"strings"

	"github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
)

type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ context.Context, user model.User, args string) (string, error) {
	visible := make([]string, 0, len(c.commands))
	for name, command := range c.commands {
		if command.Visibility().Intersect(user.Roles).Cardinality() == 0 {
			continue
		}
		if args == name {
			return command.Help(), nil
		}
		visible = append(visible, name)
	}
	sort.Strings(visible)
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range visible {
		b.WriteString("/")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("Use /help <command> for details")
	return b.String(), nil
}

func (c *HelpCommand) Help() string {
	return "Lists the available commands"
}

func (c *HelpCommand) Permission() mapset.Set[domain.Role] {
	return everyone()
}

func (c *HelpCommand) Visibility() mapset.Set[domain.Role] {
	return everyone()
}
