package tgbot

import (
	"context"
	"errors"
	"fmt"

	"github.com/goserg/hackathon/bot/botstorage"
	botmodel "github.com/goserg/hackathon/bot/model"
	"github.com/goserg/hackathon/internal/config"
	"github.com/goserg/hackathon/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	bot *tgbotapi.BotAPI

	hackathon  *service.Hackathon
	botStorage botstorage.BotStorage
	log        *logrus.Entry

	subs subscriptions

	commands *Commands
}

var ErrBadRequest = errors.New("unknown command, see /help")

func usageError(usage string) error {
	return errors.New("usage: " + usage)
}

func New(ctx context.Context, h *service.Hackathon, bs botstorage.BotStorage, cfg config.Config, log *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TgBot.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}
	bot.Debug = cfg.Server.Debug

	subs := newSubs()
	list, err := bs.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	for _, sub := range list {
		subs.Add(sub.Event, sub.ChatID)
	}

	b := Bot{
		bot:        bot,
		hackathon:  h,
		botStorage: bs,
		log:        log.WithField("from", "tg_bot"),
		subs:       subs,
	}
	b.commands = NewCommands(h, b.subscribe, b.unsubscribe, func(msg string) {
		b.sendNotification(botmodel.PhaseChanged, msg)
	})
	b.log.WithField("username", bot.Self.UserName).Info("bot authorized")
	return &b, nil
}

// Run handles updates until ctx is done.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handleMessage(ctx, update)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	tgUser := update.SentFrom()
	if tgUser == nil {
		return
	}
	log := b.log.WithFields(logrus.Fields{
		"user_id": tgUser.ID,
		"text":    update.Message.Text,
	})
	user := withRoles(b.hackathon, botmodel.User{
		ID:        tgUser.ID,
		ChatID:    update.Message.Chat.ID,
		FirstName: tgUser.FirstName,
		Username:  tgUser.UserName,
	})

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	text, err := b.commands.RunCommand(ctx, user, update.Message.Command(), update.Message.CommandArguments())
	if err != nil {
		log.WithError(err).Debug("command failed")
		text = err.Error()
	}
	msg.Text = text
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
	}
}

func (b *Bot) subscribe(ctx context.Context, chatID int64) error {
	if err := b.botStorage.Subscribe(ctx, chatID, botmodel.PhaseChanged); err != nil {
		return err
	}
	b.subs.Add(botmodel.PhaseChanged, chatID)
	return nil
}

func (b *Bot) unsubscribe(ctx context.Context, chatID int64) error {
	if err := b.botStorage.Unsubscribe(ctx, chatID, botmodel.PhaseChanged); err != nil {
		return err
	}
	b.subs.Remove(botmodel.PhaseChanged, chatID)
	return nil
}

func (b *Bot) sendNotification(event botmodel.EventType, text string) {
	for _, chatID := range b.subs.GetChatIDs(event) {
		msg := tgbotapi.NewMessage(chatID, text)
		if _, err := b.bot.Send(msg); err != nil {
			b.log.WithError(err).WithField("chat_id", chatID).Error("notification failed")
		}
	}
}
