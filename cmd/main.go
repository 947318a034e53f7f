package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goserg/hackathon/bot/botstorage"
	botmem "github.com/goserg/hackathon/bot/botstorage/mem"
	botsqlite "github.com/goserg/hackathon/bot/botstorage/sqlite"
	"github.com/goserg/hackathon/bot/tgbot"
	authservice "github.com/goserg/hackathon/internal/auth/service"
	"github.com/goserg/hackathon/internal/config"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/logger"
	"github.com/goserg/hackathon/internal/service"
	"github.com/goserg/hackathon/internal/storage"
	"github.com/goserg/hackathon/internal/storage/mem"
	"github.com/goserg/hackathon/internal/storage/sqlite"
	"github.com/goserg/hackathon/internal/web"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var serverConfig, botConfig string
	flag.StringVar(&serverConfig, "server-config", "configs/server.toml", "server config file")
	flag.StringVar(&botConfig, "bot-config", "configs/bot.toml", "telegram bot config file")
	flag.Parse()

	cfg, err := config.New(serverConfig, botConfig)
	if err != nil {
		return err
	}
	l := logger.New(cfg.Server.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, journal, closeStorage, err := openStorage(l, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()

	h, err := service.New(ctx, service.Config{
		SuperAdmin:        domain.Account(cfg.Hackathon.SuperAdmin),
		MinMembersPerTeam: cfg.Hackathon.MinMembersPerTeam,
	}, tokens, journal, l)
	if err != nil {
		return err
	}

	if cfg.TgBot.Enabled {
		bs, closeBotStorage, err := openBotStorage(l, cfg.TgBot)
		if err != nil {
			return err
		}
		defer closeBotStorage()
		bot, err := tgbot.New(ctx, h, bs, cfg, l)
		if err != nil {
			return err
		}
		go bot.Run(ctx)
	}

	server := web.New(h, cfg.Server, authservice.New(cfg.Server), l)
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			l.WithError(err).Error("server shutdown")
		}
	}()
	return server.Serve()
}

func openStorage(l *logrus.Logger, cfg config.Storage) (storage.TokenLedger, storage.Journal, func(), error) {
	if cfg.Mode == config.StorageSqlite {
		s, err := sqlite.New(l, cfg.SqliteFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, func() {
			if err := s.Close(); err != nil {
				l.WithError(err).Error("close storage")
			}
		}, nil
	}
	s := mem.New()
	return s, s, func() {}, nil
}

func openBotStorage(l *logrus.Logger, cfg config.TgBot) (botstorage.BotStorage, func(), error) {
	if cfg.SqliteFile == "" {
		return botmem.New(), func() {}, nil
	}
	s, err := botsqlite.New(l, cfg.SqliteFile)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {
		if err := s.Close(); err != nil {
			l.WithError(err).Error("close bot storage")
		}
	}, nil
}
