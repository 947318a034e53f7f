package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	authservice "github.com/goserg/hackathon/internal/auth/service"
	"github.com/goserg/hackathon/internal/config"
	"github.com/goserg/hackathon/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var serverConfig, botConfig, account string
	flag.StringVar(&serverConfig, "server-config", "configs/server.toml", "server config file")
	flag.StringVar(&botConfig, "bot-config", "configs/bot.toml", "telegram bot config file")
	flag.StringVar(&account, "account", "", "account the token is issued for")
	flag.Parse()

	if account == "" {
		return errors.New("-account is required")
	}
	cfg, err := config.New(serverConfig, botConfig)
	if err != nil {
		return err
	}
	token, expires, err := authservice.New(cfg.Server).Issue(domain.Account(account))
	if err != nil {
		return err
	}
	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at", expires.Format(time.DateTime))
	return nil
}
