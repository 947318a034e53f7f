package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StorageMemory = "memory"
	StorageSqlite = "sqlite"
)

type TgBot struct {
	Enabled          bool   `toml:"enabled"`
	TelegramApiToken string `toml:"telegram_apitoken"`
	// SqliteFile keeps chat subscriptions; empty means in memory.
	SqliteFile       string `toml:"sqlite_file"`
}

type Server struct {
	Host      string        `toml:"host"`
	Port      int           `toml:"port"`
	Debug     bool          `toml:"debug_mode"`
	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  time.Duration `toml:"token_ttl"`
}

type Hackathon struct {
	SuperAdmin        string `toml:"superadmin"`
	MinMembersPerTeam int    `toml:"min_members_per_team"`
}

type Storage struct {
	Mode       string `toml:"mode"`
	SqliteFile string `toml:"sqlite_file"`
}

type Config struct {
	TgBot     TgBot
	Server    Server
	Hackathon Hackathon
	Storage   Storage
}

type serverFile struct {
	Server    Server    `toml:"server"`
	Hackathon Hackathon `toml:"hackathon"`
	Storage   Storage   `toml:"storage"`
}

func New(serverPath, botPath string) (Config, error) {
	var tgBotCfg TgBot
	_, err := toml.DecodeFile(botPath, &tgBotCfg)
	if err != nil {
		return Config{}, fmt.Errorf("bot config: %w", err)
	}
	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		tgBotCfg.TelegramApiToken = token
	}

	var serverCfg serverFile
	_, err = toml.DecodeFile(serverPath, &serverCfg)
	if err != nil {
		return Config{}, fmt.Errorf("server config: %w", err)
	}
	secret := os.Getenv("HACKATHON_JWT_SECRET")
	if secret != "" {
		serverCfg.Server.JWTSecret = secret
	}
	if serverCfg.Server.TokenTTL == 0 {
		serverCfg.Server.TokenTTL = 24 * time.Hour
	}
	if serverCfg.Storage.Mode == "" {
		serverCfg.Storage.Mode = StorageMemory
	}

	cfg := Config{
		TgBot:     tgBotCfg,
		Server:    serverCfg.Server,
		Hackathon: serverCfg.Hackathon,
		Storage:   serverCfg.Storage,
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Hackathon.SuperAdmin == "" {
		errs = append(errs, errors.New("hackathon.superadmin is empty"))
	}
	if c.Server.JWTSecret == "" {
		errs = append(errs, errors.New("server.jwt_secret is empty"))
	}
	switch c.Storage.Mode {
	case StorageMemory:
	case StorageSqlite:
		if c.Storage.SqliteFile == "" {
			errs = append(errs, errors.New("storage.sqlite_file is empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage mode %q", c.Storage.Mode))
	}
	if c.TgBot.Enabled && c.TgBot.TelegramApiToken == "" {
		errs = append(errs, errors.New("telegram bot is enabled without a token"))
	}
	return errors.Join(errs...)
}
