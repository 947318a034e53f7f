package embedded

import "embed"

//go:embed "migrations"
var Migrations embed.FS

//go:embed "bot/migrations"
var BotMigrations embed.FS
