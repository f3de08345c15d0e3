package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/gesticasa/inmosuite/internal/migration"
	"github.com/gesticasa/inmosuite/internal/observability"
	"github.com/gesticasa/inmosuite/internal/server"
	"github.com/gesticasa/inmosuite/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
