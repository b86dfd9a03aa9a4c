package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/config"
	"github.com/parima/rentledger/internal/migration"
	"github.com/parima/rentledger/internal/observability"
	"github.com/parima/rentledger/internal/server"
	"github.com/parima/rentledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
