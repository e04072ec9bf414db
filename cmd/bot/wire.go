//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/Jacobbrewer1/tickets/cmd/bot/config"
	"github.com/Jacobbrewer1/tickets/pkg/collector"
	"github.com/Jacobbrewer1/tickets/pkg/dataaccess"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
	"github.com/Jacobbrewer1/tickets/pkg/ticketing"
	"github.com/google/wire"
	"github.com/gorilla/mux"
)

func InitializeApp(ctx context.Context) (*App, error) {
	wire.Build(
		wire.Value(logging.Name(config.AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		config.Read,
		NewSession,
		NewMongoClient,
		dataaccess.NewGuildDal,
		dataaccess.NewTicketDal,
		NewSettingsStore,
		NewPasteClient,
		ticketing.NewDiscordPlatform,
		NewTicketManager,
		collector.New,
		mux.NewRouter,
		NewApp,
	)
	return new(App), nil
}
