package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/cmd/bot/config"
	"github.com/Jacobbrewer1/tickets/pkg/dataaccess"
	"github.com/Jacobbrewer1/tickets/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/tickets/pkg/paste"
	"github.com/Jacobbrewer1/tickets/pkg/ticketing"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
)

// NewSession creates the discord session. The connection is opened when the app runs.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return s, nil
}

// NewMongoClient connects to MongoDB.
func NewMongoClient(ctx context.Context, l *slog.Logger, cfg *config.Config) (*mongo.Client, error) {
	mongoConn := new(connection.MongoDB)
	mongoConn.ConnectionString = cfg.Mongo.Uri

	client, err := mongoConn.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	l.Debug("Connected to MongoDB")
	return client, nil
}

// NewSettingsStore creates the settings store with the configured defaults.
func NewSettingsStore(dal dataaccess.GuildDal, cfg *config.Config) *dataaccess.SettingsStore {
	return dataaccess.NewSettingsStore(dal, cfg.Tickets.Defaults)
}

// NewPasteClient creates the client of the paste service transcripts are uploaded to.
func NewPasteClient(l *slog.Logger, cfg *config.Config) *paste.Client {
	opts := []paste.Option{
		paste.WithBaseURL(cfg.Paste.Url),
	}
	if cfg.Paste.ShortUrl != "" {
		opts = append(opts, paste.WithShortURL(cfg.Paste.ShortUrl))
	}
	if cfg.Paste.RawUrl != "" {
		opts = append(opts, paste.WithRawURL(cfg.Paste.RawUrl))
	}
	if cfg.Paste.Rate > 0 && cfg.Paste.Burst > 0 {
		opts = append(opts, paste.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Paste.Rate), cfg.Paste.Burst)))
	}
	return paste.NewClient(l, opts...)
}

// NewTheme converts the configured theme.
func NewTheme(cfg *config.Config) ticketing.Theme {
	return ticketing.Theme{
		BotColor:     int(cfg.Theme.BotColor),
		SuccessColor: int(cfg.Theme.SuccessColor),
		ErrorColor:   int(cfg.Theme.ErrorColor),
		WarningColor: int(cfg.Theme.WarningColor),
		Footer:       cfg.Theme.Footer,
	}
}

// NewTicketManager creates the ticket manager.
func NewTicketManager(
	l *slog.Logger,
	cfg *config.Config,
	platform *ticketing.DiscordPlatform,
	settings *dataaccess.SettingsStore,
	pasteClient *paste.Client,
	records dataaccess.TicketDal,
) *ticketing.Manager {
	return ticketing.NewManager(l, platform, settings, pasteClient,
		ticketing.WithRecords(records),
		ticketing.WithTheme(NewTheme(cfg)),
		ticketing.WithSelectTimeout(cfg.Tickets.SelectTimeout),
	)
}
