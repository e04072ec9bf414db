package dataaccess

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsStore reads the ticket settings of guilds. Guilds that have never been configured get the defaults.
type SettingsStore struct {
	dal      GuildDal
	defaults entities.TicketingConfig
}

// NewSettingsStore creates a settings store backed by the guild data access layer.
func NewSettingsStore(dal GuildDal, defaults entities.TicketingConfig) *SettingsStore {
	return &SettingsStore{
		dal:      dal,
		defaults: defaults,
	}
}

// GetGuild gets the guild configuration, creating it from the defaults when the guild has not been stored yet.
func (s *SettingsStore) GetGuild(ctx context.Context, guildID string) (*entities.Guild, error) {
	guild, err := s.dal.GetGuildByID(ctx, guildID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &entities.Guild{
			ID:        guildID,
			Ticketing: s.Defaults(),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting guild settings: %w", err)
	}
	return guild, nil
}

// GetSettings gets the ticket settings of a guild.
func (s *SettingsStore) GetSettings(ctx context.Context, guildID string) (*entities.TicketingConfig, error) {
	guild, err := s.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return &guild.Ticketing, nil
}

// Update applies fn to the guild configuration and saves the result.
func (s *SettingsStore) Update(ctx context.Context, guildID string, fn func(cfg *entities.TicketingConfig) error) (*entities.TicketingConfig, error) {
	guild, err := s.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := fn(&guild.Ticketing); err != nil {
		return nil, err
	}

	if err := s.dal.SaveGuild(ctx, guild); err != nil {
		return nil, fmt.Errorf("error saving guild settings: %w", err)
	}
	return &guild.Ticketing, nil
}

// Defaults returns a copy of the default settings.
func (s *SettingsStore) Defaults() entities.TicketingConfig {
	cfg := s.defaults
	cfg.Categories = make([]entities.TicketCategory, len(s.defaults.Categories))
	for i, c := range s.defaults.Categories {
		cfg.Categories[i] = entities.TicketCategory{
			Name:       c.Name,
			StaffRoles: append([]string(nil), c.StaffRoles...),
		}
	}
	return cfg
}
