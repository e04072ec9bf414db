package ticketing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
)

// DefaultSelectTimeout is how long a user has to choose a category.
const DefaultSelectTimeout = 60 * time.Second

// Manager opens and closes the tickets of every guild the bot is in.
type Manager struct {
	l             *slog.Logger
	platform      Platform
	settings      SettingsStore
	paster        Paster
	records       RecordStore
	locks         *guildLocks
	theme         Theme
	selectTimeout time.Duration
	now           func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(m *Manager)

// WithRecords mirrors every ticket into the record store.
func WithRecords(records RecordStore) ManagerOption {
	return func(m *Manager) {
		m.records = records
	}
}

// WithTheme sets the look of the messages the manager sends.
func WithTheme(theme Theme) ManagerOption {
	return func(m *Manager) {
		m.theme = theme
	}
}

// WithSelectTimeout sets how long a user has to choose a category.
func WithSelectTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.selectTimeout = d
		}
	}
}

// WithClock sets the clock used to timestamp ticket records.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new ticket manager.
func NewManager(l *slog.Logger, platform Platform, settings SettingsStore, paster Paster, opts ...ManagerOption) *Manager {
	m := &Manager{
		l:             l,
		platform:      platform,
		settings:      settings,
		paster:        paster,
		locks:         newGuildLocks(),
		theme:         DefaultTheme,
		selectTimeout: DefaultSelectTimeout,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Theme returns the theme of the manager.
func (m *Manager) Theme() Theme {
	return m.theme
}

// ListTicketChannels returns the ticket channels of a guild in the order the platform enumerates them.
func (m *Manager) ListTicketChannels(guildID string) ([]*discordgo.Channel, error) {
	channels, err := m.platform.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild channels: %w", err)
	}
	return FilterTicketChannels(channels), nil
}

// FindTicketByOwner returns the ticket channel the user owns in the guild, or nil.
func (m *Manager) FindTicketByOwner(guildID, userID string) (*discordgo.Channel, error) {
	channels, err := m.platform.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild channels: %w", err)
	}
	return FindTicketByOwner(channels, userID), nil
}

// Metadata is what a ticket channel tells about its ticket.
type Metadata struct {
	// OwnerID is the ID of the user that opened the ticket.
	OwnerID string

	// Owner is the user that opened the ticket. It is nil when the user could not be looked up.
	Owner *discordgo.User

	// Category is the name of the category of the ticket.
	Category string
}

// ParseTicketMetadata reads the metadata of a ticket channel. It reports false when the channel is not a ticket.
func (m *Manager) ParseTicketMetadata(ch *discordgo.Channel) (*Metadata, bool) {
	if ch == nil {
		return nil, false
	}

	t, ok := ParseTopic(ch.Topic)
	if !ok {
		return nil, false
	}

	md := &Metadata{
		OwnerID:  t.OwnerID,
		Category: t.Category,
	}

	if t.OwnerID != "" {
		owner, err := m.platform.User(t.OwnerID)
		if err != nil {
			m.l.Debug("Error looking up ticket owner",
				slog.String(logging.KeyChannel, ch.ID),
				slog.String(logging.KeyUser, t.OwnerID),
				slog.String(logging.KeyError, err.Error()),
			)
		} else {
			md.Owner = owner
		}
	}

	return md, true
}
