package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/custom"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
)

// OpenRequest is a request to open a ticket.
type OpenRequest struct {
	// GuildID is the ID of the guild to open the ticket in.
	GuildID string

	// User is the user opening the ticket.
	User *discordgo.User

	// Chooser asks the user for a category when the guild has categories. Without a chooser the ticket gets the
	// default category.
	Chooser CategoryChooser
}

// Opened is a ticket that has been opened.
type Opened struct {
	// Channel is the ticket channel.
	Channel *discordgo.Channel

	// Number is the sequence number of the ticket.
	Number int

	// Category is the name of the category of the ticket.
	Category string
}

// Open opens a ticket for the user. The business rejections are ErrMissingPermission, ErrAlreadyExists,
// ErrLimitReached and ErrTimeout; anything unexpected is a *CreationError.
func (m *Manager) Open(ctx context.Context, req OpenRequest) (opened *Opened, err error) {
	defer func() {
		TotalTicketsOpened.WithLabelValues(openOutcome(err)).Inc()

		var ce *CreationError
		if errors.As(err, &ce) {
			logging.Diagnostic(m.l, "openTicket", err,
				slog.String(logging.KeyGuild, req.GuildID),
				slog.String(logging.KeyUser, req.User.ID),
			)
		}
	}()

	perms, err := m.platform.BotGuildPermissions(req.GuildID)
	if err != nil {
		return nil, &CreationError{Op: "checking permissions", Err: err}
	} else if !hasPermissions(perms, openPermissions) {
		return nil, ErrMissingPermission
	}

	settings, err := m.settings.GetSettings(ctx, req.GuildID)
	if err != nil {
		return nil, &CreationError{Op: "getting settings", Err: err}
	}

	unlock := m.locks.Lock(req.GuildID)
	defer unlock()

	if _, err := m.checkCapacity(req.GuildID, req.User.ID, settings.Limit); err != nil {
		return nil, err
	}

	category := entities.TicketCategory{Name: DefaultCategory}
	if len(settings.Categories) > 0 && req.Chooser != nil {
		// Nobody else should wait for this user to choose.
		unlock()

		category, err = m.chooseCategory(ctx, req.Chooser, settings)
		if err != nil {
			return nil, err
		}

		unlock = m.locks.Lock(req.GuildID)
		defer unlock()
	}

	openCount, err := m.checkCapacity(req.GuildID, req.User.ID, settings.Limit)
	if err != nil {
		return nil, err
	}

	ch, err := m.createChannel(req.GuildID, req.User.ID, openCount+1, category)
	if err != nil {
		return nil, err
	}
	unlock()

	opened = &Opened{
		Channel:  ch,
		Number:   openCount + 1,
		Category: category.Name,
	}

	m.saveRecord(ctx, &entities.Ticket{
		Number:    opened.Number,
		GuildID:   req.GuildID,
		ChannelID: ch.ID,
		OwnerID:   req.User.ID,
		Category:  category.Name,
		Status:    entities.TicketStatusOpen,
		CreatedAt: custom.Datetime(m.now().UTC()),
	})

	if _, err := m.platform.SendMessage(ch.ID, m.welcomeMessage(req.User, opened.Number, category.Name)); err != nil {
		return opened, &CreationError{Op: "sending welcome message", Err: err}
	}

	m.l.Info("Ticket opened",
		slog.String(logging.KeyGuild, req.GuildID),
		slog.String(logging.KeyChannel, ch.ID),
		slog.String(logging.KeyUser, req.User.ID),
		slog.String("category", category.Name),
	)

	return opened, nil
}

// checkCapacity rejects the user when they already have a ticket or the guild is at its limit. It returns the
// number of open tickets.
func (m *Manager) checkCapacity(guildID, userID string, limit int) (int, error) {
	channels, err := m.platform.GuildChannels(guildID)
	if err != nil {
		return 0, &CreationError{Op: "getting guild channels", Err: err}
	}

	if FindTicketByOwner(channels, userID) != nil {
		return 0, ErrAlreadyExists
	}

	open := len(FilterTicketChannels(channels))
	if limit > 0 && open >= limit {
		return 0, ErrLimitReached
	}
	return open, nil
}

func (m *Manager) chooseCategory(ctx context.Context, chooser CategoryChooser, settings *entities.TicketingConfig) (entities.TicketCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, m.selectTimeout)
	defer cancel()

	name, err := chooser.ChooseCategory(ctx, settings.Categories)
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return entities.TicketCategory{}, ErrTimeout
	case err != nil:
		return entities.TicketCategory{}, &CreationError{Op: "choosing category", Err: err}
	}

	category, ok := settings.Category(name)
	if !ok {
		return entities.TicketCategory{}, &CreationError{Op: "choosing category", Err: fmt.Errorf("unknown category %q", name)}
	}
	return *category, nil
}

func (m *Manager) createChannel(guildID, ownerID string, number int, category entities.TicketCategory) (*discordgo.Channel, error) {
	botRole, err := m.platform.BotHighestRole(guildID)
	if err != nil {
		return nil, &CreationError{Op: "getting bot role", Err: err}
	}

	roles, err := m.platform.GuildRoles(guildID)
	if err != nil {
		return nil, &CreationError{Op: "getting guild roles", Err: err}
	}

	ch, err := m.platform.CreateChannel(guildID, discordgo.GuildChannelCreateData{
		Name:                 ChannelName(number),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                Topic{OwnerID: ownerID, Category: category.Name}.String(),
		PermissionOverwrites: ticketOverwrites(guildID, ownerID, botRole, category.StaffRoles, roles),
	})
	if err != nil {
		return nil, &CreationError{Op: "creating channel", Err: err}
	}
	return ch, nil
}

func (m *Manager) saveRecord(ctx context.Context, ticket *entities.Ticket) {
	if m.records == nil {
		return
	}
	if err := m.records.SaveTicket(ctx, ticket); err != nil {
		m.l.Warn("Error saving ticket record",
			slog.String(logging.KeyGuild, ticket.GuildID),
			slog.String(logging.KeyChannel, ticket.ChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}
