package ticketing

import (
	"context"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/paste"
)

// Platform is the part of the chat platform that tickets are built on.
type Platform interface {
	// GuildChannels returns the channels of a guild in the order the platform enumerates them.
	GuildChannels(guildID string) ([]*discordgo.Channel, error)

	// GuildRoles returns the roles of a guild.
	GuildRoles(guildID string) ([]*discordgo.Role, error)

	// BotGuildPermissions returns the permissions the bot has in a guild.
	BotGuildPermissions(guildID string) (int64, error)

	// BotChannelPermissions returns the effective permissions the bot has in a channel.
	BotChannelPermissions(channelID string) (int64, error)

	// BotHighestRole returns the highest role of the bot in a guild.
	BotHighestRole(guildID string) (*discordgo.Role, error)

	// CreateChannel creates a channel in a guild.
	CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)

	// DeleteChannel deletes a channel.
	DeleteChannel(channelID string) error

	// ChannelMessages returns the history of a channel, newest first, as far as one page of history reaches.
	ChannelMessages(channelID string) ([]*discordgo.Message, error)

	// SendMessage sends a message to a channel.
	SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)

	// User looks up a user.
	User(userID string) (*discordgo.User, error)
}

// SettingsStore provides the ticket settings of guilds.
type SettingsStore interface {
	GetSettings(ctx context.Context, guildID string) (*entities.TicketingConfig, error)
}

// Paster uploads transcripts.
type Paster interface {
	Post(ctx context.Context, content, title string) (*paste.Bin, error)
}

// RecordStore keeps a record of every ticket.
type RecordStore interface {
	SaveTicket(ctx context.Context, ticket *entities.Ticket) error
	GetTicket(ctx context.Context, guildID string, channelID string) (*entities.Ticket, error)
}

// CategoryChooser asks the user that is opening a ticket to pick one of the categories. It returns the name of
// the picked category, or an error once the context is done.
type CategoryChooser interface {
	ChooseCategory(ctx context.Context, categories []entities.TicketCategory) (string, error)
}

// CategoryChooserFunc adapts a function to a CategoryChooser.
type CategoryChooserFunc func(ctx context.Context, categories []entities.TicketCategory) (string, error)

// ChooseCategory implements CategoryChooser.
func (f CategoryChooserFunc) ChooseCategory(ctx context.Context, categories []entities.TicketCategory) (string, error) {
	return f(ctx, categories)
}
