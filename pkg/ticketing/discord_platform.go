package ticketing

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
)

// historyPageSize is the most messages the platform returns in one page of history.
const historyPageSize = 100

// DiscordPlatform is the Platform backed by a Discord session.
type DiscordPlatform struct {
	s *discordgo.Session
}

// NewDiscordPlatform creates a platform from a Discord session.
func NewDiscordPlatform(s *discordgo.Session) *DiscordPlatform {
	return &DiscordPlatform{s: s}
}

func (p *DiscordPlatform) botID() (string, error) {
	if p.s.State == nil || p.s.State.User == nil {
		return "", errors.New("session is not ready")
	}
	return p.s.State.User.ID, nil
}

func (p *DiscordPlatform) botMember(guildID string) (*discordgo.Member, error) {
	botID, err := p.botID()
	if err != nil {
		return nil, err
	}

	if m, err := p.s.State.Member(guildID, botID); err == nil {
		return m, nil
	}

	m, err := p.s.GuildMember(guildID, botID)
	if err != nil {
		return nil, fmt.Errorf("error getting bot member: %w", err)
	}
	return m, nil
}

func (p *DiscordPlatform) guildOwner(guildID string) (string, error) {
	if g, err := p.s.State.Guild(guildID); err == nil {
		return g.OwnerID, nil
	}

	g, err := p.s.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("error getting guild: %w", err)
	}
	return g.OwnerID, nil
}

func (p *DiscordPlatform) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	channels, err := p.s.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild channels: %w", err)
	}
	return channels, nil
}

func (p *DiscordPlatform) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	roles, err := p.s.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild roles: %w", err)
	}
	return roles, nil
}

func (p *DiscordPlatform) BotGuildPermissions(guildID string) (int64, error) {
	member, err := p.botMember(guildID)
	if err != nil {
		return 0, err
	}

	ownerID, err := p.guildOwner(guildID)
	if err != nil {
		return 0, err
	}

	roles, err := p.GuildRoles(guildID)
	if err != nil {
		return 0, err
	}

	return memberPermissions(guildID, ownerID, member, roles), nil
}

func (p *DiscordPlatform) BotChannelPermissions(channelID string) (int64, error) {
	botID, err := p.botID()
	if err != nil {
		return 0, err
	}

	perms, err := p.s.UserChannelPermissions(botID, channelID)
	if err != nil {
		return 0, fmt.Errorf("error getting channel permissions: %w", err)
	}
	return perms, nil
}

func (p *DiscordPlatform) BotHighestRole(guildID string) (*discordgo.Role, error) {
	member, err := p.botMember(guildID)
	if err != nil {
		return nil, err
	}

	roles, err := p.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}

	role := highestRole(guildID, member, roles)
	if role == nil {
		return nil, fmt.Errorf("bot has no role in guild %s", guildID)
	}
	return role, nil
}

func (p *DiscordPlatform) CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	ch, err := p.s.GuildChannelCreateComplex(guildID, data)
	if err != nil {
		return nil, fmt.Errorf("error creating channel: %w", err)
	}
	return ch, nil
}

func (p *DiscordPlatform) DeleteChannel(channelID string) error {
	if _, err := p.s.ChannelDelete(channelID); err != nil {
		return fmt.Errorf("error deleting channel: %w", err)
	}
	return nil
}

func (p *DiscordPlatform) ChannelMessages(channelID string) ([]*discordgo.Message, error) {
	msgs, err := p.s.ChannelMessages(channelID, historyPageSize, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("error getting channel messages: %w", err)
	}
	return msgs, nil
}

func (p *DiscordPlatform) SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	m, err := p.s.ChannelMessageSendComplex(channelID, msg)
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return m, nil
}

func (p *DiscordPlatform) User(userID string) (*discordgo.User, error) {
	u, err := p.s.User(userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

var _ Platform = (*DiscordPlatform)(nil)
