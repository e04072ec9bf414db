package ticketing

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
)

// CloseButtonID is the custom ID of the close control in a ticket channel.
const CloseButtonID = "close_ticket_button"

const (
	// CloseEmoji is the emoji on the close button. (Padlock)
	CloseEmoji = "\U0001F512"

	// InfoEmoji is the emoji in the title of a close summary. (Information)
	InfoEmoji = "ℹ️"
)

// Theme is how the embeds the bot sends look.
type Theme struct {
	// BotColor is the colour of informational embeds.
	BotColor int

	// SuccessColor is the colour of embeds that report success.
	SuccessColor int

	// ErrorColor is the colour of embeds that report a failure.
	ErrorColor int

	// WarningColor is the colour of embeds that warn the user.
	WarningColor int

	// Footer is the footer text of every embed.
	Footer string
}

// DefaultTheme is the theme used when none is configured.
var DefaultTheme = Theme{
	BotColor:     0x00FEFF,
	SuccessColor: 0x00A56A,
	ErrorColor:   0xD61A3C,
	WarningColor: 0xF7E919,
}

// Embed creates an embed with the theme's footer.
func (t Theme) Embed(color int, title, description string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	if t.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: t.Footer}
	}
	return e
}

// welcomeMessage is the first message of a ticket channel.
func (m *Manager) welcomeMessage(owner *discordgo.User, number int, category string) *discordgo.MessageSend {
	welcome := m.theme.Embed(m.theme.BotColor, "",
		"> *Hello, thank you for opening a ticket. You can explain the reason for opening a ticket until our staff can take care of you.*")
	welcome.Author = &discordgo.MessageEmbedAuthor{
		Name:    fmt.Sprintf("Ticket for: %s #%d", owner.Username, number),
		IconURL: owner.AvatarURL(""),
	}
	welcome.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Category",
			Value:  category,
			Inline: true,
		},
	}

	notice := m.theme.Embed(m.theme.BotColor, "",
		"> *Our staff will get back to you shortly, please be patient. Thank you for your understanding.*")
	notice.Author = &discordgo.MessageEmbedAuthor{
		Name: "A staff member will claim this ticket soon!",
	}

	return &discordgo.MessageSend{
		Content: owner.Mention(),
		Embeds:  []*discordgo.MessageEmbed{welcome, notice},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Close Ticket", CloseEmoji),
						Style:    discordgo.DangerButton,
						CustomID: CloseButtonID,
					},
				},
			},
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{owner.ID},
		},
	}
}

// closeSummary is the message logged when a ticket is closed.
func (m *Manager) closeSummary(channelName string, opener, closer *discordgo.User, reason, transcriptURL string) *discordgo.MessageSend {
	embed := m.theme.Embed(m.theme.BotColor, "", "")
	embed.Author = &discordgo.MessageEmbedAuthor{
		Name: fmt.Sprintf("%s Ticket Closed", InfoEmoji),
	}

	fields := make([]*discordgo.MessageEmbedField, 0, 4)
	if reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Reason",
			Value:  reason,
			Inline: false,
		})
	}
	fields = append(fields,
		&discordgo.MessageEmbedField{
			Name:   "Ticket",
			Value:  channelName,
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Opened by",
			Value:  username(opener),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Closed by",
			Value:  username(closer),
			Inline: true,
		},
	)
	embed.Fields = fields

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if transcriptURL != "" {
		msg.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label: "Transcript",
						Style: discordgo.LinkButton,
						URL:   transcriptURL,
					},
				},
			},
		}
	}
	return msg
}

func username(u *discordgo.User) string {
	if u == nil || u.Username == "" {
		return unknownUser
	}
	return u.Username
}
