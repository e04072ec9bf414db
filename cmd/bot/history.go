package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/ticketing"
)

// maxEmbedFields is the most fields discord accepts in one embed.
const maxEmbedFields = 25

// historyCmdProcessor lists the tickets a user has opened in the guild.
func historyCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	user := opts[userOptionName].UserValue(nil)

	tickets, err := a.Records().GetTicketsByOwner(context.Background(), i.GuildID, user.ID)
	if err != nil {
		return fmt.Errorf("error getting ticket history: %w", err)
	}

	return respondEmbedEphemeral(a, i, historyEmbed(a.Tickets().Theme(), user.ID, tickets))
}

func historyEmbed(theme ticketing.Theme, userID string, tickets []*entities.Ticket) *discordgo.MessageEmbed {
	if len(tickets) == 0 {
		return theme.Embed(theme.BotColor, "Ticket history", fmt.Sprintf("<@%s> has not opened any tickets.", userID))
	}

	embed := theme.Embed(theme.BotColor, "Ticket history", fmt.Sprintf("Tickets opened by <@%s>", userID))
	for _, t := range tickets {
		if len(embed.Fields) == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%s)", ticketing.ChannelName(t.Number), t.Category),
			Value: historyEntry(t),
		})
	}
	return embed
}

func historyEntry(t *entities.Ticket) string {
	if t.IsOpen() {
		if t.CreatedAt.IsZero() {
			return "Open"
		}
		return fmt.Sprintf("Open since <t:%d:f>", t.CreatedAt.Time().Unix())
	}

	lines := []string{"Closed"}
	if !t.ClosedAt.IsZero() {
		lines[0] = fmt.Sprintf("Closed <t:%d:f>", t.ClosedAt.Time().Unix())
	}
	if t.ClosedBy != "" {
		lines[0] += fmt.Sprintf(" by <@%s>", t.ClosedBy)
	}
	if t.Reason != "" {
		lines = append(lines, "Reason: "+t.Reason)
	}
	if t.TranscriptURL != "" {
		lines = append(lines, fmt.Sprintf("[Transcript](%s)", t.TranscriptURL))
	}
	return strings.Join(lines, "\n")
}
