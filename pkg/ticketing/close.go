package ticketing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/custom"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
	"github.com/Jacobbrewer1/tickets/pkg/messages"
)

// Close archives the ticket channel and deletes it. The ticket has only been closed when CloseSuccess is returned,
// in which case the channel is gone.
func (m *Manager) Close(ctx context.Context, ch *discordgo.Channel, closedBy *discordgo.User, reason string) (status CloseStatus) {
	start := time.Now()
	defer func() {
		TotalTicketsClosed.WithLabelValues(status.String()).Inc()
		CloseDuration.Observe(time.Since(start).Seconds())
	}()

	fail := func(err error) CloseStatus {
		logging.Diagnostic(m.l, "closeTicket", err,
			slog.String(logging.KeyGuild, ch.GuildID),
			slog.String(logging.KeyChannel, ch.ID),
		)
		return CloseError
	}

	perms, err := m.platform.BotChannelPermissions(ch.ID)
	if err != nil {
		return fail(fmt.Errorf("error getting channel permissions: %w", err))
	} else if !hasPermissions(perms, closePermissions) {
		return CloseMissingPermissions
	}

	settings, err := m.settings.GetSettings(ctx, ch.GuildID)
	if err != nil {
		return fail(fmt.Errorf("error getting settings: %w", err))
	}

	msgs, err := m.platform.ChannelMessages(ch.ID)
	if err != nil {
		return fail(fmt.Errorf("error getting channel messages: %w", err))
	}

	transcriptURL := m.uploadTranscript(ctx, ch, BuildTranscript(msgs))

	md, ok := m.ParseTicketMetadata(ch)
	if !ok {
		md = new(Metadata)
	}

	if err := m.platform.DeleteChannel(ch.ID); err != nil {
		return fail(fmt.Errorf("error deleting channel: %w", err))
	}

	if settings.LogChannelID != "" {
		summary := m.closeSummary(ch.Name, md.Owner, closedBy, reason, transcriptURL)
		if _, err := m.platform.SendMessage(settings.LogChannelID, summary); err != nil {
			m.l.Warn("Error sending close summary to the log channel",
				slog.String(logging.KeyGuild, ch.GuildID),
				slog.String(logging.KeyChannel, settings.LogChannelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}

	m.closeRecord(ctx, ch, md, closedBy, reason, transcriptURL)

	m.l.Info("Ticket closed",
		slog.String(logging.KeyGuild, ch.GuildID),
		slog.String(logging.KeyChannel, ch.ID),
	)

	return CloseSuccess
}

// uploadTranscript returns the link to the uploaded transcript, or an empty string when it could not be uploaded.
func (m *Manager) uploadTranscript(ctx context.Context, ch *discordgo.Channel, transcript string) string {
	if m.paster == nil {
		return ""
	}

	bin, err := m.paster.Post(ctx, transcript, "Ticket Logs for "+ch.Name)
	if err != nil {
		m.l.Warn("Error uploading transcript",
			slog.String(logging.KeyChannel, ch.ID),
			slog.String(logging.KeyError, err.Error()),
		)
		return ""
	}
	return bin.Short
}

func (m *Manager) closeRecord(ctx context.Context, ch *discordgo.Channel, md *Metadata, closedBy *discordgo.User, reason, transcriptURL string) {
	if m.records == nil {
		return
	}

	ticket, err := m.records.GetTicket(ctx, ch.GuildID, ch.ID)
	if err != nil {
		// Tickets opened before records were kept.
		ticket = &entities.Ticket{
			GuildID:   ch.GuildID,
			ChannelID: ch.ID,
			OwnerID:   md.OwnerID,
			Category:  md.Category,
		}
	}

	ticket.Status = entities.TicketStatusClosed
	ticket.Reason = reason
	ticket.TranscriptURL = transcriptURL
	ticket.ClosedAt = custom.Datetime(m.now().UTC())
	if closedBy != nil {
		ticket.ClosedBy = closedBy.ID
	}

	m.saveRecord(ctx, ticket)
}

// CloseAll closes every ticket of the guild one after the other. It returns how many were closed and how many
// were not.
func (m *Manager) CloseAll(ctx context.Context, guildID string, actor *discordgo.User) (success, failed int, err error) {
	tickets, err := m.ListTicketChannels(guildID)
	if err != nil {
		return 0, 0, err
	}

	for _, ch := range tickets {
		if m.Close(ctx, ch, actor, messages.ForceCloseReason) == CloseSuccess {
			success++
		} else {
			failed++
		}
	}

	m.l.Info("Closed all tickets",
		slog.String(logging.KeyGuild, guildID),
		slog.Int("success", success),
		slog.Int("failed", failed),
	)

	return success, failed, nil
}
