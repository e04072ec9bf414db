package ticketing

import (
	"context"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestManager_Close(t *testing.T) {
	tm := newTestManager(t, defaultConfig())
	alice := tm.platform.addUser("1", "alice")
	mod := tm.platform.addUser("2", "mod")

	ch := tm.platform.addTicket(1, alice.ID)
	tm.platform.messages[ch.ID] = []*discordgo.Message{
		{Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Author: alice, Content: "help"},
	}

	status := tm.Close(context.Background(), ch, mod, "solved")
	require.Equal(t, CloseSuccess, status)
	require.Zero(t, tm.platform.channelCount())

	require.Len(t, tm.paster.posted, 1)
	require.Contains(t, tm.paster.posted[0], "] - alice\nhelp\n")
	require.Equal(t, "Ticket Logs for tіcket-1", tm.paster.titles[0])

	sent := tm.platform.sentTo("logs")
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Embeds, 1)

	fields := sent[0].Embeds[0].Fields
	require.Len(t, fields, 4)
	require.Equal(t, "Reason", fields[0].Name)
	require.Equal(t, "solved", fields[0].Value)
	require.Equal(t, "Opened by", fields[2].Name)
	require.Equal(t, "alice", fields[2].Value)
	require.Equal(t, "Closed by", fields[3].Name)
	require.Equal(t, "mod", fields[3].Value)

	require.Len(t, sent[0].Components, 1)
	button := sent[0].Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	require.Equal(t, discordgo.LinkButton, button.Style)
	require.Equal(t, "https://srcb.in/abc", button.URL)

	record := tm.records.get(ch.ID)
	require.NotNil(t, record)
	require.Equal(t, entities.TicketStatusClosed, record.Status)
	require.Equal(t, "2", record.ClosedBy)
	require.Equal(t, "solved", record.Reason)
	require.Equal(t, "https://srcb.in/abc", record.TranscriptURL)
	require.False(t, record.ClosedAt.IsZero())
}

func TestManager_Close_UnknownOpener(t *testing.T) {
	tm := newTestManager(t, defaultConfig())
	mod := tm.platform.addUser("2", "mod")
	ch := tm.platform.addTicket(1, "gone")

	require.Equal(t, CloseSuccess, tm.Close(context.Background(), ch, mod, ""))

	fields := tm.platform.sentTo("logs")[0].Embeds[0].Fields
	require.Len(t, fields, 3)
	require.Equal(t, "Opened by", fields[1].Name)
	require.Equal(t, "Unknown", fields[1].Value)
}

func TestManager_Close_MissingPermissions(t *testing.T) {
	tm := newTestManager(t, defaultConfig())
	tm.platform.channelPerms = discordgo.PermissionManageChannels
	ch := tm.platform.addTicket(1, "1")

	require.Equal(t, CloseMissingPermissions, tm.Close(context.Background(), ch, nil, ""))
	require.Equal(t, 1, tm.platform.channelCount())
	require.Empty(t, tm.paster.posted)
}

func TestManager_Close_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(tm *testManager, ch *discordgo.Channel)
	}{
		{
			name: "settings",
			setup: func(tm *testManager, _ *discordgo.Channel) {
				tm.settings.err = errFake
			},
		},
		{
			name: "history",
			setup: func(tm *testManager, _ *discordgo.Channel) {
				tm.platform.historyErr = errFake
			},
		},
		{
			name: "delete",
			setup: func(tm *testManager, ch *discordgo.Channel) {
				tm.platform.deleteErr[ch.ID] = errFake
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := newTestManager(t, defaultConfig())
			ch := tm.platform.addTicket(1, "1")
			tt.setup(tm, ch)

			require.Equal(t, CloseError, tm.Close(context.Background(), ch, nil, ""))
			require.Equal(t, 1, tm.platform.channelCount())
			require.Empty(t, tm.platform.sentTo("logs"))
		})
	}
}

func TestManager_Close_PasteFailure(t *testing.T) {
	tm := newTestManager(t, defaultConfig())
	tm.paster.err = errFake
	ch := tm.platform.addTicket(1, "1")

	require.Equal(t, CloseSuccess, tm.Close(context.Background(), ch, nil, ""))
	require.Zero(t, tm.platform.channelCount())

	sent := tm.platform.sentTo("logs")
	require.Len(t, sent, 1)
	require.Empty(t, sent[0].Components)
}

func TestManager_Close_LogChannelFailure(t *testing.T) {
	tm := newTestManager(t, defaultConfig())
	tm.platform.sendErr["logs"] = errFake
	ch := tm.platform.addTicket(1, "1")

	require.Equal(t, CloseSuccess, tm.Close(context.Background(), ch, nil, ""))
	require.Zero(t, tm.platform.channelCount())
}

func TestManager_Close_NoLogChannel(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogChannelID = ""
	tm := newTestManager(t, cfg)
	ch := tm.platform.addTicket(1, "1")

	require.Equal(t, CloseSuccess, tm.Close(context.Background(), ch, nil, ""))
	require.Empty(t, tm.platform.sentTo("logs"))
}

func TestManager_CloseAll(t *testing.T) {
	tm := newTestManager(t, defaultConfig())
	admin := tm.platform.addUser("admin", "admin")

	tm.platform.addChannel(&discordgo.Channel{Type: discordgo.ChannelTypeGuildText, Name: "general"})
	var tickets []*discordgo.Channel
	for i := 1; i <= 5; i++ {
		tickets = append(tickets, tm.platform.addTicket(i, string(rune('a'+i))))
	}
	tm.platform.deleteErr[tickets[1].ID] = errFake
	tm.platform.deleteErr[tickets[3].ID] = errFake

	success, failed, err := tm.CloseAll(context.Background(), testGuildID, admin)
	require.NoError(t, err)
	require.Equal(t, 3, success)
	require.Equal(t, 2, failed)

	// The ordinary channel and the two failures remain.
	require.Equal(t, 3, tm.platform.channelCount())

	for _, msg := range tm.platform.sentTo("logs") {
		require.Equal(t, "Reason", msg.Embeds[0].Fields[0].Name)
		require.Equal(t, "Force close all open tickets", msg.Embeds[0].Fields[0].Value)
	}
}

func TestManager_CloseAll_None(t *testing.T) {
	tm := newTestManager(t, defaultConfig())

	success, failed, err := tm.CloseAll(context.Background(), testGuildID, nil)
	require.NoError(t, err)
	require.Zero(t, success)
	require.Zero(t, failed)
}
