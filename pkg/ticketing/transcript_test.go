package ticketing

import (
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func TestBuildTranscript(t *testing.T) {
	t1 := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	t2 := t1.Add(90 * time.Second)

	// History arrives newest first.
	msgs := []*discordgo.Message{
		{
			Timestamp: t2,
			Author:    &discordgo.User{ID: "2", Username: "bob"},
			Attachments: []*discordgo.MessageAttachment{
				{URL: "https://cdn.example/file.png", ProxyURL: "https://media.example/file.png"},
			},
		},
		{
			Timestamp: t1,
			Author:    &discordgo.User{ID: "1", Username: "alice"},
			Content:   "hello",
		},
	}

	want := "[3/5/2024, 2:07:09 PM] - alice\n" +
		"hello\n" +
		"\n" +
		"[3/5/2024, 2:08:39 PM] - bob\n" +
		"https://media.example/file.png\n" +
		"\n"

	require.Equal(t, want, BuildTranscript(msgs))
}

func TestBuildTranscript_Details(t *testing.T) {
	ts := time.Date(2024, 12, 25, 0, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	msgs := []*discordgo.Message{
		{
			Timestamp: ts,
			Content:   "hi <@1>",
			Mentions:  []*discordgo.User{{ID: "1", Username: "alice"}},
			Attachments: []*discordgo.MessageAttachment{
				{ProxyURL: "https://media.example/a.txt"},
				{URL: "https://cdn.example/b.txt"},
			},
		},
		nil,
	}

	want := "[12/24/2024, 10:30:00 PM] - Unknown\n" +
		"hi @alice\n" +
		"https://media.example/a.txt, https://cdn.example/b.txt\n" +
		"\n"

	require.Equal(t, want, BuildTranscript(msgs))
}

func TestBuildTranscript_Empty(t *testing.T) {
	require.Empty(t, BuildTranscript(nil))
}
