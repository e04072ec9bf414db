package ticketing

import (
	"sort"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
)

// TranscriptTimeLayout is how message times are written in a transcript.
const TranscriptTimeLayout = "1/2/2006, 3:04:05 PM"

// unknownUser is shown when a user cannot be resolved.
const unknownUser = "Unknown"

// BuildTranscript renders the messages oldest first. Each message is a `[time] - username` line, the text of the
// message, the attachment links and a blank line.
func BuildTranscript(msgs []*discordgo.Message) string {
	ordered := make([]*discordgo.Message, 0, len(msgs))
	for _, m := range msgs {
		if m != nil {
			ordered = append(ordered, m)
		}
	}

	// History is fetched newest first.
	sort.SliceStable(ordered, func(i, j int) bool {
		return messageTime(ordered[i]).Before(messageTime(ordered[j]))
	})

	sb := new(strings.Builder)
	for _, m := range ordered {
		sb.WriteString("[")
		sb.WriteString(messageTime(m).UTC().Format(TranscriptTimeLayout))
		sb.WriteString("] - ")
		sb.WriteString(authorName(m))
		sb.WriteString("\n")

		if content := messageContent(m); content != "" {
			sb.WriteString(content)
			sb.WriteString("\n")
		}

		if len(m.Attachments) > 0 {
			urls := make([]string, 0, len(m.Attachments))
			for _, a := range m.Attachments {
				urls = append(urls, attachmentURL(a))
			}
			sb.WriteString(strings.Join(urls, ", "))
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}
	return sb.String()
}

func messageTime(m *discordgo.Message) time.Time {
	return m.Timestamp
}

func authorName(m *discordgo.Message) string {
	if m.Author == nil || m.Author.Username == "" {
		return unknownUser
	}
	return m.Author.Username
}

// messageContent is the content with user mentions replaced by names.
func messageContent(m *discordgo.Message) string {
	if m.Content == "" {
		return ""
	}
	return m.ContentWithMentionsReplaced()
}

func attachmentURL(a *discordgo.MessageAttachment) string {
	if a.ProxyURL != "" {
		return a.ProxyURL
	}
	return a.URL
}
