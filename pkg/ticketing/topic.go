package ticketing

import (
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
)

const (
	// Marker is the first field of a ticket channel topic. The "і" is a Cyrillic homoglyph (U+0456) so that
	// ordinary channels called "ticket" are never mistaken for tickets.
	Marker = "tіcket"

	// NamePrefix is the prefix of every ticket channel name.
	NamePrefix = Marker + "-"

	// DefaultCategory is the category of tickets opened without choosing one.
	DefaultCategory = "Default"

	// topicSeparator separates the fields of a ticket topic.
	topicSeparator = "|"
)

// Topic is the metadata that a ticket channel carries in its topic: `<marker>|<owner id>|<category>`.
type Topic struct {
	// OwnerID is the ID of the user that opened the ticket.
	OwnerID string

	// Category is the name of the chosen category.
	Category string
}

// String encodes the topic.
func (t Topic) String() string {
	category := t.Category
	if category == "" {
		category = DefaultCategory
	}
	return strings.Join([]string{Marker, t.OwnerID, category}, topicSeparator)
}

// ParseTopic decodes a ticket topic. It reports false when the topic does not carry the ticket marker.
func ParseTopic(topic string) (Topic, bool) {
	if !strings.HasPrefix(topic, Marker+topicSeparator) {
		return Topic{}, false
	}

	fields := strings.Split(topic, topicSeparator)

	t := Topic{Category: DefaultCategory}
	if len(fields) > 1 {
		t.OwnerID = fields[1]
	}
	if len(fields) > 2 && fields[2] != "" {
		t.Category = fields[2]
	}
	return t, true
}

// ChannelName is the name of the ticket channel with the given sequence number.
func ChannelName(number int) string {
	return NamePrefix + strconv.Itoa(number)
}

// IsTicketChannel reports whether the channel is a ticket: a text channel whose name has the ticket prefix and
// whose topic carries the ticket marker.
func IsTicketChannel(ch *discordgo.Channel) bool {
	if ch == nil {
		return false
	}
	return ch.Type == discordgo.ChannelTypeGuildText &&
		strings.HasPrefix(ch.Name, NamePrefix) &&
		ch.Topic != "" &&
		strings.HasPrefix(ch.Topic, Marker+topicSeparator)
}

// FilterTicketChannels returns the ticket channels, keeping their order.
func FilterTicketChannels(channels []*discordgo.Channel) []*discordgo.Channel {
	tickets := make([]*discordgo.Channel, 0)
	for _, ch := range channels {
		if IsTicketChannel(ch) {
			tickets = append(tickets, ch)
		}
	}
	return tickets
}

// FindTicketByOwner returns the first ticket channel owned by the user, or nil.
func FindTicketByOwner(channels []*discordgo.Channel, userID string) *discordgo.Channel {
	for _, ch := range FilterTicketChannels(channels) {
		if t, ok := ParseTopic(ch.Topic); ok && t.OwnerID == userID {
			return ch
		}
	}
	return nil
}
