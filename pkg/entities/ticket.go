package entities

import (
	"github.com/Jacobbrewer1/tickets/pkg/custom"
)

// TicketStatus is the state of a ticket record.
type TicketStatus string

const (
	// TicketStatusOpen is a ticket whose channel exists.
	TicketStatusOpen TicketStatus = "open"

	// TicketStatusClosed is a ticket whose channel has been deleted.
	TicketStatusClosed TicketStatus = "closed"
)

// Ticket is the record of a ticket. The ticket channel remains the source of truth, the record is kept so that
// tickets can be looked up after their channel has been deleted.
type Ticket struct {
	// Number is the sequence number of the ticket when it was opened.
	Number int `json:"number" bson:"number"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// ChannelID is the ID of the channel that the ticket is in.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// OwnerID is the ID of the user that opened the ticket.
	OwnerID string `json:"owner_id" bson:"owner_id"`

	// Category is the name of the category that was chosen.
	Category string `json:"category" bson:"category"`

	// Status is the state of the ticket.
	Status TicketStatus `json:"status" bson:"status"`

	// ClosedBy is the ID of the user that closed the ticket.
	ClosedBy string `json:"closed_by,omitempty" bson:"closed_by,omitempty"`

	// Reason is the reason given when the ticket was closed.
	Reason string `json:"reason,omitempty" bson:"reason,omitempty"`

	// TranscriptURL is the link to the uploaded transcript.
	TranscriptURL string `json:"transcript_url,omitempty" bson:"transcript_url,omitempty"`

	// CreatedAt is the time that the ticket was opened.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at"`

	// ClosedAt is the time that the ticket was closed.
	ClosedAt custom.Datetime `json:"closed_at" bson:"closed_at"`
}

// IsOpen reports whether the ticket is still open.
func (t *Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen
}
