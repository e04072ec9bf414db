package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/tickets/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ticketDalName = "ticket_dal"

type TicketDal interface {
	// SaveTicket saves a ticket.
	SaveTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicket gets the ticket of a channel.
	GetTicket(ctx context.Context, guildID string, channelID string) (*entities.Ticket, error)

	// GetTicketsByOwner gets the tickets a user has opened in a guild, newest first.
	GetTicketsByOwner(ctx context.Context, guildID string, ownerID string) ([]*entities.Ticket, error)
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(l *slog.Logger, client *mongo.Client) TicketDal {
	l = l.With(slog.String(logging.KeyDal, ticketDalName))

	if client == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		l:      l,
		client: client,
	}
}

func (d *ticketDal) SaveTicket(ctx context.Context, ticket *entities.Ticket) (err error) {
	collection := d.client.Database(mongoDatabase).Collection(ticketsCollection)

	done := monitoring.Observe(ticketDalName, "save_ticket", mongoDatabase, ticketsCollection)
	defer func() { done(err) }()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"guild_id": ticket.GuildID, "channel_id": ticket.ChannelID}
	if _, err = collection.UpdateOne(ctx, filter, bson.M{"$set": ticket}, opts); err != nil {
		return fmt.Errorf("error updating ticket: %w", err)
	}
	return nil
}

func (d *ticketDal) GetTicket(ctx context.Context, guildID string, channelID string) (_ *entities.Ticket, err error) {
	collection := d.client.Database(mongoDatabase).Collection(ticketsCollection)

	done := monitoring.Observe(ticketDalName, "get_ticket", mongoDatabase, ticketsCollection)
	defer func() { done(err) }()

	ticket := new(entities.Ticket)
	err = collection.FindOne(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Decode(ticket)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return ticket, nil
}

func (d *ticketDal) GetTicketsByOwner(ctx context.Context, guildID string, ownerID string) (_ []*entities.Ticket, err error) {
	collection := d.client.Database(mongoDatabase).Collection(ticketsCollection)

	done := monitoring.Observe(ticketDalName, "get_tickets_by_owner", mongoDatabase, ticketsCollection)
	defer func() { done(err) }()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := collection.Find(ctx, bson.M{"guild_id": guildID, "owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding tickets: %w", err)
	}

	tickets := make([]*entities.Ticket, 0)
	if err = cur.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("error decoding tickets: %w", err)
	}
	return tickets, nil
}
