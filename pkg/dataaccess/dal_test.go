package dataaccess

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Jacobbrewer1/tickets/pkg/custom"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGuildDal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tickets.guilds", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "100"},
			{Key: "ticketing", Value: bson.D{
				{Key: "limit", Value: 3},
				{Key: "log_channel", Value: "555"},
				{Key: "categories", Value: bson.A{
					bson.D{{Key: "name", Value: "Billing"}, {Key: "staff_roles", Value: bson.A{"7"}}},
				}},
			}},
		}))

		guild, err := NewGuildDal(slog.Default(), mt.Client).GetGuildByID(context.Background(), "100")
		require.NoError(mt, err)
		require.Equal(mt, "100", guild.ID)
		require.Equal(mt, 3, guild.Ticketing.Limit)
		require.Equal(mt, "555", guild.Ticketing.LogChannelID)
		require.Equal(mt, []entities.TicketCategory{{Name: "Billing", StaffRoles: []string{"7"}}}, guild.Ticketing.Categories)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tickets.guilds", mtest.FirstBatch))

		_, err := NewGuildDal(slog.Default(), mt.Client).GetGuildByID(context.Background(), "100")
		require.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewGuildDal(slog.Default(), mt.Client).SaveGuild(context.Background(), &entities.Guild{ID: "100"})
		require.NoError(mt, err)
	})

	mt.Run("save error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key error",
			Name:    "DuplicateKey",
		}))

		err := NewGuildDal(slog.Default(), mt.Client).SaveGuild(context.Background(), &entities.Guild{ID: "100"})
		require.Error(mt, err)
	})
}

func TestTicketDal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	created := time.Date(2023, 11, 5, 14, 30, 0, 0, time.UTC)

	mt.Run("get", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tickets.tickets", mtest.FirstBatch, bson.D{
			{Key: "number", Value: 4},
			{Key: "guild_id", Value: "100"},
			{Key: "channel_id", Value: "200"},
			{Key: "owner_id", Value: "300"},
			{Key: "category", Value: "Default"},
			{Key: "status", Value: "open"},
			{Key: "created_at", Value: created},
		}))

		ticket, err := NewTicketDal(slog.Default(), mt.Client).GetTicket(context.Background(), "100", "200")
		require.NoError(mt, err)
		require.Equal(mt, 4, ticket.Number)
		require.Equal(mt, "300", ticket.OwnerID)
		require.True(mt, ticket.IsOpen())
		require.True(mt, created.Equal(ticket.CreatedAt.Time()))
		require.True(mt, ticket.ClosedAt.IsZero())
	})

	mt.Run("by owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tickets.tickets", mtest.FirstBatch,
			bson.D{{Key: "channel_id", Value: "2"}, {Key: "status", Value: "closed"}},
			bson.D{{Key: "channel_id", Value: "1"}, {Key: "status", Value: "open"}},
		))

		tickets, err := NewTicketDal(slog.Default(), mt.Client).GetTicketsByOwner(context.Background(), "100", "300")
		require.NoError(mt, err)
		require.Len(mt, tickets, 2)
		require.Equal(mt, "2", tickets[0].ChannelID)
		require.False(mt, tickets[0].IsOpen())
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewTicketDal(slog.Default(), mt.Client).SaveTicket(context.Background(), &entities.Ticket{
			GuildID:   "100",
			ChannelID: "200",
			Status:    entities.TicketStatusOpen,
			CreatedAt: custom.Datetime(created),
		})
		require.NoError(mt, err)
	})
}
