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

const guildDalName = "guild_dal"

type GuildDal interface {
	// SaveGuild saves a guild.
	SaveGuild(ctx context.Context, guild *entities.Guild) error

	// GetGuildByID gets a guild by ID. mongo.ErrNoDocuments is returned (wrapped) when the guild has no document.
	GetGuildByID(ctx context.Context, id string) (*entities.Guild, error)
}

type guildDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewGuildDal creates a new guild data access layer.
func NewGuildDal(l *slog.Logger, client *mongo.Client) GuildDal {
	l = l.With(slog.String(logging.KeyDal, guildDalName))

	if client == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &guildDalImpl{
		l:      l,
		client: client,
	}
}

func (g *guildDalImpl) SaveGuild(ctx context.Context, guild *entities.Guild) (err error) {
	// Get the guild collection.
	collection := g.client.Database(mongoDatabase).Collection(guildsCollection)

	// Start the prometheus metrics.
	done := monitoring.Observe(guildDalName, "save_guild", mongoDatabase, guildsCollection)
	defer func() { done(err) }()

	// Save the guild.
	opts := options.Update().SetUpsert(true)
	if _, err = collection.UpdateOne(ctx, bson.M{"id": guild.ID}, bson.M{"$set": guild}, opts); err != nil {
		return fmt.Errorf("error updating guild: %w", err)
	}
	return nil
}

// GetGuildByID gets a guild by ID.
func (g *guildDalImpl) GetGuildByID(ctx context.Context, id string) (_ *entities.Guild, err error) {
	// Get the guild collection.
	collection := g.client.Database(mongoDatabase).Collection(guildsCollection)

	// Start the prometheus metrics.
	done := monitoring.Observe(guildDalName, "get_guild_by_id", mongoDatabase, guildsCollection)
	defer func() { done(err) }()

	guild := new(entities.Guild)
	if err = collection.FindOne(ctx, bson.M{"id": id}).Decode(guild); err != nil {
		return nil, fmt.Errorf("error getting guild: %w", err)
	}
	return guild, nil
}
