package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeGuildDal struct {
	guilds  map[string]*entities.Guild
	getErr  error
	saveErr error
}

func (f *fakeGuildDal) SaveGuild(_ context.Context, guild *entities.Guild) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.guilds[guild.ID] = guild
	return nil
}

func (f *fakeGuildDal) GetGuildByID(_ context.Context, id string) (*entities.Guild, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	g, ok := f.guilds[id]
	if !ok {
		return nil, fmt.Errorf("error getting guild: %w", mongo.ErrNoDocuments)
	}
	return g, nil
}

func TestSettingsStore_GetSettings(t *testing.T) {
	defaults := entities.TicketingConfig{
		Limit:      10,
		Categories: []entities.TicketCategory{{Name: "Support", StaffRoles: []string{"1"}}},
	}

	dal := &fakeGuildDal{guilds: map[string]*entities.Guild{
		"stored": {ID: "stored", Ticketing: entities.TicketingConfig{Limit: 2, LogChannelID: "log"}},
	}}
	store := NewSettingsStore(dal, defaults)

	got, err := store.GetSettings(context.Background(), "stored")
	require.NoError(t, err)
	require.Equal(t, 2, got.Limit)
	require.Equal(t, "log", got.LogChannelID)

	got, err = store.GetSettings(context.Background(), "new")
	require.NoError(t, err)
	require.Equal(t, defaults, *got)

	// Changing the returned defaults must not leak into the next guild.
	got.Categories[0].StaffRoles[0] = "changed"
	again, err := store.GetSettings(context.Background(), "other")
	require.NoError(t, err)
	require.Equal(t, "1", again.Categories[0].StaffRoles[0])

	dal.getErr = errors.New("connection refused")
	_, err = store.GetSettings(context.Background(), "stored")
	require.Error(t, err)
}

func TestSettingsStore_Update(t *testing.T) {
	dal := &fakeGuildDal{guilds: map[string]*entities.Guild{}}
	store := NewSettingsStore(dal, entities.TicketingConfig{Limit: 10})

	got, err := store.Update(context.Background(), "1", func(cfg *entities.TicketingConfig) error {
		cfg.Limit = 5
		cfg.AddCategory(entities.TicketCategory{Name: "Billing"})
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 5, got.Limit)
	require.Equal(t, 5, dal.guilds["1"].Ticketing.Limit)
	require.Len(t, dal.guilds["1"].Ticketing.Categories, 1)

	_, err = store.Update(context.Background(), "1", func(cfg *entities.TicketingConfig) error {
		return errors.New("rejected")
	})
	require.EqualError(t, err, "rejected")

	dal.saveErr = errors.New("write failed")
	_, err = store.Update(context.Background(), "1", func(cfg *entities.TicketingConfig) error { return nil })
	require.Error(t, err)
}
