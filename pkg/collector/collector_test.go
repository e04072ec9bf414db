package collector

import (
	"context"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func componentInteraction(channelID, userID, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			ChannelID: channelID,
			Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   []string{"Billing"},
			},
		},
	}
}

func waitForWaiter(t *testing.T, c *Collector) {
	t.Helper()
	require.Eventually(t, func() bool { return c.Waiting() == 1 }, time.Second, time.Millisecond)
}

func TestCollector_Await(t *testing.T) {
	c := New()
	key := Key{ChannelID: "c", UserID: "u", CustomID: "ticket_menu:1"}

	got := make(chan *discordgo.InteractionCreate, 1)
	go func() {
		i, err := c.Await(context.Background(), key)
		assert.NoError(t, err)
		got <- i
	}()
	waitForWaiter(t, c)

	// Another user, another channel and another component are not delivered.
	require.False(t, c.Dispatch(componentInteraction("c", "someone else", "ticket_menu:1")))
	require.False(t, c.Dispatch(componentInteraction("other", "u", "ticket_menu:1")))
	require.False(t, c.Dispatch(componentInteraction("c", "u", "ticket_menu:2")))

	want := componentInteraction("c", "u", "ticket_menu:1")
	require.True(t, c.Dispatch(want))

	select {
	case i := <-got:
		require.Same(t, want, i)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released")
	}

	// The wait is settled, later interactions are not consumed.
	require.False(t, c.Dispatch(componentInteraction("c", "u", "ticket_menu:1")))
	require.Zero(t, c.Waiting())
}

func TestCollector_AwaitTimeout(t *testing.T) {
	c := New()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	i, err := c.Await(ctx, Key{ChannelID: "c", UserID: "u", CustomID: "x"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Nil(t, i)
	require.Zero(t, c.Waiting())
}

func TestCollector_AwaitDuplicate(t *testing.T) {
	c := New()
	key := Key{ChannelID: "c", UserID: "u", CustomID: "x"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Await(ctx, key)
	}()
	waitForWaiter(t, c)

	_, err := c.Await(context.Background(), key)
	require.ErrorIs(t, err, ErrAlreadyWaiting)

	cancel()
	<-done
	require.Zero(t, c.Waiting())
}

func TestCollector_DispatchIgnoresOtherTypes(t *testing.T) {
	c := New()
	require.False(t, c.Dispatch(nil))
	require.False(t, c.Dispatch(&discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{Type: discordgo.InteractionApplicationCommand},
	}))
}
