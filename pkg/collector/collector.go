// Package collector hands component interactions to the handler that is waiting for them.
package collector

import (
	"context"
	"errors"
	"sync"

	"github.com/Jacobbrewer1/discordgo"
)

// ErrAlreadyWaiting is returned when something is already waiting on the same key.
var ErrAlreadyWaiting = errors.New("already waiting for this component")

// Key identifies the component interaction that is being waited for.
type Key struct {
	// ChannelID is the channel the component was sent in.
	ChannelID string

	// UserID is the only user whose interaction is accepted.
	UserID string

	// CustomID is the custom ID of the component.
	CustomID string
}

// Collector delivers component interactions to waiters.
type Collector struct {
	mu      sync.Mutex
	waiters map[Key]chan *discordgo.InteractionCreate
}

// New creates a new collector.
func New() *Collector {
	return &Collector{
		waiters: make(map[Key]chan *discordgo.InteractionCreate),
	}
}

// Await blocks until an interaction matching the key is dispatched or the context is done, whichever happens first.
func (c *Collector) Await(ctx context.Context, key Key) (*discordgo.InteractionCreate, error) {
	ch := make(chan *discordgo.InteractionCreate, 1)

	c.mu.Lock()
	if _, ok := c.waiters[key]; ok {
		c.mu.Unlock()
		return nil, ErrAlreadyWaiting
	}
	c.waiters[key] = ch
	c.mu.Unlock()

	defer c.remove(key, ch)

	select {
	case i := <-ch:
		return i, nil
	case <-ctx.Done():
		// A dispatch may have won the race against the context.
		select {
		case i := <-ch:
			return i, nil
		default:
		}
		return nil, ctx.Err()
	}
}

// Dispatch hands the interaction to the waiter for it. It reports whether the interaction was consumed.
func (c *Collector) Dispatch(i *discordgo.InteractionCreate) bool {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return false
	}

	key := Key{
		ChannelID: i.ChannelID,
		UserID:    interactionUserID(i),
		CustomID:  i.MessageComponentData().CustomID,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.waiters[key]
	if !ok {
		return false
	}

	// Only the first matching interaction settles the wait.
	delete(c.waiters, key)
	ch <- i
	return true
}

// Waiting returns the number of active waiters.
func (c *Collector) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *Collector) remove(key Key, ch chan *discordgo.InteractionCreate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current, ok := c.waiters[key]; ok && current == ch {
		delete(c.waiters, key)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	} else if i.User != nil {
		return i.User.ID
	}
	return ""
}
