package ticketing

import "sync"

// guildLocks serializes the ticket operations of each guild.
type guildLocks struct {
	mu    sync.Mutex
	locks map[string]*guildLock
}

type guildLock struct {
	mu   sync.Mutex
	refs int
}

func newGuildLocks() *guildLocks {
	return &guildLocks{
		locks: make(map[string]*guildLock),
	}
}

// Lock locks the guild and returns the function that unlocks it. The function may be called more than once.
func (g *guildLocks) Lock(guildID string) (unlock func()) {
	g.mu.Lock()
	l, ok := g.locks[guildID]
	if !ok {
		l = new(guildLock)
		g.locks[guildID] = l
	}
	l.refs++
	g.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			g.mu.Lock()
			defer g.mu.Unlock()
			l.refs--
			if l.refs == 0 {
				delete(g.locks, guildID)
			}
		})
	}
}

// held returns the number of guilds that are locked or waited on.
func (g *guildLocks) held() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}
