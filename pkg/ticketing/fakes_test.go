package ticketing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/paste"
)

const (
	testGuildID = "guild"
	testBotRole = "bot-role"
)

var errFake = errors.New("fake failure")

// fakePlatform is an in memory guild.
type fakePlatform struct {
	mu sync.Mutex

	channels []*discordgo.Channel
	roles    []*discordgo.Role
	users    map[string]*discordgo.User
	messages map[string][]*discordgo.Message
	sent     map[string][]*discordgo.MessageSend
	nextID   int

	guildPerms   int64
	channelPerms int64

	createErr  error
	deleteErr  map[string]error
	sendErr    map[string]error
	historyErr error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		roles: []*discordgo.Role{
			{ID: testGuildID, Name: "@everyone", Position: 0},
			{ID: testBotRole, Name: "Tickets", Position: 5},
			{ID: "staff", Name: "Staff", Position: 3},
			{ID: "billing", Name: "Billing", Position: 2},
		},
		users:        make(map[string]*discordgo.User),
		messages:     make(map[string][]*discordgo.Message),
		sent:         make(map[string][]*discordgo.MessageSend),
		deleteErr:    make(map[string]error),
		sendErr:      make(map[string]error),
		guildPerms:   discordgo.PermissionManageChannels,
		channelPerms: discordgo.PermissionManageChannels | discordgo.PermissionReadMessageHistory,
	}
}

func (p *fakePlatform) addUser(id, name string) *discordgo.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := &discordgo.User{ID: id, Username: name}
	p.users[id] = u
	return u
}

func (p *fakePlatform) addChannel(ch *discordgo.Channel) *discordgo.Channel {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch.ID == "" {
		p.nextID++
		ch.ID = fmt.Sprintf("existing-%d", p.nextID)
	}
	ch.GuildID = testGuildID
	p.channels = append(p.channels, ch)
	return ch
}

// addTicket adds a ticket channel owned by the user.
func (p *fakePlatform) addTicket(number int, ownerID string) *discordgo.Channel {
	return p.addChannel(&discordgo.Channel{
		Type:  discordgo.ChannelTypeGuildText,
		Name:  ChannelName(number),
		Topic: Topic{OwnerID: ownerID}.String(),
	})
}

func (p *fakePlatform) channelCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.channels)
}

func (p *fakePlatform) sentTo(channelID string) []*discordgo.MessageSend {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[channelID]
}

func (p *fakePlatform) GuildChannels(string) ([]*discordgo.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*discordgo.Channel(nil), p.channels...), nil
}

func (p *fakePlatform) GuildRoles(string) ([]*discordgo.Role, error) {
	return p.roles, nil
}

func (p *fakePlatform) BotGuildPermissions(string) (int64, error) {
	return p.guildPerms, nil
}

func (p *fakePlatform) BotChannelPermissions(string) (int64, error) {
	return p.channelPerms, nil
}

func (p *fakePlatform) BotHighestRole(string) (*discordgo.Role, error) {
	return p.roles[1], nil
}

func (p *fakePlatform) CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	ch := &discordgo.Channel{
		ID:                   fmt.Sprintf("created-%d", p.nextID),
		GuildID:              guildID,
		Type:                 data.Type,
		Name:                 data.Name,
		Topic:                data.Topic,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	p.channels = append(p.channels, ch)
	return ch, nil
}

func (p *fakePlatform) DeleteChannel(channelID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.deleteErr[channelID]; err != nil {
		return err
	}
	for i, ch := range p.channels {
		if ch.ID == channelID {
			p.channels = append(p.channels[:i], p.channels[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown channel %s", channelID)
}

func (p *fakePlatform) ChannelMessages(channelID string) ([]*discordgo.Message, error) {
	if p.historyErr != nil {
		return nil, p.historyErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messages[channelID], nil
}

func (p *fakePlatform) SendMessage(channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.sendErr[channelID]; err != nil {
		return nil, err
	}
	p.sent[channelID] = append(p.sent[channelID], msg)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (p *fakePlatform) User(userID string) (*discordgo.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[userID]
	if !ok {
		return nil, fmt.Errorf("unknown user %s", userID)
	}
	return u, nil
}

type fakeSettings struct {
	cfg entities.TicketingConfig
	err error
}

func (s *fakeSettings) GetSettings(context.Context, string) (*entities.TicketingConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := s.cfg
	return &cfg, nil
}

type fakePaster struct {
	mu     sync.Mutex
	err    error
	posted []string
	titles []string
}

func (p *fakePaster) Post(_ context.Context, content, title string) (*paste.Bin, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.posted = append(p.posted, content)
	p.titles = append(p.titles, title)
	return &paste.Bin{Key: "abc", Short: "https://srcb.in/abc"}, nil
}

type fakeRecords struct {
	mu      sync.Mutex
	tickets map[string]*entities.Ticket
	saveErr error
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{tickets: make(map[string]*entities.Ticket)}
}

func (r *fakeRecords) SaveTicket(_ context.Context, ticket *entities.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *ticket
	r.tickets[ticket.ChannelID] = &cp
	return nil
}

func (r *fakeRecords) GetTicket(_ context.Context, _ string, channelID string) (*entities.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[channelID]
	if !ok {
		return nil, fmt.Errorf("no ticket for %s", channelID)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRecords) get(channelID string) *entities.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickets[channelID]
}

type testManager struct {
	*Manager
	platform *fakePlatform
	settings *fakeSettings
	paster   *fakePaster
	records  *fakeRecords
}

func newTestManager(t *testing.T, cfg entities.TicketingConfig) *testManager {
	t.Helper()

	tm := &testManager{
		platform: newFakePlatform(),
		settings: &fakeSettings{cfg: cfg},
		paster:   new(fakePaster),
		records:  newFakeRecords(),
	}

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	tm.Manager = NewManager(l, tm.platform, tm.settings, tm.paster,
		WithRecords(tm.records),
		WithClock(clock),
		WithSelectTimeout(50*time.Millisecond),
	)
	return tm
}

// choose is a chooser that always picks the named category.
func choose(name string) CategoryChooser {
	return CategoryChooserFunc(func(context.Context, []entities.TicketCategory) (string, error) {
		return name, nil
	})
}
