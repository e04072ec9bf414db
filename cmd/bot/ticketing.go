package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/collector"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/logging"
	"github.com/Jacobbrewer1/tickets/pkg/messages"
	"github.com/Jacobbrewer1/tickets/pkg/ticketing"
)

const (
	// OpenTicketButtonID is the ID for the open ticket button.
	OpenTicketButtonID = "open_ticket_button"

	// categoryMenuPrefix is the prefix of the custom ID of a category menu. The ID of the interaction that opened
	// the menu follows it.
	categoryMenuPrefix = "ticket_menu:"
)

const (
	// TicketEmoji is the emoji of the open ticket button. (Envelope with arrow)
	TicketEmoji = "\U0001F4E9"

	// CorrectEmoji marks successes. (Check mark)
	CorrectEmoji = "✅"

	// WrongEmoji marks rejections. (Cross)
	WrongEmoji = "❌"

	// LoadingEmoji marks work in progress. (Hourglass)
	LoadingEmoji = "⏳"
)

const (
	// TicketCmdName is the command for controlling tickets.
	TicketCmdName = "ticket"

	// SetupCmdName is the sub command for posting the open ticket panel.
	SetupCmdName = "setup"

	// LogCmdName is the sub command for setting the log channel.
	LogCmdName = "log"

	// LimitCmdName is the sub command for setting the open ticket limit.
	LimitCmdName = "limit"

	// CloseCmdName is the sub command for closing the ticket of the channel.
	CloseCmdName = "close"

	// CloseAllCmdName is the sub command for closing every ticket.
	CloseAllCmdName = "closeall"

	// CategoryAddCmdName is the sub command for adding a category.
	CategoryAddCmdName = "category-add"

	// CategoryRemoveCmdName is the sub command for removing a category.
	CategoryRemoveCmdName = "category-remove"

	// CategoryListCmdName is the sub command for listing the categories.
	CategoryListCmdName = "category-list"

	// HistoryCmdName is the sub command for listing the tickets a user has opened.
	HistoryCmdName = "history"
)

const (
	channelOptionName = "channel"
	amountOptionName  = "amount"
	reasonOptionName  = "reason"
	nameOptionName    = "name"
	roleOptionName    = "role"
	userOptionName    = "user"
)

var (
	// ticketCmd is the command for controlling tickets.
	ticketCmd = &discordgo.ApplicationCommand{
		Name:        TicketCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "This is the command for controlling tickets.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        SetupCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This posts the open ticket message in the channel you specify.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         channelOptionName,
						Type:         discordgo.ApplicationCommandOptionChannel,
						Description:  "This is the channel you want users to open tickets from.",
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						Required:     true,
					},
				},
			},
			{
				Name:        LogCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This sets the channel that closed tickets are logged to.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         channelOptionName,
						Type:         discordgo.ApplicationCommandOptionChannel,
						Description:  "This is the channel closed tickets are logged to.",
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						Required:     true,
					},
				},
			},
			{
				Name:        LimitCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This sets how many tickets can be open at once. Zero means no limit.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        amountOptionName,
						Type:        discordgo.ApplicationCommandOptionInteger,
						Description: "This is the maximum number of open tickets.",
						Required:    true,
					},
				},
			},
			{
				Name:        CloseCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This closes the ticket for the channel that the command was executed in.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        reasonOptionName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "This is the reason for closing the ticket.",
						Required:    false,
					},
				},
			},
			{
				Name:        CloseAllCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This closes every open ticket.",
			},
			{
				Name:        CategoryAddCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This adds a ticket category, or a staff role to an existing one.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        nameOptionName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "This is the name of the category.",
						Required:    true,
					},
					{
						Name:        roleOptionName,
						Type:        discordgo.ApplicationCommandOptionRole,
						Description: "This is a staff role that handles tickets of the category.",
						Required:    false,
					},
				},
			},
			{
				Name:        CategoryRemoveCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This removes a ticket category.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        nameOptionName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "This is the name of the category.",
						Required:    true,
					},
				},
			},
			{
				Name:        CategoryListCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This lists the ticket categories.",
			},
			{
				Name:        HistoryCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "This lists the tickets a user has opened.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        userOptionName,
						Type:        discordgo.ApplicationCommandOptionUser,
						Description: "This is the user to list the tickets of.",
						Required:    true,
					},
				},
			},
		},
	}
)

// adminCommands are the sub commands only administrators can use.
var adminCommands = map[string]bool{
	SetupCmdName:          true,
	LogCmdName:            true,
	LimitCmdName:          true,
	CloseAllCmdName:       true,
	CategoryAddCmdName:    true,
	CategoryRemoveCmdName: true,
	CategoryListCmdName:   true,
	HistoryCmdName:        true,
}

func ticketCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	subCmd, _ := subCommandOptions(i)

	// Ensure the user is an administrator.
	if adminCommands[subCmd] && !isAdministrator(i) {
		if err := respondSlashEphemeral(a, i, messages.ErrMissingAdministrator); err != nil {
			return nil, fmt.Errorf("error responding to interaction: %w", err)
		}
		return nil, nil
	}

	switch subCmd {
	case SetupCmdName:
		return setupCmdProcessor, nil
	case LogCmdName:
		return logChannelCmdProcessor, nil
	case LimitCmdName:
		return limitCmdProcessor, nil
	case CloseCmdName:
		return closeCmdProcessor, nil
	case CloseAllCmdName:
		return closeAllCmdProcessor, nil
	case CategoryAddCmdName:
		return categoryAddCmdProcessor, nil
	case CategoryRemoveCmdName:
		return categoryRemoveCmdProcessor, nil
	case CategoryListCmdName:
		return categoryListCmdProcessor, nil
	case HistoryCmdName:
		return historyCmdProcessor, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

func openTicketMessage(theme ticketing.Theme) *discordgo.MessageSend {
	const messageText = `Welcome to our tickets channel. If you have any questions or inquiries, please click on the button below to contact the staff by opening a ticket!`

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			theme.Embed(theme.BotColor, "How can we help?", messageText),
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    fmt.Sprintf("%s Open Ticket", TicketEmoji),
						Style:    discordgo.PrimaryButton,
						CustomID: OpenTicketButtonID,
					},
				},
			},
		},
	}
}

// setupCmdProcessor posts the open ticket panel, replacing the previous one.
func setupCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	channel := opts[channelOptionName].ChannelValue(a.Session())

	// Ensure the channel is a text channel.
	if channel.Type != discordgo.ChannelTypeGuildText {
		return respondSlashEphemeral(a, i, "You must provide a text channel for ticketing.")
	}

	msg, err := a.Session().ChannelMessageSendComplex(channel.ID, openTicketMessage(a.Tickets().Theme()))
	if err != nil {
		return fmt.Errorf("error sending open ticket message: %w", err)
	}

	var previous entities.TicketingConfig
	if _, err := a.Settings().Update(context.Background(), i.GuildID, func(cfg *entities.TicketingConfig) error {
		previous = *cfg
		cfg.PanelChannelID = channel.ID
		cfg.PanelMessageID = msg.ID
		return nil
	}); err != nil {
		return fmt.Errorf("error saving guild: %w", err)
	}

	if previous.PanelMessageID != "" && previous.PanelMessageID != msg.ID {
		if err := a.Session().ChannelMessageDelete(previous.PanelChannelID, previous.PanelMessageID); err != nil {
			a.Log().Debug("Error deleting previous open ticket message",
				slog.String(logging.KeyChannel, previous.PanelChannelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	}

	// Respond to the interaction saying that ticketing has been enabled in channel <channel>.
	return respondSlashEphemeral(a, i, fmt.Sprintf("Ticketing has been enabled in channel <#%s>", channel.ID))
}

// handleTicketOpen opens a ticket for the user that pressed the open ticket button.
func handleTicketOpen(a IApp, i *discordgo.InteractionCreate) error {
	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	_, err := a.Tickets().Open(context.Background(), ticketing.OpenRequest{
		GuildID: i.GuildID,
		User:    interactionUser(i),
		Chooser: &interactionChooser{a: a, i: i},
	})

	if err := followupEmbed(a, i, openResultEmbed(a.Tickets().Theme(), err)); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

// openResultEmbed tells the user how opening their ticket went.
func openResultEmbed(theme ticketing.Theme, err error) *discordgo.MessageEmbed {
	switch {
	case err == nil:
		return theme.Embed(theme.SuccessColor, fmt.Sprintf("%s %s", CorrectEmoji, messages.TicketCreated), "")
	case errors.Is(err, ticketing.ErrMissingPermission):
		return theme.Embed(theme.ErrorColor, fmt.Sprintf("%s %s", WrongEmoji, messages.TicketCreationFailed), messages.ErrOpenMissingPermission)
	case errors.Is(err, ticketing.ErrAlreadyExists):
		return theme.Embed(theme.ErrorColor, fmt.Sprintf("%s %s", WrongEmoji, messages.TicketAlreadyOpen), "")
	case errors.Is(err, ticketing.ErrLimitReached):
		return theme.Embed(theme.ErrorColor, fmt.Sprintf("%s %s", WrongEmoji, messages.TicketLimitReached), "")
	case errors.Is(err, ticketing.ErrTimeout):
		return theme.Embed(theme.WarningColor, fmt.Sprintf("%s %s", WrongEmoji, messages.TicketTimedOut), "")
	default:
		return theme.Embed(theme.ErrorColor, fmt.Sprintf("%s %s", WrongEmoji, messages.TicketCreationFailed), "")
	}
}

// interactionChooser asks the user that pressed the open ticket button for a category with a select menu.
type interactionChooser struct {
	a IApp
	i *discordgo.InteractionCreate
}

func (c *interactionChooser) ChooseCategory(ctx context.Context, categories []entities.TicketCategory) (string, error) {
	theme := c.a.Tickets().Theme()
	customID := categoryMenuID(c.i.ID)

	if _, err := followup(c.a, c.i, categoryPrompt(theme, customID, categories)); err != nil {
		return "", fmt.Errorf("error sending category menu: %w", err)
	}

	res, err := c.a.Collector().Await(ctx, collector.Key{
		ChannelID: c.i.ChannelID,
		UserID:    interactionUser(c.i).ID,
		CustomID:  customID,
	})
	if err != nil {
		return "", err
	}

	values := res.MessageComponentData().Values
	if len(values) == 0 {
		return "", errors.New("no category selected")
	}

	// Replace the menu so it cannot be used again.
	if err := c.a.Session().InteractionRespond(res.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				theme.Embed(theme.BotColor, fmt.Sprintf("%s %s", LoadingEmoji, messages.TicketCreating), ""),
			},
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		c.a.Log().Warn("Error acknowledging category selection", slog.String(logging.KeyError, err.Error()))
	}

	return values[0], nil
}

func categoryMenuID(interactionID string) string {
	return categoryMenuPrefix + interactionID
}

// categoryPrompt is the select menu of the categories.
func categoryPrompt(theme ticketing.Theme, customID string, categories []entities.TicketCategory) *discordgo.WebhookParams {
	options := make([]discordgo.SelectMenuOption, 0, len(categories))
	for _, cat := range categories {
		options = append(options, discordgo.SelectMenuOption{
			Label: cat.Name,
			Value: cat.Name,
		})
	}

	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			theme.Embed(theme.BotColor, fmt.Sprintf("%s %s", LoadingEmoji, messages.TicketChooseCategory), ""),
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.SelectMenu{
						CustomID:    customID,
						Placeholder: "Choose the ticket category",
						Options:     options,
					},
				},
			},
		},
	}
}

// handleTicketClose closes the ticket that the close button was pressed in.
func handleTicketClose(a IApp, i *discordgo.InteractionCreate) error {
	return closeTicket(a, i, "")
}

func closeCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)

	var reason string
	if o, ok := opts[reasonOptionName]; ok {
		reason = o.StringValue()
	}
	return closeTicket(a, i, reason)
}

func closeTicket(a IApp, i *discordgo.InteractionCreate, reason string) error {
	ch, err := interactionChannel(a, i)
	if err != nil {
		return err
	}

	if !ticketing.IsTicketChannel(ch) {
		return respondSlashEphemeral(a, i, messages.ErrNotTicketChannel)
	}

	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	var content string
	switch a.Tickets().Close(context.Background(), ch, interactionUser(i), reason) {
	case ticketing.CloseMissingPermissions:
		content = messages.ErrCloseMissingPermissions
	case ticketing.CloseError:
		content = messages.ErrCloseFailed
	default:
		// The channel the interaction came from is gone.
		return nil
	}

	if err := followupContent(a, i, content); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	return nil
}

func closeAllCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	success, failed, err := a.Tickets().CloseAll(context.Background(), i.GuildID, interactionUser(i))
	if err != nil {
		return fmt.Errorf("error closing all tickets: %w", err)
	}

	return followupContent(a, i, fmt.Sprintf(messages.TicketsClosedAll, success, failed))
}

func interactionChannel(a IApp, i *discordgo.InteractionCreate) (*discordgo.Channel, error) {
	if ch, err := a.Session().State.Channel(i.ChannelID); err == nil {
		return ch, nil
	}

	ch, err := a.Session().Channel(i.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("error getting channel: %w", err)
	}
	return ch, nil
}
