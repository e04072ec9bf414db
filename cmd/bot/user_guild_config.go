package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/Jacobbrewer1/tickets/pkg/ticketing"
)

// errUnknownCategory is returned by settings updates that name a category the guild does not have.
var errUnknownCategory = errors.New("unknown category")

// logChannelCmdProcessor sets the channel closed tickets are logged to.
func logChannelCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	channelID := opts[channelOptionName].ChannelValue(nil).ID

	if _, err := a.Settings().Update(context.Background(), i.GuildID, func(cfg *entities.TicketingConfig) error {
		cfg.LogChannelID = channelID
		return nil
	}); err != nil {
		return fmt.Errorf("error saving guild: %w", err)
	}

	return respondSlashEphemeral(a, i, fmt.Sprintf("Closed tickets will be logged to <#%s>", channelID))
}

// limitCmdProcessor sets how many tickets can be open at once.
func limitCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	limit := int(opts[amountOptionName].IntValue())
	if limit < 0 {
		return respondSlashEphemeral(a, i, "The limit cannot be negative.")
	}

	if _, err := a.Settings().Update(context.Background(), i.GuildID, func(cfg *entities.TicketingConfig) error {
		cfg.Limit = limit
		return nil
	}); err != nil {
		return fmt.Errorf("error saving guild: %w", err)
	}

	if limit == 0 {
		return respondSlashEphemeral(a, i, "There is no longer a limit on open tickets.")
	}
	return respondSlashEphemeral(a, i, fmt.Sprintf("At most `%d` tickets can be open at once.", limit))
}

// categoryAddCmdProcessor adds a category, or a staff role to a category that exists.
func categoryAddCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	name := strings.TrimSpace(opts[nameOptionName].StringValue())
	if name == "" || strings.Contains(name, "|") {
		return respondSlashEphemeral(a, i, "The category name cannot be empty or contain `|`.")
	}

	var roleID string
	if o, ok := opts[roleOptionName]; ok {
		roleID = o.RoleValue(nil, i.GuildID).ID
	}

	cfg, err := a.Settings().Update(context.Background(), i.GuildID, func(cfg *entities.TicketingConfig) error {
		cfg.AddCategory(addStaffRole(cfg, name, roleID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("error saving guild: %w", err)
	}

	theme := a.Tickets().Theme()
	return respondEmbedEphemeral(a, i, categoriesEmbed(theme, fmt.Sprintf("Category `%s` saved", name), cfg.Categories))
}

// addStaffRole returns the category with the role added to its staff roles.
func addStaffRole(cfg *entities.TicketingConfig, name, roleID string) entities.TicketCategory {
	cat := entities.TicketCategory{Name: name}
	if existing, ok := cfg.Category(name); ok {
		cat.StaffRoles = append(cat.StaffRoles, existing.StaffRoles...)
	}

	if roleID == "" {
		return cat
	}
	for _, id := range cat.StaffRoles {
		if id == roleID {
			return cat
		}
	}
	cat.StaffRoles = append(cat.StaffRoles, roleID)
	return cat
}

// categoryRemoveCmdProcessor removes a category.
func categoryRemoveCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	name := strings.TrimSpace(opts[nameOptionName].StringValue())

	cfg, err := a.Settings().Update(context.Background(), i.GuildID, func(cfg *entities.TicketingConfig) error {
		if !cfg.RemoveCategory(name) {
			return errUnknownCategory
		}
		return nil
	})
	if errors.Is(err, errUnknownCategory) {
		return respondSlashEphemeral(a, i, fmt.Sprintf("There is no category called `%s`.", name))
	} else if err != nil {
		return fmt.Errorf("error saving guild: %w", err)
	}

	theme := a.Tickets().Theme()
	return respondEmbedEphemeral(a, i, categoriesEmbed(theme, fmt.Sprintf("Category `%s` removed", name), cfg.Categories))
}

// categoryListCmdProcessor lists the categories and their staff roles.
func categoryListCmdProcessor(a IApp, i *discordgo.InteractionCreate) error {
	cfg, err := a.Settings().GetSettings(context.Background(), i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild: %w", err)
	}

	theme := a.Tickets().Theme()
	return respondEmbedEphemeral(a, i, categoriesEmbed(theme, "Ticket categories", cfg.Categories))
}

func categoriesEmbed(theme ticketing.Theme, title string, categories []entities.TicketCategory) *discordgo.MessageEmbed {
	if len(categories) == 0 {
		return theme.Embed(theme.BotColor, title, "There are no categories, tickets are opened in the `Default` category.")
	}

	embed := theme.Embed(theme.BotColor, title, "")
	for _, cat := range categories {
		roles := "No staff roles"
		if len(cat.StaffRoles) > 0 {
			mentions := make([]string, 0, len(cat.StaffRoles))
			for _, id := range cat.StaffRoles {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", id))
			}
			roles = strings.Join(mentions, ", ")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  cat.Name,
			Value: roles,
		})
	}
	return embed
}
