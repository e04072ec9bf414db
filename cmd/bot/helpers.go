package main

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/tickets/pkg/messages"
)

func respondSlashError(a IApp, i *discordgo.InteractionCreate) error {
	err := respondSlashEphemeral(a, i, messages.ErrUserErrorProcessing)
	if err == nil {
		return nil
	}

	// The interaction may already have been acknowledged.
	_, err = a.Session().FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: messages.ErrUserErrorProcessing,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

func respondSlashEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbedEphemeral(a IApp, i *discordgo.InteractionCreate, embeds ...*discordgo.MessageEmbed) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// deferEphemeral acknowledges the interaction, the answer is sent as a followup.
func deferEphemeral(a IApp, i *discordgo.InteractionCreate) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func followup(a IApp, i *discordgo.InteractionCreate, params *discordgo.WebhookParams) (*discordgo.Message, error) {
	params.Flags = discordgo.MessageFlagsEphemeral
	return a.Session().FollowupMessageCreate(i.Interaction, true, params)
}

func followupContent(a IApp, i *discordgo.InteractionCreate, content string) error {
	_, err := followup(a, i, &discordgo.WebhookParams{Content: content})
	return err
}

func followupEmbed(a IApp, i *discordgo.InteractionCreate, embeds ...*discordgo.MessageEmbed) error {
	_, err := followup(a, i, &discordgo.WebhookParams{Embeds: embeds})
	return err
}

// interactionUser returns the user that created the interaction.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// isAdministrator reports whether the member that created the interaction is an administrator.
func isAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

// subCommandOptions returns the options of the sub command by name.
func subCommandOptions(i *discordgo.InteractionCreate) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", nil
	}

	sub := data.Options[0]
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, o := range sub.Options {
		opts[o.Name] = o
	}
	return sub.Name, opts
}
