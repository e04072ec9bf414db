package ticketing

import (
	"github.com/Jacobbrewer1/discordgo"
)

const (
	// openPermissions are needed in the guild to open a ticket.
	openPermissions int64 = discordgo.PermissionManageChannels

	// closePermissions are needed in the ticket channel to close it.
	closePermissions int64 = discordgo.PermissionManageChannels | discordgo.PermissionReadMessageHistory

	// participantPermissions are granted to everyone taking part in a ticket.
	participantPermissions int64 = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory
)

func hasPermissions(have, want int64) bool {
	if have&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return true
	}
	return have&want == want
}

// ticketOverwrites builds the permission overwrites of a ticket channel. Everyone is denied the channel, the owner,
// the bot's role and the staff roles that exist in the guild are let in.
func ticketOverwrites(guildID, ownerID string, botRole *discordgo.Role, staffRoles []string, guildRoles []*discordgo.Role) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		// The creator of the ticket can see the ticket.
		{
			ID:    ownerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: participantPermissions,
		},
	}

	seen := map[string]bool{guildID: true}

	// The @everyone role has the guild ID, it is already denied above.
	if botRole != nil && !seen[botRole.ID] {
		seen[botRole.ID] = true
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    botRole.ID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: participantPermissions,
		})
	}

	known := make(map[string]bool, len(guildRoles))
	for _, r := range guildRoles {
		known[r.ID] = true
	}

	for _, roleID := range staffRoles {
		if !known[roleID] || seen[roleID] {
			continue
		}
		seen[roleID] = true
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: participantPermissions,
		})
	}

	return overwrites
}

// memberPermissions computes the guild level permissions of a member from the roles of the guild.
func memberPermissions(guildID, ownerID string, member *discordgo.Member, roles []*discordgo.Role) int64 {
	if member == nil {
		return 0
	}
	if member.User != nil && member.User.ID == ownerID {
		return discordgo.PermissionAll
	}

	memberRoles := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		memberRoles[id] = true
	}

	var perms int64
	for _, r := range roles {
		if r.ID == guildID || memberRoles[r.ID] {
			perms |= r.Permissions
		}
	}

	if perms&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll
	}
	return perms
}

// highestRole returns the member's role with the highest position. Members without roles only have @everyone.
func highestRole(guildID string, member *discordgo.Member, roles []*discordgo.Role) *discordgo.Role {
	memberRoles := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		memberRoles[id] = true
	}

	var highest *discordgo.Role
	for _, r := range roles {
		if !memberRoles[r.ID] && r.ID != guildID {
			continue
		}
		if highest == nil || r.Position > highest.Position || (r.Position == highest.Position && highest.ID == guildID) {
			highest = r
		}
	}
	return highest
}
