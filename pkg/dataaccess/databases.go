package dataaccess

const (
	// mongoDatabase is the name of the database that the bot uses.
	mongoDatabase = "tickets"

	// guildsCollection holds one settings document per guild.
	guildsCollection = "guilds"

	// ticketsCollection holds one record per opened ticket.
	ticketsCollection = "tickets"
)
