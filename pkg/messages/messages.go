package messages

// User facing messages.
const (
	// ErrUserErrorProcessing is sent when an interaction fails unexpectedly.
	ErrUserErrorProcessing = "There was an error processing your request. Please try again later."

	// ErrMissingAdministrator is sent when a command requires the administrator permission.
	ErrMissingAdministrator = "You must be an administrator to use this command."

	// ErrNotTicketChannel is sent when a ticket command is used outside a ticket.
	ErrNotTicketChannel = "This command can only be used in a ticket channel."

	// ErrOpenMissingPermission is sent when the bot cannot manage channels.
	ErrOpenMissingPermission = "Cannot create ticket channel, missing `Manage Channel` permission. Contact server manager for help!"

	// ErrCloseMissingPermissions is sent when the bot cannot close a ticket.
	ErrCloseMissingPermissions = "Cannot close the ticket, missing permissions. Contact server manager for help!"

	// ErrCloseFailed is sent when closing a ticket fails.
	ErrCloseFailed = "Failed to close the ticket, an error occurred!"

	// TicketAlreadyOpen is the title used when the user already has a ticket.
	TicketAlreadyOpen = "You already have an open ticket!"

	// TicketLimitReached is the title used when the guild is at its ticket limit.
	TicketLimitReached = "There are too many open tickets, try again later!"

	// TicketTimedOut is the title used when no category was chosen in time.
	TicketTimedOut = "Request timed out, try again!"

	// TicketChooseCategory is the title of the category selection prompt.
	TicketChooseCategory = "Please choose a ticket category!"

	// TicketCreating is the title used while the ticket channel is being created.
	TicketCreating = "Creating your ticket..."

	// TicketCreated is the title used when the ticket was created.
	TicketCreated = "Successfully created your ticket!"

	// TicketCreationFailed is the title used when the ticket could not be created.
	TicketCreationFailed = "An error has occurred while creating your ticket!"

	// TicketsClosedAll is the format for the close all summary. It takes the success and failure counts.
	TicketsClosedAll = "Completed! Success: `%d` Failed: `%d`"

	// ForceCloseReason is the reason recorded when all tickets are closed at once.
	ForceCloseReason = "Force close all open tickets"
)
