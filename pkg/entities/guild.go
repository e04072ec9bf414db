package entities

// Guild is a configuration for a guild.
type Guild struct {
	// ID is the ID of the guild.
	ID string `json:"id" bson:"id"`

	// Ticketing is the ticketing configuration.
	Ticketing TicketingConfig `json:"ticketing" bson:"ticketing"`
}

// TicketingConfig is the ticket configuration of a guild.
type TicketingConfig struct {
	// Limit is the maximum number of tickets that can be open at once. Zero or less means no limit.
	Limit int `json:"limit" bson:"limit" mapstructure:"limit"`

	// Categories are the categories a user can choose from when opening a ticket.
	Categories []TicketCategory `json:"categories" bson:"categories" mapstructure:"categories"`

	// LogChannelID is the ID of the channel that closed tickets are logged to.
	LogChannelID string `json:"log_channel" bson:"log_channel" mapstructure:"log_channel"`

	// PanelChannelID is the ID of the channel that the open ticket panel was posted in.
	PanelChannelID string `json:"panel_channel_id" bson:"panel_channel_id" mapstructure:"-"`

	// PanelMessageID is the ID of the open ticket panel message.
	PanelMessageID string `json:"panel_message_id" bson:"panel_message_id" mapstructure:"-"`
}

// TicketCategory is a category of ticket and the staff that handle it.
type TicketCategory struct {
	// Name is the name of the category.
	Name string `json:"name" bson:"name" mapstructure:"name"`

	// StaffRoles are the IDs of the roles that can see tickets of this category.
	StaffRoles []string `json:"staff_roles" bson:"staff_roles" mapstructure:"staff_roles"`
}

// Category returns the category with the given name.
func (c *TicketingConfig) Category(name string) (*TicketCategory, bool) {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// AddCategory adds a category, or replaces the staff roles of the existing category with the same name.
func (c *TicketingConfig) AddCategory(cat TicketCategory) {
	if existing, ok := c.Category(cat.Name); ok {
		existing.StaffRoles = cat.StaffRoles
		return
	}
	c.Categories = append(c.Categories, cat)
}

// RemoveCategory removes the category with the given name. It reports whether the category existed.
func (c *TicketingConfig) RemoveCategory(name string) bool {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
			return true
		}
	}
	return false
}
