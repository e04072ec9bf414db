package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTicketingConfig_Categories(t *testing.T) {
	cfg := new(TicketingConfig)

	_, ok := cfg.Category("Billing")
	require.False(t, ok)

	cfg.AddCategory(TicketCategory{Name: "Billing", StaffRoles: []string{"1"}})
	cfg.AddCategory(TicketCategory{Name: "Support", StaffRoles: []string{"2"}})
	cfg.AddCategory(TicketCategory{Name: "Billing", StaffRoles: []string{"3", "4"}})

	require.Len(t, cfg.Categories, 2)

	cat, ok := cfg.Category("Billing")
	require.True(t, ok)
	require.Equal(t, []string{"3", "4"}, cat.StaffRoles)

	require.True(t, cfg.RemoveCategory("Billing"))
	require.False(t, cfg.RemoveCategory("Billing"))
	require.Equal(t, []TicketCategory{{Name: "Support", StaffRoles: []string{"2"}}}, cfg.Categories)
}
