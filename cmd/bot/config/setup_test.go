package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setRequiredEnv(t *testing.T) {
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "app")
	t.Setenv(EnvMongoUri, "mongodb://localhost:27017")
	t.Setenv(EnvConfigPath, t.TempDir())
}

func TestRead_Defaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := Read(testLogger())
	require.NoError(t, err)

	require.Equal(t, "token", c.Discord.Token)
	require.Equal(t, "app", c.Discord.ApplicationId)
	require.Equal(t, "mongodb://localhost:27017", c.Mongo.Uri)
	require.Equal(t, "8080", c.Monitoring.Port)
	require.Equal(t, "https://sourceb.in", c.Paste.Url)
	require.Equal(t, 5, c.Paste.Burst)
	require.Equal(t, Color(0x00FEFF), c.Theme.BotColor)
	require.Equal(t, Color(0xD61A3C), c.Theme.ErrorColor)
	require.Equal(t, 60*time.Second, c.Tickets.SelectTimeout)
	require.Equal(t, 10, c.Tickets.Defaults.Limit)
	require.Empty(t, c.Tickets.Defaults.Categories)
}

func TestRead_ConfigFile(t *testing.T) {
	setRequiredEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, dir)
	t.Setenv(EnvMonitoringPort, "9090")

	const file = `
theme:
  bot_color: "#123456"
  footer: powered by tickets
tickets:
  select_timeout: 30s
  defaults:
    limit: 3
    log_channel: "555"
    categories:
      - name: Support
        staff_roles: ["1", "2"]
      - name: Billing
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(file), 0o600))

	c, err := Read(testLogger())
	require.NoError(t, err)

	require.Equal(t, "9090", c.Monitoring.Port)
	require.Equal(t, Color(0x123456), c.Theme.BotColor)
	require.Equal(t, Color(0x00A56A), c.Theme.SuccessColor)
	require.Equal(t, "powered by tickets", c.Theme.Footer)
	require.Equal(t, 30*time.Second, c.Tickets.SelectTimeout)
	require.Equal(t, 3, c.Tickets.Defaults.Limit)
	require.Equal(t, "555", c.Tickets.Defaults.LogChannelID)
	require.Len(t, c.Tickets.Defaults.Categories, 2)
	require.Equal(t, "Support", c.Tickets.Defaults.Categories[0].Name)
	require.Equal(t, []string{"1", "2"}, c.Tickets.Defaults.Categories[0].StaffRoles)
	require.Equal(t, "Billing", c.Tickets.Defaults.Categories[1].Name)
}

func TestRead_Missing(t *testing.T) {
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvApplicationId, "app")
	t.Setenv(EnvMongoUri, "")
	t.Setenv(EnvConfigPath, t.TempDir())

	_, err := Read(testLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvBotToken)
	require.Contains(t, err.Error(), EnvMongoUri)
	require.NotContains(t, err.Error(), EnvApplicationId)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#00feff", want: 0x00FEFF},
		{in: "D61A3C", want: 0xD61A3C},
		{in: "#fff", wantErr: true},
		{in: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
