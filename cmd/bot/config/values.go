package config

const (
	// AppName is the name of the application.
	AppName = "tickets"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvPasteUrl is the environment variable for the base URL of the paste service.
	EnvPasteUrl = `PASTE_URL`

	// EnvConfigPath is the environment variable for the directory holding config.yaml.
	EnvConfigPath = `CONFIG_PATH`
)

const (
	keyBotToken       = "discord.token"
	keyApplicationId  = "discord.application_id"
	keyMongoUri       = "mongo.uri"
	keyMonitoringPort = "monitoring.port"
	keyPasteUrl       = "paste.url"
)

// defaults are the values used when neither the environment nor the config file set them.
var defaults = map[string]any{
	keyMonitoringPort:              "8080",
	keyPasteUrl:                    "https://sourceb.in",
	"paste.rate":                   1.0,
	"paste.burst":                  5,
	"theme.bot_color":              "#00FEFF",
	"theme.success_color":          "#00A56A",
	"theme.error_color":            "#D61A3C",
	"theme.warning_color":          "#F7E919",
	"theme.footer":                 "",
	"tickets.select_timeout":       "60s",
	"tickets.defaults.limit":       10,
	"tickets.defaults.log_channel": "",
}
