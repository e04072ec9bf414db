package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Jacobbrewer1/tickets/pkg/entities"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Color is an embed colour. It is written as "#RRGGBB" in the config file.
type Color int

// Config is the configuration of the bot.
type Config struct {
	Discord struct {
		Token         string
		ApplicationId string `mapstructure:"application_id"`
	}

	Mongo struct {
		Uri string
	}

	Monitoring struct {
		Port string
	}

	Paste struct {
		Url      string
		ShortUrl string `mapstructure:"short_url"`
		RawUrl   string `mapstructure:"raw_url"`
		Rate     float64
		Burst    int
	}

	Theme struct {
		BotColor     Color `mapstructure:"bot_color"`
		SuccessColor Color `mapstructure:"success_color"`
		ErrorColor   Color `mapstructure:"error_color"`
		WarningColor Color `mapstructure:"warning_color"`
		Footer       string
	}

	Tickets struct {
		SelectTimeout time.Duration            `mapstructure:"select_timeout"`
		Defaults      entities.TicketingConfig `mapstructure:"defaults"`
	}
}

// Read reads the configuration from the environment and the optional config.yaml.
func Read(l *slog.Logger) (*Config, error) {
	v := viper.New()
	configureDefaults(v)
	if err := configureEnv(v); err != nil {
		return nil, err
	}
	configureLocation(v)
	return readUnmarshalConfig(l, v)
}

func configureDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

func configureEnv(v *viper.Viper) error {
	binds := map[string]string{
		keyBotToken:       EnvBotToken,
		keyApplicationId:  EnvApplicationId,
		keyMongoUri:       EnvMongoUri,
		keyMonitoringPort: EnvMonitoringPort,
		keyPasteUrl:       EnvPasteUrl,
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	v.SetEnvPrefix("tickets")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

func configureLocation(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if p := os.Getenv(EnvConfigPath); p != "" {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")
}

func readUnmarshalConfig(l *slog.Logger, v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, new(viper.ConfigFileNotFoundError)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		l.Debug("No config file found, using the environment only")
	} else {
		l.Debug("Read config file", slog.String("file", v.ConfigFileUsed()))
	}

	c := new(Config)
	if err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		colorHook(),
	))); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	missing := make([]string, 0)
	if c.Discord.Token == "" {
		missing = append(missing, EnvBotToken)
	}
	if c.Discord.ApplicationId == "" {
		missing = append(missing, EnvApplicationId)
	}
	if c.Mongo.Uri == "" {
		missing = append(missing, EnvMongoUri)
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete configuration, missing %s", strings.Join(missing, ", "))
	}
	return nil
}

var colorType = reflect.TypeOf(Color(0))

func colorHook() mapstructure.DecodeHookFuncType {
	return func(in reflect.Type, out reflect.Type, val interface{}) (interface{}, error) {
		if in.Kind() == reflect.String && out == colorType {
			return ParseColor(val.(string))
		}
		return val, nil
	}
}

// ParseColor parses a "#RRGGBB" colour.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.ParseInt(s, 16, 32)
	if err != nil || len(s) != 6 {
		return 0, fmt.Errorf("invalid colour %q", s)
	}
	return Color(n), nil
}
