package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the ambient settings for the presence display service: the
// environment name, the monitoring server port, the transition journal
// location and the display repaint period. The polling interval is fixed and
// deliberately not part of the configuration.
type Config struct {
	Env           string        // Env is the current environment: local, dev, prod.
	Port          int           // Port is the monitoring server port.
	JournalPath   string        // JournalPath is the SQLite transition journal file.
	RefreshPeriod time.Duration // RefreshPeriod is the display repaint period.
}

// Transit holds the credentials for the two feeds, read once at construction
// from transit.yaml in the user's home directory. All three fields are
// required.
type Transit struct {
	PersonEntityID           string `mapstructure:"person_entity_id"`
	HomeAssistantURL         string `mapstructure:"home_assistant_url"`
	HomeAssistantBearerToken string `mapstructure:"home_assistant_bearer_token"`
}

// transitConfigName is the fixed basename of the feed configuration file.
const transitConfigName = "transit"

// ErrMissingField is returned when transit.yaml lacks a required field.
var ErrMissingField = errors.New("transit config is missing a required field")

// MustLoad loads the ambient configuration from the environment and panics
// on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	healthPort, err := strconv.Atoi(setDefaultEnv("HERMES_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	refresh, err := time.ParseDuration(setDefaultEnv("HERMES_REFRESH_PERIOD", "1s"))
	if err != nil {
		panic("failed to parse display refresh period from configuration")
	}

	return &Config{
		Env:           setDefaultEnv("HERMES_ENV", "production"),
		Port:          healthPort,
		JournalPath:   setDefaultEnv("HERMES_JOURNAL_PATH", "hermes.db"),
		RefreshPeriod: refresh,
	}
}

// LoadTransit reads transit.yaml from the directory named by the HOME
// environment variable. A missing file, a parse failure or an absent
// required field is a construction error; the tracker never starts without
// a complete feed configuration.
func LoadTransit() (*Transit, error) {
	home, ok := os.LookupEnv("HOME")
	if !ok {
		return nil, errors.New("HOME environment variable is not set")
	}

	vpr := viper.New()
	vpr.SetConfigName(transitConfigName)
	vpr.SetConfigType("yaml")
	vpr.AddConfigPath(home)

	if err := vpr.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read transit config: %w", err)
	}

	var cfg Transit
	if err := vpr.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse transit config: %w", err)
	}

	switch {
	case cfg.PersonEntityID == "":
		return nil, fmt.Errorf("%w: person_entity_id", ErrMissingField)
	case cfg.HomeAssistantURL == "":
		return nil, fmt.Errorf("%w: home_assistant_url", ErrMissingField)
	case cfg.HomeAssistantBearerToken == "":
		return nil, fmt.Errorf("%w: home_assistant_bearer_token", ErrMissingField)
	}

	return &cfg, nil
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
