package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/emberpixel/hermes/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTransit(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("valid config", func(t *testing.T) {
		home := filet.TmpDir(t, "")
		filet.File(t, filepath.Join(home, "transit.yaml"), `
person_entity_id: person.jane
home_assistant_url: http://homeassistant.local:8123
home_assistant_bearer_token: super-secret
`)
		t.Setenv("HOME", home)

		cfg, err := config.LoadTransit()

		require.NoError(t, err)
		assert.Equal(t, "person.jane", cfg.PersonEntityID)
		assert.Equal(t, "http://homeassistant.local:8123", cfg.HomeAssistantURL)
		assert.Equal(t, "super-secret", cfg.HomeAssistantBearerToken)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("HOME", filet.TmpDir(t, ""))

		cfg, err := config.LoadTransit()

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read transit config")
	})

	t.Run("missing required field", func(t *testing.T) {
		home := filet.TmpDir(t, "")
		filet.File(t, filepath.Join(home, "transit.yaml"), `
person_entity_id: person.jane
home_assistant_url: http://homeassistant.local:8123
`)
		t.Setenv("HOME", home)

		cfg, err := config.LoadTransit()

		require.ErrorIs(t, err, config.ErrMissingField)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "home_assistant_bearer_token")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		home := filet.TmpDir(t, "")
		filet.File(t, filepath.Join(home, "transit.yaml"), "person_entity_id: [unclosed")
		t.Setenv("HOME", home)

		cfg, err := config.LoadTransit()

		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("HOME not set", func(t *testing.T) {
		t.Setenv("HOME", "placeholder")
		require.NoError(t, os.Unsetenv("HOME"))

		cfg, err := config.LoadTransit()

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "HOME environment variable")
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.MustLoad()

		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "hermes.db", cfg.JournalPath)
		assert.Equal(t, time.Second, cfg.RefreshPeriod)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("HERMES_ENV", "local")
		t.Setenv("HERMES_HEALTH_PORT", "9091")
		t.Setenv("HERMES_JOURNAL_PATH", "/var/lib/hermes/journal.db")
		t.Setenv("HERMES_REFRESH_PERIOD", "250ms")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 9091, cfg.Port)
		assert.Equal(t, "/var/lib/hermes/journal.db", cfg.JournalPath)
		assert.Equal(t, 250*time.Millisecond, cfg.RefreshPeriod)
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("HERMES_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RefreshPeriodError(t *testing.T) {
	t.Setenv("HERMES_REFRESH_PERIOD", "error_value")

	assert.PanicsWithValue(t, "failed to parse display refresh period from configuration", func() {
		config.MustLoad()
	})
}
