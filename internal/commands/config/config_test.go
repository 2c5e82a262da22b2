package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/dishform/internal/config"
	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, string) {
	t.Helper()
	tmpConfigPath := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := config.LoadConfig(tmpConfigPath)
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	return cfg, translations, tmpConfigPath
}

func run(t *testing.T, cfg *config.Config, translations *i18n.Translations, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := &cli.Command{
		Name:     "dishform",
		Writer:   &buf,
		Commands: []*cli.Command{NewConfigCommandFactory().CreateCommand(translations, cfg)},
	}
	err := app.Run(context.Background(), append([]string{"dishform", "config"}, args...))
	return buf.String(), err
}

func TestShowCommand(t *testing.T) {
	t.Run("should list every key", func(t *testing.T) {
		// Arrange
		cfg, translations, _ := setupConfigTest(t)

		// Act
		out, err := run(t, cfg, translations, "show")

		// Assert
		require.NoError(t, err)
		for _, key := range config.Keys {
			assert.Contains(t, out, key+":")
		}
		assert.Contains(t, out, config.DefaultBaseURL)
		assert.NotContains(t, out, "Translation missing")
	})

	t.Run("should warn when the probe stores recipes", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)
		cfg.ProbeMode = config.ProbeSubmit

		out, err := run(t, cfg, translations, "show")

		require.NoError(t, err)
		assert.Contains(t, out, translations.GetMessage("config.probe_submit_warning", 0, nil))
	})
}

func TestSetCommand(t *testing.T) {
	t.Run("should persist a valid value", func(t *testing.T) {
		// Arrange
		cfg, translations, path := setupConfigTest(t)

		// Act
		out, err := run(t, cfg, translations, "set", "base_url", "http://localhost:8080/")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "base_url")
		assert.Equal(t, "http://localhost:8080/", cfg.BaseURL)

		reloaded, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/", reloaded.BaseURL)
	})

	t.Run("should not save a base url override", func(t *testing.T) {
		// Arrange
		cfg, translations, path := setupConfigTest(t)
		require.NoError(t, cfg.OverrideBaseURL("http://override.example/"))

		// Act
		_, err := run(t, cfg, translations, "set", "language", "en")

		// Assert
		require.NoError(t, err)
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "override.example")
		reloaded, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultBaseURL, reloaded.BaseURL)
	})

	t.Run("should reject an unknown key", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		_, err := run(t, cfg, translations, "set", "theme", "dark")

		assert.ErrorIs(t, err, domainErrors.ErrConfigUnknownKey)
	})

	t.Run("should reject an invalid value and keep the file", func(t *testing.T) {
		cfg, translations, path := setupConfigTest(t)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = run(t, cfg, translations, "set", "notification_seconds", "0")

		assert.ErrorIs(t, err, domainErrors.ErrConfigInvalid)
		assert.Equal(t, config.DefaultNotificationSeconds, cfg.NotificationSeconds)
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("should require key and value", func(t *testing.T) {
		cfg, translations, _ := setupConfigTest(t)

		_, err := run(t, cfg, translations, "set", "language")

		assert.ErrorIs(t, err, domainErrors.ErrConfigInvalid)
	})
}

func TestPathCommand(t *testing.T) {
	cfg, translations, path := setupConfigTest(t)

	out, err := run(t, cfg, translations, "path")

	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}
