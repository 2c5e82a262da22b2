package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/thomas-vilte/dishform/internal/config"
)

func TestBaseURLFlagIsNotSaved(t *testing.T) {
	// Arrange
	home := t.TempDir()
	t.Setenv("HOME", home)
	app, _, err := initializeApp()
	require.NoError(t, err)

	// Act
	err = app.Run(context.Background(), []string{"dishform", "--base-url", "http://override.example", "config", "set", "language", "en"})

	// Assert
	require.NoError(t, err)
	path := filepath.Join(home, ".dishform", "config.toml")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "override.example")

	saved, err := cfg.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultBaseURL, saved.BaseURL)
}

func TestBaseURLFlagRejectsInvalidURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	app, _, err := initializeApp()
	require.NoError(t, err)

	err = app.Run(context.Background(), []string{"dishform", "--base-url", "not a url", "config", "path"})

	assert.Error(t, err)
}
