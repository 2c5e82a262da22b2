package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should load the embedded catalog without a locales path", func(t *testing.T) {
		// act
		trans, err := NewTranslations("en", "")

		// assert
		require.NoError(t, err)
		assert.Equal(t, "Recipe has been successfully saved!", trans.GetMessage("feedback.success", 0, nil))
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		// act
		trans, err := NewTranslations("", "")

		// assert
		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should override embedded messages with files from the locales path", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.en.toml", `
		["feedback.success"]
		other = "Saved!"`)

		// act
		trans, err := NewTranslations("en", tmpDir)

		// assert
		require.NoError(t, err)
		assert.Equal(t, "Saved!", trans.GetMessage("feedback.success", 0, nil))
	})

	t.Run("Should fail on a malformed locale file", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.en.toml", `[broken`)

		// act
		_, err := NewTranslations("en", tmpDir)

		// assert
		assert.Error(t, err)
	})
}

func TestSetLanguage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	require.NoError(t, err)

	t.Run("Should accept English", func(t *testing.T) {
		assert.NoError(t, trans.SetLanguage("en"))
	})

	t.Run("Should fail with unsupported language", func(t *testing.T) {
		assert.Error(t, trans.SetLanguage("fr"))
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	require.NoError(t, err)

	t.Run("Should render template data", func(t *testing.T) {
		result := trans.GetMessage("submit.sent", 0, map[string]interface{}{
			"Type":   "soup",
			"Status": 200,
		})

		assert.Equal(t, "soup recipe sent (HTTP 200)", result)
	})

	t.Run("Should pick plural forms", func(t *testing.T) {
		assert.Equal(t, "1 field needs attention", trans.GetMessage("validation.summary", 1, map[string]interface{}{"Count": 1}))
		assert.Equal(t, "3 fields need attention", trans.GetMessage("validation.summary", 3, map[string]interface{}{"Count": 3}))
	})

	t.Run("Should handle missing messages", func(t *testing.T) {
		assert.Equal(t, "Translation missing: NonExistent", trans.GetMessage("NonExistent", 0, nil))
	})
}

func createTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	if err != nil {
		t.Fatalf("Error creating test file: %v", err)
	}
}
