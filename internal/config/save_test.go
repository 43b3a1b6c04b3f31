package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readDefaultPage(t *testing.T, path string) string {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return v.GetString("page_manager.default_page")
}

func TestSaveDefaultPage_UpdatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveDefaultPage(path, "Settings"))
	require.Equal(t, "Settings", readDefaultPage(t, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# dark, light, or notty", "comments are preserved")
	require.Contains(t, string(data), "friendly_name: About", "other keys are preserved")
}

func TestSaveDefaultPage_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "config.yaml")

	require.NoError(t, SaveDefaultPage(path, "Home"))
	require.Equal(t, "Home", readDefaultPage(t, path))
}

func TestSaveDefaultPage_AddsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  width: 40\n"), 0o600))

	require.NoError(t, SaveDefaultPage(path, "About"))
	require.Equal(t, "About", readDefaultPage(t, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "width: 40")
}

func TestSaveDefaultPage_QuotesAmbiguousLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveDefaultPage(path, "true"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `default_page: "true"`)
}

func TestSaveDefaultPage_EmptyRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveDefaultPage(path, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(data), "default_page:"))
}

func TestSaveDefaultPage_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a list\n"), 0o600))

	require.Error(t, SaveDefaultPage(path, "Home"))
}
