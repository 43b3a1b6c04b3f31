package automation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	writeFile(t, path, `
actions:
  - action: page.show
    page: Settings
    animation: FADE_IN
    time: 300
  - action: page.next
`)

	cfg, err := LoadScriptFile(path)
	require.NoError(t, err)
	require.Equal(t, "tour", cfg.ID, "id defaults to the file name")
	require.Len(t, cfg.Actions, 2)
	require.Equal(t, "300", cfg.Actions[0].Time)
	require.Equal(t, "FADE_IN", cfg.Actions[0].Animation)
}

func TestLoadScriptFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScriptFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "id: x\nunknown_field: 1\n")
	_, err = LoadScriptFile(bad)
	require.ErrorIs(t, err, pagemanager.ErrInvalidConfig)
}

func TestLoadScriptDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yml"), "id: second\nactions: []\n")
	writeFile(t, filepath.Join(dir, "a.yaml"), "id: first\nactions: []\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	cfgs, err := LoadScriptDir(dir)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)
	require.Equal(t, "first", cfgs[0].ID)
	require.Equal(t, "second", cfgs[1].ID)

	cfgs, err = LoadScriptDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Empty(t, cfgs)

	cfgs, err = LoadScriptDir("")
	require.NoError(t, err)
	require.Empty(t, cfgs)
}

func TestWriteScriptFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts", "tour.yaml")
	want := ScriptConfig{ID: "tour", Actions: []ActionConfig{
		{Action: "page.show", Page: "{{ .target }}", Animation: "FADE_IN", Time: "300ms"},
	}}
	require.NoError(t, WriteScriptFile(path, want))

	got, err := LoadScriptFile(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoader_ReloadKeepsPreviousOnError(t *testing.T) {
	m, _ := newManager(t)
	dir := t.TempDir()
	runner := NewRunner()
	base := []ScriptConfig{{ID: "home", Actions: []ActionConfig{{Action: "page.show", Page: "Home"}}}}
	loader := NewLoader(runner, NewBuilder(m, nil, DefaultDefaults()), base, dir)
	require.Equal(t, dir, loader.Dir())

	writeFile(t, filepath.Join(dir, "tour.yaml"), "actions:\n  - action: page.next\n")
	require.NoError(t, loader.Load())
	require.Equal(t, []string{"home", "tour"}, runner.IDs())

	writeFile(t, filepath.Join(dir, "broken.yaml"), "actions:\n  - action: page.fly\n")
	require.Error(t, loader.Load())
	require.Equal(t, []string{"home", "tour"}, runner.IDs())

	require.NoError(t, os.Remove(filepath.Join(dir, "broken.yaml")))
	require.NoError(t, os.Remove(filepath.Join(dir, "tour.yaml")))
	require.NoError(t, loader.Load())
	require.Equal(t, []string{"home"}, runner.IDs())
}
