package automation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// LoadScriptFile parses one script file. A file without an id takes its base
// name without extension.
func LoadScriptFile(path string) (ScriptConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the configured scripts directory
	if err != nil {
		return ScriptConfig{}, fmt.Errorf("reading script %s: %w", path, err)
	}

	var cfg ScriptConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ScriptConfig{}, fmt.Errorf("%w: parsing script %s: %w", pagemanager.ErrInvalidConfig, path, err)
	}
	if cfg.ID == "" {
		base := filepath.Base(path)
		cfg.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return cfg, nil
}

// LoadScriptDir parses every *.yaml and *.yml file in dir, ordered by file
// name. A missing directory yields no scripts.
func LoadScriptDir(dir string) ([]ScriptConfig, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(log.CatScript, "Scripts directory does not exist", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scripts directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]ScriptConfig, 0, len(names))
	for _, name := range names {
		cfg, err := LoadScriptFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, nil
}

// WriteScriptFile writes cfg as YAML to path.
func WriteScriptFile(path string, cfg ScriptConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding script: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating scripts directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Loader rebuilds a Runner's scripts from configuration plus a scripts
// directory.
type Loader struct {
	runner  *Runner
	builder *Builder
	base    []ScriptConfig
	dir     string
}

// NewLoader creates a loader. base are the scripts from the main config.
func NewLoader(runner *Runner, builder *Builder, base []ScriptConfig, dir string) *Loader {
	return &Loader{runner: runner, builder: builder, base: base, dir: dir}
}

// Dir returns the scripts directory.
func (l *Loader) Dir() string { return l.dir }

// Load builds every script and replaces the runner's set. On error the
// previous set stays in place.
func (l *Loader) Load() error {
	files, err := LoadScriptDir(l.dir)
	if err != nil {
		return err
	}
	all := append(append([]ScriptConfig(nil), l.base...), files...)
	scripts, err := l.builder.BuildScripts(all)
	if err != nil {
		return err
	}
	l.runner.Replace(scripts)
	return nil
}
