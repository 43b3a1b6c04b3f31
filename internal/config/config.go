// Package config provides configuration types, defaults and validation for
// pagedeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/pagedeck/internal/automation"
	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
	"github.com/zjrosen/pagedeck/internal/tracing"
)

// Config holds all configuration options for pagedeck.
type Config struct {
	PageManager PageManagerConfig         `mapstructure:"page_manager"`
	Actions     ActionsConfig             `mapstructure:"actions"`
	Display     DisplayConfig             `mapstructure:"display"`
	UI          UIConfig                  `mapstructure:"ui"`
	ScriptsDir  string                    `mapstructure:"scripts_dir"`
	Scripts     []automation.ScriptConfig `mapstructure:"scripts"`
	Tracing     tracing.Config            `mapstructure:"tracing"`
}

// PageManagerConfig configures the page registry and its select entity.
type PageManagerConfig struct {
	ID          string        `mapstructure:"id"`
	Select      SelectConfig  `mapstructure:"select"`
	DefaultPage string        `mapstructure:"default_page"` // friendly name (or page id); optional
	Sort        string        `mapstructure:"sort"`         // "by_order" (default), "by_name" or "by_page"
	Pages       []PageConfig  `mapstructure:"pages"`
	NextButton  *ButtonConfig `mapstructure:"next_button"`
	PrevButton  *ButtonConfig `mapstructure:"prev_button"`
}

// SelectConfig names the select entity mirroring the active page.
type SelectConfig struct {
	Name string `mapstructure:"name"`
}

// PageConfig is one page registration.
type PageConfig struct {
	Page         string `mapstructure:"page"`          // display page id
	FriendlyName string `mapstructure:"friendly_name"` // label shown in the select
	Order        int    `mapstructure:"order"`
}

// ButtonConfig declares a momentary navigation button.
type ButtonConfig struct {
	Name string `mapstructure:"name"`
}

// ActionsConfig holds the defaults for each action kind.
type ActionsConfig struct {
	Next     ActionDefaultConfig `mapstructure:"next"`
	Previous ActionDefaultConfig `mapstructure:"previous"`
	Show     ActionDefaultConfig `mapstructure:"show"`
}

// ActionDefaultConfig is the animation and time an action uses when it sets
// neither.
type ActionDefaultConfig struct {
	Animation string `mapstructure:"animation"`
	Time      string `mapstructure:"time"` // Go duration or integer milliseconds
}

// DisplayConfig configures the simulated display.
type DisplayConfig struct {
	Width     int                 `mapstructure:"width"`
	Height    int                 `mapstructure:"height"`
	FrameRate int                 `mapstructure:"frame_rate"`
	Pages     []DisplayPageConfig `mapstructure:"pages"`
}

// DisplayPageConfig is a renderable page. Content is markdown.
type DisplayPageConfig struct {
	ID      string `mapstructure:"id"`
	Title   string `mapstructure:"title"`
	Content string `mapstructure:"content"`
}

// UIConfig holds simulator options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light" or "notty"
	ShowLog       bool   `mapstructure:"show_log"`       // open the diagnostics panel at start
}

// Display size bounds.
const (
	MinDisplayWidth  = 16
	MinDisplayHeight = 4
	MaxFrameRate     = 120
)

// DefaultScriptsDir returns the scripts directory next to the config file.
func DefaultScriptsDir(configPath string) string {
	if configPath == "" {
		return filepath.Join(".pagedeck", "scripts")
	}
	return filepath.Join(filepath.Dir(configPath), "scripts")
}

// DefaultTracesFilePath returns the default trace output file.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".pagedeck", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "pagedeck", "traces", "traces.jsonl")
}

// DefaultPages returns the sample page registrations.
func DefaultPages() []PageConfig {
	return []PageConfig{
		{Page: "home_page", FriendlyName: "Home", Order: 0},
		{Page: "settings_page", FriendlyName: "Settings", Order: 1},
		{Page: "about_page", FriendlyName: "About", Order: 2},
	}
}

// DefaultDisplayPages returns the sample display pages.
func DefaultDisplayPages() []DisplayPageConfig {
	return []DisplayPageConfig{
		{ID: "home_page", Title: "Home", Content: "# Home\n\nTemperature **21.5°C**\n\nHumidity 40%"},
		{ID: "settings_page", Title: "Settings", Content: "# Settings\n\n- Brightness: 80%\n- Sleep: 5 min"},
		{ID: "about_page", Title: "About", Content: "# About\n\npagedeck display simulator"},
	}
}

// DefaultScripts returns the sample scripts.
func DefaultScripts() []automation.ScriptConfig {
	return []automation.ScriptConfig{
		{
			ID: "show",
			Actions: []automation.ActionConfig{
				{Action: "page.show", Page: "{{ .page }}", Animation: "FADE_IN", Time: "300ms"},
			},
		},
		{
			ID: "tour",
			Actions: []automation.ActionConfig{
				{Action: "page.next"},
				{Action: "page.next"},
				{Action: "page.show", Page: "Home"},
			},
		},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		PageManager: PageManagerConfig{
			ID:          pagemanager.DefaultID,
			Select:      SelectConfig{Name: "Current Page"},
			DefaultPage: "Home",
			Sort:        "by_order",
			Pages:       DefaultPages(),
			NextButton:  &ButtonConfig{Name: "Next Page"},
			PrevButton:  &ButtonConfig{Name: "Previous Page"},
		},
		Actions: ActionsConfig{
			Next:     ActionDefaultConfig{Animation: "OVER_LEFT", Time: "50ms"},
			Previous: ActionDefaultConfig{Animation: "OVER_RIGHT", Time: "50ms"},
			Show:     ActionDefaultConfig{Animation: "NONE", Time: "50ms"},
		},
		Display: DisplayConfig{
			Width:     48,
			Height:    14,
			FrameRate: 30,
			Pages:     DefaultDisplayPages(),
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
		Scripts: DefaultScripts(),
		Tracing: tracing.DefaultConfig(),
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", pagemanager.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// ValidatePageManager checks page registrations, sort mode and default page.
func ValidatePageManager(pm PageManagerConfig) error {
	if strings.TrimSpace(pm.ID) == "" {
		return invalid("page_manager.id is required")
	}
	if _, err := pagemanager.ParseSortMode(pm.Sort); err != nil {
		return invalid("page_manager.sort must be \"by_order\", \"by_name\", or \"by_page\", got %q", pm.Sort)
	}

	seen := make(map[string]int, len(pm.Pages))
	for i, p := range pm.Pages {
		if strings.TrimSpace(p.Page) == "" {
			return invalid("page_manager.pages[%d]: page is required", i)
		}
		if strings.TrimSpace(p.FriendlyName) == "" {
			return invalid("page_manager.pages[%d] (%s): friendly_name is required", i, p.Page)
		}
		if j, dup := seen[p.Page]; dup {
			return invalid("page_manager.pages[%d]: page %q already registered at pages[%d]", i, p.Page, j)
		}
		seen[p.Page] = i
	}

	if pm.DefaultPage != "" {
		found := false
		for _, p := range pm.Pages {
			if p.FriendlyName == pm.DefaultPage || p.Page == pm.DefaultPage {
				found = true
				break
			}
		}
		if !found {
			return invalid("page_manager.default_page %q does not match any page", pm.DefaultPage)
		}
	}

	if pm.NextButton != nil && strings.TrimSpace(pm.NextButton.Name) == "" {
		return invalid("page_manager.next_button.name is required")
	}
	if pm.PrevButton != nil && strings.TrimSpace(pm.PrevButton.Name) == "" {
		return invalid("page_manager.prev_button.name is required")
	}
	return nil
}

// ValidateActions checks the action defaults.
func ValidateActions(a ActionsConfig) error {
	_, err := ActionDefaults(a)
	return err
}

// ActionDefaults converts the action defaults for the automation builder.
// Empty fields keep the engine defaults.
func ActionDefaults(a ActionsConfig) (automation.Defaults, error) {
	defs := automation.DefaultDefaults()
	for _, item := range []struct {
		name string
		cfg  ActionDefaultConfig
		out  *automation.Default
	}{
		{"next", a.Next, &defs.Next},
		{"previous", a.Previous, &defs.Previous},
		{"show", a.Show, &defs.Show},
	} {
		if item.cfg.Animation != "" {
			anim, err := pagemanager.ParseAnimation(item.cfg.Animation)
			if err != nil {
				return defs, invalid("actions.%s.animation: unknown animation %q", item.name, item.cfg.Animation)
			}
			item.out.Animation = anim
		}
		if item.cfg.Time != "" {
			d, err := automation.ParseTime(item.cfg.Time)
			if err != nil {
				return defs, invalid("actions.%s.time: invalid time %q", item.name, item.cfg.Time)
			}
			item.out.Time = d
		}
	}
	return defs, nil
}

// ValidateDisplay checks display settings and that every registered page has
// a display page.
func ValidateDisplay(d DisplayConfig, pages []PageConfig) error {
	if d.Width < MinDisplayWidth {
		return invalid("display.width must be at least %d, got %d", MinDisplayWidth, d.Width)
	}
	if d.Height < MinDisplayHeight {
		return invalid("display.height must be at least %d, got %d", MinDisplayHeight, d.Height)
	}
	if d.FrameRate < 1 || d.FrameRate > MaxFrameRate {
		return invalid("display.frame_rate must be between 1 and %d, got %d", MaxFrameRate, d.FrameRate)
	}

	ids := make(map[string]bool, len(d.Pages))
	for i, p := range d.Pages {
		if strings.TrimSpace(p.ID) == "" {
			return invalid("display.pages[%d]: id is required", i)
		}
		if ids[p.ID] {
			return invalid("display.pages[%d]: duplicate id %q", i, p.ID)
		}
		ids[p.ID] = true
	}
	for i, p := range pages {
		if !ids[p.Page] {
			return invalid("page_manager.pages[%d]: unknown display page %q", i, p.Page)
		}
	}
	return nil
}

// ValidateScripts checks script ids. Actions are checked when built.
func ValidateScripts(scripts []automation.ScriptConfig) error {
	seen := make(map[string]bool, len(scripts))
	for i, s := range scripts {
		if strings.TrimSpace(s.ID) == "" {
			return invalid("scripts[%d]: id is required", i)
		}
		if seen[s.ID] {
			return invalid("scripts[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		for j, a := range s.Actions {
			if strings.TrimSpace(a.Action) == "" {
				return invalid("scripts[%d] (%s).actions[%d]: action is required", i, s.ID, j)
			}
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return invalid("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	if !t.Enabled {
		return nil
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return invalid("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return invalid("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ValidateUI checks simulator options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light", "notty":
		return nil
	default:
		return invalid("ui.markdown_style must be \"dark\", \"light\", or \"notty\", got %q", ui.MarkdownStyle)
	}
}

// Validate runs every check and returns the first error.
func Validate(c Config) error {
	if err := ValidatePageManager(c.PageManager); err != nil {
		return err
	}
	if err := ValidateActions(c.Actions); err != nil {
		return err
	}
	if err := ValidateDisplay(c.Display, c.PageManager.Pages); err != nil {
		return err
	}
	if err := ValidateScripts(c.Scripts); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# pagedeck configuration

# Page manager: the pages you can navigate between and how they are ordered
page_manager:
  id: page_manager              # referenced by actions as page_manager_id
  select:
    name: Current Page          # select entity mirroring the active page
  default_page: Home            # friendly name shown at startup (optional)
  sort: by_order                # by_order, by_name, or by_page
  pages:
    - page: home_page           # display page id (see display.pages)
      friendly_name: Home
      order: 0
    - page: settings_page
      friendly_name: Settings
      order: 1
    - page: about_page
      friendly_name: About
      order: 2
  next_button:
    name: Next Page
  prev_button:
    name: Previous Page

# Defaults used by page.next, page.previous and page.show when an action sets
# no animation or time. Animations: NONE, OVER_LEFT, OVER_RIGHT, OVER_TOP,
# OVER_BOTTOM, MOVE_LEFT, MOVE_RIGHT, MOVE_TOP, MOVE_BOTTOM, FADE_IN, FADE_OUT,
# OUT_LEFT, OUT_RIGHT, OUT_TOP, OUT_BOTTOM. Times: 300ms, 1s, or 300 (ms).
actions:
  next:
    animation: OVER_LEFT
    time: 50ms
  previous:
    animation: OVER_RIGHT
    time: 50ms
  show:
    animation: NONE
    time: 50ms

# Simulated display
display:
  width: 48
  height: 14
  frame_rate: 30
  pages:
    - id: home_page
      title: Home
      content: "# Home\n\nTemperature **21.5°C**\n\nHumidity 40%"
    - id: settings_page
      title: Settings
      content: "# Settings\n\n- Brightness: 80%\n- Sleep: 5 min"
    - id: about_page
      title: About
      content: "# About\n\npagedeck display simulator"

# Simulator
ui:
  markdown_style: dark          # dark, light, or notty
  show_log: false               # open the log panel at startup

# Scripts are ordered action lists run with 'pagedeck run <id>'.
# Every *.yaml file in scripts_dir is loaded too and reloaded on change.
# scripts_dir: .pagedeck/scripts
scripts:
  - id: show
    actions:
      - action: page.show
        page: "{{ .page }}"     # pagedeck run show --arg page=Settings
        animation: FADE_IN
        time: 300ms
  - id: tour
    actions:
      - action: page.next
      - action: page.next
      - action: page.show
        page: Home

# Tracing of page transitions and script runs
# tracing:
#   enabled: false                 # default: false
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/pagedeck/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
