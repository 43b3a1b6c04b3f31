package automation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// ActionConfig is one action as written in configuration or a script file.
type ActionConfig struct {
	Action        string `mapstructure:"action" yaml:"action"`
	Page          string `mapstructure:"page" yaml:"page,omitempty"`
	Animation     string `mapstructure:"animation" yaml:"animation,omitempty"`
	Time          string `mapstructure:"time" yaml:"time,omitempty"`
	PageManagerID string `mapstructure:"page_manager_id" yaml:"page_manager_id,omitempty"`
}

// ScriptConfig is a named, ordered list of actions.
type ScriptConfig struct {
	ID      string         `mapstructure:"id" yaml:"id"`
	Actions []ActionConfig `mapstructure:"actions" yaml:"actions"`
}

// Default is the animation and time used when an action omits them.
type Default struct {
	Animation pagemanager.Animation
	Time      time.Duration
}

// Defaults holds the per-kind defaults.
type Defaults struct {
	Next     Default
	Previous Default
	Show     Default
}

// DefaultDefaults returns the engine defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Next:     Default{pagemanager.DefaultNextAnimation, pagemanager.DefaultDuration},
		Previous: Default{pagemanager.DefaultPreviousAnimation, pagemanager.DefaultDuration},
		Show:     Default{pagemanager.DefaultShowAnimation, pagemanager.DefaultDuration},
	}
}

// Builder turns configuration into actions parented to one navigator.
type Builder struct {
	nav       Navigator
	templates *TemplateCache
	defaults  Defaults
}

// NewBuilder creates a builder. A nil cache gets a fresh one.
func NewBuilder(nav Navigator, templates *TemplateCache, defaults Defaults) *Builder {
	if templates == nil {
		templates = NewTemplateCache()
	}
	return &Builder{nav: nav, templates: templates, defaults: defaults}
}

// BuildAction validates cfg and creates the action.
func (b *Builder) BuildAction(cfg ActionConfig) (Action, error) {
	kind := Kind(strings.TrimSpace(cfg.Action))
	if !slices.Contains(Kinds(), kind) {
		return nil, fmt.Errorf("%w: unknown action %q", pagemanager.ErrInvalidConfig, cfg.Action)
	}

	managerID := cfg.PageManagerID
	if managerID == "" {
		managerID = pagemanager.DefaultID
	}
	if managerID != b.nav.ID() {
		return nil, fmt.Errorf("%w: page_manager_id %q does not match %q", pagemanager.ErrInvalidConfig, managerID, b.nav.ID())
	}

	def := b.defaults.Next
	switch kind {
	case KindPrevPage:
		def = b.defaults.Previous
	case KindShowPage:
		def = b.defaults.Show
	}

	anim, err := b.animationParam(cfg.Animation, def.Animation)
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	d, err := b.timeParam(cfg.Time, def.Time)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	switch kind {
	case KindNextPage:
		return NewNextPageAction(b.nav, anim, d), nil
	case KindPrevPage:
		return NewPrevPageAction(b.nav, anim, d), nil
	default:
		if strings.TrimSpace(cfg.Page) == "" {
			return nil, fmt.Errorf("%w: page.show requires a page", pagemanager.ErrInvalidConfig)
		}
		page, err := b.stringParam(cfg.Page)
		if err != nil {
			return nil, fmt.Errorf("page: %w", err)
		}
		if !page.IsDeferred() {
			b.warnUnknownLabel(page)
		}
		return NewShowPageAction(b.nav, page, anim, d), nil
	}
}

// BuildScript builds every action of cfg.
func (b *Builder) BuildScript(cfg ScriptConfig) (*Script, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, fmt.Errorf("%w: script id is required", pagemanager.ErrInvalidConfig)
	}
	script := &Script{ID: cfg.ID}
	for i, ac := range cfg.Actions {
		a, err := b.BuildAction(ac)
		if err != nil {
			return nil, fmt.Errorf("script %q actions[%d]: %w", cfg.ID, i, err)
		}
		script.Actions = append(script.Actions, a)
	}
	return script, nil
}

// BuildScripts builds cfgs, rejecting duplicate ids.
func (b *Builder) BuildScripts(cfgs []ScriptConfig) ([]*Script, error) {
	seen := make(map[string]bool, len(cfgs))
	out := make([]*Script, 0, len(cfgs))
	for _, cfg := range cfgs {
		if seen[cfg.ID] {
			return nil, fmt.Errorf("%w: duplicate script id %q", pagemanager.ErrInvalidConfig, cfg.ID)
		}
		seen[cfg.ID] = true
		s, err := b.BuildScript(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// warnUnknownLabel logs a static page name the navigator's registry lacks.
// The action is still built; running it skips the transition.
func (b *Builder) warnUnknownLabel(page Templatable[string]) {
	r, ok := b.nav.(interface{ Registry() *pagemanager.Registry })
	if !ok {
		return
	}
	label, _ := page.Resolve(nil)
	if _, found := r.Registry().IndexOfLabel(label); !found {
		log.Warn(log.CatScript, "page.show target is not a registered page", "page", label, "manager", b.nav.ID())
	}
}
