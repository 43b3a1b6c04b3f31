// Package deck assembles a page manager and its collaborators from
// configuration. The simulator and the headless commands share it.
package deck

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/pagedeck/internal/automation"
	"github.com/zjrosen/pagedeck/internal/button"
	"github.com/zjrosen/pagedeck/internal/config"
	"github.com/zjrosen/pagedeck/internal/display"
	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
	"github.com/zjrosen/pagedeck/internal/selector"
)

// Deck is a wired page manager.
type Deck struct {
	Manager    *pagemanager.Manager
	Selector   *selector.Selector
	Sync       *pagemanager.Synchronizer
	Screen     *display.Screen
	Pages      *display.PageSet
	NextButton *button.Button // nil when not configured
	PrevButton *button.Button // nil when not configured
	Runner     *automation.Runner
	Builder    *automation.Builder
	Loader     *automation.Loader
	Templates  *automation.TemplateCache
}

type options struct {
	tracer    trace.Tracer
	renderer  pagemanager.Renderer
	observers []func(pagemanager.Transition)
}

// Option configures Build.
type Option func(*options)

// WithTracer traces transitions and script runs.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithRenderer adds a renderer that sees every screen load after the
// simulated Screen.
func WithRenderer(r pagemanager.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithObserver receives every completed transition synchronously.
func WithObserver(fn func(pagemanager.Transition)) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

// Build validates cfg and wires every component. configPath locates the
// default scripts directory. Setup is left to the caller.
func Build(cfg config.Config, configPath string, opts ...Option) (*Deck, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	pages := make([]*display.Page, len(cfg.Display.Pages))
	for i, p := range cfg.Display.Pages {
		pages[i] = display.NewPage(p.ID, p.Title, p.Content)
	}
	set, err := display.NewPageSet(pages...)
	if err != nil {
		return nil, err
	}

	reg := pagemanager.NewRegistry()
	for i, p := range cfg.PageManager.Pages {
		page, ok := set.Get(p.Page)
		if !ok {
			return nil, fmt.Errorf("%w: page_manager.pages[%d]: unknown display page %q", pagemanager.ErrInvalidConfig, i, p.Page)
		}
		if err := reg.Register(p.FriendlyName, p.Order, page); err != nil {
			return nil, fmt.Errorf("page_manager.pages[%d]: %w", i, err)
		}
	}

	sortMode, err := pagemanager.ParseSortMode(cfg.PageManager.Sort)
	if err != nil {
		return nil, err
	}

	screen := display.NewScreen()
	var renderer pagemanager.Renderer = screen
	if o.renderer != nil {
		renderer = fanout{screen, o.renderer}
	}

	mgrOpts := []pagemanager.Option{
		pagemanager.WithID(cfg.PageManager.ID),
		pagemanager.WithRenderer(renderer),
		pagemanager.WithSortMode(sortMode),
		pagemanager.WithDefaultPage(cfg.PageManager.DefaultPage),
		pagemanager.WithTracer(o.tracer),
	}
	for _, fn := range o.observers {
		mgrOpts = append(mgrOpts, pagemanager.WithObserver(fn))
	}
	mgr, err := pagemanager.New(reg, mgrOpts...)
	if err != nil {
		return nil, err
	}

	sel := selector.New(cfg.PageManager.Select.Name)
	sync := pagemanager.Attach(mgr, sel)

	d := &Deck{
		Manager:  mgr,
		Selector: sel,
		Sync:     sync,
		Screen:   screen,
		Pages:    set,
	}
	if b := cfg.PageManager.NextButton; b != nil {
		d.NextButton = button.New(b.Name)
		button.BindNext(d.NextButton, mgr)
	}
	if b := cfg.PageManager.PrevButton; b != nil {
		d.PrevButton = button.New(b.Name)
		button.BindPrev(d.PrevButton, mgr)
	}

	defaults, err := config.ActionDefaults(cfg.Actions)
	if err != nil {
		return nil, err
	}
	d.Templates = automation.NewTemplateCache()
	d.Builder = automation.NewBuilder(mgr, d.Templates, defaults)
	d.Runner = automation.NewRunner(automation.WithTracer(o.tracer))

	dir := cfg.ScriptsDir
	if dir == "" {
		dir = config.DefaultScriptsDir(configPath)
	}
	d.Loader = automation.NewLoader(d.Runner, d.Builder, cfg.Scripts, dir)
	if err := d.Loader.Load(); err != nil {
		return nil, err
	}

	log.Info(log.CatConfig, "Deck ready",
		"manager", mgr.ID(), "pages", reg.Len(), "scripts", len(d.Runner.IDs()), "scripts_dir", dir)
	return d, nil
}

// Setup publishes the select options and shows the default page.
func (d *Deck) Setup(ctx context.Context) {
	d.Manager.Setup(ctx)
}

// Close releases subscribers.
func (d *Deck) Close() {
	d.Manager.Close()
	d.Selector.Close()
}

// fanout forwards each screen load to several renderers in order.
type fanout []pagemanager.Renderer

func (f fanout) ShowPage(page pagemanager.Page, anim pagemanager.Animation, d time.Duration) {
	for _, r := range f {
		r.ShowPage(page, anim, d)
	}
}
