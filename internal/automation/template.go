package automation

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/zjrosen/pagedeck/internal/cachemanager"
	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// IsTemplate reports whether s contains template actions.
func IsTemplate(s string) bool {
	return strings.Contains(s, "{{")
}

// TemplateCache renders argument templates, compiling each source once.
type TemplateCache struct {
	cache    *cachemanager.InMemory[string, *template.Template]
	compiled *cachemanager.ReadThrough[string, *template.Template]
}

// NewTemplateCache creates an empty cache. Entries live until Flush.
func NewTemplateCache() *TemplateCache {
	cache := cachemanager.NewInMemory[string, *template.Template](
		"templates", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	return &TemplateCache{
		cache:    cache,
		compiled: cachemanager.NewReadThrough[string, *template.Template](cache, compile, cachemanager.NoExpiration),
	}
}

func compile(_ context.Context, src string) (*template.Template, error) {
	log.Debug(log.CatCache, "Compiling template", "src", src)
	tmpl, err := template.New("arg").Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q: %w", pagemanager.ErrInvalidConfig, src, err)
	}
	return tmpl, nil
}

// Check compiles src without executing it.
func (c *TemplateCache) Check(ctx context.Context, src string) error {
	_, err := c.compiled.Get(ctx, src)
	return err
}

// Render executes src against args.
func (c *TemplateCache) Render(ctx context.Context, src string, args Args) (string, error) {
	tmpl, err := c.compiled.Get(ctx, src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]any(args)); err != nil {
		return "", fmt.Errorf("render %q: %w", src, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Len returns the number of compiled templates.
func (c *TemplateCache) Len() int {
	return c.cache.Len()
}

// Stats returns compile cache counters.
func (c *TemplateCache) Stats() cachemanager.Stats {
	return c.compiled.Stats()
}

// Flush drops every compiled template.
func (c *TemplateCache) Flush(ctx context.Context) {
	c.cache.Flush(ctx)
}
