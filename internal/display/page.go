// Package display simulates the embedded screen in a terminal. Screen is the
// rendering collaborator the page manager drives; Model plays the recorded
// transitions as Bubble Tea frames.
package display

import (
	"fmt"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// Page is a renderable screen. Content is markdown.
type Page struct {
	id      string
	title   string
	content string
}

var _ pagemanager.Page = (*Page)(nil)

// NewPage creates a page.
func NewPage(id, title, content string) *Page {
	return &Page{id: id, title: title, content: content}
}

// ID implements pagemanager.Page.
func (p *Page) ID() string { return p.id }

// Title returns the title shown in the display's status row.
func (p *Page) Title() string { return p.title }

// Content returns the markdown body.
func (p *Page) Content() string { return p.content }

// PageSet indexes pages by id.
type PageSet struct {
	pages []*Page
	byID  map[string]*Page
}

// NewPageSet indexes pages, rejecting empty or duplicate ids.
func NewPageSet(pages ...*Page) (*PageSet, error) {
	s := &PageSet{byID: make(map[string]*Page, len(pages))}
	for _, p := range pages {
		if p == nil || p.id == "" {
			return nil, fmt.Errorf("%w: display page without id", pagemanager.ErrInvalidConfig)
		}
		if _, dup := s.byID[p.id]; dup {
			return nil, fmt.Errorf("%w: duplicate display page %q", pagemanager.ErrInvalidConfig, p.id)
		}
		s.byID[p.id] = p
		s.pages = append(s.pages, p)
	}
	return s, nil
}

// Get returns the page with the given id.
func (s *PageSet) Get(id string) (*Page, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Len returns the number of pages.
func (s *PageSet) Len() int { return len(s.pages) }
