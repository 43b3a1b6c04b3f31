package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// Kind names an action in configuration.
type Kind string

const (
	KindNextPage Kind = "page.next"
	KindPrevPage Kind = "page.previous"
	KindShowPage Kind = "page.show"
)

// Kinds returns the supported action kinds.
func Kinds() []Kind {
	return []Kind{KindNextPage, KindPrevPage, KindShowPage}
}

// Navigator is the navigation engine as seen by actions.
// *pagemanager.Manager satisfies it.
type Navigator interface {
	ID() string
	GoNext(ctx context.Context, anim pagemanager.Animation, d time.Duration)
	GoPrevious(ctx context.Context, anim pagemanager.Animation, d time.Duration)
	GoTo(ctx context.Context, label string, anim pagemanager.Animation, d time.Duration) error
}

// Action is one scripted navigation step.
type Action interface {
	Kind() Kind
	Execute(ctx context.Context, args Args) error
}

// transition holds the parameters shared by every action.
type transition struct {
	nav       Navigator
	Animation Templatable[pagemanager.Animation]
	Time      Templatable[time.Duration]
}

func (t transition) resolve(args Args) (pagemanager.Animation, time.Duration, error) {
	anim, err := t.Animation.Resolve(args)
	if err != nil {
		return pagemanager.AnimNone, 0, fmt.Errorf("animation: %w", err)
	}
	d, err := t.Time.Resolve(args)
	if err != nil {
		return pagemanager.AnimNone, 0, fmt.Errorf("time: %w", err)
	}
	return anim, d, nil
}

// NextPageAction advances the navigator one page.
type NextPageAction struct {
	transition
}

// NewNextPageAction creates a page.next action bound to nav.
func NewNextPageAction(nav Navigator, anim Templatable[pagemanager.Animation], d Templatable[time.Duration]) *NextPageAction {
	return &NextPageAction{transition{nav: nav, Animation: anim, Time: d}}
}

func (a *NextPageAction) Kind() Kind { return KindNextPage }

func (a *NextPageAction) Execute(ctx context.Context, args Args) error {
	anim, d, err := a.resolve(args)
	if err != nil {
		return err
	}
	a.nav.GoNext(ctx, anim, d)
	return nil
}

// PrevPageAction steps the navigator back one page.
type PrevPageAction struct {
	transition
}

// NewPrevPageAction creates a page.previous action bound to nav.
func NewPrevPageAction(nav Navigator, anim Templatable[pagemanager.Animation], d Templatable[time.Duration]) *PrevPageAction {
	return &PrevPageAction{transition{nav: nav, Animation: anim, Time: d}}
}

func (a *PrevPageAction) Kind() Kind { return KindPrevPage }

func (a *PrevPageAction) Execute(ctx context.Context, args Args) error {
	anim, d, err := a.resolve(args)
	if err != nil {
		return err
	}
	a.nav.GoPrevious(ctx, anim, d)
	return nil
}

// ShowPageAction shows a page by friendly name.
type ShowPageAction struct {
	transition
	Page Templatable[string]
}

// NewShowPageAction creates a page.show action bound to nav.
func NewShowPageAction(nav Navigator, page Templatable[string], anim Templatable[pagemanager.Animation], d Templatable[time.Duration]) *ShowPageAction {
	return &ShowPageAction{
		transition: transition{nav: nav, Animation: anim, Time: d},
		Page:       page,
	}
}

func (a *ShowPageAction) Kind() Kind { return KindShowPage }

// Execute resolves the page name and navigates to it. An unknown name returns
// an error wrapping pagemanager.ErrUnknownPage.
func (a *ShowPageAction) Execute(ctx context.Context, args Args) error {
	label, err := a.Page.Resolve(args)
	if err != nil {
		return fmt.Errorf("page: %w", err)
	}
	anim, d, err := a.resolve(args)
	if err != nil {
		return err
	}
	log.Debug(log.CatAction, "Show page", "name", label, "animation", anim, "ms", d.Milliseconds())
	return a.nav.GoTo(ctx, label, anim, d)
}
