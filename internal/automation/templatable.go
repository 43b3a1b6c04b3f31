// Package automation runs navigation actions from scripts. Action parameters
// may be static or resolved from the script's arguments at execution time.
package automation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

// Args is the argument bundle of one script invocation.
type Args map[string]any

// Templatable is either a fixed value or a function of the invocation's Args.
// Deferred values are evaluated on every Resolve and never stored.
type Templatable[T any] struct {
	value T
	fn    func(Args) (T, error)
}

// Static wraps a fixed value.
func Static[T any](v T) Templatable[T] {
	return Templatable[T]{value: v}
}

// Deferred wraps a function evaluated at execution time.
func Deferred[T any](fn func(Args) (T, error)) Templatable[T] {
	return Templatable[T]{fn: fn}
}

// Resolve returns the value for this invocation.
func (t Templatable[T]) Resolve(args Args) (T, error) {
	if t.fn != nil {
		return t.fn(args)
	}
	return t.value, nil
}

// IsDeferred reports whether the value depends on Args.
func (t Templatable[T]) IsDeferred() bool {
	return t.fn != nil
}

// ParseTime parses a transition time. Bare integers are milliseconds;
// anything else must be a Go duration such as "300ms" or "1s".
func ParseTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("%w: negative time %q", pagemanager.ErrInvalidConfig, s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q", pagemanager.ErrInvalidConfig, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative time %q", pagemanager.ErrInvalidConfig, s)
	}
	return d, nil
}

// stringParam builds a string parameter from source text.
func (b *Builder) stringParam(src string) (Templatable[string], error) {
	if !IsTemplate(src) {
		return Static(strings.TrimSpace(src)), nil
	}
	if err := b.templates.Check(context.Background(), src); err != nil {
		return Templatable[string]{}, err
	}
	return Deferred(func(args Args) (string, error) {
		return b.templates.Render(context.Background(), src, args)
	}), nil
}

// animationParam builds an animation parameter; empty source uses def.
func (b *Builder) animationParam(src string, def pagemanager.Animation) (Templatable[pagemanager.Animation], error) {
	if strings.TrimSpace(src) == "" {
		return Static(def), nil
	}
	if !IsTemplate(src) {
		a, err := pagemanager.ParseAnimation(src)
		if err != nil {
			return Templatable[pagemanager.Animation]{}, err
		}
		return Static(a), nil
	}
	if err := b.templates.Check(context.Background(), src); err != nil {
		return Templatable[pagemanager.Animation]{}, err
	}
	return Deferred(func(args Args) (pagemanager.Animation, error) {
		s, err := b.templates.Render(context.Background(), src, args)
		if err != nil {
			return pagemanager.AnimNone, err
		}
		return pagemanager.ParseAnimation(s)
	}), nil
}

// timeParam builds a time parameter; empty source uses def.
func (b *Builder) timeParam(src string, def time.Duration) (Templatable[time.Duration], error) {
	if strings.TrimSpace(src) == "" {
		return Static(def), nil
	}
	if !IsTemplate(src) {
		d, err := ParseTime(src)
		if err != nil {
			return Templatable[time.Duration]{}, err
		}
		return Static(d), nil
	}
	if err := b.templates.Check(context.Background(), src); err != nil {
		return Templatable[time.Duration]{}, err
	}
	return Deferred(func(args Args) (time.Duration, error) {
		s, err := b.templates.Render(context.Background(), src, args)
		if err != nil {
			return 0, err
		}
		return ParseTime(s)
	}), nil
}
