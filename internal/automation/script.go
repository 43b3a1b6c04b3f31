package automation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
	"github.com/zjrosen/pagedeck/internal/tracing"
)

// ErrUnknownScript is returned by Runner.Run for an unregistered id.
var ErrUnknownScript = errors.New("unknown script")

// Script is an ordered list of actions.
type Script struct {
	ID      string
	Actions []Action
}

// Run executes the actions in order. An unknown page is logged and skipped;
// any other error stops the script.
func (s *Script) Run(ctx context.Context, args Args) error {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("automation")

	for i, a := range s.Actions {
		actx, span := tracer.Start(ctx, tracing.SpanAction, trace.WithAttributes(
			attribute.String(tracing.AttrScriptID, s.ID),
			attribute.Int(tracing.AttrActionIndex, i),
			attribute.String(tracing.AttrActionKind, string(a.Kind())),
		))
		err := a.Execute(actx, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		switch {
		case err == nil:
		case errors.Is(err, pagemanager.ErrUnknownPage):
			log.Warn(log.CatScript, "Skipping action", "script", s.ID, "index", i, "kind", a.Kind(), "error", err)
		default:
			return fmt.Errorf("script %q action %d (%s): %w", s.ID, i, a.Kind(), err)
		}
	}
	return nil
}

// Runner holds scripts by id.
type Runner struct {
	mu      sync.RWMutex
	scripts map[string]*Script
	tracer  trace.Tracer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTracer sets the tracer for script spans.
func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewRunner creates an empty runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		scripts: make(map[string]*Script),
		tracer:  noop.NewTracerProvider().Tracer("automation"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replace swaps the whole script set.
func (r *Runner) Replace(scripts []*Script) {
	next := make(map[string]*Script, len(scripts))
	for _, s := range scripts {
		next[s.ID] = s
	}

	r.mu.Lock()
	r.scripts = next
	r.mu.Unlock()
	log.Info(log.CatScript, "Scripts loaded", "count", len(next))
}

// Get returns the script with id.
func (r *Runner) Get(id string) (*Script, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scripts[id]
	return s, ok
}

// IDs returns the script ids, sorted.
func (r *Runner) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.scripts))
	for id := range r.scripts {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Run executes the script with id.
func (r *Runner) Run(ctx context.Context, id string, args Args) error {
	s, ok := r.Get(id)
	if !ok {
		log.Warn(log.CatScript, "Script not found", "script", id, "known", r.IDs())
		return fmt.Errorf("%w: %q", ErrUnknownScript, id)
	}

	ctx, span := r.tracer.Start(ctx, tracing.SpanScript, trace.WithAttributes(
		attribute.String(tracing.AttrScriptID, id),
	))
	defer span.End()

	log.Info(log.CatScript, "Running script", "script", id, "actions", len(s.Actions))
	if err := s.Run(ctx, args); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatScript, "Script failed", err, "script", id)
		return err
	}
	return nil
}
