package automation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/pagedeck/internal/log"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
	"github.com/zjrosen/pagedeck/internal/tracing"
)

type funcAction struct {
	kind Kind
	fn   func(ctx context.Context, args Args) error
}

func (a funcAction) Kind() Kind                                   { return a.kind }
func (a funcAction) Execute(ctx context.Context, args Args) error { return a.fn(ctx, args) }

func TestScript_UnknownPageContinues(t *testing.T) {
	m, _ := newManager(t, pagemanager.WithDefaultPage("Home"))
	b := NewBuilder(m, nil, DefaultDefaults())

	s, err := b.BuildScript(ScriptConfig{ID: "tour", Actions: []ActionConfig{
		{Action: "page.show", Page: "{{ .first }}"},
		{Action: "page.next"},
	}})
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), Args{"first": "Nowhere"}))
	require.Equal(t, 1, m.CurrentIndex(), "next still ran after the unknown page")
}

func TestScript_StaticUnknownPageBuildsAndSkips(t *testing.T) {
	m, _ := newManager(t, pagemanager.WithDefaultPage("Home"))
	b := NewBuilder(m, nil, DefaultDefaults())

	s, err := b.BuildScript(ScriptConfig{ID: "typo", Actions: []ActionConfig{
		{Action: "page.show", Page: "Nowhere"},
		{Action: "page.next"},
	}})
	require.NoError(t, err)
	require.Len(t, s.Actions, 2)

	require.NoError(t, s.Run(context.Background(), nil))
	require.Equal(t, 1, m.CurrentIndex(), "next still ran after the unknown page")

	var built, skipped bool
	for _, entry := range log.GetRecentLogs(50) {
		if strings.Contains(entry, "page.show target is not a registered page") && strings.Contains(entry, "page=Nowhere") {
			built = true
		}
		if strings.Contains(entry, "Skipping action") && strings.Contains(entry, "script=typo") &&
			strings.Contains(entry, pagemanager.ErrUnknownPage.Error()) {
			skipped = true
		}
	}
	require.True(t, built, "build-time warning logged")
	require.True(t, skipped, "unknown page logged at run time")
}

func TestScript_OtherErrorsAbort(t *testing.T) {
	boom := errors.New("boom")
	ran := 0
	s := &Script{ID: "broken", Actions: []Action{
		funcAction{KindNextPage, func(context.Context, Args) error { ran++; return nil }},
		funcAction{KindShowPage, func(context.Context, Args) error { return boom }},
		funcAction{KindNextPage, func(context.Context, Args) error { ran++; return nil }},
	}}

	err := s.Run(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), `script "broken" action 1 (page.show)`)
	require.Equal(t, 1, ran)
}

func TestRunner(t *testing.T) {
	m, _ := newManager(t)
	b := NewBuilder(m, nil, DefaultDefaults())
	scripts, err := b.BuildScripts([]ScriptConfig{
		{ID: "to_about", Actions: []ActionConfig{{Action: "page.show", Page: "About"}}},
		{ID: "go", Actions: []ActionConfig{{Action: "page.show", Page: "{{ .target }}"}}},
	})
	require.NoError(t, err)

	r := NewRunner()
	r.Replace(scripts)
	require.Equal(t, []string{"go", "to_about"}, r.IDs())

	ctx := context.Background()
	require.NoError(t, r.Run(ctx, "to_about", nil))
	require.Equal(t, 2, m.CurrentIndex())

	require.NoError(t, r.Run(ctx, "go", Args{"target": "Settings"}))
	require.Equal(t, 1, m.CurrentIndex())

	err = r.Run(ctx, "missing", nil)
	require.ErrorIs(t, err, ErrUnknownScript)

	r.Replace(nil)
	require.Empty(t, r.IDs())
}

func TestRunner_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	m, _ := newManager(t, pagemanager.WithTracer(tp.Tracer("nav")))
	b := NewBuilder(m, nil, DefaultDefaults())
	s, err := b.BuildScript(ScriptConfig{ID: "tour", Actions: []ActionConfig{
		{Action: "page.next"},
		{Action: "page.next"},
	}})
	require.NoError(t, err)

	r := NewRunner(WithTracer(tp.Tracer("scripts")))
	r.Replace([]*Script{s})
	require.NoError(t, r.Run(context.Background(), "tour", nil))

	names := map[string]int{}
	var scriptSpan sdktrace.ReadOnlySpan
	for _, sp := range exporter.GetSpans().Snapshots() {
		names[sp.Name()]++
		if sp.Name() == tracing.SpanScript {
			scriptSpan = sp
		}
	}
	require.Equal(t, 1, names[tracing.SpanScript])
	require.Equal(t, 2, names[tracing.SpanAction])
	require.Equal(t, 2, names[tracing.SpanTransition])

	for _, sp := range exporter.GetSpans().Snapshots() {
		require.Equal(t, scriptSpan.SpanContext().TraceID(), sp.SpanContext().TraceID())
	}
}
