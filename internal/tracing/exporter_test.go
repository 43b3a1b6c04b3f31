package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestFileExporter_WritesJSONLines(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	start := time.Now()
	stubs := []tracetest.SpanStub{
		{
			Name:      SpanTransition,
			StartTime: start,
			EndTime:   start.Add(2 * time.Millisecond),
			Attributes: []attribute.KeyValue{
				attribute.String(AttrPageLabel, "Settings"),
				attribute.Int(AttrIndexTo, 1),
			},
		},
		{
			Name:      SpanTransition,
			StartTime: start,
			EndTime:   start,
			Status:    sdktrace.Status{Code: codes.Error, Description: "unknown page"},
		},
	}
	spans := []sdktrace.ReadOnlySpan{stubs[0].Snapshot(), stubs[1].Snapshot()}
	require.NoError(t, exporter.ExportSpans(context.Background(), spans))
	require.NoError(t, exporter.Shutdown(context.Background()))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()

	var records []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 2)

	require.Equal(t, "page.transition", records[0].Name)
	require.Equal(t, "Settings", records[0].Attributes[AttrPageLabel])
	require.InDelta(t, 2.0, records[0].DurationMs, 0.001)
	require.Equal(t, "UNSET", records[0].Status)

	require.Equal(t, "ERROR", records[1].Status)
	require.Equal(t, "unknown page", records[1].StatusMsg)
}

func TestFileExporter_EmptyBatch(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: SpanAction}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
}
