package trace

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dalil/internal/domain"
	"dalil/internal/generate"
)

type failing struct{}

func (failing) Generate(context.Context, generate.Request) (domain.GenerationResult, error) {
	return domain.GenerationResult{}, errors.New("quota exceeded")
}

func attr(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit(), true
		}
	}
	return "", false
}

func TestNew_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	tr, err := New(context.Background(), Settings{})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestGenerator_RecordsSuccess(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tr := NewWithExporter(exp)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })

	gen := tr.Generator(generate.Simulated{})
	res, err := gen.Generate(context.Background(), generate.Request{
		Context:      domain.ContextLegalTexts,
		Reference:    "Décret n°24-15",
		DocumentType: domain.DocDecree,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Title, "Décret n°24-15")

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "generate", spans[0].Name)
	ref, ok := attr(spans[0].Attributes, "dalil.reference")
	require.True(t, ok)
	assert.Equal(t, "Décret n°24-15", ref)
	outcome, _ := attr(spans[0].Attributes, "dalil.outcome")
	assert.Equal(t, "success", outcome)
}

func TestGenerator_RecordsFailure(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tr := NewWithExporter(exp)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })

	_, err := tr.Generator(failing{}).Generate(context.Background(), generate.Request{Context: domain.ContextGeneral})
	require.Error(t, err)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	outcome, _ := attr(spans[0].Attributes, "dalil.outcome")
	assert.Equal(t, "failed", outcome)
}

func TestNilTracerStartIsNoop(t *testing.T) {
	var tr *Tracer
	_, span := tr.Start(context.Background(), "x", nil)
	span.End()
	assert.False(t, tr.Enabled())
}

// collector counts OTLP/HTTP trace exports.
func collector(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNew_ExportsToCollector(t *testing.T) {
	cases := []struct {
		name     string
		endpoint func(base string) string
		insecure bool
	}{
		{"base url", func(b string) string { return b }, false},
		{"trailing slash", func(b string) string { return b + "/" }, false},
		{"full traces url", func(b string) string { return b + "/v1/traces" }, false},
		{"host and port", func(b string) string { return strings.TrimPrefix(b, "http://") }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv, hits := collector(t)
			tr, err := New(context.Background(), Settings{Endpoint: c.endpoint(srv.URL), Insecure: c.insecure})
			require.NoError(t, err)
			require.True(t, tr.Enabled())

			_, span := tr.Start(context.Background(), "generate", map[string]string{"context": "general"})
			span.End()
			require.NoError(t, tr.Shutdown(context.Background()))
			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestNew_EndpointFromEnv(t *testing.T) {
	srv, hits := collector(t)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", srv.URL)

	tr, err := New(context.Background(), Settings{})
	require.NoError(t, err)
	_, span := tr.Start(context.Background(), "generate", nil)
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNew_ExportErrorsGoToLog(t *testing.T) {
	srv, _ := collector(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	tr, err := New(context.Background(), Settings{Endpoint: srv.URL, Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })

	otel.Handle(errors.New("collector unreachable"))
	assert.Contains(t, buf.String(), "trace.export_failed")
	assert.Contains(t, buf.String(), "collector unreachable")
}
