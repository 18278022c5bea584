// Package trace exports generation runs as OpenTelemetry spans.
package trace

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"dalil/internal/domain"
	"dalil/internal/generate"
)

const (
	instrumentation = "dalil/generate"
	tracesPath      = "/v1/traces"
)

// Tracer starts spans for generation runs. A Tracer built without an
// endpoint records nothing.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// Settings for the OTLP exporter. Empty fields fall back to
// OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_SERVICE_NAME.
type Settings struct {
	Endpoint    string // "http://host:4318" or "host:4318"
	ServiceName string
	Insecure    bool // only for endpoints without a scheme
	Logger      *slog.Logger
}

// New creates an OTLP/HTTP tracer, or a no-op tracer when no endpoint is configured.
func New(ctx context.Context, s Settings) (*Tracer, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint == "" {
		return Noop(), nil
	}

	if s.Logger != nil {
		log := s.Logger
		otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
			log.Warn("trace.export_failed", "err", err)
		}))
	}

	exporter, err := otlptracehttp.New(ctx, endpointOptions(endpoint, s.Insecure)...)
	if err != nil {
		return nil, err
	}
	return newWith(sdktrace.WithBatcher(exporter), serviceName(s.ServiceName)), nil
}

// endpointOptions accepts either a base URL, as OTEL_EXPORTER_OTLP_ENDPOINT
// holds, or a bare host:port. The traces path is appended to base URLs.
func endpointOptions(endpoint string, insecure bool) []otlptracehttp.Option {
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		if p := strings.TrimSuffix(u.Path, "/"); !strings.HasSuffix(p, tracesPath) {
			u.Path = p + tracesPath
		}
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(u.String())}
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// NewWithExporter builds a tracer that hands every span to exp as soon as it ends.
func NewWithExporter(exp sdktrace.SpanExporter) *Tracer {
	return newWith(sdktrace.WithSyncer(exp), serviceName(""))
}

// Noop returns a tracer that records nothing.
func Noop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentation)}
}

func newWith(opt sdktrace.TracerProviderOption, service string) *Tracer {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(service),
	)
	provider := sdktrace.NewTracerProvider(opt, sdktrace.WithResource(res))
	return &Tracer{provider: provider, tracer: provider.Tracer(instrumentation)}
}

func serviceName(name string) string {
	if name != "" {
		return name
	}
	if env := os.Getenv("OTEL_SERVICE_NAME"); env != "" {
		return env
	}
	return "dalil"
}

// Enabled reports whether spans are exported.
func (t *Tracer) Enabled() bool {
	return t != nil && t.provider != nil
}

// Start opens a span with dalil.* attributes.
func (t *Tracer) Start(ctx context.Context, name string, attrs map[string]string) (context.Context, oteltrace.Span) {
	if t == nil {
		t = Noop()
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String("dalil."+k, v))
	}
	return t.tracer.Start(ctx, name, oteltrace.WithAttributes(kv...))
}

// Shutdown flushes and closes the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.Enabled() {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Generator wraps gen so every Generate call is recorded as a span.
func (t *Tracer) Generator(gen generate.Generator) generate.Generator {
	return tracedGenerator{next: gen, tracer: t}
}

type tracedGenerator struct {
	next   generate.Generator
	tracer *Tracer
}

func (g tracedGenerator) Generate(ctx context.Context, req generate.Request) (domain.GenerationResult, error) {
	ctx, span := g.tracer.Start(ctx, "generate", map[string]string{
		"context":       string(req.Context),
		"document_type": string(req.DocumentType),
		"reference":     req.Reference,
	})
	defer span.End()

	start := time.Now()
	res, err := g.next.Generate(ctx, req)
	span.SetAttributes(attribute.Int64("dalil.duration_ms", time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("dalil.outcome", "failed"))
		return res, err
	}
	span.SetAttributes(
		attribute.String("dalil.outcome", "success"),
		attribute.String("dalil.category", res.Category),
		attribute.Int("dalil.keywords", len(res.Keywords)),
	)
	return res, nil
}
