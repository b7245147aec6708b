package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount      metric.Int64Counter
	RequestDuration   metric.Float64Histogram
	ScrapeRecordCount metric.Int64Counter
	ScrapeRowSkips    metric.Int64Counter
	AIRequestCount    metric.Int64Counter
	AIRequestDuration metric.Float64Histogram
	CacheHitCount     metric.Int64Counter
	CacheMissCount    metric.Int64Counter
}

// Setup initializes OpenTelemetry
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace exporter
	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	// Set up trace provider
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Shutdown function
	shutdown := func(ctx context.Context) error {
		return tracerProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	scrapeRecordCount, err := meter.Int64Counter(
		"scrape.record.count",
		metric.WithDescription("Number of records processed per scrape outcome"),
	)
	if err != nil {
		return nil, err
	}

	scrapeRowSkips, err := meter.Int64Counter(
		"scrape.row.skip.count",
		metric.WithDescription("Number of malformed source rows skipped"),
	)
	if err != nil {
		return nil, err
	}

	aiRequestCount, err := meter.Int64Counter(
		"ai.request.count",
		metric.WithDescription("Number of text generation requests"),
	)
	if err != nil {
		return nil, err
	}

	aiRequestDuration, err := meter.Float64Histogram(
		"ai.request.duration",
		metric.WithDescription("Text generation request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHitCount, err := meter.Int64Counter(
		"cache.hit.count",
		metric.WithDescription("Number of cache hits"),
	)
	if err != nil {
		return nil, err
	}

	cacheMissCount, err := meter.Int64Counter(
		"cache.miss.count",
		metric.WithDescription("Number of cache misses"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:      requestCount,
		RequestDuration:   requestDuration,
		ScrapeRecordCount: scrapeRecordCount,
		ScrapeRowSkips:    scrapeRowSkips,
		AIRequestCount:    aiRequestCount,
		AIRequestDuration: aiRequestDuration,
		CacheHitCount:     cacheHitCount,
		CacheMissCount:    cacheMissCount,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records an HTTP request metric with attributes
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordScrapeOutcome records a processed record for a source with its outcome
func RecordScrapeOutcome(ctx context.Context, metrics *Metrics, source, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("scrape.source", source),
		attribute.String("scrape.outcome", outcome),
	}
	metrics.ScrapeRecordCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRowSkip records a malformed row skipped during parsing
func RecordRowSkip(ctx context.Context, metrics *Metrics, source string) {
	attrs := []attribute.KeyValue{
		attribute.String("scrape.source", source),
	}
	metrics.ScrapeRowSkips.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordAIMetric records a text generation request metric
func RecordAIMetric(ctx context.Context, metrics *Metrics, model string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("ai.model", model),
		attribute.Bool("ai.success", success),
	}
	metrics.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.AIRequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordCacheHit records a cache hit
func RecordCacheHit(ctx context.Context, metrics *Metrics, key string) {
	attrs := []attribute.KeyValue{
		attribute.String("cache.key", key),
	}
	metrics.CacheHitCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(ctx context.Context, metrics *Metrics, key string) {
	attrs := []attribute.KeyValue{
		attribute.String("cache.key", key),
	}
	metrics.CacheMissCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}
