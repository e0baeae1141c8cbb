// Package telemetry exports training scores as OpenTelemetry metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/finprofile-dev/finprofile/internal/buildinfo"
	"github.com/finprofile-dev/finprofile/internal/metrics"
)

const serviceName = "finprofile"

// ErrDisabled is returned by NewExporter when telemetry is switched off.
var ErrDisabled = errors.New("telemetry disabled or endpoint not configured")

// Config selects the OTLP collector.
type Config struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// Exporter records every observed score on OTel instruments.
type Exporter struct {
	provider  *sdkmetric.MeterProvider // nil when the provider is not ours
	f1        metric.Float64Histogram
	recall    metric.Float64Histogram
	precision metric.Float64Histogram
	scores    metric.Int64Counter
}

// NewExporter creates an OTLP/gRPC meter provider for cfg.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(buildinfo.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)

	e, err := New(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	e.provider = provider
	return e, nil
}

// New creates the instruments on an existing provider. Close does not shut
// that provider down.
func New(provider metric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	hist := func(name, desc string) (metric.Float64Histogram, error) {
		h, err := meter.Float64Histogram(name,
			metric.WithDescription(desc),
			metric.WithUnit("1"),
		)
		if err != nil {
			return nil, fmt.Errorf("creating %s histogram: %w", name, err)
		}
		return h, nil
	}

	var e Exporter
	var err error
	if e.f1, err = hist("finprofile_f1", "Micro-averaged F1 per fold and epoch"); err != nil {
		return nil, err
	}
	if e.recall, err = hist("finprofile_recall", "Micro-averaged recall per fold and epoch"); err != nil {
		return nil, err
	}
	if e.precision, err = hist("finprofile_precision", "Micro-averaged precision per fold and epoch"); err != nil {
		return nil, err
	}

	e.scores, err = meter.Int64Counter(
		"finprofile_scores_total",
		metric.WithDescription("Number of recorded score triples"),
		metric.WithUnit("{score}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scores counter: %w", err)
	}
	return &e, nil
}

// Observe implements metrics.Sink.
func (e *Exporter) Observe(s metrics.Score) {
	ctx := context.Background()
	opt := metric.WithAttributes(
		attribute.String("category", string(s.Category)),
		attribute.String("fold", strconv.Itoa(s.Fold)),
	)
	e.f1.Record(ctx, s.F1, opt)
	e.recall.Record(ctx, s.Recall, opt)
	e.precision.Record(ctx, s.Precision, opt)
	e.scores.Add(ctx, 1, opt)
}

// Close flushes and shuts down a provider created by NewExporter.
func (e *Exporter) Close(ctx context.Context) error {
	if e.provider == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
