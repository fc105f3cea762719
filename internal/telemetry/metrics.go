package telemetry

import (
	"context"
	"time"

	"github.com/ggorockee/storefront/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// HTTP metrics, nil until InitMeter succeeds
var (
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
)

// InitMeter installs an OTLP HTTP meter provider. With an empty endpoint
// metrics export stays disabled.
func InitMeter(ctx context.Context, serviceName, endpoint string) (ShutdownFunc, error) {
	log := logger.Named("telemetry")
	if endpoint == "" {
		log.Info("OTEL_ENDPOINT not set, metrics export disabled")
		return noopShutdown, nil
	}

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter,
				sdkmetric.WithInterval(15*time.Second),
			),
		),
	)
	otel.SetMeterProvider(mp)

	if err := initHTTPMetrics(mp.Meter(serviceName)); err != nil {
		return nil, err
	}

	log.Info("metrics export initialized", zap.String("endpoint", endpoint))
	return mp.Shutdown, nil
}

func initHTTPMetrics(meter metric.Meter) error {
	var err error

	HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	return err
}
