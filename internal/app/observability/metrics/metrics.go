package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	AuthAttemptsTotal      metric.Int64Counter
	GuardDenialsTotal      metric.Int64Counter
	UploadsTotal           metric.Int64Counter
	UploadBytesTotal       metric.Int64Counter
	BackendCallDuration    metric.Float64Histogram
	BackendCallErrorsTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments only once, from
// the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("codesage-web")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.AuthAttemptsTotal, err = meter.Int64Counter(
			"auth_attempts_total",
			metric.WithDescription("Total number of login attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_attempts_total: %v", err)
		}

		m.GuardDenialsTotal, err = meter.Int64Counter(
			"guard_denials_total",
			metric.WithDescription("Total number of route guard denials"),
			metric.WithUnit("{denial}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create guard_denials_total: %v", err)
		}

		m.UploadsTotal, err = meter.Int64Counter(
			"question_uploads_total",
			metric.WithDescription("Total number of question CSV uploads"),
			metric.WithUnit("{upload}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create question_uploads_total: %v", err)
		}

		m.UploadBytesTotal, err = meter.Int64Counter(
			"question_upload_bytes_total",
			metric.WithDescription("Total bytes forwarded to the backend by question uploads"),
			metric.WithUnit("By"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create question_upload_bytes_total: %v", err)
		}

		m.BackendCallDuration, err = meter.Float64Histogram(
			"backend_call_duration_seconds",
			metric.WithDescription("Duration of calls to the Codesage backend"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_call_duration_seconds: %v", err)
		}

		m.BackendCallErrorsTotal, err = meter.Int64Counter(
			"backend_call_errors_total",
			metric.WithDescription("Total number of failed calls to the Codesage backend"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_call_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global metrics instance. InitAppMetrics must have run.
func Get() *AppMetrics {
	return appMetrics
}
