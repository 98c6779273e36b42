package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys for metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOutcome     = attribute.Key("outcome")
)

// Result label values.
const (
	ResultSuccess     = "success"
	ResultError       = "error"
	ResultCircuitOpen = "circuit_open"
)

// Metrics holds the service's instruments. The Record and Add methods are
// no-ops on a nil *Metrics, so telemetry can be switched off without
// touching callers.
type Metrics struct {
	ServerRequestDuration    metric.Float64Histogram
	ServerRequestTotal       metric.Int64Counter
	ClientRequestDuration    metric.Float64Histogram
	ClientRequestTotal       metric.Int64Counter
	DialogOpen               metric.Int64UpDownCounter
	DialogSubmissionTotal    metric.Int64Counter
	DialogSubmissionDuration metric.Float64Histogram
}

// NewMetrics registers every instrument on a meter scoped to serviceName.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(serviceName)
	m := &Metrics{}

	var err error
	histogram := func(dst *metric.Float64Histogram, name, desc string) {
		if err == nil {
			*dst, err = meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
			err = wrapInstrument(name, err)
		}
	}
	counter := func(dst *metric.Int64Counter, name, desc, unit string) {
		if err == nil {
			*dst, err = meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
			err = wrapInstrument(name, err)
		}
	}

	histogram(&m.ServerRequestDuration, "http.server.request.duration", "Duration of incoming HTTP requests")
	counter(&m.ServerRequestTotal, "http.server.request.total", "Total number of incoming HTTP requests", "{request}")
	histogram(&m.ClientRequestDuration, "http.client.request.duration", "Duration of outgoing HTTP requests")
	counter(&m.ClientRequestTotal, "http.client.request.total", "Total number of outgoing HTTP requests", "{request}")
	counter(&m.DialogSubmissionTotal, "dialog.submission.total", "Dialog submit attempts by outcome", "{attempt}")
	histogram(&m.DialogSubmissionDuration, "dialog.submission.duration", "Time from submit to a settled outcome")
	if err != nil {
		return nil, err
	}

	m.DialogOpen, err = meter.Int64UpDownCounter("dialog.open",
		metric.WithDescription("Task creation dialogs currently open"),
		metric.WithUnit("{dialog}"),
	)
	if err != nil {
		return nil, wrapInstrument("dialog.open", err)
	}
	return m, nil
}

func wrapInstrument(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("creating %s: %w", name, err)
}

// RecordServerRequest records one handled inbound request. Any status of
// 400 or above counts as an error.
func (m *Metrics) RecordServerRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if status >= 400 {
		result = ResultError
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatus.Int(status),
		AttrResult.String(result),
	)
	m.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ServerRequestTotal.Add(ctx, 1, attrs)
}

// RecordClientRequest records one outbound call to peer. status is zero
// when no response arrived.
func (m *Metrics) RecordClientRequest(ctx context.Context, peer, method string, status int, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPStatus.Int(status),
		AttrPeerService.String(peer),
		AttrResult.String(result),
	)
	m.ClientRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.ClientRequestTotal.Add(ctx, 1, attrs)
}

// AddOpenDialogs moves the open dialog gauge by delta.
func (m *Metrics) AddOpenDialogs(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.DialogOpen.Add(ctx, delta)
}

// RecordSubmission records a settled submit attempt.
func (m *Metrics) RecordSubmission(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(AttrOutcome.String(outcome))
	m.DialogSubmissionTotal.Add(ctx, 1, attrs)
	m.DialogSubmissionDuration.Record(ctx, elapsed.Seconds(), attrs)
}
