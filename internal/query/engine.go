package query

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sneaker-dashboard/internal/dataset"
	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/observability"
)

const tracerName = "sneaker-dashboard/internal/query"

// Engine owns a dataset handle and runs instrumented aggregations over it.
type Engine struct {
	data    *dataset.Dataset
	tracer  trace.Tracer
	metrics *observability.Metrics
}

type EngineOption func(*Engine)

func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) { e.tracer = t }
}

func WithMetrics(m *observability.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

func NewEngine(ds *dataset.Dataset, opts ...EngineOption) *Engine {
	e := &Engine{
		data:   ds,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.metrics.SetDatasetRecords(ds.Len())
	return e
}

func (e *Engine) Dataset() *dataset.Dataset { return e.data }

// DefaultFilter is the dashboard's initial state: every region and size,
// the given brand, and the full date range.
func (e *Engine) DefaultFilter(brand string) Filter {
	return Filter{
		Region: Any(),
		Brand:  brand,
		Size:   Any(),
		Start:  e.data.MinDate(),
		End:    e.data.MaxDate(),
	}
}

// Run aggregates under a span and records query metrics. The result is
// exactly Aggregate(e.Dataset(), f).
func (e *Engine) Run(ctx context.Context, f Filter) Result {
	_, span := e.tracer.Start(ctx, "query.Aggregate", trace.WithAttributes(
		attribute.String("filter.region", f.Region.String()),
		attribute.String("filter.brand", f.Brand),
		attribute.String("filter.size", f.Size.String()),
		attribute.String("filter.start", f.Start.Format(models.DateLayout)),
		attribute.String("filter.end", f.End.Format(models.DateLayout)),
	))
	defer span.End()

	start := time.Now()
	res := Aggregate(e.data, f)

	span.SetAttributes(
		attribute.Int("result.days", res.Summary.Days),
		attribute.Int("result.units", res.Summary.TotalUnits),
	)
	e.metrics.ObserveQuery(time.Since(start), res.Summary.TotalUnits)

	return res
}
