package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sneaker-dashboard/internal/charts"
	"sneaker-dashboard/internal/errors"
	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/observability"
	"sneaker-dashboard/internal/query"
)

const version = "1.0.0"

type APIHandlers struct {
	engine       *query.Engine
	defaultBrand string
	logger       *slog.Logger
	startedAt    time.Time
}

func NewAPIHandlers(engine *query.Engine, defaultBrand string, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		engine:       engine,
		defaultBrand: defaultBrand,
		logger:       logger,
		startedAt:    time.Now(),
	}
}

type FilterState struct {
	Region string `json:"region"`
	Brand  string `json:"brand"`
	Size   string `json:"size"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type FilterOptions struct {
	Regions  []string    `json:"regions"`
	Brands   []string    `json:"brands"`
	Sizes    []string    `json:"sizes"`
	MinDate  string      `json:"min_date"`
	MaxDate  string      `json:"max_date"`
	Defaults FilterState `json:"defaults"`
}

type ChartsResponse struct {
	Filter  FilterState          `json:"filter"`
	Price   []models.PricePoint  `json:"price"`
	Volume  []models.VolumePoint `json:"volume"`
	Summary models.Summary       `json:"summary"`
	Figures charts.Figures       `json:"figures"`
}

func (h *APIHandlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	ds := h.engine.Dataset()
	minDate := ds.MinDate().Format(models.DateLayout)
	maxDate := ds.MaxDate().Format(models.DateLayout)

	data := FilterOptions{
		Regions: ds.Regions(),
		Brands:  ds.Brands(),
		Sizes:   ds.Sizes(),
		MinDate: minDate,
		MaxDate: maxDate,
		Defaults: FilterState{
			Region: query.AllValue,
			Brand:  h.defaultBrand,
			Size:   query.AllValue,
			Start:  minDate,
			End:    maxDate,
		},
	}

	headers := map[string]string{
		"Cache-Control": "public, max-age=300",
	}

	h.logEncode(r, errors.WriteSuccessWithHeaders(w, data, headers))
}

func (h *APIHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := paramsFromQuery(r.URL.Query()).toFilter(h.engine.DefaultFilter(h.defaultBrand))
	if err != nil {
		errors.WriteError(ctx, w, h.logger, err, observability.GetRequestID(ctx))
		return
	}

	res := h.engine.Run(ctx, f)
	data := ChartsResponse{
		Filter:  describeFilter(f),
		Price:   res.Price,
		Volume:  res.Volume,
		Summary: res.Summary,
		Figures: charts.Build(res),
	}

	h.logEncode(r, errors.WriteSuccess(w, data))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
		"records":   h.engine.Dataset().Len(),
	}

	h.logEncode(r, errors.WriteSuccessWithHeaders(w, healthData, map[string]string{
		"Cache-Control": "no-store",
	}))
}

// HandleNotFound answers unmatched /api/ paths with the JSON error envelope
// instead of the mux's plain-text 404.
func (h *APIHandlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	errors.WriteError(ctx, w, h.logger,
		errors.NotFound("no such endpoint").WithDetails("%s %s", r.Method, r.URL.Path),
		observability.GetRequestID(ctx))
}

type StatsResponse struct {
	models.DatasetStats
	Uptime string `json:"uptime"`
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := StatsResponse{
		DatasetStats: h.engine.Dataset().Stats(),
		Uptime:       time.Since(h.startedAt).Round(time.Second).String(),
	}

	h.logEncode(r, errors.WriteSuccess(w, stats))
}

// logEncode logs a failed response encode. Headers are already sent by then.
func (h *APIHandlers) logEncode(r *http.Request, err error) {
	if err != nil {
		h.logger.WarnContext(r.Context(), "encode response", "path", r.URL.Path, "error", err)
	}
}

func describeFilter(f query.Filter) FilterState {
	return FilterState{
		Region: f.Region.String(),
		Brand:  f.Brand,
		Size:   f.Size.String(),
		Start:  f.Start.Format(models.DateLayout),
		End:    f.End.Format(models.DateLayout),
	}
}
