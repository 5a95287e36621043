package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"sneaker-dashboard/internal/charts"
	"sneaker-dashboard/internal/errors"
	"sneaker-dashboard/internal/observability"
	"sneaker-dashboard/internal/query"
	"sneaker-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	engine       *query.Engine
	defaultBrand string
	logger       *slog.Logger
}

func NewSSEHandlers(engine *query.Engine, defaultBrand string, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		engine:       engine,
		defaultBrand: defaultBrand,
		logger:       logger,
	}
}

// HandleCharts reads the filter signals, recomputes both series and patches
// them back along with the summary line. Invalid dates are reported in the
// summary element; the charts keep their last state.
func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var params filterParams
	if err := datastar.ReadSignals(r, &params); err != nil {
		errors.WriteError(ctx, w, h.logger,
			errors.BadRequest("invalid signals").WithDetails("%v", err),
			observability.GetRequestID(ctx))
		return
	}

	f, err := params.toFilter(h.engine.DefaultFilter(h.defaultBrand))

	sse := datastar.NewSSE(w, r)

	if err != nil {
		var appErr *errors.AppError
		msg := "invalid filter"
		if stderrors.As(err, &appErr) {
			msg = appErr.Message
		}
		h.logger.WarnContext(ctx, "rejected chart filter", "error", err)
		if err := h.patchComponent(ctx, sse, templates.ChartSummaryError(msg)); err != nil {
			h.logger.ErrorContext(ctx, "patch summary", "error", err)
		}
		return
	}

	res := h.engine.Run(ctx, f)
	figs := charts.Build(res)

	signals, err := json.Marshal(templates.NewChartSignals(figs))
	if err != nil {
		h.logger.ErrorContext(ctx, "marshal chart signals", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.ErrorContext(ctx, "patch chart signals", "error", err)
		return
	}

	if err := h.patchComponent(ctx, sse, templates.ChartSummary(res.Summary)); err != nil {
		h.logger.ErrorContext(ctx, "patch summary", "error", err)
	}
}

func (h *SSEHandlers) patchComponent(ctx context.Context, sse *datastar.ServerSentEventGenerator, c templ.Component) error {
	var buf strings.Builder
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return sse.PatchElements(buf.String())
}
