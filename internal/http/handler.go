package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-timeline-service/internal/http/middleware"
	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
	"fleet-timeline-service/internal/service"
)

const exportFilename = "fleet-timeline.csv"

type Handler struct {
	timeline *service.TimelineService
	loc      *time.Location
	log      zerolog.Logger
}

func NewHandler(timeline *service.TimelineService, loc *time.Location, log zerolog.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{timeline: timeline, loc: loc, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)

	fleet := r.Group("/fleet")
	fleet.GET("/timeline", h.getTimeline)
	fleet.GET("/distributions", h.getDistributions)
	fleet.GET("/vehicles/:plate", h.getVehicle)
	fleet.GET("/vehicles/:plate/contract", h.getContract)
	fleet.GET("/export.csv", h.exportCSV)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "ok"}))
}

func (h *Handler) getTimeline(c *gin.Context) {
	filter, err := h.parseTimelineFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	report, err := h.timeline.Timeline(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) getDistributions(c *gin.Context) {
	filter, err := h.parseTimelineFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	distributions, err := h.timeline.Distributions(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(distributions))
}

func (h *Handler) getVehicle(c *gin.Context) {
	detail, err := h.timeline.VehicleDetail(c.Request.Context(), c.Param("plate"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(detail))
}

func (h *Handler) getContract(c *gin.Context) {
	var at time.Time
	if raw := strings.TrimSpace(c.Query("at")); raw != "" {
		parsed, err := h.parseTime(raw)
		if err != nil {
			h.handleError(c, fmt.Errorf("%w: at: %v", service.ErrInvalidInput, err))
			return
		}
		at = parsed
	}

	contract, err := h.timeline.ResolveContract(c.Request.Context(), c.Param("plate"), at)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(contract))
}

func (h *Handler) exportCSV(c *gin.Context) {
	filter, err := h.parseTimelineFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.timeline.Export(c.Request.Context(), filter, &buf); err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) parseTimelineFilter(c *gin.Context) (model.TimelineFilter, error) {
	filter := model.TimelineFilter{
		PlateQuery: strings.TrimSpace(c.Query("plate")),
		ModelQuery: strings.TrimSpace(c.Query("model")),
		SortBy:     model.SortKey(strings.ToLower(strings.TrimSpace(c.Query("sort")))),
	}

	if fromStr := strings.TrimSpace(c.Query("from")); fromStr != "" {
		parsed, err := h.parseTime(fromStr)
		if err != nil {
			return filter, fmt.Errorf("%w: from: %v", service.ErrInvalidInput, err)
		}
		filter.Range.From = parsed
	}
	if toStr := strings.TrimSpace(c.Query("to")); toStr != "" {
		parsed, err := h.parseTime(toStr)
		if err != nil {
			return filter, fmt.Errorf("%w: to: %v", service.ErrInvalidInput, err)
		}
		filter.Range.To = parsed
	}

	for _, raw := range splitQuery(c.Query("types")) {
		if token := normalize.Token(raw); token != "" {
			filter.Types = append(filter.Types, model.EventType(token))
		}
	}

	var expanded []string
	for _, raw := range splitQuery(c.Query("expanded")) {
		expanded = append(expanded, normalize.PlateKey(raw))
	}
	filter.Expanded = model.NewExpansionState(expanded...)
	if toggle := normalize.PlateKey(c.Query("toggle")); toggle != "" {
		filter.Expanded = filter.Expanded.Toggle(toggle)
	}

	return filter, nil
}

// parseTime accepts RFC3339 or a bare yyyy-MM-dd read as local midnight.
func (h *Handler) parseTime(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.In(h.loc), nil
	}
	parsed, err := time.ParseInLocation(time.DateOnly, raw, h.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or yyyy-MM-dd, got %q", raw)
	}
	return parsed, nil
}

func splitQuery(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		h.log.Error().
			Err(err).
			Str("request_id", middleware.RequestID(c)).
			Str("path", c.FullPath()).
			Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
