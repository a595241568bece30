package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-quake-dashboard/internal/analysis"
	"github.com/mr1hm/go-quake-dashboard/internal/export"
	"github.com/mr1hm/go-quake-dashboard/internal/ingestion"
	"github.com/mr1hm/go-quake-dashboard/internal/metrics"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/pipeline"
)

// Runner runs the feed pipeline once for a query. *pipeline.Runner implements it.
type Runner interface {
	Run(ctx context.Context, q pipeline.Query) (pipeline.View, error)
}

type Handler struct {
	runner              Runner
	defaultMinMagnitude float64
	metrics             *metrics.Metrics
}

// NewHandler returns a Handler. m may be nil.
func NewHandler(runner Runner, defaultMinMagnitude float64, m *metrics.Metrics) *Handler {
	return &Handler{
		runner:              runner,
		defaultMinMagnitude: defaultMinMagnitude,
		metrics:             m,
	}
}

// NewRouter builds the gin engine with recovery, CORS and all routes. The
// rate limit applies to /api/v1 only; /health and /metrics are never throttled.
func NewRouter(h *Handler, rps int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false, // must stay false with wildcard origins
		MaxAge:           12 * time.Hour,
	}))

	h.RegisterRoutes(router, RateLimitMiddleware(rps))
	return router
}

// RegisterRoutes mounts every route. apiMiddleware runs on the /api/v1 group only.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(h.countRequests)
	v1.Use(apiMiddleware...)
	v1.GET("/view", h.getView)
	v1.GET("/events", h.getEvents)
	v1.GET("/summary", h.getSummary)
	v1.GET("/table", h.getTable)
	v1.GET("/export.csv", h.exportCSV)
}

func (h *Handler) countRequests(c *gin.Context) {
	c.Next()
	if h.metrics != nil {
		h.metrics.HTTPRequests.WithLabelValues(c.FullPath(), strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (h *Handler) getView(c *gin.Context) {
	v, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toViewResponse(v))
}

func (h *Handler) getEvents(c *gin.Context) {
	v, ok := h.run(c)
	if !ok {
		return
	}
	c.Header("Content-Type", geoJSONContentType)
	c.JSON(http.StatusOK, toGeoJSON(v.Points))
}

func (h *Handler) getSummary(c *gin.Context) {
	v, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(v))
}

func (h *Handler) getTable(c *gin.Context) {
	column := c.DefaultQuery("sort", "time")
	order := c.DefaultQuery("order", "desc")
	if _, err := sortEvents(nil, column, order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, ok := h.run(c)
	if !ok {
		return
	}

	sorted, _ := sortEvents(v.Events, column, order)
	c.JSON(http.StatusOK, tableResponse{
		Sort:  column,
		Order: order,
		Rows:  toTableRows(sorted),
	})
}

func (h *Handler) exportCSV(c *gin.Context) {
	v, ok := h.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, v.Events); err != nil {
		slog.Error("csv export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export csv"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// run parses the query, runs the pipeline and writes the error response
// itself when ok is false.
func (h *Handler) run(c *gin.Context) (pipeline.View, bool) {
	q, err := h.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pipeline.View{}, false
	}

	v, err := h.runner.Run(c.Request.Context(), q)
	switch {
	case err == nil:
		return v, true
	case errors.Is(err, analysis.ErrInvalidCriteria):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case ingestion.IsFetchError(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream feed unavailable"})
	default:
		slog.Error("pipeline run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build view"})
	}
	return pipeline.View{}, false
}

func (h *Handler) parseQuery(c *gin.Context) (pipeline.Query, error) {
	q := pipeline.Query{MinMagnitude: h.defaultMinMagnitude}

	if m := c.Query("min_magnitude"); m != "" {
		mag, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return q, errors.New("invalid min_magnitude: " + m)
		}
		q.MinMagnitude = mag
	}
	if s := c.Query("start"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			return q, err
		}
		q.Start = &d
	}
	if e := c.Query("end"); e != "" {
		d, err := models.ParseDate(e)
		if err != nil {
			return q, err
		}
		q.End = &d
	}
	return q, nil
}
