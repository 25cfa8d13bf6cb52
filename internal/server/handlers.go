package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kiricut/internal/logging"
	"kiricut/internal/monitoring"
	"kiricut/internal/pipeline"
	"kiricut/internal/store"
	"kiricut/internal/usecase"
)

// Handlers bundles the API endpoints with their dependencies.
type Handlers struct {
	uc      usecase.Usecase
	store   *store.Store
	params  usecase.Params
	metrics *monitoring.MetricsCollector
	logger  logging.Logger
}

func NewHandlers(
	uc usecase.Usecase,
	st *store.Store,
	params usecase.Params,
	metrics *monitoring.MetricsCollector,
	logger logging.Logger,
) *Handlers {
	return &Handlers{
		uc:      uc,
		store:   st,
		params:  params,
		metrics: metrics,
		logger:  logger,
	}
}

// Register mounts the API routes
func (h *Handlers) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/videos", h.ListVideos)
	api.POST("/videos/:id/fetch", h.FetchVideo)
	api.POST("/videos/:id/analyze", h.AnalyzeVideo)
	api.GET("/videos/:id/candidates.csv", h.CandidatesCSV)
}

func (h *Handlers) ListVideos(c *gin.Context) {
	entries, err := h.store.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list cached videos")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "could not scan data dir",
		})
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"videos": entries})
}

type fetchRequest struct {
	Chat      bool `json:"chat"`
	Subtitles bool `json:"subtitles"`
	Force     bool `json:"force"`
}

func (h *Handlers) FetchVideo(c *gin.Context) {
	id := c.Param("id")
	if !store.ValidVideoID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video id"})
		return
	}

	// An empty body means fetch everything.
	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	res, err := h.uc.Fetch(c.Request.Context(), usecase.FetchInput{
		VideoID:   id,
		Chat:      req.Chat,
		Subtitles: req.Subtitles,
		Force:     req.Force,
	})
	h.recordFetch("chat", res.Chat)
	h.recordFetch("subtitles", res.Subtitles)

	if err != nil {
		h.logger.WithError(err).WithField("video_id", id).Error("Fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"success":   false,
			"error":     err.Error(),
			"video_id":  id,
			"chat":      artifactStatus(res.Chat),
			"subtitles": artifactStatus(res.Subtitles),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"video_id":  id,
		"chat":      artifactStatus(res.Chat),
		"subtitles": artifactStatus(res.Subtitles),
	})
}

func (h *Handlers) recordFetch(kind string, r usecase.ArtifactResult) {
	if !r.Requested {
		return
	}
	switch {
	case r.Err != nil:
		h.metrics.ObserveFetch(kind, "error")
	case r.Cached:
		h.metrics.ObserveFetch(kind, "cached")
	default:
		h.metrics.ObserveFetch(kind, "fetched")
	}
}

func artifactStatus(r usecase.ArtifactResult) gin.H {
	out := gin.H{
		"requested": r.Requested,
		"fetched":   r.Fetched,
		"cached":    r.Cached,
	}
	if r.Err != nil {
		out["error"] = r.Err.Error()
	}
	return out
}

// analyzeRequest carries the per-request tuning knobs the dashboard exposes.
// Absent fields keep the server defaults.
type analyzeRequest struct {
	WindowSec  *float64 `json:"window_sec"`
	Percentile *float64 `json:"percentile"`
	MinClipSec *float64 `json:"min_clip_sec"`
	MaxClipSec *float64 `json:"max_clip_sec"`
	Keywords   []string `json:"keywords"`
}

func (r analyzeRequest) apply(p usecase.Params) usecase.Params {
	if r.WindowSec != nil {
		p.WindowSec = *r.WindowSec
	}
	if r.Percentile != nil {
		p.Percentile = *r.Percentile
	}
	if r.MinClipSec != nil {
		p.MinClipSec = *r.MinClipSec
	}
	if r.MaxClipSec != nil {
		p.MaxClipSec = *r.MaxClipSec
	}
	if len(r.Keywords) > 0 {
		p.Keywords = r.Keywords
	}
	return p
}

func (h *Handlers) AnalyzeVideo(c *gin.Context) {
	id := c.Param("id")
	if !store.ValidVideoID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video id"})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	start := time.Now()
	report, err := h.uc.Analyze(c.Request.Context(), usecase.AnalyzeInput{
		VideoID: id,
		Params:  req.apply(h.params),
	})
	elapsed := time.Since(start).Seconds()

	switch {
	case err == nil:
		h.metrics.ObserveAnalysis("ok", elapsed)
		c.JSON(http.StatusOK, report)
	case errors.Is(err, usecase.ErrNoData):
		h.metrics.ObserveAnalysis("no_data", elapsed)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case strings.HasPrefix(err.Error(), "config:"):
		h.metrics.ObserveAnalysis("config", elapsed)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		h.metrics.ObserveAnalysis("error", elapsed)
		h.logger.WithError(err).WithField("video_id", id).Error("Analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

func (h *Handlers) CandidatesCSV(c *gin.Context) {
	id := c.Param("id")
	if !store.ValidVideoID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid video id"})
		return
	}

	start := time.Now()
	report, err := h.uc.Analyze(c.Request.Context(), usecase.AnalyzeInput{
		VideoID: id,
		Params:  h.params,
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			h.metrics.ObserveAnalysis("no_data", elapsed)
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
			return
		}
		h.metrics.ObserveAnalysis("error", elapsed)
		h.logger.WithError(err).WithField("video_id", id).Error("Analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.metrics.ObserveAnalysis("ok", elapsed)

	var buf bytes.Buffer
	if err := pipeline.ExportCSV(&buf, report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"_candidates.csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
