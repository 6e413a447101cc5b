package httpapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nttm-tools/sla-server/internal/ingest"
	"github.com/nttm-tools/sla-server/internal/metrics"
	"github.com/nttm-tools/sla-server/internal/service"
)

const (
	defaultCacheTTL       = 10 * time.Minute
	defaultMaxUploadBytes = 16 << 20
)

// Handlers carries the HTTP endpoints of the report server.
type Handlers struct {
	reports        ReportBuilder
	cache          Cacher
	logger         *zap.Logger
	sfGroup        singleflight.Group
	cacheTTL       time.Duration
	maxUploadBytes int64
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(reports ReportBuilder, cache Cacher, logger *zap.Logger, ttl time.Duration, maxUploadBytes int64) *Handlers {
	if reports == nil {
		panic("nil ReportBuilder provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handlers{
		reports:        reports,
		cache:          cache,
		logger:         logger.Named("http-handler"),
		cacheTTL:       ttl,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register mounts all routes on the engine.
func (h *Handlers) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	r.POST("/v1/reports", h.CreateReports)
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "sla-server"})
}

// CreateReports accepts a workbook upload in the "file" multipart field and
// responds with one report block per top-level group. Identical resubmissions
// are served from the cache; the key is the digest of the uploaded bytes plus
// the source name, so a renamed file is processed afresh.
func (h *Handlers) CreateReports(c *gin.Context) {
	metrics.UploadsTotal.Inc()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.reject(c, http.StatusBadRequest, "upload", "send the workbook in the 'file' multipart field")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		h.reject(c, http.StatusRequestEntityTooLarge, "size",
			fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes))
		return
	}
	if !ingest.HasWorkbookExtension(fileHeader.Filename) {
		h.reject(c, http.StatusBadRequest, "format", "please upload an .xlsx file")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.reject(c, http.StatusBadRequest, "upload", "could not read the uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		h.reject(c, http.StatusBadRequest, "upload", "could not read the uploaded file")
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		h.reject(c, http.StatusRequestEntityTooLarge, "size",
			fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes))
		return
	}

	sourceName := fileHeader.Filename
	key := cacheKey(data, sourceName)

	blocks, err := FindAndCache(c.Request.Context(), h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		func(ctx context.Context) ([]service.ReportBlock, error) {
			ds, err := ingest.ParseWorkbook(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			return h.reports.BuildReports(ctx, ds, sourceName)
		})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if c.Query("format") == "text" {
		texts := make([]string, len(blocks))
		for i, b := range blocks {
			texts[i] = b.Text
		}
		c.String(http.StatusOK, strings.Join(texts, "\n\n"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": blocks})
}

// respondError maps pipeline errors onto HTTP statuses. Every rejection is a
// short human-readable message; nothing here is fatal to the server.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var schemaErr *service.SchemaError
	switch {
	case errors.Is(err, ingest.ErrBadFormat):
		h.reject(c, http.StatusBadRequest, "format", "could not read the workbook")
	case errors.As(err, &schemaErr):
		h.reject(c, http.StatusBadRequest, "schema", schemaErr.Error())
	case errors.Is(err, service.ErrUnknownVariant):
		h.reject(c, http.StatusBadRequest, "naming", "file name must contain 'dwh' or 'sla'")
	case errors.Is(err, service.ErrEmptyResult):
		h.reject(c, http.StatusNotFound, "empty", "no rows left after eligibility filtering")
	default:
		h.logger.Error("report pipeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handlers) reject(c *gin.Context, status int, reason, msg string) {
	metrics.RejectsTotal.WithLabelValues(reason).Inc()
	h.logger.Info("upload rejected",
		zap.String("reason", reason),
		zap.Int("status", status))
	c.JSON(status, gin.H{"error": msg})
}

func cacheKey(data []byte, sourceName string) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("reports:%s:%x", strings.ToLower(sourceName), sum)
}
