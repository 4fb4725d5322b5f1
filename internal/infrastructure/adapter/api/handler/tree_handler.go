package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/tree"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/cache"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

// TreeHandler serves the genealogy views. The cache is optional; with
// a nil cache every request rebuilds from the database.
type TreeHandler struct {
	builder   *tree.Builder
	treeCache *cache.TreeCache
	metrics   *metrics.Metrics
	logger    coreport.Logger
}

// NewTreeHandler creates a new tree handler instance
func NewTreeHandler(
	builder *tree.Builder,
	treeCache *cache.TreeCache,
	m *metrics.Metrics,
	logger coreport.Logger,
) *TreeHandler {
	return &TreeHandler{
		builder:   builder,
		treeCache: treeCache,
		metrics:   m,
		logger:    logger,
	}
}

// GetBinaryTree handles the GET /tree/:userId/binary endpoint
func (h *TreeHandler) GetBinaryTree(c *gin.Context) {
	h.serveTree(c, "binary", h.builder.BinaryViewFor)
}

// GetSponsorTree handles the GET /tree/:userId/sponsor endpoint
func (h *TreeHandler) GetSponsorTree(c *gin.Context) {
	h.serveTree(c, "sponsor", h.builder.SponsorViewFor)
}

func (h *TreeHandler) serveTree(c *gin.Context, mode string, build func(ctx context.Context, userID uint64) (*tree.View, error)) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if h.treeCache != nil {
		var cached tree.View
		if h.treeCache.Get(c.Request.Context(), mode, userID, &cached) {
			h.metrics.TreeCacheHits.WithLabelValues(mode, "hit").Inc()
			c.JSON(http.StatusOK, &cached)
			return
		}
		h.metrics.TreeCacheHits.WithLabelValues(mode, "miss").Inc()
	}

	start := time.Now()
	view, err := build(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build tree view", map[string]any{
			"user_id": userID,
			"mode":    mode,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}
	h.metrics.TreeBuilds.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	if view == nil {
		// The user exists nowhere in the graph.
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	if h.treeCache != nil {
		h.treeCache.Set(c.Request.Context(), mode, userID, view)
	}

	c.JSON(http.StatusOK, view)
}
