package ingestion

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the Runner's pass registry over HTTP.
type Handler struct {
	runner *Runner
}

func NewHandler(runner *Runner) *Handler {
	if runner == nil {
		panic("ingestion: runner must not be nil")
	}
	return &Handler{runner: runner}
}

// RegisterRoutes registers the ingestion status routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/ingestion/runs", h.ListRunsHandler)
}

// ListRunsHandler returns the summaries of the latest ingestion pass.
func (h *Handler) ListRunsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.runner.Last())
}
