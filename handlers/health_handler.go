package handlers

import (
	"net/http"
	"time"

	"github.com/upb/greeting-app/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	startedAt time.Time
	now       func() time.Time
	logger    *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. Uptime is measured from
// startedAt.
func NewHealthHandler(startedAt time.Time, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		startedAt: startedAt,
		now:       time.Now,
		logger:    logger,
	}
}

// HandleHealth handles GET /api/health
// Always returns 200 while the process is serving.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	response := HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    now.Sub(h.startedAt).Seconds(),
	}

	if err := utils.WriteOK(w, response); err != nil {
		h.logger.Error("failed to write health response", zap.Error(err))
	}
}
