package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/services"
)

type MetricsHandlers struct {
	metrics    *services.Metrics
	dispatcher *services.Dispatcher
}

func NewMetricsHandlers(metrics *services.Metrics, dispatcher *services.Dispatcher) *MetricsHandlers {
	return &MetricsHandlers{metrics: metrics, dispatcher: dispatcher}
}

func (h *MetricsHandlers) GetMetrics(re *core.RequestEvent) error {
	snapshot := h.metrics.Snapshot()
	snapshot.ActiveRooms = h.dispatcher.ActiveRooms()
	return re.JSON(http.StatusOK, snapshot)
}

func (h *MetricsHandlers) GetHealth(re *core.RequestEvent) error {
	snapshot := h.metrics.Snapshot()
	status := http.StatusOK
	if snapshot.HealthStatus == "critical" {
		status = http.StatusServiceUnavailable
	}
	return re.JSON(status, map[string]any{
		"status":         snapshot.HealthStatus,
		"uptime_seconds": snapshot.UptimeSeconds,
	})
}
