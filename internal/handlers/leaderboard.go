package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/services"
)

const leaderboardLimit = 50

type LeaderboardHandlers struct {
	store *services.RoomStore
}

func NewLeaderboardHandlers(store *services.RoomStore) *LeaderboardHandlers {
	return &LeaderboardHandlers{store: store}
}

// GetLeaderboard serves the points ranking. timeFrame is day, week or all;
// anything else means day.
func (h *LeaderboardHandlers) GetLeaderboard(re *core.RequestEvent) error {
	timeFrame := re.Request.URL.Query().Get("timeFrame")
	if timeFrame == "" {
		timeFrame = "day"
	}

	entries, err := h.store.Leaderboard(timeFrame, leaderboardLimit)
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, map[string]any{
		"timeFrame":   timeFrame,
		"leaderboard": entries,
	})
}

// ResetDaily zeroes the daily counters. Exposed for an external scheduler.
func (h *LeaderboardHandlers) ResetDaily(re *core.RequestEvent) error {
	if err := h.store.ResetDailyPoints(); err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, map[string]string{"status": "reset"})
}
