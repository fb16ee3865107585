package handlers

import (
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/services"
)

type QuestionHandlers struct {
	store *services.RoomStore
}

func NewQuestionHandlers(store *services.RoomStore) *QuestionHandlers {
	return &QuestionHandlers{store: store}
}

// ListQuestions samples random questions, optionally filtered by category.
func (h *QuestionHandlers) ListQuestions(re *core.RequestEvent) error {
	query := re.Request.URL.Query()

	count := 10
	if raw := query.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return badRequest(re, "count must be between 1 and 100")
		}
		count = n
	}

	questions, err := h.store.RandomQuestions(count, query.Get("category"))
	if err != nil {
		return jsonError(re, err)
	}
	return re.JSON(http.StatusOK, map[string]any{"questions": questions})
}
