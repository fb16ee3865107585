package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"never-have-i-ever-backend/internal/models"
	"never-have-i-ever-backend/internal/security"
)

// statusFor maps game errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingFields),
		errors.Is(err, models.ErrMissingPasscode),
		errors.Is(err, models.ErrNotEnoughQuestions):
		return http.StatusBadRequest

	case errors.Is(err, models.ErrRoomNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrQuestionNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrNotHost),
		errors.Is(err, models.ErrInvalidPasscode):
		return http.StatusForbidden

	case errors.Is(err, models.ErrRoomNotWaiting),
		errors.Is(err, models.ErrGameNotInProgress),
		errors.Is(err, models.ErrRoomFull),
		errors.Is(err, models.ErrNotEnoughPlayers),
		errors.Is(err, models.ErrRoundIncomplete),
		errors.Is(err, models.ErrAlreadyInRoom),
		errors.Is(err, models.ErrAlreadyAnswered),
		errors.Is(err, models.ErrNotInRoom):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// jsonError writes the error with its mapped status. Internal errors are
// sanitized before leaving the process.
func jsonError(re *core.RequestEvent, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = security.SanitizeErrorMessage(err)
	}
	return re.JSON(status, map[string]string{"error": message})
}

// badRequest writes a plain validation failure.
func badRequest(re *core.RequestEvent, message string) error {
	return re.JSON(http.StatusBadRequest, map[string]string{"error": message})
}
