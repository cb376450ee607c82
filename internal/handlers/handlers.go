package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func sendJSON(w http.ResponseWriter, status int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

func replyWith(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	if err := sendJSON(w, status, v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(msg string) map[string]string {
	return map[string]string{
		"error": msg,
	}
}

func badRequest(w http.ResponseWriter, logger *slog.Logger, msg string) {
	replyWith(w, logger, http.StatusBadRequest, wrapError(msg))
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger) {
	replyWith(w, logger, http.StatusUnauthorized, wrapError("missing or invalid session token"))
}

func forbidden(w http.ResponseWriter, logger *slog.Logger) {
	replyWith(w, logger, http.StatusForbidden, wrapError("token does not grant access to this game"))
}

func notFound(w http.ResponseWriter, logger *slog.Logger) {
	replyWith(w, logger, http.StatusNotFound, wrapError("game not found"))
}

func conflict(w http.ResponseWriter, logger *slog.Logger, msg string) {
	replyWith(w, logger, http.StatusConflict, wrapError(msg))
}

func internalError(w http.ResponseWriter, logger *slog.Logger, msg string, args ...any) {
	replyWith(w, logger, http.StatusInternalServerError, wrapError("internal error"))
	logger.Error(msg, args...)
}
