package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-blog-api/internal/model"
	"go-blog-api/internal/service"
	"go-blog-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.MessageResponse{Msg: msg})
}

// writeError translates service and store errors into the flat `{msg}` wire
// shape. Internal detail never leaks to the caller; it is logged instead.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, model.MessageResponse{
			Msg:    "Validation failed",
			Errors: validationErr.Fields,
		})
		return
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.HTTPStatus, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrUserAlreadyExists):
		writeMessage(w, http.StatusConflict, "Username already exists. Please choose another one.")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, model.ErrTokenNotFound):
		writeMessage(w, http.StatusNotFound, "Token not found or already expired")
	case errors.Is(err, model.ErrInvalidTokenSignature):
		writeMessage(w, http.StatusInternalServerError, "invalid refresh token")
	case errors.Is(err, model.ErrPostNotFound):
		writeMessage(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, model.ErrCommentNotFound):
		writeMessage(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, model.ErrImageNotFound):
		writeMessage(w, http.StatusNotFound, "Image not found")
	case errors.Is(err, model.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, model.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "token is missing")
	case errors.Is(err, model.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "invalid token")
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
