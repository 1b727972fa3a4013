package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go-blog-api/internal/model"
	"go-blog-api/internal/service"
	"go-blog-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	if err := h.service.Signup(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Signup successful. You can now login with your credentials.")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	tokens, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

// Token exchanges a refresh token for a new access token. A missing body
// token is 401, an unrecognized one 404; only a stored token with a bad
// signature reaches the 500 path.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	payload.Token = strings.TrimSpace(payload.Token)
	if payload.Token == "" {
		writeError(w, apierror.Unauthorized("Refresh token is missing"))
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), payload.Token)
	if errors.Is(err, model.ErrTokenNotFound) {
		writeError(w, apierror.NotFound("Refresh token is not valid"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AccessTokenResponse{AccessToken: accessToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	payload.Token = strings.TrimSpace(payload.Token)
	if payload.Token == "" {
		writeError(w, apierror.BadRequest("Refresh token is required"))
		return
	}

	if err := h.service.Logout(r.Context(), payload.Token); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Logout successful")
}
