package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/model"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
	seen   string
}

func (v *stubVerifier) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	v.seen = tokenString
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func requireAuthHandler(v *stubVerifier, captured **model.AuthClaims) http.Handler {
	mw := NewAuthMiddleware(v)
	return mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok && captured != nil {
			*captured = claims
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := requireAuthHandler(&stubVerifier{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is missing", decodeMsg(t, rec))
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	handler := requireAuthHandler(&stubVerifier{err: errors.New("bad signature")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid token", decodeMsg(t, rec))
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	verifier := &stubVerifier{claims: &model.AuthClaims{UserID: "u1", Username: "annlee1"}}
	var captured *model.AuthClaims
	handler := requireAuthHandler(verifier, &captured)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "u1", captured.UserID)
	assert.Equal(t, "annlee1", captured.Username)
}

func TestExtractBearerToken_Normalization(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"raw token", "sometoken", "sometoken"},
		{"bearer prefix", "Bearer sometoken", "sometoken"},
		{"lowercase scheme", "bearer sometoken", "sometoken"},
		{"padded", "  Bearer sometoken  ", "sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBearerToken(tt.header))
		})
	}
}

func TestRequireAuth_AcceptsRawToken(t *testing.T) {
	verifier := &stubVerifier{claims: &model.AuthClaims{UserID: "u1", Username: "annlee1"}}
	handler := requireAuthHandler(verifier, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "sometoken")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sometoken", verifier.seen)
}
