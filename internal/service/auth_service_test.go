package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/model"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return model.ErrUserAlreadyExists
	}
	s.users[u.Username] = u
	return nil
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]string{}}
}

func (s *memTokenStore) Store(_ context.Context, token string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *memTokenStore) Find(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		return "", model.ErrTokenNotFound
	}
	return userID, nil
}

func (s *memTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token]; !ok {
		return model.ErrTokenNotFound
	}
	delete(s.tokens, token)
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *memUserStore, *memTokenStore) {
	t.Helper()

	users := newMemUserStore()
	tokens := newMemTokenStore()

	// Minimum bcrypt cost keeps the suite fast.
	svc, err := NewAuthService(users, tokens, "access-secret", "refresh-secret", 15*time.Minute, 4)
	require.NoError(t, err)

	return svc, users, tokens
}

var validSignup = model.SignupRequest{
	Name:     "Ann Lee",
	Username: "annlee1",
	Password: "Str0ng!Pass",
}

func TestNewAuthService_RejectsSharedSecret(t *testing.T) {
	_, err := NewAuthService(newMemUserStore(), newMemTokenStore(), "same", "same", time.Minute, 4)
	assert.Error(t, err)
}

func TestSignupThenLogin(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))

	// The stored record never keeps the plaintext password.
	stored, err := users.FindByUsername(ctx, "annlee1")
	require.NoError(t, err)
	assert.NotEqual(t, validSignup.Password, stored.PasswordHash)
	assert.NotEmpty(t, stored.ID)

	pair, err := svc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Ann Lee", pair.Name)
	assert.Equal(t, "annlee1", pair.Username)
}

func TestSignup_DuplicateUsernameConflicts(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))

	// Different name and password, same username: still a conflict.
	dup := model.SignupRequest{Name: "Other Person", Username: "annlee1", Password: "An0ther!Pass"}
	err := svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))

	_, wrongPassErr := svc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "wrong"})
	_, noUserErr := svc.Login(ctx, model.LoginRequest{Username: "nobody", Password: "wrong"})

	assert.ErrorIs(t, wrongPassErr, model.ErrInvalidCredentials)
	assert.ErrorIs(t, noUserErr, model.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), noUserErr.Error())
}

func TestLogin_EachLoginStoresANewRefreshToken(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))

	creds := model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"}
	first, err := svc.Login(ctx, creds)
	require.NoError(t, err)

	// Logins are not idempotent with respect to token count: even
	// back-to-back logins mint distinct refresh token records.
	second, err := svc.Login(ctx, creds)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	tokens.mu.Lock()
	defer tokens.mu.Unlock()
	assert.Len(t, tokens.tokens, 2)
}

func TestRefresh_PreservesClaims(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))
	pair, err := svc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	accessToken, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)

	claims, err := svc.VerifyAccessToken(accessToken)
	require.NoError(t, err)

	stored, err := users.FindByUsername(ctx, "annlee1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "annlee1", claims.Username)
}

func TestRefresh_TokenIsReusableUntilLogout(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))
	pair, err := svc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	// No rotation: the same refresh token works repeatedly.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_AfterLogoutIsNotFound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))
	pair, err := svc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	// The signature still verifies, but the store record is gone; the
	// failure must be "not found", not a signature error.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
	assert.NotErrorIs(t, err, model.ErrInvalidTokenSignature)
}

func TestRefresh_NeverIssuedTokenIsNotFound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Refresh(context.Background(), "bogus")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestRefresh_StoredTokenWithBadSignature(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	ctx := context.Background()

	// A token that somehow landed in the store but was not signed with the
	// refresh secret must fail on the signature check, not pass.
	require.NoError(t, tokens.Store(ctx, "tampered-token", "user-1"))

	_, err := svc.Refresh(ctx, "tampered-token")
	assert.ErrorIs(t, err, model.ErrInvalidTokenSignature)
}

func TestLogout_UnknownTokenIsNotFound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.Logout(context.Background(), "bogus")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestVerifyAccessToken_RejectsRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, validSignup))
	pair, err := svc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	// Signed with the refresh secret, so it must not pass as an access token.
	_, err = svc.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestVerifyAccessToken_RejectsExpired(t *testing.T) {
	users := newMemUserStore()
	tokens := newMemTokenStore()
	svc, err := NewAuthService(users, tokens, "access-secret", "refresh-secret", -time.Minute, 4)
	require.NoError(t, err)

	// Negative TTL falls back to the default inside the constructor, so
	// build the expired token through a second service sharing the secret.
	shortSvc, err := NewAuthService(users, tokens, "access-secret", "refresh-secret", time.Nanosecond, 4)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, shortSvc.Signup(ctx, validSignup))
	pair, err := shortSvc.Login(ctx, model.LoginRequest{Username: "annlee1", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
}
