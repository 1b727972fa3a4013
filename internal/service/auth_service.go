package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-blog-api/internal/model"
)

// UserStore is the slice of the credential store the auth service needs.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
}

// TokenStore persists raw refresh token strings. Presence in the store is
// what makes a refresh token trustworthy; its signature alone is not enough.
type TokenStore interface {
	Store(ctx context.Context, token string, userID string) error
	Find(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	users         UserStore
	tokens        TokenStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	bcryptCost    int
}

func NewAuthService(users UserStore, tokens TokenStore, accessSecret string, refreshSecret string, accessTTL time.Duration, bcryptCost int) (*AuthService, error) {
	if strings.TrimSpace(accessSecret) == "" || strings.TrimSpace(refreshSecret) == "" {
		return nil, errors.New("both signing secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if bcryptCost == 0 {
		bcryptCost = 10
	}

	return &AuthService{
		users:         users,
		tokens:        tokens,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		bcryptCost:    bcryptCost,
	}, nil
}

// Signup validates the request, hashes the password, and inserts the user.
// Uniqueness is left to the store's unique index; a duplicate surfaces as
// model.ErrUserAlreadyExists. No tokens are issued here.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) error {
	if err := ValidateSignup(req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	return s.users.Create(ctx, user)
}

// Login verifies the credentials and issues a token pair. Unknown username
// and wrong password both come back as model.ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenPair, error) {
	if err := ValidateLogin(req); err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh exchanges a stored refresh token for a fresh access token. The
// store lookup comes first: a token that was logged out or never issued is
// "not found", with no hint which of the two it was. Only then is the
// signature checked. The refresh token itself is not rotated; it stays
// valid until an explicit logout.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (string, error) {
	if _, err := s.tokens.Find(ctx, rawToken); err != nil {
		return "", err
	}

	claims, err := s.parseToken(rawToken, s.refreshSecret)
	if err != nil {
		return "", model.ErrInvalidTokenSignature
	}

	return s.signAccessToken(claims.UserID, claims.Username)
}

// Logout deletes the refresh token record. Once deleted the token can never
// authorize another refresh, even though its signature still verifies.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	return s.tokens.Delete(ctx, rawToken)
}

// VerifyAccessToken is the stateless hot-path check used by the request
// middleware: signature and expiry only, no store lookup.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	return s.parseToken(tokenString, s.accessSecret)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := s.signToken(jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}, s.accessSecret)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	// The refresh token deliberately carries no exp claim: its lifetime is
	// bounded by the store record, which logout deletes. The jti keeps two
	// logins in the same second from minting identical token strings, which
	// would collide on the store's primary key.
	refreshToken, err := s.signToken(jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"jti":      uuid.NewString(),
	}, s.refreshSecret)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.tokens.Store(ctx, refreshToken, user.ID); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Name:         user.Name,
		Username:     user.Username,
	}, nil
}

func (s *AuthService) signAccessToken(userID string, username string) (string, error) {
	now := time.Now().UTC()
	token, err := s.signToken(jwt.MapClaims{
		"id":       userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}, s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthorized
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthorized
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["id"].(string)
	claims.Username, _ = claimsMap["username"].(string)

	if claims.UserID == "" {
		return nil, model.ErrUnauthorized
	}
	return claims, nil
}
