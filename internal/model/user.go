package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthClaims is what an access token decodes to. It travels on the request
// context after the auth middleware has verified the signature.
type AuthClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// TokenPair is the login response body. Field names mirror what the web
// client stores: the tokens plus the display identity.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name"`
	Username     string `json:"username"`
}
