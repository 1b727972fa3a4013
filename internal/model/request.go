package model

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRequest carries the raw refresh token string for /token and /logout.
type TokenRequest struct {
	Token string `json:"token"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// MessageResponse is the flat `{msg: ...}` body the web client expects on
// acknowledgments and on every error.
type MessageResponse struct {
	Msg    string       `json:"msg"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError is one violated validation rule. All violations for a request
// are reported together, not just the first.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
