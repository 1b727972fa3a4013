package service

import (
	"regexp"
	"strings"
	"unicode"

	"go-blog-api/internal/model"
)

// ValidationError collects every violated field rule for a request so the
// caller sees all of them at once instead of fixing one per round trip.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

func ValidateSignup(req model.SignupRequest) error {
	var fields []model.FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields = append(fields, model.FieldError{Field: "name", Message: "Name is required"})
	} else if len(name) < 2 || len(name) > 50 {
		fields = append(fields, model.FieldError{Field: "name", Message: "Name must be between 2 and 50 characters"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		fields = append(fields, model.FieldError{Field: "username", Message: "Username is required"})
	} else {
		if len(username) < 3 || len(username) > 30 {
			fields = append(fields, model.FieldError{Field: "username", Message: "Username must be between 3 and 30 characters"})
		}
		if !usernamePattern.MatchString(username) {
			fields = append(fields, model.FieldError{Field: "username", Message: "Username can only contain letters, numbers, and underscores"})
		}
	}

	if req.Password == "" {
		fields = append(fields, model.FieldError{Field: "password", Message: "Password is required"})
	} else if msg := passwordRuleViolation(req.Password); msg != "" {
		fields = append(fields, model.FieldError{Field: "password", Message: msg})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func ValidateLogin(req model.LoginRequest) error {
	var fields []model.FieldError

	if strings.TrimSpace(req.Username) == "" {
		fields = append(fields, model.FieldError{Field: "username", Message: "Username is required"})
	}
	if req.Password == "" {
		fields = append(fields, model.FieldError{Field: "password", Message: "Password is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func passwordRuleViolation(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return `Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character (!@#$%^&*(),.?":{}|<>)`
	}
	return ""
}
