// Package auth carries the login, signup and password-reset flows. All
// credential checks happen in the backend; this package owns form
// validation, session establishment and the role-aware post-login routing.
package auth

import (
	"context"
	"strings"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

// Validation rules and messages. These match what the signup and login forms
// have always shown.
const (
	usernameMinLength = 3
	passwordMinLength = 6

	msgUsernameRequired  = "Username is required"
	msgUsernameMinLength = "Username must be at least 3 characters"
	msgPasswordRequired  = "Password is required"
	msgPasswordMinLength = "Password must be at least 6 characters"
	msgInvalidEmail      = "Please enter a valid email address"
	msgFieldRequired     = "This field is required"

	msgSignupSuccess = "Your account has been created!"
	msgSignupFailed  = "Signup failed. Please try again."
	msgLoginFailed   = "Login failed. Please try again."
)

// Service is the slice of the backend client the auth handlers use.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.Response, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.Response, error)
}

// validateLogin returns field error messages keyed by field name.
func validateLogin(req models.LoginRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Username) == "" {
		errs["username"] = msgUsernameRequired
	}
	if req.Password == "" {
		errs["password"] = msgPasswordRequired
	}
	return errs
}

func validateSignup(req models.SignupRequest) map[string]string {
	errs := map[string]string{}
	switch {
	case strings.TrimSpace(req.Username) == "":
		errs["username"] = msgUsernameRequired
	case len(req.Username) < usernameMinLength:
		errs["username"] = msgUsernameMinLength
	}
	switch {
	case req.Password == "":
		errs["password"] = msgPasswordRequired
	case len(req.Password) < passwordMinLength:
		errs["password"] = msgPasswordMinLength
	}
	if !validEmail(req.Email) {
		errs["email"] = msgInvalidEmail
	}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = msgFieldRequired
	}
	return errs
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
