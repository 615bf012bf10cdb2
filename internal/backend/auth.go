package backend

import (
	"context"
	"net/http"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

// Login authenticates with the backend. No bearer token is attached; a
// distinguished forbidden code (bad credentials, banned account) comes back
// as an APIError wrapping ErrForbidden with the server's message.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	var out models.SignupResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRole fetches the authoritative role for the token's account.
func (c *Client) GetRole(ctx context.Context, token string) (*models.GetRoleResponse, error) {
	var out models.GetRoleResponse
	if err := c.do(ctx, http.MethodGet, "/auth/member/role", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session on the backend. Best effort: the gateway
// clears its own session regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/member/logout", nil, token, struct{}{}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (*models.Response, error) {
	var out models.Response
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.Response, error) {
	var out models.Response
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
