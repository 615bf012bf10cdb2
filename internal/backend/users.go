package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

// GetUsers returns the full user list. The contract exposes no filter
// parameters, so the gateway filters and paginates the result itself.
func (c *Client) GetUsers(ctx context.Context, token string) (*models.UsersListResponse, error) {
	var out models.UsersListResponse
	if err := c.do(ctx, http.MethodGet, "/users", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleUserBanState flips the ban flag for a user.
func (c *Client) ToggleUserBanState(ctx context.Context, token, username string) (*models.Response, error) {
	q := url.Values{}
	q.Set("username", username)
	var out models.Response
	if err := c.do(ctx, http.MethodPatch, "/users/update-user-ban-state", q, token, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, username string) (*models.Response, error) {
	q := url.Values{}
	q.Set("username", username)
	var out models.Response
	if err := c.do(ctx, http.MethodDelete, "/users/delete", q, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUserProfile(ctx context.Context, token, username string) (*models.UserProfileResponse, error) {
	var out models.UserProfileResponse
	if err := c.do(ctx, http.MethodGet, "/users/profile/"+url.PathEscape(username), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.Response, error) {
	var out models.Response
	if err := c.do(ctx, http.MethodPatch, "/users/update-profile", nil, token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUserProgress(ctx context.Context, token, username string) (*models.UserProgressResponse, error) {
	var out models.UserProgressResponse
	if err := c.do(ctx, http.MethodGet, "/users/progress/"+url.PathEscape(username), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
