// Package users is the admin view over platform accounts: the filterable
// users table, ban toggling and account deletion. The backend's user list
// endpoint exposes no filter parameters, so filtering and pagination are
// derived here over the last fetched list.
package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/listview"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
	"github.com/Pravin-Jalodiya/codesage-web/internal/backend"
)

const (
	msgBanToggleTitle  = "Status Updated"
	msgBanToggleFailed = "Failed to update user"
	msgDeleteSuccess   = "User deleted successfully"
	msgDeleteFailed    = "Failed to delete user"
	msgFetchFailed     = "Failed to fetch users"

	defaultPageSize = 10
	listTTL         = 5 * time.Minute
)

// userSpec derives the table view: case-insensitive substring search on the
// username, exact match on the Banned/Active state.
var userSpec = listview.Spec[models.User]{
	Text: func(u models.User) []string { return []string{u.Username} },
	Fields: map[string]func(models.User) string{
		"state": func(u models.User) string {
			if u.IsBanned {
				return "Banned"
			}
			return "Active"
		},
	},
}

// Service is the slice of the backend client the user handlers use.
type Service interface {
	GetUsers(ctx context.Context, token string) (*models.UsersListResponse, error)
	ToggleUserBanState(ctx context.Context, token, username string) (*models.Response, error)
	DeleteUser(ctx context.Context, token, username string) (*models.Response, error)
}

type Handlers struct {
	service Service
	// lists keeps the last fetched user list per session token; optimistic
	// mutations apply to it and roll back to its snapshot on failure.
	lists  *gocache.Cache
	logger *zap.Logger
}

func NewHandlers(service Service, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		service: service,
		lists:   gocache.New(listTTL, 2*listTTL),
		logger:  logger,
	}
}

// ListHandler fetches the user list and projects the requested page from it.
func (h *Handlers) ListHandler(c *gin.Context) {
	state := middleware.GetSessionFromContext(c)
	token := state.Token()

	resp, err := h.service.GetUsers(c.Request.Context(), token)
	if err != nil {
		middleware.FailFromBackend(c, err, msgFetchFailed)
		return
	}
	h.lists.SetDefault(token, resp.Users)

	page := userSpec.Derive(resp.Users, listview.Query{
		Search:   c.Query("search"),
		Selected: map[string]string{"state": c.Query("state")},
		Offset:   intQuery(c, "offset", 0),
		Limit:    intQuery(c, "limit", defaultPageSize),
	})

	c.JSON(http.StatusOK, gin.H{
		"code":    resp.Code,
		"message": resp.Message,
		"total":   page.Total,
		"users":   page.Rows,
	})
}

// BanToggleHandler flips a user's ban flag optimistically: the cached list
// is mutated first and restored from its snapshot if the backend rejects
// the change.
func (h *Handlers) BanToggleHandler(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgBanToggleFailed),
		})
		return
	}

	state := middleware.GetSessionFromContext(c)
	token := state.Token()

	var resp *models.Response
	updated, err := applyOptimistic(h.cachedList(token),
		func(rows []models.User) []models.User {
			for i := range rows {
				if rows[i].Username == username {
					rows[i].IsBanned = !rows[i].IsBanned
				}
			}
			return rows
		},
		func() error {
			var err error
			resp, err = h.service.ToggleUserBanState(c.Request.Context(), token, username)
			return err
		},
	)
	h.lists.SetDefault(token, updated)

	if err != nil {
		h.logger.Warn("Ban toggle failed",
			zap.String("username", username),
			zap.Error(err),
		)
		h.failMutation(c, err, msgBanToggleFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    resp.Code,
		"message": resp.Message,
		"toast":   models.InfoToast(msgBanToggleTitle, resp.Message),
	})
}

// DeleteHandler removes a user, optimistically dropping the row and
// restoring it when the backend refuses.
func (h *Handlers) DeleteHandler(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgDeleteFailed),
		})
		return
	}

	state := middleware.GetSessionFromContext(c)
	token := state.Token()

	updated, err := applyOptimistic(h.cachedList(token),
		func(rows []models.User) []models.User {
			kept := rows[:0]
			for _, u := range rows {
				if u.Username != username {
					kept = append(kept, u)
				}
			}
			return kept
		},
		func() error {
			_, err := h.service.DeleteUser(c.Request.Context(), token, username)
			return err
		},
	)
	h.lists.SetDefault(token, updated)

	if err != nil {
		h.logger.Warn("User delete failed",
			zap.String("username", username),
			zap.Error(err),
		)
		h.failMutation(c, err, msgDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": msgDeleteSuccess,
		"toast":   models.InfoToast("Success", msgDeleteSuccess),
	})
}

func (h *Handlers) cachedList(token string) []models.User {
	if v, ok := h.lists.Get(token); ok {
		return v.([]models.User)
	}
	return nil
}

// failMutation surfaces the server message when present, the fixed fallback
// otherwise. Session faults still go through the shared taxonomy.
func (h *Handlers) failMutation(c *gin.Context, err error, fallback string) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Unwrap() == nil {
		detail := apiErr.Message
		if detail == "" {
			detail = fallback
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    apiErr.Code,
			"message": detail,
			"toast":   models.ErrorToast(detail),
		})
		return
	}
	middleware.FailFromBackend(c, err, fallback)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
