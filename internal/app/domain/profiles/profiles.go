// Package profiles serves the profile view and its update form.
package profiles

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

const (
	msgUpdateSuccess = "Profile updated successfully"
	msgUpdateFailed  = "Failed to update profile"
	msgFetchFailed   = "Failed to fetch profile"
)

type Service interface {
	GetUserProfile(ctx context.Context, token, username string) (*models.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.Response, error)
}

type Handlers struct {
	service Service
	logger  *zap.Logger
}

func NewHandlers(service Service, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{service: service, logger: logger}
}

// GetHandler returns a profile. With no username parameter it serves the
// session's own profile.
func (h *Handlers) GetHandler(c *gin.Context) {
	state := middleware.GetSessionFromContext(c)

	username := c.Param("username")
	if username == "" {
		username = state.Username()
	}

	resp, err := h.service.GetUserProfile(c.Request.Context(), state.Token(), username)
	if err != nil {
		middleware.FailFromBackend(c, err, msgFetchFailed)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateHandler forwards the changed fields to the backend.
func (h *Handlers) UpdateHandler(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgUpdateFailed),
		})
		return
	}

	state := middleware.GetSessionFromContext(c)
	resp, err := h.service.UpdateProfile(c.Request.Context(), state.Token(), req)
	if err != nil {
		middleware.FailFromBackend(c, err, msgUpdateFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    resp.Code,
		"message": resp.Message,
		"toast":   models.SuccessToast(msgUpdateSuccess),
	})
}
