package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/observability/metrics"
	"github.com/Pravin-Jalodiya/codesage-web/internal/backend"
	"github.com/Pravin-Jalodiya/codesage-web/internal/pkg/config"
)

type Handlers struct {
	service Service
	routes  config.RoutesConfig
	logger  *zap.Logger
}

func NewHandlers(service Service, routes config.RoutesConfig, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{service: service, routes: routes, logger: logger}
}

// LoginHandler authenticates against the backend and establishes the
// session. ADMIN accounts land on the platform view, everyone else on the
// questions view; both targets are configuration.
func (h *Handlers) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgLoginFailed),
		})
		return
	}

	if fieldErrs := validateLogin(req); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   http.StatusBadRequest,
			"fields": fieldErrs,
		})
		return
	}

	if m := metrics.Get(); m != nil {
		m.AuthAttemptsTotal.Add(c.Request.Context(), 1)
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		// A distinguished forbidden code carries the server's own message
		// (bad credentials, banned account); session state stays untouched.
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			detail := apiErr.Message
			if detail == "" {
				detail = msgLoginFailed
			}
			h.logger.Warn("Login rejected",
				zap.String("username", req.Username),
				zap.Int("code", apiErr.Code),
			)
			c.JSON(http.StatusForbidden, gin.H{
				"code":    apiErr.Code,
				"message": detail,
				"toast":   models.ErrorToast(detail),
			})
			return
		}
		h.logger.Error("Login request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"code":  http.StatusBadGateway,
			"toast": models.ErrorToast(msgLoginFailed),
		})
		return
	}

	state := middleware.GetSessionFromContext(c)
	state.EstablishLogin(resp.Token, resp.Role)

	redirect := h.routes.UserHome
	if models.Role(resp.Role) == models.RoleAdmin {
		redirect = h.routes.AdminHome
	}

	h.logger.Info("Login succeeded",
		zap.String("username", req.Username),
		zap.String("role", resp.Role),
	)
	c.JSON(http.StatusOK, gin.H{
		"code":     resp.Code,
		"message":  resp.Message,
		"role":     resp.Role,
		"redirect": redirect,
	})
}

func (h *Handlers) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgSignupFailed),
		})
		return
	}

	if fieldErrs := validateSignup(req); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   http.StatusBadRequest,
			"fields": fieldErrs,
		})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		middleware.FailFromBackend(c, err, msgSignupFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      resp.Code,
		"message":   resp.Message,
		"user_info": resp.UserInfo,
		"redirect":  h.routes.Login,
		"toast":     models.SuccessToast(msgSignupSuccess),
	})
}

// LogoutHandler invalidates the backend session best-effort and always
// clears local state; a backend hiccup must not trap the user logged in.
func (h *Handlers) LogoutHandler(c *gin.Context) {
	state := middleware.GetSessionFromContext(c)

	if token := state.Token(); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn("Backend logout failed", zap.Error(err))
		}
	}

	state.Clear()
	c.JSON(http.StatusOK, gin.H{
		"code":     http.StatusOK,
		"redirect": h.routes.Login,
	})
}

// SessionHandler exposes the logged-in flag, role and username the header
// derives its state from.
func (h *Handlers) SessionHandler(c *gin.Context) {
	state := middleware.GetSessionFromContext(c)
	c.JSON(http.StatusOK, state.Snapshot())
}

func (h *Handlers) ForgotPasswordHandler(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   http.StatusBadRequest,
			"fields": gin.H{"email": msgInvalidEmail},
		})
		return
	}

	resp, err := h.service.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		middleware.FailFromBackend(c, err, "Failed to send reset instructions")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    resp.Code,
		"message": resp.Message,
		"toast":   models.InfoToast("Email sent", resp.Message),
	})
}

func (h *Handlers) ResetPasswordHandler(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgFieldRequired),
		})
		return
	}
	if len(req.Password) < passwordMinLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   http.StatusBadRequest,
			"fields": gin.H{"password": msgPasswordMinLength},
		})
		return
	}

	resp, err := h.service.ResetPassword(c.Request.Context(), req)
	if err != nil {
		middleware.FailFromBackend(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":     resp.Code,
		"message":  resp.Message,
		"redirect": h.routes.Login,
		"toast":    models.SuccessToast(resp.Message),
	})
}
