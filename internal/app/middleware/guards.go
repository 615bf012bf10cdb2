package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/observability/metrics"
	"github.com/Pravin-Jalodiya/codesage-web/internal/pkg/config"
)

// RoleChecker is the slice of the backend client the guards need.
type RoleChecker interface {
	GetRole(ctx context.Context, token string) (*models.GetRoleResponse, error)
}

// Guards are the route predicates consulted before a protected view.
// Denial policy is encoded once, here: session faults (missing, expired or
// banned token, role check transport failure) tear the session down and send
// the caller to the login route; a wrong role redirects to the forbidden
// route with a toast and leaves the session alone.
type Guards struct {
	roles  RoleChecker
	routes config.RoutesConfig
	logger *zap.Logger
	group  singleflight.Group
}

func NewGuards(roles RoleChecker, routes config.RoutesConfig, logger *zap.Logger) *Guards {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guards{roles: roles, routes: routes, logger: logger}
}

// Auth permits the request iff the session is logged in with a valid token.
func (g *Guards) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := GetSessionFromContext(c)
		if !state.LoggedIn() {
			g.denySession(c, state)
			return
		}
		c.Next()
	}
}

// Admin re-confirms the role with the backend and permits ADMIN only. It
// expects Auth earlier in the chain but re-checks the session anyway, so a
// misordered route registration fails closed.
func (g *Guards) Admin() gin.HandlerFunc {
	return g.roleGuard(models.RoleAdmin)
}

// User permits USER only, with the same backend confirmation as Admin.
func (g *Guards) User() gin.HandlerFunc {
	return g.roleGuard(models.RoleUser)
}

func (g *Guards) roleGuard(want models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := GetSessionFromContext(c)
		if !state.LoggedIn() {
			g.denySession(c, state)
			return
		}

		role, err := g.confirmRole(c.Request.Context(), state.Token())
		if err != nil {
			g.logger.Warn("Role confirmation failed",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			g.denySession(c, state)
			return
		}
		state.ConfirmRole(string(role))

		if role != want {
			detail := "Unauthorized: User access required"
			if want == models.RoleAdmin {
				detail = "Unauthorized: Admin access required"
			}
			g.deny(c, http.StatusForbidden, g.routes.Forbidden, models.ErrorToast(detail))
			return
		}
		c.Next()
	}
}

// confirmRole asks the backend for the authoritative role. Concurrent checks
// for the same token collapse into one call.
func (g *Guards) confirmRole(ctx context.Context, token string) (models.Role, error) {
	v, err, _ := g.group.Do(token, func() (any, error) {
		resp, err := g.roles.GetRole(ctx, token)
		if err != nil {
			return nil, err
		}
		return models.Role(resp.Role), nil
	})
	if err != nil {
		return "", err
	}
	return v.(models.Role), nil
}

// denySession is the terminal path for an invalid session: clear persisted
// state and send the caller to the login route.
func (g *Guards) denySession(c *gin.Context, state SessionClearer) {
	state.Clear()
	g.deny(c, http.StatusUnauthorized, g.routes.Login, models.ErrorToast("Authentication error"))
}

// SessionClearer is the slice of session.State the denial path touches.
type SessionClearer interface {
	Clear()
}

// deny aborts the request. Browser navigations get a redirect; API consumers
// get the status with the toast and target in the body.
func (g *Guards) deny(c *gin.Context, status int, target string, toast models.Toast) {
	if m := metrics.Get(); m != nil {
		m.GuardDenialsTotal.Add(c.Request.Context(), 1)
	}
	if acceptsHTML(c) {
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, gin.H{
		"code":     status,
		"message":  toast.Detail,
		"redirect": target,
		"toast":    toast,
	})
}

func acceptsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}
