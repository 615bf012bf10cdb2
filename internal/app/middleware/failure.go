package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
	"github.com/Pravin-Jalodiya/codesage-web/internal/backend"
)

// FailFromBackend translates a backend error into the user-visible outcome:
// a 401 application code tears the session down and points at /login, a 403
// points at the home route, anything else surfaces the server message (or
// the fallback) as an error toast. Raw errors never reach the response.
func FailFromBackend(c *gin.Context, err error, fallback string) {
	detail := fallback
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		detail = apiErr.Message
	}

	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		GetSessionFromContext(c).Clear()
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"code":     http.StatusUnauthorized,
			"message":  detail,
			"redirect": "/login",
			"toast":    models.ErrorToast(detail),
		})
	case errors.Is(err, backend.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":     http.StatusForbidden,
			"message":  detail,
			"redirect": "/",
			"toast":    models.ErrorToast(detail),
		})
	default:
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"code":    http.StatusBadGateway,
			"message": detail,
			"toast":   models.ErrorToast(detail),
		})
	}
}
