package server

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/domain/auth"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/domain/profiles"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/domain/progress"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/domain/questions"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/domain/statistics"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/domain/users"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
)

// SetupRouter configures the Gin router with all middleware and routes.
func (s *Server) SetupRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.OTELGinMiddleware("codesage-web"))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	store := cookie.NewStore([]byte(s.cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.Session.MaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(s.cfg.Session.CookieName, store))
	r.Use(middleware.SessionMiddleware())

	s.setupRoutes(r, logger)

	return r
}

func (s *Server) setupRoutes(r *gin.Engine, logger *zap.Logger) {
	guards := middleware.NewGuards(s.backend, s.cfg.Routes, logger)

	authHandlers := auth.NewHandlers(s.backend, s.cfg.Routes, logger)
	questionHandlers := questions.NewHandlers(
		s.backend,
		questions.NewTracker(15*time.Minute),
		s.cfg.Upload.MaxBytes,
		logger,
	)
	userHandlers := users.NewHandlers(s.backend, logger)
	profileHandlers := profiles.NewHandlers(s.backend, logger)
	progressHandlers := progress.NewHandlers(s.backend, logger)
	statsHandlers := statistics.NewHandlers(s.backend, logger)

	// Public surface: login, signup, password recovery, session probe.
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandlers.LoginHandler)
		authGroup.POST("/signup", authHandlers.SignupHandler)
		authGroup.POST("/forgot-password", authHandlers.ForgotPasswordHandler)
		authGroup.POST("/reset-password", authHandlers.ResetPasswordHandler)
		authGroup.POST("/member/logout", guards.Auth(), authHandlers.LogoutHandler)
	}
	r.GET("/session", authHandlers.SessionHandler)

	// Question bank. Listing needs a live session; mutation is admin-only.
	r.GET("/questions", guards.Auth(), questionHandlers.ListHandler)
	r.DELETE("/question", guards.Auth(), guards.Admin(), questionHandlers.DeleteHandler)
	r.POST("/questions", guards.Auth(), guards.Admin(), questionHandlers.UploadHandler)
	r.GET("/questions/upload-status", guards.Auth(), guards.Admin(), questionHandlers.StatusHandler)

	// Profile and judge progress.
	r.GET("/users/profile/:username", guards.Auth(), profileHandlers.GetHandler)
	r.PATCH("/users/update-profile", guards.Auth(), profileHandlers.UpdateHandler)
	r.GET("/progress", guards.Auth(), guards.User(), progressHandlers.GetHandler)

	// User administration.
	r.GET("/users", guards.Auth(), guards.Admin(), userHandlers.ListHandler)
	r.PATCH("/users/update-user-ban-state", guards.Auth(), guards.Admin(), userHandlers.BanToggleHandler)
	r.DELETE("/users/delete", guards.Auth(), guards.Admin(), userHandlers.DeleteHandler)

	// Platform dashboard.
	r.GET("/platform-stats", guards.Auth(), guards.Admin(), statsHandlers.GetHandler)
}
