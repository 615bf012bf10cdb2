package profiles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/session"
)

// MockProfileService is a mock implementation of Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetUserProfile(ctx context.Context, token, username string) (*models.UserProfileResponse, error) {
	args := m.Called(ctx, token, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfileResponse), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.Response, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func profileRouter(h *Handlers, username string) *gin.Engine {
	claims := &session.Claims{
		Username: username,
		Role:     "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("codesage_session_state", session.NewState(session.NewMemStore(token)))
		c.Next()
	})
	router.GET("/users/profile/:username", h.GetHandler)
	router.GET("/users/profile", h.GetHandler)
	router.PATCH("/users/update-profile", h.UpdateHandler)
	return router
}

func TestGetHandler(t *testing.T) {
	t.Run("fetches the named profile", func(t *testing.T) {
		service := &MockProfileService{}
		service.On("GetUserProfile", mock.Anything, mock.Anything, "bob").
			Return(&models.UserProfileResponse{
				Code:        200,
				Message:     "ok",
				UserProfile: models.UserProfile{Username: "bob", Name: "Bob"},
			}, nil)

		h := NewHandlers(service, zap.NewNop())
		router := profileRouter(h, "alice")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/profile/bob", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.UserProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bob", resp.UserProfile.Username)
	})

	t.Run("defaults to the session user", func(t *testing.T) {
		service := &MockProfileService{}
		service.On("GetUserProfile", mock.Anything, mock.Anything, "alice").
			Return(&models.UserProfileResponse{Code: 200, Message: "ok"}, nil)

		h := NewHandlers(service, zap.NewNop())
		router := profileRouter(h, "alice")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/profile", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})
}

func TestUpdateHandler(t *testing.T) {
	t.Run("forwards the changed fields", func(t *testing.T) {
		service := &MockProfileService{}
		service.On("UpdateProfile", mock.Anything, mock.Anything,
			models.UpdateProfileRequest{Name: "Alice B", Country: "NL"}).
			Return(&models.Response{Code: 200, Message: "updated"}, nil)

		h := NewHandlers(service, zap.NewNop())
		router := profileRouter(h, "alice")

		req := httptest.NewRequest(http.MethodPatch, "/users/update-profile",
			strings.NewReader(`{"name":"Alice B","country":"NL"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Toast models.Toast `json:"toast"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Profile updated successfully", body.Toast.Detail)
		service.AssertExpectations(t)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		service := &MockProfileService{}
		h := NewHandlers(service, zap.NewNop())
		router := profileRouter(h, "alice")

		req := httptest.NewRequest(http.MethodPatch, "/users/update-profile",
			strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "UpdateProfile")
	})
}
