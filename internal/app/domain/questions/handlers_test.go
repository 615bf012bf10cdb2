package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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
	"github.com/Pravin-Jalodiya/codesage-web/internal/backend"
)

// MockQuestionService is a mock implementation of Service
type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) GetQuestions(ctx context.Context, token string, filters backend.QuestionFilters) (*models.QuestionsResponse, error) {
	args := m.Called(ctx, token, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestionsResponse), args.Error(1)
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, token, questionID string) (*models.Response, error) {
	args := m.Called(ctx, token, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockQuestionService) UploadQuestions(ctx context.Context, token, filename string, file io.Reader, progress func(percent int)) (*models.Response, error) {
	args := m.Called(ctx, token, filename, file, progress)
	if progress != nil {
		progress(100)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func sessionToken(t *testing.T) string {
	t.Helper()
	claims := &session.Claims{
		Username: "admin",
		Role:     "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func questionsRouter(h *Handlers, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("codesage_session_state", session.NewState(session.NewMemStore(token)))
		c.Next()
	})
	router.GET("/questions", h.ListHandler)
	router.DELETE("/question", h.DeleteHandler)
	router.POST("/questions", h.UploadHandler)
	router.GET("/questions/upload-status", h.StatusHandler)
	return router
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestListHandlerForwardsFilters(t *testing.T) {
	token := sessionToken(t)
	service := &MockQuestionService{}
	service.On("GetQuestions", mock.Anything, token, backend.QuestionFilters{
		Offset:     5,
		Limit:      25,
		Search:     "sum",
		Company:    "Google",
		Topic:      "Array",
		Difficulty: "Easy",
	}).Return(&models.QuestionsResponse{Code: 200, Message: "ok", Total: 1}, nil)

	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/questions?offset=5&limit=25&search=sum&company=Google&topic=Array&difficulty=Easy", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestListHandlerDefaults(t *testing.T) {
	token := sessionToken(t)
	service := &MockQuestionService{}
	service.On("GetQuestions", mock.Anything, token, backend.QuestionFilters{Offset: 0, Limit: 10}).
		Return(&models.QuestionsResponse{Code: 200, Message: "ok"}, nil)

	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/questions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestDeleteHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		token := sessionToken(t)
		service := &MockQuestionService{}
		service.On("DeleteQuestion", mock.Anything, token, "q-42").
			Return(&models.Response{Code: 200, Message: "deleted"}, nil)

		h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
		router := questionsRouter(h, token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/question?id=q-42", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Toast models.Toast `json:"toast"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Question deleted successfully", body.Toast.Detail)
	})

	t.Run("missing id", func(t *testing.T) {
		service := &MockQuestionService{}
		h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
		router := questionsRouter(h, sessionToken(t))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/question", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "DeleteQuestion")
	})
}

func TestUploadHandlerValidationFailure(t *testing.T) {
	service := &MockQuestionService{}
	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, sessionToken(t))

	body, contentType := multipartBody(t, "questions_file", "questions.csv",
		"id,title\n1,Two Sum\n")
	req := httptest.NewRequest(http.MethodPost, "/questions", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		UploadID         string   `json:"upload_id"`
		Status           Status   `json:"status"`
		ValidationErrors []string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.ValidationErrors[0], "missing columns:")

	// Nothing is sent to the backend when validation fails.
	service.AssertNotCalled(t, "UploadQuestions")

	cand, ok := h.tracker.Get(resp.UploadID)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, cand.Status)
}

func TestUploadHandlerWrongExtension(t *testing.T) {
	service := &MockQuestionService{}
	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, sessionToken(t))

	body, contentType := multipartBody(t, "questions_file", "questions.txt", "anything")
	req := httptest.NewRequest(http.MethodPost, "/questions", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		ValidationErrors []string `json:"validationErrors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Invalid file type. Only .csv files are allowed"}, resp.ValidationErrors)
	service.AssertNotCalled(t, "UploadQuestions")
}

func TestUploadHandlerSuccess(t *testing.T) {
	const csvContent = "title_slug,id,title,difficulty,leetcode question link,topic tags,company tags\n" +
		"two-sum,1,Two Sum,Easy,link,Array,Google\n"

	token := sessionToken(t)
	service := &MockQuestionService{}
	service.On("UploadQuestions", mock.Anything, token, "questions.csv", mock.Anything, mock.Anything).
		Return(&models.Response{Code: 200, Message: "Questions uploaded successfully"}, nil)

	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, token)

	body, contentType := multipartBody(t, "questions_file", "questions.csv", csvContent)
	req := httptest.NewRequest(http.MethodPost, "/questions", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		UploadID string `json:"upload_id"`
		Status   Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StatusUploading, resp.Status)

	// The transfer runs in the background; poll the tracker for completion.
	require.Eventually(t, func() bool {
		cand, ok := h.tracker.Get(resp.UploadID)
		return ok && cand.Status == StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	cand, _ := h.tracker.Get(resp.UploadID)
	assert.Equal(t, 100, cand.Progress)
	assert.Equal(t, "Questions uploaded successfully", cand.Message)
	service.AssertExpectations(t)
}

func TestUploadHandlerBackendFailure(t *testing.T) {
	const csvContent = "title_slug,id,title,difficulty,leetcode question link,topic tags,company tags\n" +
		"two-sum,1,Two Sum,Easy,link,Array,Google\n"

	token := sessionToken(t)
	service := &MockQuestionService{}
	service.On("UploadQuestions", mock.Anything, token, "questions.csv", mock.Anything, mock.Anything).
		Return(nil, &backend.APIError{HTTPStatus: 400, Code: 400, Message: "Duplicate question ids"})

	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, token)

	body, contentType := multipartBody(t, "questions_file", "questions.csv", csvContent)
	req := httptest.NewRequest(http.MethodPost, "/questions", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		UploadID string `json:"upload_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Eventually(t, func() bool {
		cand, ok := h.tracker.Get(resp.UploadID)
		return ok && cand.Status == StatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	cand, _ := h.tracker.Get(resp.UploadID)
	assert.Equal(t, "Duplicate question ids", cand.Message)
}

func TestUploadHandlerNoFile(t *testing.T) {
	service := &MockQuestionService{}
	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, sessionToken(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/questions", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusHandler(t *testing.T) {
	service := &MockQuestionService{}
	h := NewHandlers(service, NewTracker(time.Minute), 5*1024*1024, zap.NewNop())
	router := questionsRouter(h, sessionToken(t))

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/questions/upload-status?id=nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("completed candidate carries a success toast", func(t *testing.T) {
		cand := h.tracker.Create("questions.csv", 10)
		h.tracker.Complete(cand.ID, "Questions uploaded successfully")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/questions/upload-status?id="+cand.ID, nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Upload Candidate    `json:"upload"`
			Toast  models.Toast `json:"toast"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, StatusCompleted, body.Upload.Status)
		assert.Equal(t, models.ToastSuccess, body.Toast.Severity)
	})
}
