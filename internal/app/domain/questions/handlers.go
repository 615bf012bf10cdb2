package questions

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/observability/metrics"
	"github.com/Pravin-Jalodiya/codesage-web/internal/backend"
)

const (
	msgDeleteSuccess = "Question deleted successfully"
	msgDeleteFailed  = "Failed to delete question"
	msgUploadFailed  = "Failed to upload questions"
	msgNoFile        = "No file selected"

	defaultPageSize = 10
)

// Service is the slice of the backend client the question handlers use.
type Service interface {
	GetQuestions(ctx context.Context, token string, filters backend.QuestionFilters) (*models.QuestionsResponse, error)
	DeleteQuestion(ctx context.Context, token, questionID string) (*models.Response, error)
	UploadQuestions(ctx context.Context, token, filename string, file io.Reader, progress func(percent int)) (*models.Response, error)
}

type Handlers struct {
	service   Service
	tracker   *Tracker
	validator Validator
	logger    *zap.Logger
}

func NewHandlers(service Service, tracker *Tracker, maxUploadBytes int64, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		service:   service,
		tracker:   tracker,
		validator: Validator{MaxBytes: maxUploadBytes},
		logger:    logger,
	}
}

// ListHandler passes the filter selection through to the backend; the
// question bank is filtered and paginated server-side, and the response is
// a thin projection of that page.
func (h *Handlers) ListHandler(c *gin.Context) {
	state := middleware.GetSessionFromContext(c)

	filters := backend.QuestionFilters{
		Offset:     intQuery(c, "offset", 0),
		Limit:      intQuery(c, "limit", defaultPageSize),
		Search:     c.Query("search"),
		Company:    c.Query("company"),
		Topic:      c.Query("topic"),
		Difficulty: c.Query("difficulty"),
	}

	resp, err := h.service.GetQuestions(c.Request.Context(), state.Token(), filters)
	if err != nil {
		middleware.FailFromBackend(c, err, "Failed to fetch questions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) DeleteHandler(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgDeleteFailed),
		})
		return
	}

	state := middleware.GetSessionFromContext(c)
	resp, err := h.service.DeleteQuestion(c.Request.Context(), state.Token(), id)
	if err != nil {
		middleware.FailFromBackend(c, err, msgDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    resp.Code,
		"message": resp.Message,
		"toast":   models.SuccessToast(msgDeleteSuccess),
	})
}

// UploadHandler validates the selected CSV and, only once every check has
// passed, forwards it to the backend in the background. The response carries
// the candidate id; the UI polls StatusHandler for progress. A candidate
// never leaves Pending while validation errors exist, so the upload cannot
// race the asynchronous content check.
func (h *Handlers) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("questions_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  http.StatusBadRequest,
			"toast": models.ErrorToast(msgNoFile),
		})
		return
	}

	cand := h.tracker.Create(fileHeader.Filename, fileHeader.Size)

	// Cheap gates first; the file is not opened unless they pass.
	validationErrs := h.validator.CheckName(fileHeader.Filename)
	validationErrs = append(validationErrs, h.validator.CheckSize(fileHeader.Size)...)

	var content []byte
	if len(validationErrs) == 0 {
		file, err := fileHeader.Open()
		if err != nil {
			h.tracker.Fail(cand.ID, msgUploadFailed, nil)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":  http.StatusInternalServerError,
				"toast": models.ErrorToast(msgUploadFailed),
			})
			return
		}
		defer file.Close()

		content, err = io.ReadAll(io.LimitReader(file, h.validator.MaxBytes+1))
		if err != nil {
			h.tracker.Fail(cand.ID, msgUploadFailed, nil)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":  http.StatusInternalServerError,
				"toast": models.ErrorToast(msgUploadFailed),
			})
			return
		}
		validationErrs = append(validationErrs, h.validator.CheckContent(bytes.NewReader(content))...)
	}

	if len(validationErrs) > 0 {
		h.tracker.Fail(cand.ID, validationErrs[0], validationErrs)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":             http.StatusUnprocessableEntity,
			"upload_id":        cand.ID,
			"status":           StatusFailed,
			"validationErrors": validationErrs,
			"toast":            models.ErrorToast(strings.Join(validationErrs, "; ")),
		})
		return
	}

	h.tracker.SetReady(cand.ID)
	h.tracker.SetUploading(cand.ID)

	state := middleware.GetSessionFromContext(c)
	token := state.Token()
	filename := fileHeader.Filename
	size := fileHeader.Size
	id := cand.ID

	// The transfer outlives the request; the UI follows it via the tracker.
	go func() {
		resp, err := h.service.UploadQuestions(context.Background(), token, filename, bytes.NewReader(content), func(percent int) {
			h.tracker.SetProgress(id, percent)
		})
		if m := metrics.Get(); m != nil {
			m.UploadsTotal.Add(context.Background(), 1)
		}
		if err != nil {
			detail := msgUploadFailed
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				detail = apiErr.Message
			}
			h.logger.Error("Question upload failed",
				zap.String("upload_id", id),
				zap.Error(err),
			)
			h.tracker.Fail(id, detail, nil)
			return
		}
		if m := metrics.Get(); m != nil {
			m.UploadBytesTotal.Add(context.Background(), size)
		}
		h.logger.Info("Question upload completed",
			zap.String("upload_id", id),
			zap.Int64("bytes", size),
		)
		h.tracker.Complete(id, resp.Message)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"code":      http.StatusAccepted,
		"upload_id": cand.ID,
		"status":    StatusUploading,
	})
}

// StatusHandler reports an upload candidate's state and progress.
func (h *Handlers) StatusHandler(c *gin.Context) {
	id := c.Query("id")
	cand, ok := h.tracker.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "unknown upload",
		})
		return
	}

	payload := gin.H{
		"code":   http.StatusOK,
		"upload": cand,
	}
	if cand.Status == StatusCompleted {
		payload["toast"] = models.SuccessToast(cand.Message)
	}
	if cand.Status == StatusFailed {
		payload["toast"] = models.ErrorToast(cand.Message)
	}
	c.JSON(http.StatusOK, payload)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
