// Package progress projects a user's solve progress from the external judge
// (leetcode) next to the platform's own tracking.
package progress

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/middleware"
	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

const msgFetchFailed = "Failed to fetch progress"

type Service interface {
	GetUserProgress(ctx context.Context, token, username string) (*models.UserProgressResponse, error)
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

// RecentSubmission pairs a recent accepted submission title with its judge
// submission id.
type RecentSubmission struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

// View is what the progress page renders: both stat blocks plus the fields
// the page derives from them.
type View struct {
	Code              int                  `json:"code"`
	Message           string               `json:"message"`
	LeetcodeStats     models.LeetcodeStats `json:"leetcodeStats"`
	CodesageStats     models.CodesageStats `json:"codesageStats"`
	LeetcodeProgress  string               `json:"leetcodeProgress"`
	CodesageProgress  string               `json:"codesageProgress"`
	RecentSubmissions []RecentSubmission   `json:"recentSubmissions"`
}

// GetHandler serves the session user's progress. The username comes from the
// token, never from the request.
func (h *Handlers) GetHandler(c *gin.Context) {
	state := middleware.GetSessionFromContext(c)
	username := state.Username()

	resp, err := h.service.GetUserProgress(c.Request.Context(), state.Token(), username)
	if err != nil {
		h.logger.Warn("Progress fetch failed",
			zap.String("username", username),
			zap.Error(err),
		)
		middleware.FailFromBackend(c, err, msgFetchFailed)
		return
	}

	c.JSON(http.StatusOK, buildView(resp))
}

func buildView(resp *models.UserProgressResponse) View {
	view := View{
		Code:          resp.Code,
		Message:       resp.Message,
		LeetcodeStats: resp.LeetcodeStats,
		CodesageStats: resp.CodesageStats,
		LeetcodeProgress: fmt.Sprintf("%d/%d",
			resp.LeetcodeStats.TotalQuestionsDoneCount, resp.LeetcodeStats.TotalQuestionsCount),
		CodesageProgress: fmt.Sprintf("%d/%d",
			resp.CodesageStats.TotalQuestionsDoneCount, resp.CodesageStats.TotalQuestionsCount),
	}

	// Titles and ids arrive as parallel arrays; zip only as far as both go.
	titles := resp.LeetcodeStats.RecentACSubmissionTitle
	ids := resp.LeetcodeStats.RecentACSubmissionIDs
	for i := 0; i < len(titles) && i < len(ids); i++ {
		view.RecentSubmissions = append(view.RecentSubmissions, RecentSubmission{
			Title: titles[i],
			ID:    ids[i],
		})
	}
	return view
}
