package backend

import (
	"context"
	"net/http"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/models"
)

func (c *Client) GetPlatformStats(ctx context.Context, token string) (*models.PlatformStatsResponse, error) {
	var out models.PlatformStatsResponse
	if err := c.do(ctx, http.MethodGet, "/platform-stats", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
