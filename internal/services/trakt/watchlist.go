package trakt

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amaumene/traktmanager/internal/models"
)

// GetWatchlist returns the user's watchlist filtered and sorted as requested
func (c *Client) GetWatchlist(ctx context.Context, req models.WatchlistRequest) ([]models.WatchlistEntry, error) {
	resp, err := c.doRequest(ctx, request{
		method:       http.MethodGet,
		path:         req.Path(),
		requiresAuth: true,
		name:         "sync/watchlist",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}

	entries, err := c.mapper.WatchlistEntries(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map watchlist: %w", err)
	}
	c.logger.WithField("count", len(entries)).Debug("Fetched watchlist entries")
	return entries, nil
}
