package trakt

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amaumene/traktmanager/internal/models"
)

// GetMyShows returns the episodes airing in the requested window for shows the user follows
func (c *Client) GetMyShows(ctx context.Context, req models.CalendarRequest) ([]models.CalendarEntry, error) {
	resp, err := c.doRequest(ctx, request{
		method:       http.MethodGet,
		path:         req.Path(),
		requiresAuth: true,
		name:         "calendars/my/shows",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	entries, err := c.mapper.CalendarEntries(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map calendar: %w", err)
	}
	c.logger.WithField("count", len(entries)).Debug("Fetched calendar entries")
	return entries, nil
}
