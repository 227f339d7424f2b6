package controllers

import (
	"context"
	"fmt"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/sirupsen/logrus"
)

// WatchlistClient fetches the user's watchlist
type WatchlistClient interface {
	GetWatchlist(ctx context.Context, req models.WatchlistRequest) ([]models.WatchlistEntry, error)
}

// WatchlistPresenter receives watchlist entries
type WatchlistPresenter interface {
	PresentWatchlist(ctx context.Context, entries []models.WatchlistEntry) error
}

// WatchlistOrchestrator fetches the watchlist and hands it to every presenter
type WatchlistOrchestrator struct {
	client     WatchlistClient
	presenters []WatchlistPresenter
	recorder   PresentRecorder
	logger     *logrus.Logger
}

// NewWatchlistOrchestrator creates a new watchlist orchestrator
func NewWatchlistOrchestrator(client WatchlistClient, presenters []WatchlistPresenter, recorder PresentRecorder, logger *logrus.Logger) *WatchlistOrchestrator {
	return &WatchlistOrchestrator{client: client, presenters: presenters, recorder: recorder, logger: logger}
}

// Execute runs the request and presents the result
func (o *WatchlistOrchestrator) Execute(ctx context.Context, req models.WatchlistRequest) error {
	entries, err := o.client.GetWatchlist(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get watchlist: %w", err)
	}
	o.logger.WithFields(logrus.Fields{
		"filter": req.Filter,
		"sort":   req.Sort,
		"order":  req.Order,
		"count":  len(entries),
	}).Info("Fetched watchlist")

	o.recorder.Presented("watchlist")
	for _, p := range o.presenters {
		if err := p.PresentWatchlist(ctx, entries); err != nil {
			o.logger.WithError(err).Error("Failed to present watchlist")
		}
	}
	return nil
}
