package controllers

import (
	"context"
	"fmt"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/sirupsen/logrus"
)

// PresentRecorder counts results handed to presenters
type PresentRecorder interface {
	Presented(kind string)
}

// CalendarClient fetches the user's shows calendar
type CalendarClient interface {
	GetMyShows(ctx context.Context, req models.CalendarRequest) ([]models.CalendarEntry, error)
}

// CalendarPresenter receives calendar entries
type CalendarPresenter interface {
	PresentCalendar(ctx context.Context, entries []models.CalendarEntry) error
}

// CalendarOrchestrator fetches the calendar and hands it to every presenter
type CalendarOrchestrator struct {
	client     CalendarClient
	presenters []CalendarPresenter
	recorder   PresentRecorder
	logger     *logrus.Logger
}

// NewCalendarOrchestrator creates a new calendar orchestrator
func NewCalendarOrchestrator(client CalendarClient, presenters []CalendarPresenter, recorder PresentRecorder, logger *logrus.Logger) *CalendarOrchestrator {
	return &CalendarOrchestrator{client: client, presenters: presenters, recorder: recorder, logger: logger}
}

// Execute runs the request and presents the result
func (o *CalendarOrchestrator) Execute(ctx context.Context, req models.CalendarRequest) error {
	entries, err := o.client.GetMyShows(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get calendar: %w", err)
	}
	o.logger.WithFields(logrus.Fields{
		"start": req.StartDate.Format("2006-01-02"),
		"days":  req.Days,
		"count": len(entries),
	}).Info("Fetched calendar")

	o.recorder.Presented("calendar")
	for _, p := range o.presenters {
		if err := p.PresentCalendar(ctx, entries); err != nil {
			o.logger.WithError(err).Error("Failed to present calendar")
		}
	}
	return nil
}
