package presenters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/spf13/afero"
)

// document is the envelope written for every result
type document struct {
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        any       `json:"data"`
}

// JSONPresenter writes results as indented JSON documents, either to a file
// on fs or to out when no path is configured
type JSONPresenter struct {
	fs   afero.Fs
	path string
	out  io.Writer
	now  func() time.Time
}

// NewJSONPresenter creates a JSON presenter
func NewJSONPresenter(fs afero.Fs, path string, out io.Writer) *JSONPresenter {
	return &JSONPresenter{fs: fs, path: path, out: out, now: time.Now}
}

func (p *JSONPresenter) PresentCalendar(_ context.Context, entries []models.CalendarEntry) error {
	if entries == nil {
		entries = []models.CalendarEntry{}
	}
	return p.write("calendar", entries)
}

func (p *JSONPresenter) PresentWatchlist(_ context.Context, entries []models.WatchlistEntry) error {
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	return p.write("watchlist", entries)
}

func (p *JSONPresenter) PresentLists(_ context.Context, resp models.ListsResponse) error {
	return p.write("lists", resp)
}

func (p *JSONPresenter) write(kind string, data any) error {
	body, err := json.MarshalIndent(document{Kind: kind, GeneratedAt: p.now().UTC(), Data: data}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	body = append(body, '\n')

	if p.path == "" {
		_, err := p.out.Write(body)
		return err
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(p.fs, p.path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.path, err)
	}
	return nil
}
