package presenters

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/dustin/go-humanize"
)

// ConsolePresenter renders results as aligned text tables
type ConsolePresenter struct {
	out io.Writer
	now func() time.Time
}

// NewConsolePresenter creates a console presenter writing to out
func NewConsolePresenter(out io.Writer) *ConsolePresenter {
	return &ConsolePresenter{out: out, now: time.Now}
}

func (p *ConsolePresenter) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

func (p *ConsolePresenter) relative(t time.Time) string {
	return humanize.RelTime(t, p.now(), "ago", "from now")
}

// PresentCalendar prints the entries grouped by air date
func (p *ConsolePresenter) PresentCalendar(_ context.Context, entries []models.CalendarEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(p.out, "No upcoming episodes.")
		return err
	}

	sorted := make([]models.CalendarEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FirstAired.Before(sorted[j].FirstAired)
	})

	tw := p.table()
	var current time.Time
	for i, e := range sorted {
		if i == 0 || !e.FirstAired.Equal(current) {
			current = e.FirstAired
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "%s (%s)\n", current.Format("Mon, 02 Jan 2006"), p.relative(current))
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Show.String(), e.Episode.Code(), e.Episode.Title)
	}
	fmt.Fprintf(tw, "\n%s episodes\n", humanize.Comma(int64(len(sorted))))
	return tw.Flush()
}

// PresentWatchlist prints one row per watchlist entry
func (p *ConsolePresenter) PresentWatchlist(_ context.Context, entries []models.WatchlistEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(p.out, "Watchlist is empty.")
		return err
	}

	tw := p.table()
	fmt.Fprintln(tw, "RANK\tTYPE\tTITLE\tADDED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Rank, e.Type(), e.Content.Label(), p.relative(e.ListedAt))
	}
	fmt.Fprintf(tw, "\n%s entries\n", humanize.Comma(int64(len(entries))))
	return tw.Flush()
}

// PresentLists prints the lists, the items of each fetched list and any saved filters
func (p *ConsolePresenter) PresentLists(_ context.Context, resp models.ListsResponse) error {
	if resp.IsEmpty() {
		_, err := fmt.Fprintln(p.out, "No lists found.")
		return err
	}

	tw := p.table()
	if len(resp.Lists) > 0 {
		fmt.Fprintln(tw, "NAME\tSLUG\tOWNER\tORIGIN\tITEMS\tLIKES\tUPDATED")
		for _, entry := range resp.Lists {
			l := entry.List
			owner := "-"
			if l.Owner != nil {
				owner = l.Owner.Username
			}
			origin := entry.Origin
			if origin == "" {
				origin = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				l.Name, l.IDs.Slug, owner, origin,
				humanize.Comma(int64(l.ItemCount)), humanize.Comma(int64(l.Likes)), p.relative(l.UpdatedAt))
		}
	}

	for _, group := range resp.ItemGroups {
		items := make([]models.ListItem, len(group.Items))
		copy(items, group.Items)
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rank < items[j].Rank })

		fmt.Fprintf(tw, "\n%s (%s)\n", group.List.List.Name, group.List.List.IDs.Slug)
		fmt.Fprintln(tw, "RANK\tTYPE\tTITLE\tLISTED\tNOTES")
		for _, item := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				item.Rank, item.Type(), item.Content.Label(), p.relative(item.ListedAt), truncate(item.Notes, 40))
		}
	}

	if len(resp.SavedFilters) > 0 {
		if len(resp.Lists) > 0 || len(resp.ItemGroups) > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, "RANK\tSECTION\tNAME\tPATH\tQUERY")
		for _, f := range resp.SavedFilters {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", f.Rank, f.Section, f.Name, f.Path, f.Query)
		}
	}

	if pg := resp.Pagination; pg != nil {
		fmt.Fprintf(tw, "\nPage %d of %d (%s items)\n", pg.Page, pg.PageCount, humanize.Comma(int64(pg.ItemCount)))
	}
	return tw.Flush()
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
