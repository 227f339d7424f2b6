package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/amaumene/traktmanager/internal/app"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *cli) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize this device with Trakt and print the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.execute(cmd, "auth", false, func(ctx context.Context, a *app.App) error {
				token, err := a.DeviceAuth.Authorize(ctx, func(code models.DeviceCode) {
					printDeviceCode(cmd.ErrOrStderr(), code)
				})
				if err != nil {
					return fmt.Errorf("failed to authenticate with Trakt: %w", err)
				}
				printToken(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Exchange the configured refresh token for a new access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.execute(cmd, "auth refresh", false, func(ctx context.Context, a *app.App) error {
				token, err := a.Client.RefreshToken(ctx)
				if err != nil {
					return err
				}
				printToken(cmd.OutOrStdout(), token)
				return nil
			})
		},
	})
	return cmd
}

func printToken(w io.Writer, token models.DeviceToken) {
	fmt.Fprintf(w, "TRAKT_ACCESS_TOKEN=%s\n", token.AccessToken)
	if token.RefreshToken != "" {
		fmt.Fprintf(w, "TRAKT_REFRESH_TOKEN=%s\n", token.RefreshToken)
	}
	if expires := token.ExpiresAt(); !expires.IsZero() {
		fmt.Fprintf(w, "# expires %s (%s)\n", expires.Format(time.RFC3339), humanize.Time(expires))
	}
}

func (c *cli) calendarCommand() *cobra.Command {
	var (
		start string
		days  int
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show upcoming episodes of the shows you watch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.execute(cmd, "calendar", true, func(ctx context.Context, a *app.App) error {
				startDate := time.Now()
				if start != "" {
					parsed, err := time.Parse("2006-01-02", start)
					if err != nil {
						return fmt.Errorf("invalid --start %q: expected yyyy-mm-dd", start)
					}
					startDate = parsed
				}
				req, err := models.NewCalendarRequest(startDate, days)
				if err != nil {
					return err
				}
				return a.Calendar.Execute(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day of the calendar as yyyy-mm-dd (default today)")
	cmd.Flags().IntVar(&days, "days", 7, fmt.Sprintf("number of days to show (%d-%d)", models.MinCalendarDays, models.MaxCalendarDays))
	return cmd
}

func (c *cli) watchlistCommand() *cobra.Command {
	var filter, sort, order string
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Show your watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.execute(cmd, "watchlist", true, func(ctx context.Context, a *app.App) error {
				req := models.NewWatchlistRequest(
					models.ParseWatchlistFilter(filter),
					models.ParseWatchlistSort(sort),
					models.ParseSortOrder(order),
				)
				return a.Watchlist.Execute(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&filter, "type", "all", "movies, shows, seasons, episodes or all")
	cmd.Flags().StringVar(&sort, "sort", "rank", "sort field such as rank, added, title, released or popularity")
	cmd.Flags().StringVar(&order, "order", "asc", "asc or desc")
	return cmd
}

func (c *cli) listsCommand() *cobra.Command {
	var (
		kind, user, list   string
		itemsType, section string
		includeItems       bool
		page, limit        int
	)
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show lists, their items or your saved filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := models.ListsRequest{
				Kind:         models.ParseListKind(kind),
				UserSlug:     user,
				ListSlug:     list,
				IncludeItems: includeItems,
				ItemsType:    models.ParseListItemsType(itemsType),
				Page:         page,
				Limit:        limit,
			}
			if req.Kind == models.ListKindSaved {
				parsed, err := models.ParseSavedFilterSection(section)
				if err != nil {
					return err
				}
				req.Section = parsed
			}
			needsToken := req.Kind != models.ListKindOfficial
			return c.execute(cmd, "lists", needsToken, func(ctx context.Context, a *app.App) error {
				return a.Lists.Execute(ctx, req)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&kind, "kind", "personal", "personal, liked, likes, official or saved")
	flags.StringVar(&user, "user", "", `user slug (default "me")`)
	flags.StringVar(&list, "list", "", "show the items of this list slug")
	flags.BoolVar(&includeItems, "items", false, "fetch the items of every list")
	flags.StringVar(&itemsType, "type", "all", "item type filter: movies, shows, seasons, episodes, people or all")
	flags.StringVar(&section, "section", "movies", "saved filter section: movies, shows, calendars or search")
	flags.IntVar(&page, "page", 0, "page to fetch")
	flags.IntVar(&limit, "limit", 0, "items per page")
	return cmd
}
