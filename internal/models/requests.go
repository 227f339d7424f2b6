package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultUserSlug addresses the authenticated user
	DefaultUserSlug = "me"

	MinCalendarDays = 1
	MaxCalendarDays = 120
)

// CalendarRequest selects the shows calendar window
type CalendarRequest struct {
	StartDate time.Time
	Days      int
}

// NewCalendarRequest validates the window; the start date keeps only its calendar date
func NewCalendarRequest(startDate time.Time, days int) (CalendarRequest, error) {
	if err := requireTime("calendar request", "start_date", startDate); err != nil {
		return CalendarRequest{}, err
	}
	if days < MinCalendarDays || days > MaxCalendarDays {
		return CalendarRequest{}, invalid("calendar request", "days",
			fmt.Sprintf("must be between %d and %d, got %d", MinCalendarDays, MaxCalendarDays, days))
	}
	y, m, d := startDate.Date()
	return CalendarRequest{StartDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Days: days}, nil
}

// Path returns the calendar resource path
func (r CalendarRequest) Path() string {
	return fmt.Sprintf("calendars/my/shows/%s/%d", r.StartDate.Format("2006-01-02"), r.Days)
}

// WatchlistRequest selects how the watchlist is filtered and sorted
type WatchlistRequest struct {
	Filter WatchlistFilter
	Sort   WatchlistSort
	Order  SortOrder
}

// NewWatchlistRequest fills zero values with all/rank/asc
func NewWatchlistRequest(filter WatchlistFilter, sort WatchlistSort, order SortOrder) WatchlistRequest {
	if filter == "" {
		filter = WatchlistAll
	}
	if sort == "" {
		sort = SortByRank
	}
	if order == "" {
		order = SortAsc
	}
	return WatchlistRequest{Filter: filter, Sort: sort, Order: order}
}

// Path returns the watchlist resource path
func (r WatchlistRequest) Path() string {
	return fmt.Sprintf("sync/watchlist/%s/%s/%s", r.Filter, r.Sort, r.Order)
}

// ListsRequest describes which list collection to fetch
type ListsRequest struct {
	Kind         ListKind
	UserSlug     string
	ListSlug     string
	IncludeItems bool
	ItemsType    ListItemsType
	Section      SavedFilterSection
	Page         int
	Limit        int
}

// ResolveUserSlug returns the requested user or "me"
func (r ListsRequest) ResolveUserSlug() string {
	if s := strings.TrimSpace(r.UserSlug); s != "" {
		return s
	}
	return DefaultUserSlug
}

// TargetListSlug returns the trimmed target slug, or "" when no specific list was requested
func (r ListsRequest) TargetListSlug() string {
	return strings.TrimSpace(r.ListSlug)
}

// ResolveItemsType returns the items filter, defaulting to all
func (r ListsRequest) ResolveItemsType() ListItemsType {
	if r.ItemsType == "" {
		return ListItemsAll
	}
	return r.ItemsType
}

// ResolveSection returns the saved filter section, defaulting to movies
func (r ListsRequest) ResolveSection() SavedFilterSection {
	if r.Section == "" {
		return SectionMovies
	}
	return r.Section
}

// Query returns the paging query parameters; zero values are omitted
func (r ListsRequest) Query() url.Values {
	return pageQuery(r.Page, r.Limit)
}

// ItemsRequest addresses the items of list for this request
func (r ListsRequest) ItemsRequest(userSlug, listSlug string) ListItemsRequest {
	return ListItemsRequest{
		UserSlug: userSlug,
		ListSlug: listSlug,
		Type:     r.ResolveItemsType(),
		Page:     r.Page,
		Limit:    r.Limit,
	}
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// ListItemsRequest addresses the items of one list
type ListItemsRequest struct {
	UserSlug string
	ListSlug string
	Type     ListItemsType
	Page     int
	Limit    int
}

// Path returns the list items resource path
func (r ListItemsRequest) Path() string {
	itemsType := r.Type
	if itemsType == "" {
		itemsType = ListItemsAll
	}
	return fmt.Sprintf("users/%s/lists/%s/items/%s/rank/asc", r.UserSlug, r.ListSlug, itemsType)
}

// Query returns the paging query parameters
func (r ListItemsRequest) Query() url.Values {
	return pageQuery(r.Page, r.Limit)
}

// ListCollectionItem is a list of a collection with the origin it was fetched from
type ListCollectionItem struct {
	List            UserList   `json:"list"`
	Origin          string     `json:"origin,omitempty"`
	OriginTimestamp *time.Time `json:"liked_at,omitempty"`
}

// ListCollectionResult is a page of a list collection
type ListCollectionResult struct {
	Items      []ListCollectionItem
	Pagination *Pagination
}

// ListItemsResult is a page of list items
type ListItemsResult struct {
	Items      []ListItem
	Pagination *Pagination
}

// SavedFiltersResult is a page of saved filters
type SavedFiltersResult struct {
	Filters    []SavedFilter
	Pagination *Pagination
}

// ListItemsGroup pairs a list of the collection with its items
type ListItemsGroup struct {
	List  ListCollectionItem `json:"list"`
	Items []ListItem         `json:"items"`
}

// ListsResponse aggregates everything returned for a lists request
type ListsResponse struct {
	Lists        []ListCollectionItem `json:"lists"`
	ItemGroups   []ListItemsGroup     `json:"item_groups"`
	SavedFilters []SavedFilter        `json:"saved_filters"`
	Pagination   *Pagination          `json:"pagination,omitempty"`
}

// IsEmpty reports whether the response carries no data
func (r ListsResponse) IsEmpty() bool {
	return len(r.Lists) == 0 && len(r.ItemGroups) == 0 && len(r.SavedFilters) == 0
}
