package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// normalizeTag trims and case-folds an upstream enum value. Casers are not
// safe for concurrent use, so one is built per call.
func normalizeTag(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// EqualFold reports whether two slugs match under Unicode case folding
func EqualFold(a, b string) bool {
	return normalizeTag(a) == normalizeTag(b)
}

// ItemType tags the payload carried by a list or watchlist item
type ItemType string

const (
	ItemTypeMovie   ItemType = "movie"
	ItemTypeShow    ItemType = "show"
	ItemTypeSeason  ItemType = "season"
	ItemTypeEpisode ItemType = "episode"
	ItemTypePerson  ItemType = "person"
)

// ParseItemType accepts singular and plural tags in any case ("Movies", "episode", "people")
func ParseItemType(value string) (ItemType, error) {
	switch normalizeTag(value) {
	case "movie", "movies":
		return ItemTypeMovie, nil
	case "show", "shows":
		return ItemTypeShow, nil
	case "season", "seasons":
		return ItemTypeSeason, nil
	case "episode", "episodes":
		return ItemTypeEpisode, nil
	case "person", "people", "persons":
		return ItemTypePerson, nil
	case "":
		return "", invalid("item", "type", "is required")
	default:
		return "", invalid("item", "type", fmt.Sprintf("%q is not supported", value))
	}
}

// ListPrivacy is the visibility of a user list
type ListPrivacy string

const (
	PrivacyPublic  ListPrivacy = "public"
	PrivacyPrivate ListPrivacy = "private"
	PrivacyLink    ListPrivacy = "link"
	PrivacyFriends ListPrivacy = "friends"
)

// ParseListPrivacy never fails: unknown values are treated as public
func ParseListPrivacy(value string) ListPrivacy {
	switch normalizeTag(value) {
	case "private":
		return PrivacyPrivate
	case "link":
		return PrivacyLink
	case "friends":
		return PrivacyFriends
	default:
		return PrivacyPublic
	}
}

// SortOrder is an ascending/descending flag
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortDesc for "desc" and SortAsc for anything else
func ParseSortOrder(value string) SortOrder {
	if normalizeTag(value) == "desc" {
		return SortDesc
	}
	return SortAsc
}

// SavedFilterSection is the area of the site a saved filter applies to
type SavedFilterSection string

const (
	SectionMovies    SavedFilterSection = "movies"
	SectionShows     SavedFilterSection = "shows"
	SectionCalendars SavedFilterSection = "calendars"
	SectionSearch    SavedFilterSection = "search"
)

// ParseSavedFilterSection fails on unknown sections
func ParseSavedFilterSection(value string) (SavedFilterSection, error) {
	switch normalizeTag(value) {
	case "movies":
		return SectionMovies, nil
	case "shows":
		return SectionShows, nil
	case "calendars":
		return SectionCalendars, nil
	case "search":
		return SectionSearch, nil
	default:
		return "", invalid("saved filter", "section", fmt.Sprintf("%q is not supported", value))
	}
}

// ListKind selects which collection of lists is fetched
type ListKind string

const (
	ListKindPersonal ListKind = "personal"
	ListKindLiked    ListKind = "liked"
	ListKindLikes    ListKind = "likes"
	ListKindOfficial ListKind = "official"
	ListKindSaved    ListKind = "saved"
)

// ParseListKind maps a user supplied kind; unknown values fall back to personal
func ParseListKind(value string) ListKind {
	switch normalizeTag(value) {
	case "liked":
		return ListKindLiked
	case "likes":
		return ListKindLikes
	case "official", "trending":
		return ListKindOfficial
	case "saved", "saved-filters", "filters":
		return ListKindSaved
	default:
		return ListKindPersonal
	}
}

// Origin returns the label attached to lists fetched for this kind
func (k ListKind) Origin() string {
	switch k {
	case ListKindPersonal:
		return "Personal"
	case ListKindLiked:
		return "Liked"
	case ListKindLikes:
		return "Likes"
	case ListKindOfficial:
		return "Official"
	default:
		return ""
	}
}

// ListItemsType filters the items returned for a list
type ListItemsType string

const (
	ListItemsAll      ListItemsType = "all"
	ListItemsMovies   ListItemsType = "movies"
	ListItemsShows    ListItemsType = "shows"
	ListItemsSeasons  ListItemsType = "seasons"
	ListItemsEpisodes ListItemsType = "episodes"
	ListItemsPeople   ListItemsType = "people"
)

// ParseListItemsType maps a filter value; unknown values mean all
func ParseListItemsType(value string) ListItemsType {
	switch normalizeTag(value) {
	case "movie", "movies":
		return ListItemsMovies
	case "show", "shows":
		return ListItemsShows
	case "season", "seasons":
		return ListItemsSeasons
	case "episode", "episodes":
		return ListItemsEpisodes
	case "person", "people":
		return ListItemsPeople
	default:
		return ListItemsAll
	}
}

// WatchlistFilter filters watchlist entries by type
type WatchlistFilter string

const (
	WatchlistAll      WatchlistFilter = "all"
	WatchlistMovies   WatchlistFilter = "movies"
	WatchlistShows    WatchlistFilter = "shows"
	WatchlistSeasons  WatchlistFilter = "seasons"
	WatchlistEpisodes WatchlistFilter = "episodes"
)

// ParseWatchlistFilter maps a filter value; unknown values mean all
func ParseWatchlistFilter(value string) WatchlistFilter {
	switch normalizeTag(value) {
	case "movie", "movies":
		return WatchlistMovies
	case "show", "shows":
		return WatchlistShows
	case "season", "seasons":
		return WatchlistSeasons
	case "episode", "episodes":
		return WatchlistEpisodes
	default:
		return WatchlistAll
	}
}

// WatchlistSort is the field the watchlist is sorted by
type WatchlistSort string

const (
	SortByRank          WatchlistSort = "rank"
	SortByAdded         WatchlistSort = "added"
	SortByTitle         WatchlistSort = "title"
	SortByReleased      WatchlistSort = "released"
	SortByRuntime       WatchlistSort = "runtime"
	SortByPopularity    WatchlistSort = "popularity"
	SortByRandom        WatchlistSort = "random"
	SortByPercentage    WatchlistSort = "percentage"
	SortByIMDBRating    WatchlistSort = "imdb_rating"
	SortByTMDBRating    WatchlistSort = "tmdb_rating"
	SortByRTTomatometer WatchlistSort = "rt_tomatometer"
	SortByRTAudience    WatchlistSort = "rt_audience"
	SortByMetascore     WatchlistSort = "metascore"
	SortByVotes         WatchlistSort = "votes"
	SortByIMDBVotes     WatchlistSort = "imdb_votes"
	SortByTMDBVotes     WatchlistSort = "tmdb_votes"
	SortByMyRating      WatchlistSort = "my_rating"
	SortByWatched       WatchlistSort = "watched"
	SortByCollected     WatchlistSort = "collected"
)

var watchlistSorts = []WatchlistSort{
	SortByRank, SortByAdded, SortByTitle, SortByReleased, SortByRuntime, SortByPopularity,
	SortByRandom, SortByPercentage, SortByIMDBRating, SortByTMDBRating, SortByRTTomatometer,
	SortByRTAudience, SortByMetascore, SortByVotes, SortByIMDBVotes, SortByTMDBVotes,
	SortByMyRating, SortByWatched, SortByCollected,
}

// ParseWatchlistSort maps a sort field; dashes are accepted for underscores
// and unknown values mean rank
func ParseWatchlistSort(value string) WatchlistSort {
	normalized := strings.ReplaceAll(normalizeTag(value), "-", "_")
	for _, s := range watchlistSorts {
		if string(s) == normalized {
			return s
		}
	}
	return SortByRank
}
