package models

import "fmt"

// TraktIDs is the identifier set attached to shows, movies, episodes and people.
// Trakt and Slug are always present; IMDB and TMDB are empty/zero when unknown.
type TraktIDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
	IMDB  string `json:"imdb,omitempty"`
	TMDB  int    `json:"tmdb,omitempty"`
}

// NewTraktIDs validates and builds an identifier set
func NewTraktIDs(trakt int, slug, imdb string, tmdb int) (TraktIDs, error) {
	if err := requirePositive("trakt ids", "trakt", trakt); err != nil {
		return TraktIDs{}, err
	}
	if err := requireText("trakt ids", "slug", slug); err != nil {
		return TraktIDs{}, err
	}
	if tmdb < 0 {
		return TraktIDs{}, invalid("trakt ids", "tmdb", fmt.Sprintf("must be positive when provided, got %d", tmdb))
	}
	return TraktIDs{Trakt: trakt, Slug: slug, IMDB: optionalText(imdb), TMDB: tmdb}, nil
}

// HasIMDB reports whether an IMDB id is known
func (ids TraktIDs) HasIMDB() bool { return ids.IMDB != "" }

// HasTMDB reports whether a TMDB id is known
func (ids TraktIDs) HasTMDB() bool { return ids.TMDB > 0 }

// SeasonIDs holds the identifiers of a season. Any of them may be missing
// but at least one is always set.
type SeasonIDs struct {
	Trakt int `json:"trakt,omitempty"`
	TVDB  int `json:"tvdb,omitempty"`
	TMDB  int `json:"tmdb,omitempty"`
}

// NewSeasonIDs validates a season identifier set; zero means absent
func NewSeasonIDs(trakt, tvdb, tmdb int) (SeasonIDs, error) {
	fields := []struct {
		name  string
		value int
	}{{"trakt", trakt}, {"tvdb", tvdb}, {"tmdb", tmdb}}
	for _, f := range fields {
		if f.value < 0 {
			return SeasonIDs{}, invalid("season ids", f.name, fmt.Sprintf("must be positive when provided, got %d", f.value))
		}
	}
	if trakt == 0 && tvdb == 0 && tmdb == 0 {
		return SeasonIDs{}, invalid("season ids", "trakt", "at least one season identifier must be provided")
	}
	return SeasonIDs{Trakt: trakt, TVDB: tvdb, TMDB: tmdb}, nil
}

// ListIDs identifies a user list
type ListIDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
}

// NewListIDs validates a list identifier set
func NewListIDs(trakt int, slug string) (ListIDs, error) {
	if err := requirePositive("list ids", "trakt", trakt); err != nil {
		return ListIDs{}, err
	}
	if err := requireText("list ids", "slug", slug); err != nil {
		return ListIDs{}, err
	}
	return ListIDs{Trakt: trakt, Slug: slug}, nil
}
