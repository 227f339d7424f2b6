package models

import "fmt"

const (
	minMovieYear = 1888
	minShowYear  = 1900
)

// Show is a TV show. Year is zero when unknown.
type Show struct {
	Title string   `json:"title"`
	Year  int      `json:"year,omitempty"`
	IDs   TraktIDs `json:"ids"`
}

// NewShow validates and builds a show
func NewShow(title string, year int, ids TraktIDs) (Show, error) {
	if err := requireText("show", "title", title); err != nil {
		return Show{}, err
	}
	if year != 0 && year < minShowYear {
		return Show{}, invalid("show", "year", fmt.Sprintf("must be absent or at least %d, got %d", minShowYear, year))
	}
	return Show{Title: title, Year: year, IDs: ids}, nil
}

func (s Show) String() string {
	if s.Year > 0 {
		return fmt.Sprintf("%s (%d)", s.Title, s.Year)
	}
	return s.Title
}

// Movie is a film. Year is zero when unknown.
type Movie struct {
	Title string   `json:"title"`
	Year  int      `json:"year,omitempty"`
	IDs   TraktIDs `json:"ids"`
}

// NewMovie validates and builds a movie
func NewMovie(title string, year int, ids TraktIDs) (Movie, error) {
	if err := requireText("movie", "title", title); err != nil {
		return Movie{}, err
	}
	if year != 0 && year < minMovieYear {
		return Movie{}, invalid("movie", "year", fmt.Sprintf("must be absent or at least %d, got %d", minMovieYear, year))
	}
	return Movie{Title: title, Year: year, IDs: ids}, nil
}

func (m Movie) String() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	return m.Title
}

// Episode is a single episode of a show
type Episode struct {
	Season int      `json:"season"`
	Number int      `json:"number"`
	Title  string   `json:"title"`
	IDs    TraktIDs `json:"ids"`
}

// NewEpisode validates and builds an episode. Season 0 holds specials.
func NewEpisode(season, number int, title string, ids TraktIDs) (Episode, error) {
	if err := requireNonNegative("episode", "season", season); err != nil {
		return Episode{}, err
	}
	if err := requirePositive("episode", "number", number); err != nil {
		return Episode{}, err
	}
	if err := requireText("episode", "title", title); err != nil {
		return Episode{}, err
	}
	return Episode{Season: season, Number: number, Title: title, IDs: ids}, nil
}

// Code returns the SxxEyy form of the episode
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

// Person is a cast or crew member
type Person struct {
	Name string   `json:"name"`
	IDs  TraktIDs `json:"ids"`
}

// NewPerson validates and builds a person
func NewPerson(name string, ids TraktIDs) (Person, error) {
	if err := requireText("person", "name", name); err != nil {
		return Person{}, err
	}
	return Person{Name: name, IDs: ids}, nil
}

// SeasonSummary is the season reference embedded in list and watchlist items
type SeasonSummary struct {
	Number int       `json:"number"`
	IDs    SeasonIDs `json:"ids"`
}

// NewSeasonSummary validates and builds a season reference
func NewSeasonSummary(number int, ids SeasonIDs) (SeasonSummary, error) {
	if err := requireNonNegative("season", "number", number); err != nil {
		return SeasonSummary{}, err
	}
	return SeasonSummary{Number: number, IDs: ids}, nil
}
