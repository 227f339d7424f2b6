package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Content is the payload of a list item or watchlist entry. It is one of
// MovieContent, ShowContent, SeasonContent, EpisodeContent or PersonContent.
type Content interface {
	Type() ItemType
	Label() string
	payload() ItemPayload
}

type MovieContent struct{ Movie Movie }

type ShowContent struct{ Show Show }

type SeasonContent struct {
	Show   Show
	Season SeasonSummary
}

type EpisodeContent struct {
	Show    Show
	Episode Episode
}

type PersonContent struct{ Person Person }

func (MovieContent) Type() ItemType   { return ItemTypeMovie }
func (ShowContent) Type() ItemType    { return ItemTypeShow }
func (SeasonContent) Type() ItemType  { return ItemTypeSeason }
func (EpisodeContent) Type() ItemType { return ItemTypeEpisode }
func (PersonContent) Type() ItemType  { return ItemTypePerson }

func (c MovieContent) Label() string { return c.Movie.String() }
func (c ShowContent) Label() string  { return c.Show.String() }
func (c SeasonContent) Label() string {
	return c.Show.Title + " - Season " + strconv.Itoa(c.Season.Number)
}
func (c EpisodeContent) Label() string {
	return c.Show.Title + " " + c.Episode.Code() + " - " + c.Episode.Title
}
func (c PersonContent) Label() string { return c.Person.Name }

func (c MovieContent) payload() ItemPayload { return ItemPayload{Movie: &c.Movie} }
func (c ShowContent) payload() ItemPayload  { return ItemPayload{Show: &c.Show} }
func (c SeasonContent) payload() ItemPayload {
	return ItemPayload{Show: &c.Show, Season: &c.Season}
}
func (c EpisodeContent) payload() ItemPayload {
	return ItemPayload{Show: &c.Show, Episode: &c.Episode}
}
func (c PersonContent) payload() ItemPayload { return ItemPayload{Person: &c.Person} }

// ItemPayload is the set of optional nested objects an upstream item may carry.
// Only the objects required by the item type are kept once validated.
type ItemPayload struct {
	Movie   *Movie         `json:"movie,omitempty"`
	Show    *Show          `json:"show,omitempty"`
	Season  *SeasonSummary `json:"season,omitempty"`
	Episode *Episode       `json:"episode,omitempty"`
	Person  *Person        `json:"person,omitempty"`
}

func newContent(entity string, itemType ItemType, p ItemPayload) (Content, error) {
	switch itemType {
	case ItemTypeMovie:
		if p.Movie == nil {
			return nil, invalid(entity, "movie", "is required for movie items")
		}
		return MovieContent{Movie: *p.Movie}, nil
	case ItemTypeShow:
		if p.Show == nil {
			return nil, invalid(entity, "show", "is required for show items")
		}
		return ShowContent{Show: *p.Show}, nil
	case ItemTypeSeason:
		if p.Season == nil {
			return nil, invalid(entity, "season", "is required for season items")
		}
		if p.Show == nil {
			return nil, invalid(entity, "show", "is required for season items")
		}
		return SeasonContent{Show: *p.Show, Season: *p.Season}, nil
	case ItemTypeEpisode:
		if p.Episode == nil {
			return nil, invalid(entity, "episode", "is required for episode items")
		}
		if p.Show == nil {
			return nil, invalid(entity, "show", "is required for episode items")
		}
		return EpisodeContent{Show: *p.Show, Episode: *p.Episode}, nil
	case ItemTypePerson:
		if p.Person == nil {
			return nil, invalid(entity, "person", "is required for person items")
		}
		return PersonContent{Person: *p.Person}, nil
	default:
		return nil, invalid(entity, "type", "unknown item type "+string(itemType))
	}
}

// ListItem is an entry of a user list
type ListItem struct {
	Rank     int
	ID       int
	ListedAt time.Time
	Notes    string
	Content  Content
}

// NewListItem validates the item and that p carries the objects required by itemType
func NewListItem(rank, id int, listedAt time.Time, itemType ItemType, p ItemPayload, notes string) (ListItem, error) {
	const entity = "list item"
	if err := requirePositive(entity, "rank", rank); err != nil {
		return ListItem{}, err
	}
	if err := requirePositive(entity, "id", id); err != nil {
		return ListItem{}, err
	}
	if err := requireTime(entity, "listed_at", listedAt); err != nil {
		return ListItem{}, err
	}
	content, err := newContent(entity, itemType, p)
	if err != nil {
		return ListItem{}, err
	}
	return ListItem{Rank: rank, ID: id, ListedAt: listedAt, Notes: optionalText(notes), Content: content}, nil
}

// Type returns the tag of the item payload
func (i ListItem) Type() ItemType { return i.Content.Type() }

func (i ListItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(newItemDocument(i.Rank, i.ID, i.ListedAt, i.Notes, i.Content))
}

// WatchlistEntry is an entry of the user's watchlist. People cannot be watchlisted.
type WatchlistEntry struct {
	Rank     int
	ID       int
	ListedAt time.Time
	Notes    string
	Content  Content
}

// NewWatchlistEntry validates the entry and that p carries the objects required by itemType
func NewWatchlistEntry(rank, id int, listedAt time.Time, itemType ItemType, p ItemPayload, notes string) (WatchlistEntry, error) {
	const entity = "watchlist entry"
	if err := requirePositive(entity, "rank", rank); err != nil {
		return WatchlistEntry{}, err
	}
	if err := requirePositive(entity, "id", id); err != nil {
		return WatchlistEntry{}, err
	}
	if err := requireTime(entity, "listed_at", listedAt); err != nil {
		return WatchlistEntry{}, err
	}
	if itemType == ItemTypePerson {
		return WatchlistEntry{}, invalid(entity, "type", "person entries are not supported")
	}
	content, err := newContent(entity, itemType, p)
	if err != nil {
		return WatchlistEntry{}, err
	}
	return WatchlistEntry{Rank: rank, ID: id, ListedAt: listedAt, Notes: optionalText(notes), Content: content}, nil
}

// Type returns the tag of the entry payload
func (e WatchlistEntry) Type() ItemType { return e.Content.Type() }

func (e WatchlistEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(newItemDocument(e.Rank, e.ID, e.ListedAt, e.Notes, e.Content))
}

type itemDocument struct {
	Rank     int       `json:"rank"`
	ID       int       `json:"id"`
	ListedAt time.Time `json:"listed_at"`
	Notes    string    `json:"notes,omitempty"`
	Type     ItemType  `json:"type"`
	ItemPayload
}

func newItemDocument(rank, id int, listedAt time.Time, notes string, c Content) itemDocument {
	doc := itemDocument{Rank: rank, ID: id, ListedAt: listedAt, Notes: notes}
	if c != nil {
		doc.Type = c.Type()
		doc.ItemPayload = c.payload()
	}
	return doc
}
