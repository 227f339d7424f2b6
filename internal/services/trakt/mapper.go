package trakt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/traktmanager/internal/metrics"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Mapper converts raw API payloads into validated domain entities. Items that
// cannot be mapped are logged and dropped; they never fail the whole payload.
type Mapper struct {
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

// NewMapper creates a new response mapper
func NewMapper(logger *logrus.Logger, m *metrics.Metrics) *Mapper {
	return &Mapper{logger: logger, metrics: m}
}

// splitArray decodes the top level of a payload into its raw elements.
// An empty or null body is an empty payload.
func splitArray(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: expected a JSON array: %w", err)
	}
	return raw, nil
}

func (m *Mapper) dropped(resource string, raw json.RawMessage, err error) {
	m.metrics.MappingFailure(resource)
	m.logger.WithFields(logrus.Fields{
		"resource": resource,
		"item_id":  gjson.GetBytes(raw, "id").Raw,
	}).WithError(err).Warn("Skipping item that could not be mapped")
}

// CalendarEntries maps a calendar payload. Entries without an air date are skipped silently.
func (m *Mapper) CalendarEntries(body []byte) ([]models.CalendarEntry, error) {
	raw, err := splitArray(body)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CalendarEntry, 0, len(raw))
	for _, element := range raw {
		var dto calendarEntryDTO
		if err := json.Unmarshal(element, &dto); err != nil {
			m.dropped("calendar", element, err)
			continue
		}
		if strings.TrimSpace(dto.FirstAired) == "" {
			m.logger.WithField("show", showTitle(dto.Show)).Debug("Skipping calendar entry without first_aired")
			continue
		}
		entry, err := mapCalendarEntry(dto)
		if err != nil {
			m.dropped("calendar", element, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WatchlistEntries maps a watchlist payload
func (m *Mapper) WatchlistEntries(body []byte) ([]models.WatchlistEntry, error) {
	raw, err := splitArray(body)
	if err != nil {
		return nil, err
	}

	entries := make([]models.WatchlistEntry, 0, len(raw))
	for _, element := range raw {
		entry, err := mapWatchlistEntry(element)
		if err != nil {
			m.dropped("watchlist", element, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListItems maps the items of a list
func (m *Mapper) ListItems(body []byte) ([]models.ListItem, error) {
	raw, err := splitArray(body)
	if err != nil {
		return nil, err
	}

	items := make([]models.ListItem, 0, len(raw))
	for _, element := range raw {
		item, err := mapListItem(element)
		if err != nil {
			m.dropped("list_items", element, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// ListCollection maps a collection of lists. Elements may be a list object or a
// wrapper holding the list under "list" together with "liked_at".
func (m *Mapper) ListCollection(body []byte, kind models.ListKind) ([]models.ListCollectionItem, error) {
	raw, err := splitArray(body)
	if err != nil {
		return nil, err
	}

	origin := kind.Origin()
	lists := make([]models.ListCollectionItem, 0, len(raw))
	for _, element := range raw {
		parsed := gjson.ParseBytes(element)
		listJSON := parsed
		var originTimestamp *time.Time
		if nested := parsed.Get("list"); nested.IsObject() {
			listJSON = nested
			if likedAt := parsed.Get("liked_at"); likedAt.Type == gjson.String {
				if ts, err := parseTimestamp(likedAt.String()); err == nil {
					originTimestamp = &ts
				}
			}
		}
		if !listJSON.IsObject() {
			continue
		}

		list, err := mapUserListJSON([]byte(listJSON.Raw))
		if err != nil {
			m.dropped("lists", json.RawMessage(listJSON.Raw), err)
			continue
		}
		lists = append(lists, models.ListCollectionItem{List: list, Origin: origin, OriginTimestamp: originTimestamp})
	}
	return lists, nil
}

// SavedFilters maps a saved filters payload
func (m *Mapper) SavedFilters(body []byte) ([]models.SavedFilter, error) {
	raw, err := splitArray(body)
	if err != nil {
		return nil, err
	}

	filters := make([]models.SavedFilter, 0, len(raw))
	for _, element := range raw {
		filter, err := mapSavedFilter(element)
		if err != nil {
			m.dropped("saved_filters", element, err)
			continue
		}
		filters = append(filters, filter)
	}
	return filters, nil
}

// UserList maps a single list document
func (m *Mapper) UserList(body []byte) (models.UserList, error) {
	return mapUserListJSON(body)
}

func mapCalendarEntry(dto calendarEntryDTO) (models.CalendarEntry, error) {
	firstAired, err := parseTimestamp(dto.FirstAired)
	if err != nil {
		return models.CalendarEntry{}, fmt.Errorf("first_aired: %w", err)
	}
	if dto.Show == nil {
		return models.CalendarEntry{}, fmt.Errorf("calendar entry is missing show payload")
	}
	if dto.Episode == nil {
		return models.CalendarEntry{}, fmt.Errorf("calendar entry is missing episode payload")
	}
	show, err := mapShow(dto.Show)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	episode, err := mapEpisode(dto.Episode)
	if err != nil {
		return models.CalendarEntry{}, err
	}
	return models.NewCalendarEntry(firstAired, show, episode)
}

type itemFields struct {
	itemType models.ItemType
	listedAt time.Time
	payload  models.ItemPayload
	dto      itemDTO
}

// decodeItem performs the checks shared by list items and watchlist entries
func decodeItem(element json.RawMessage) (itemFields, error) {
	var dto itemDTO
	if err := json.Unmarshal(element, &dto); err != nil {
		return itemFields{}, err
	}
	if strings.TrimSpace(dto.ListedAt) == "" {
		return itemFields{}, fmt.Errorf("item is missing listed_at")
	}
	listedAt, err := parseTimestamp(dto.ListedAt)
	if err != nil {
		return itemFields{}, fmt.Errorf("listed_at: %w", err)
	}
	itemType, err := models.ParseItemType(dto.Type)
	if err != nil {
		return itemFields{}, err
	}
	payload, err := mapPayload(itemType, dto)
	if err != nil {
		return itemFields{}, err
	}
	return itemFields{itemType: itemType, listedAt: listedAt, payload: payload, dto: dto}, nil
}

func mapWatchlistEntry(element json.RawMessage) (models.WatchlistEntry, error) {
	f, err := decodeItem(element)
	if err != nil {
		return models.WatchlistEntry{}, err
	}
	return models.NewWatchlistEntry(f.dto.Rank, f.dto.ID, f.listedAt, f.itemType, f.payload, f.dto.Notes)
}

func mapListItem(element json.RawMessage) (models.ListItem, error) {
	f, err := decodeItem(element)
	if err != nil {
		return models.ListItem{}, err
	}
	return models.NewListItem(f.dto.Rank, f.dto.ID, f.listedAt, f.itemType, f.payload, f.dto.Notes)
}

// mapPayload maps only the nested objects the item type needs
func mapPayload(itemType models.ItemType, dto itemDTO) (models.ItemPayload, error) {
	var p models.ItemPayload
	needShow := itemType == models.ItemTypeShow || itemType == models.ItemTypeSeason || itemType == models.ItemTypeEpisode

	if itemType == models.ItemTypeMovie && dto.Movie != nil {
		movie, err := mapMovie(dto.Movie)
		if err != nil {
			return p, err
		}
		p.Movie = &movie
	}
	if needShow && dto.Show != nil {
		show, err := mapShow(dto.Show)
		if err != nil {
			return p, err
		}
		p.Show = &show
	}
	if itemType == models.ItemTypeSeason && dto.Season != nil {
		seasonIDs, err := models.NewSeasonIDs(deref(dto.Season.IDs.Trakt), deref(dto.Season.IDs.TVDB), deref(dto.Season.IDs.TMDB))
		if err != nil {
			return p, err
		}
		season, err := models.NewSeasonSummary(dto.Season.Number, seasonIDs)
		if err != nil {
			return p, err
		}
		p.Season = &season
	}
	if itemType == models.ItemTypeEpisode && dto.Episode != nil {
		episode, err := mapEpisode(dto.Episode)
		if err != nil {
			return p, err
		}
		p.Episode = &episode
	}
	if itemType == models.ItemTypePerson && dto.Person != nil {
		ids, err := mapTraktIDs(dto.Person.IDs, "person")
		if err != nil {
			return p, err
		}
		person, err := models.NewPerson(dto.Person.Name, ids)
		if err != nil {
			return p, err
		}
		p.Person = &person
	}
	return p, nil
}

func mapShow(dto *showDTO) (models.Show, error) {
	ids, err := mapTraktIDs(dto.IDs, "show")
	if err != nil {
		return models.Show{}, err
	}
	return models.NewShow(dto.Title, deref(dto.Year), ids)
}

func mapMovie(dto *movieDTO) (models.Movie, error) {
	ids, err := mapTraktIDs(dto.IDs, "movie")
	if err != nil {
		return models.Movie{}, err
	}
	return models.NewMovie(dto.Title, deref(dto.Year), ids)
}

func mapEpisode(dto *episodeDTO) (models.Episode, error) {
	ids, err := mapTraktIDs(dto.IDs, "episode")
	if err != nil {
		return models.Episode{}, err
	}
	return models.NewEpisode(dto.Season, dto.Number, dto.Title, ids)
}

// mapTraktIDs requires a positive trakt id and synthesizes "{category}-{id}" when the slug is missing
func mapTraktIDs(dto idsDTO, category string) (models.TraktIDs, error) {
	id := deref(dto.Trakt)
	if id <= 0 {
		return models.TraktIDs{}, fmt.Errorf("%s ids must include a positive trakt id", category)
	}
	slug := strings.TrimSpace(dto.Slug)
	if slug == "" {
		slug = category + "-" + strconv.Itoa(id)
	}
	return models.NewTraktIDs(id, slug, dto.IMDB, deref(dto.TMDB))
}

// mapListIDs falls back to the stringified trakt id when the slug is missing
func mapListIDs(dto listIDsDTO) (models.ListIDs, error) {
	id := deref(dto.Trakt)
	if id <= 0 {
		return models.ListIDs{}, fmt.Errorf("list ids must include a positive trakt id")
	}
	slug := strings.TrimSpace(dto.Slug)
	if slug == "" {
		slug = strconv.Itoa(id)
	}
	return models.NewListIDs(id, slug)
}

func mapListUser(dto *listUserDTO) (models.ListUser, error) {
	slug := dto.Username
	if dto.IDs != nil && strings.TrimSpace(dto.IDs.Slug) != "" {
		slug = dto.IDs.Slug
	}
	return models.NewListUser(dto.Username, slug, dto.Name, dto.VIP, dto.VIPEP, dto.Private)
}

func mapUserListJSON(data []byte) (models.UserList, error) {
	var dto userListDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return models.UserList{}, err
	}
	return mapUserList(dto)
}

func mapUserList(dto userListDTO) (models.UserList, error) {
	ids, err := mapListIDs(dto.IDs)
	if err != nil {
		return models.UserList{}, err
	}
	createdAt, err := parseTimestamp(dto.CreatedAt)
	if err != nil {
		return models.UserList{}, fmt.Errorf("created_at: %w", err)
	}
	updatedAt, err := parseTimestamp(dto.UpdatedAt)
	if err != nil {
		return models.UserList{}, fmt.Errorf("updated_at: %w", err)
	}

	var owner *models.ListUser
	if dto.User != nil {
		user, err := mapListUser(dto.User)
		if err != nil {
			return models.UserList{}, err
		}
		owner = &user
	}

	return models.NewUserList(models.UserListParams{
		Name:           dto.Name,
		Description:    dto.Description,
		Privacy:        models.ParseListPrivacy(dto.Privacy),
		ShareLink:      parseShareLink(dto.ShareLink),
		Type:           dto.Type,
		DisplayNumbers: dto.DisplayNumbers,
		AllowComments:  dto.AllowComments,
		SortBy:         dto.SortBy,
		SortOrder:      models.ParseSortOrder(dto.SortHow),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		ItemCount:      dto.ItemCount,
		CommentCount:   dto.CommentCount,
		Likes:          dto.Likes,
		IDs:            ids,
		Owner:          owner,
	})
}

// parseShareLink keeps only absolute URLs
func parseShareLink(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}

func mapSavedFilter(element json.RawMessage) (models.SavedFilter, error) {
	var dto savedFilterDTO
	if err := json.Unmarshal(element, &dto); err != nil {
		return models.SavedFilter{}, err
	}
	section, err := models.ParseSavedFilterSection(dto.Section)
	if err != nil {
		return models.SavedFilter{}, err
	}
	updatedAt, err := parseTimestamp(dto.UpdatedAt)
	if err != nil {
		return models.SavedFilter{}, fmt.Errorf("updated_at: %w", err)
	}
	return models.NewSavedFilter(dto.Rank, dto.ID, section, dto.Name, dto.Path, dto.Query, updatedAt)
}

func showTitle(dto *showDTO) string {
	if dto == nil {
		return ""
	}
	return dto.Title
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
