package trakt

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/amaumene/traktmanager/internal/models"
)

// collectionPath maps a list kind to its endpoint and whether it needs a token
func collectionPath(kind models.ListKind, user string) (string, bool) {
	switch kind {
	case models.ListKindLiked:
		return "users/" + user + "/lists/liked", true
	case models.ListKindLikes:
		return "users/" + user + "/likes/lists", true
	case models.ListKindOfficial:
		return "lists/trending/official", false
	default:
		return "users/" + user + "/lists", true
	}
}

// GetLists returns the list collection selected by the request kind
func (c *Client) GetLists(ctx context.Context, req models.ListsRequest) (models.ListCollectionResult, error) {
	path, requiresAuth := collectionPath(req.Kind, req.ResolveUserSlug())
	resp, err := c.doRequest(ctx, request{
		method:       http.MethodGet,
		path:         path,
		query:        req.Query(),
		requiresAuth: requiresAuth,
		name:         "lists/" + string(kindOrPersonal(req.Kind)),
	})
	if err != nil {
		return models.ListCollectionResult{}, fmt.Errorf("failed to get lists: %w", err)
	}

	lists, err := c.mapper.ListCollection(resp.Body, kindOrPersonal(req.Kind))
	if err != nil {
		return models.ListCollectionResult{}, fmt.Errorf("failed to map lists: %w", err)
	}
	return models.ListCollectionResult{Items: lists, Pagination: parsePagination(resp.Header)}, nil
}

// GetSavedFilters returns the user's saved filters for the requested section
func (c *Client) GetSavedFilters(ctx context.Context, req models.ListsRequest) (models.SavedFiltersResult, error) {
	resp, err := c.doRequest(ctx, request{
		method:       http.MethodGet,
		path:         "users/saved_filters/" + string(req.ResolveSection()),
		query:        req.Query(),
		requiresAuth: true,
		name:         "users/saved_filters",
	})
	if err != nil {
		return models.SavedFiltersResult{}, fmt.Errorf("failed to get saved filters: %w", err)
	}

	filters, err := c.mapper.SavedFilters(resp.Body)
	if err != nil {
		return models.SavedFiltersResult{}, fmt.Errorf("failed to map saved filters: %w", err)
	}
	return models.SavedFiltersResult{Filters: filters, Pagination: parsePagination(resp.Header)}, nil
}

// GetListItems returns the items of a list ranked ascending
func (c *Client) GetListItems(ctx context.Context, req models.ListItemsRequest) ([]models.ListItem, error) {
	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   req.Path(),
		query:  req.Query(),
		name:   "users/lists/items",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get items of list %s: %w", req.ListSlug, err)
	}

	items, err := c.mapper.ListItems(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map items of list %s: %w", req.ListSlug, err)
	}
	return items, nil
}

// GetListDetails returns a single list, or nil when it does not exist
func (c *Client) GetListDetails(ctx context.Context, userSlug, listSlug string) (*models.UserList, error) {
	if strings.TrimSpace(userSlug) == "" || strings.TrimSpace(listSlug) == "" {
		return nil, fmt.Errorf("user slug and list slug are required")
	}

	resp, err := c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   "users/" + userSlug + "/lists/" + listSlug,
		name:   "users/lists/details",
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get list %s: %w", listSlug, err)
	}

	if body := strings.TrimSpace(string(resp.Body)); body == "" || body == "null" {
		return nil, nil
	}

	list, err := c.mapper.UserList(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to map list %s: %w", listSlug, err)
	}
	return &list, nil
}

func kindOrPersonal(kind models.ListKind) models.ListKind {
	switch kind {
	case models.ListKindLiked, models.ListKindLikes, models.ListKindOfficial:
		return kind
	default:
		return models.ListKindPersonal
	}
}
