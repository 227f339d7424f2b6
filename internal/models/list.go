package models

import (
	"encoding/json"
	"net/url"
	"time"
)

// ListUser is the owner of a list
type ListUser struct {
	Username string `json:"username"`
	Slug     string `json:"slug"`
	Name     string `json:"name,omitempty"`
	VIP      bool   `json:"vip"`
	VIPEP    bool   `json:"vip_ep"`
	Private  bool   `json:"private"`
}

// NewListUser validates a list owner; a blank display name is dropped
func NewListUser(username, slug, name string, vip, vipEP, private bool) (ListUser, error) {
	if err := requireText("list user", "username", username); err != nil {
		return ListUser{}, err
	}
	if err := requireText("list user", "slug", slug); err != nil {
		return ListUser{}, err
	}
	return ListUser{
		Username: username,
		Slug:     slug,
		Name:     optionalText(name),
		VIP:      vip,
		VIPEP:    vipEP,
		Private:  private,
	}, nil
}

// UserList describes a list without its items
type UserList struct {
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Privacy        ListPrivacy `json:"privacy"`
	ShareLink      *url.URL    `json:"-"`
	Type           string      `json:"type"`
	DisplayNumbers bool        `json:"display_numbers"`
	AllowComments  bool        `json:"allow_comments"`
	SortBy         string      `json:"sort_by"`
	SortOrder      SortOrder   `json:"sort_how"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	ItemCount      int         `json:"item_count"`
	CommentCount   int         `json:"comment_count"`
	Likes          int         `json:"likes"`
	IDs            ListIDs     `json:"ids"`
	Owner          *ListUser   `json:"user,omitempty"`
}

// UserListParams groups the fields used to build a UserList
type UserListParams struct {
	Name           string
	Description    string
	Privacy        ListPrivacy
	ShareLink      *url.URL
	Type           string
	DisplayNumbers bool
	AllowComments  bool
	SortBy         string
	SortOrder      SortOrder
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ItemCount      int
	CommentCount   int
	Likes          int
	IDs            ListIDs
	Owner          *ListUser
}

// NewUserList validates the list fields. A blank description becomes empty.
func NewUserList(p UserListParams) (UserList, error) {
	const entity = "user list"
	checks := []error{
		requireText(entity, "name", p.Name),
		requireText(entity, "type", p.Type),
		requireText(entity, "sort_by", p.SortBy),
		requireTime(entity, "created_at", p.CreatedAt),
		requireTime(entity, "updated_at", p.UpdatedAt),
		requireNonNegative(entity, "item_count", p.ItemCount),
		requireNonNegative(entity, "comment_count", p.CommentCount),
		requireNonNegative(entity, "likes", p.Likes),
		requirePositive(entity, "ids.trakt", p.IDs.Trakt),
		requireText(entity, "ids.slug", p.IDs.Slug),
	}
	for _, err := range checks {
		if err != nil {
			return UserList{}, err
		}
	}

	privacy := p.Privacy
	if privacy == "" {
		privacy = PrivacyPublic
	}
	order := p.SortOrder
	if order == "" {
		order = SortAsc
	}

	var owner *ListUser
	if p.Owner != nil {
		o := *p.Owner
		owner = &o
	}

	return UserList{
		Name:           p.Name,
		Description:    optionalText(p.Description),
		Privacy:        privacy,
		ShareLink:      p.ShareLink,
		Type:           p.Type,
		DisplayNumbers: p.DisplayNumbers,
		AllowComments:  p.AllowComments,
		SortBy:         p.SortBy,
		SortOrder:      order,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		ItemCount:      p.ItemCount,
		CommentCount:   p.CommentCount,
		Likes:          p.Likes,
		IDs:            p.IDs,
		Owner:          owner,
	}, nil
}

func (l UserList) MarshalJSON() ([]byte, error) {
	type alias UserList
	var share string
	if l.ShareLink != nil {
		share = l.ShareLink.String()
	}
	return json.Marshal(struct {
		alias
		ShareLink string `json:"share_link,omitempty"`
	}{alias: alias(l), ShareLink: share})
}

// SavedFilter is a filter saved by the authenticated user
type SavedFilter struct {
	Rank      int                `json:"rank"`
	ID        int                `json:"id"`
	Section   SavedFilterSection `json:"section"`
	Name      string             `json:"name"`
	Path      string             `json:"path"`
	Query     string             `json:"query"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewSavedFilter validates and builds a saved filter
func NewSavedFilter(rank, id int, section SavedFilterSection, name, path, query string, updatedAt time.Time) (SavedFilter, error) {
	const entity = "saved filter"
	checks := []error{
		requirePositive(entity, "rank", rank),
		requirePositive(entity, "id", id),
		requireText(entity, "section", string(section)),
		requireText(entity, "name", name),
		requireText(entity, "path", path),
		requireText(entity, "query", query),
		requireTime(entity, "updated_at", updatedAt),
	}
	for _, err := range checks {
		if err != nil {
			return SavedFilter{}, err
		}
	}
	return SavedFilter{
		Rank:      rank,
		ID:        id,
		Section:   section,
		Name:      name,
		Path:      path,
		Query:     query,
		UpdatedAt: updatedAt,
	}, nil
}

// Pagination is the paging metadata returned in X-Pagination-* headers
type Pagination struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	PageCount int `json:"page_count"`
	ItemCount int `json:"item_count"`
}

// NewPagination validates paging metadata
func NewPagination(page, limit, pageCount, itemCount int) (Pagination, error) {
	const entity = "pagination"
	checks := []error{
		requirePositive(entity, "page", page),
		requirePositive(entity, "limit", limit),
		requireNonNegative(entity, "page_count", pageCount),
		requireNonNegative(entity, "item_count", itemCount),
	}
	for _, err := range checks {
		if err != nil {
			return Pagination{}, err
		}
	}
	return Pagination{Page: page, Limit: limit, PageCount: pageCount, ItemCount: itemCount}, nil
}
