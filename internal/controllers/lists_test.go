package controllers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amaumene/traktmanager/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var listTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func userList(id int, slug string, owner string) models.UserList {
	l := models.UserList{
		Name:      slug,
		Privacy:   models.PrivacyPublic,
		Type:      "personal",
		SortBy:    "rank",
		SortOrder: models.SortAsc,
		CreatedAt: listTime,
		UpdatedAt: listTime,
		IDs:       models.ListIDs{Trakt: id, Slug: slug},
	}
	if owner != "" {
		l.Owner = &models.ListUser{Username: owner, Slug: owner}
	}
	return l
}

func collectionItem(id int, slug string) models.ListCollectionItem {
	return models.ListCollectionItem{List: userList(id, slug, ""), Origin: "Personal"}
}

func movieItem(rank int, title string) models.ListItem {
	return models.ListItem{
		Rank:     rank,
		ID:       rank,
		ListedAt: listTime,
		Content:  models.MovieContent{Movie: models.Movie{Title: title, IDs: models.TraktIDs{Trakt: rank, Slug: title}}},
	}
}

func newListsTest(t *testing.T, workers int) (*ListsController, *MockListsClient, *test.Hook) {
	t.Helper()
	client := NewMockListsClient(gomock.NewController(t))
	logger, hook := test.NewNullLogger()
	return NewListsController(client, workers, logger), client, hook
}

func TestGetListsSavedUsesOnlySavedFilters(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	filters := []models.SavedFilter{{Rank: 1, ID: 7, Section: models.SectionShows, Name: "Top", Path: "/shows", Query: "q", UpdatedAt: listTime}}
	page := &models.Pagination{Page: 1, Limit: 10, PageCount: 1, ItemCount: 1}
	req := models.ListsRequest{Kind: models.ListKindSaved, Section: models.SectionShows}
	client.EXPECT().GetSavedFilters(gomock.Any(), req).Return(models.SavedFiltersResult{Filters: filters, Pagination: page}, nil)

	resp, err := c.GetLists(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, filters, resp.SavedFilters)
	assert.Empty(t, resp.Lists)
	assert.Empty(t, resp.ItemGroups)
	assert.Equal(t, page, resp.Pagination)
}

func TestGetListsWithoutItems(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	lists := []models.ListCollectionItem{collectionItem(1, "a"), collectionItem(2, "b")}
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: lists}, nil)

	resp, err := c.GetLists(context.Background(), models.ListsRequest{Kind: models.ListKindPersonal})
	require.NoError(t, err)
	assert.Equal(t, lists, resp.Lists)
	assert.NotNil(t, resp.ItemGroups)
	assert.Empty(t, resp.ItemGroups)
	assert.NotNil(t, resp.SavedFilters)
}

func TestGetListsPropagatesCollectionError(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	boom := errors.New("boom")
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{}, boom)

	_, err := c.GetLists(context.Background(), models.ListsRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestGetListsTargetInCollection(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	lists := []models.ListCollectionItem{collectionItem(1, "favourites"), collectionItem(2, "to-watch")}
	items := []models.ListItem{movieItem(1, "heat")}
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: lists}, nil)
	client.EXPECT().GetListDetails(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	client.EXPECT().GetListItems(gomock.Any(), models.ListItemsRequest{
		UserSlug: "alice", ListSlug: "to-watch", Type: models.ListItemsMovies,
	}).Return(items, nil)

	resp, err := c.GetLists(context.Background(), models.ListsRequest{
		UserSlug: "alice", ListSlug: " TO-WATCH ", ItemsType: models.ListItemsMovies,
	})
	require.NoError(t, err)
	assert.Equal(t, lists, resp.Lists)
	require.Len(t, resp.ItemGroups, 1)
	assert.Equal(t, lists[1], resp.ItemGroups[0].List)
	assert.Equal(t, items, resp.ItemGroups[0].Items)
}

func TestGetListsTargetMissingFallsBackToDetailsOnce(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	lists := []models.ListCollectionItem{collectionItem(1, "favourites")}
	details := userList(9, "secret", "bob")
	items := []models.ListItem{movieItem(1, "alien"), movieItem(2, "aliens")}

	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: lists}, nil)
	client.EXPECT().GetListDetails(gomock.Any(), "me", "secret").Return(&details, nil).Times(1)
	client.EXPECT().GetListItems(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.ListItemsRequest) ([]models.ListItem, error) {
			assert.Equal(t, "bob", req.UserSlug)
			assert.Equal(t, "secret", req.ListSlug)
			return items, nil
		})

	resp, err := c.GetLists(context.Background(), models.ListsRequest{ListSlug: "secret"})
	require.NoError(t, err)
	require.Len(t, resp.Lists, 2)
	assert.Equal(t, lists[0], resp.Lists[0])
	assert.Equal(t, details, resp.Lists[1].List)
	require.Len(t, resp.ItemGroups, 1)
	assert.Equal(t, items, resp.ItemGroups[0].Items)
}

func TestGetListsTargetNotFoundLeavesCollectionUnchanged(t *testing.T) {
	c, client, hook := newListsTest(t, 1)
	lists := []models.ListCollectionItem{collectionItem(1, "favourites"), collectionItem(2, "watch-later")}
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: lists}, nil)
	client.EXPECT().GetListDetails(gomock.Any(), "me", "watch-latr").Return(nil, nil).Times(1)
	client.EXPECT().GetListItems(gomock.Any(), gomock.Any()).Times(0)

	resp, err := c.GetLists(context.Background(), models.ListsRequest{ListSlug: "watch-latr", IncludeItems: true})
	require.NoError(t, err)
	assert.Equal(t, lists, resp.Lists)
	assert.Empty(t, resp.ItemGroups)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "watch-later", entry.Data["closest"])
}

func TestGetListsTargetDetailsError(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	boom := errors.New("boom")
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{}, nil)
	client.EXPECT().GetListDetails(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := c.GetLists(context.Background(), models.ListsRequest{ListSlug: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestGetListsIncludeItemsSkipsEmptyAndFailingLists(t *testing.T) {
	c, client, hook := newListsTest(t, 1)
	lists := []models.ListCollectionItem{collectionItem(1, "a"), collectionItem(2, "empty"), collectionItem(3, "broken"), collectionItem(4, "d")}
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: lists}, nil)
	client.EXPECT().GetListItems(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.ListItemsRequest) ([]models.ListItem, error) {
			switch req.ListSlug {
			case "empty":
				return []models.ListItem{}, nil
			case "broken":
				return nil, errors.New("upstream failed")
			default:
				return []models.ListItem{movieItem(1, req.ListSlug)}, nil
			}
		}).Times(4)

	resp, err := c.GetLists(context.Background(), models.ListsRequest{IncludeItems: true})
	require.NoError(t, err)
	require.Len(t, resp.ItemGroups, 2)
	assert.Equal(t, "a", resp.ItemGroups[0].List.List.IDs.Slug)
	assert.Equal(t, "d", resp.ItemGroups[1].List.List.IDs.Slug)
	assert.Len(t, resp.Lists, 4)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["list"] == "broken" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestGetListsIncludeItemsKeepsOrderWithWorkers(t *testing.T) {
	c, client, _ := newListsTest(t, 4)
	var lists []models.ListCollectionItem
	slugs := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
	for i, s := range slugs {
		lists = append(lists, collectionItem(i+1, s))
	}

	var inFlight, peak int32
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: lists}, nil)
	client.EXPECT().GetListItems(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.ListItemsRequest) ([]models.ListItem, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return []models.ListItem{movieItem(1, req.ListSlug)}, nil
		}).Times(len(slugs))

	resp, err := c.GetLists(context.Background(), models.ListsRequest{IncludeItems: true})
	require.NoError(t, err)
	require.Len(t, resp.ItemGroups, len(slugs))
	for i, g := range resp.ItemGroups {
		assert.Equal(t, slugs[i], g.List.List.IDs.Slug)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
}

func TestGetListsIncludeItemsUsesListOwner(t *testing.T) {
	c, client, _ := newListsTest(t, 1)
	owned := models.ListCollectionItem{List: userList(1, "liked-list", "carol"), Origin: "Liked"}
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).Return(models.ListCollectionResult{Items: []models.ListCollectionItem{owned}}, nil)
	client.EXPECT().GetListItems(gomock.Any(), models.ListItemsRequest{
		UserSlug: "carol", ListSlug: "liked-list", Type: models.ListItemsAll, Page: 2, Limit: 5,
	}).Return([]models.ListItem{movieItem(1, "up")}, nil)

	resp, err := c.GetLists(context.Background(), models.ListsRequest{Kind: models.ListKindLiked, IncludeItems: true, Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, resp.ItemGroups, 1)
}

func TestGetListsIncludeItemsCancelled(t *testing.T) {
	c, client, _ := newListsTest(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	client.EXPECT().GetLists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.ListsRequest) (models.ListCollectionResult, error) {
			cancel()
			return models.ListCollectionResult{Items: []models.ListCollectionItem{collectionItem(1, "a")}}, nil
		})
	client.EXPECT().GetListItems(gomock.Any(), gomock.Any()).Times(0)

	_, err := c.GetLists(ctx, models.ListsRequest{IncludeItems: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClosestSlug(t *testing.T) {
	lists := []models.ListCollectionItem{collectionItem(1, "favourites"), collectionItem(2, "watch-later")}
	assert.Equal(t, "favourites", closestSlug(lists, "favorites"))
	assert.Equal(t, "", closestSlug(lists, "zzz"))
	assert.Equal(t, "", closestSlug(nil, "favorites"))
}

func TestOwnerSlug(t *testing.T) {
	req := models.ListsRequest{UserSlug: "dave"}
	assert.Equal(t, "erin", ownerSlug(userList(1, "x", "erin"), req))
	assert.Equal(t, "dave", ownerSlug(userList(1, "x", ""), req))
	assert.Equal(t, "me", ownerSlug(userList(1, "x", ""), models.ListsRequest{}))
}

func TestNewListsControllerClampsWorkers(t *testing.T) {
	c := NewListsController(nil, 0, logrus.New())
	assert.Equal(t, 1, c.workers)
}
