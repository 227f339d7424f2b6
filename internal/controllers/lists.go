package controllers

import (
	"context"
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
)

//go:generate mockgen -source=lists.go -destination=mock_lists_test.go -package=controllers

// ListsClient is the part of the Trakt client used to resolve lists
type ListsClient interface {
	GetLists(ctx context.Context, req models.ListsRequest) (models.ListCollectionResult, error)
	GetSavedFilters(ctx context.Context, req models.ListsRequest) (models.SavedFiltersResult, error)
	GetListItems(ctx context.Context, req models.ListItemsRequest) ([]models.ListItem, error)
	GetListDetails(ctx context.Context, userSlug, listSlug string) (*models.UserList, error)
}

// ListsController assembles list collections, saved filters and list items
type ListsController struct {
	client  ListsClient
	workers int
	logger  *logrus.Logger
}

// NewListsController creates a new lists controller. workers bounds the
// number of concurrent item fetches; 1 fetches sequentially.
func NewListsController(client ListsClient, workers int, logger *logrus.Logger) *ListsController {
	if workers < 1 {
		workers = 1
	}
	return &ListsController{client: client, workers: workers, logger: logger}
}

// GetLists resolves the request into lists, item groups and saved filters
func (c *ListsController) GetLists(ctx context.Context, req models.ListsRequest) (models.ListsResponse, error) {
	if req.Kind == models.ListKindSaved {
		saved, err := c.client.GetSavedFilters(ctx, req)
		if err != nil {
			return models.ListsResponse{}, err
		}
		return models.ListsResponse{
			Lists:        []models.ListCollectionItem{},
			ItemGroups:   []models.ListItemsGroup{},
			SavedFilters: saved.Filters,
			Pagination:   saved.Pagination,
		}, nil
	}

	collection, err := c.client.GetLists(ctx, req)
	if err != nil {
		return models.ListsResponse{}, err
	}
	resp := models.ListsResponse{
		Lists:        collection.Items,
		ItemGroups:   []models.ListItemsGroup{},
		SavedFilters: []models.SavedFilter{},
		Pagination:   collection.Pagination,
	}

	if target := req.TargetListSlug(); target != "" {
		return c.resolveTarget(ctx, req, target, resp)
	}
	if req.IncludeItems {
		groups, err := c.fetchAllItems(ctx, req, resp.Lists)
		if err != nil {
			return models.ListsResponse{}, err
		}
		resp.ItemGroups = groups
	}
	return resp, nil
}

// resolveTarget finds the requested list in the collection, falling back to a
// direct lookup, and fetches its items as the single item group
func (c *ListsController) resolveTarget(ctx context.Context, req models.ListsRequest, target string, resp models.ListsResponse) (models.ListsResponse, error) {
	entry, found := findBySlug(resp.Lists, target)
	if !found {
		list, err := c.client.GetListDetails(ctx, req.ResolveUserSlug(), target)
		if err != nil {
			return models.ListsResponse{}, err
		}
		if list == nil {
			fields := logrus.Fields{"list": target, "user": req.ResolveUserSlug()}
			if hint := closestSlug(resp.Lists, target); hint != "" {
				fields["closest"] = hint
			}
			c.logger.WithFields(fields).Warn("List not found")
			return resp, nil
		}
		entry = models.ListCollectionItem{List: *list}
		lists := make([]models.ListCollectionItem, 0, len(resp.Lists)+1)
		resp.Lists = append(append(lists, resp.Lists...), entry)
	}

	items, err := c.client.GetListItems(ctx, req.ItemsRequest(ownerSlug(entry.List, req), entry.List.IDs.Slug))
	if err != nil {
		return models.ListsResponse{}, err
	}
	resp.ItemGroups = []models.ListItemsGroup{{List: entry, Items: items}}
	return resp, nil
}

type itemsOutcome struct {
	items []models.ListItem
	err   error
}

// fetchAllItems fetches the items of every list. A failing list is logged and
// skipped, lists without items are left out, and groups keep the input order.
func (c *ListsController) fetchAllItems(ctx context.Context, req models.ListsRequest, lists []models.ListCollectionItem) ([]models.ListItemsGroup, error) {
	mapper := iter.Mapper[models.ListCollectionItem, itemsOutcome]{MaxGoroutines: c.workers}
	outcomes := mapper.Map(lists, func(entry *models.ListCollectionItem) itemsOutcome {
		if err := ctx.Err(); err != nil {
			return itemsOutcome{err: err}
		}
		items, err := c.client.GetListItems(ctx, req.ItemsRequest(ownerSlug(entry.List, req), entry.List.IDs.Slug))
		return itemsOutcome{items: items, err: err}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups := make([]models.ListItemsGroup, 0, len(lists))
	for i, outcome := range outcomes {
		if outcome.err != nil {
			c.logger.WithError(outcome.err).WithField("list", lists[i].List.IDs.Slug).Warn("Failed to fetch list items, skipping list")
			continue
		}
		if len(outcome.items) == 0 {
			continue
		}
		groups = append(groups, models.ListItemsGroup{List: lists[i], Items: outcome.items})
	}
	return groups, nil
}

func findBySlug(lists []models.ListCollectionItem, slug string) (models.ListCollectionItem, bool) {
	for _, entry := range lists {
		if models.EqualFold(entry.List.IDs.Slug, slug) {
			return entry, true
		}
	}
	return models.ListCollectionItem{}, false
}

// closestSlug suggests the collection slug nearest to a slug that could not be resolved
func closestSlug(lists []models.ListCollectionItem, slug string) string {
	best, bestDistance := "", -1
	for _, entry := range lists {
		d := levenshtein.ComputeDistance(slug, entry.List.IDs.Slug)
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = entry.List.IDs.Slug, d
		}
	}
	if bestDistance < 0 || bestDistance > len(slug)/2+1 {
		return ""
	}
	return best
}

func ownerSlug(list models.UserList, req models.ListsRequest) string {
	if list.Owner != nil && list.Owner.Slug != "" {
		return list.Owner.Slug
	}
	return req.ResolveUserSlug()
}

// ListsPresenter receives the resolved lists response
type ListsPresenter interface {
	PresentLists(ctx context.Context, resp models.ListsResponse) error
}

// ListsOrchestrator fetches lists and hands them to every presenter
type ListsOrchestrator struct {
	controller *ListsController
	presenters []ListsPresenter
	recorder   PresentRecorder
	logger     *logrus.Logger
}

// NewListsOrchestrator creates a new lists orchestrator
func NewListsOrchestrator(controller *ListsController, presenters []ListsPresenter, recorder PresentRecorder, logger *logrus.Logger) *ListsOrchestrator {
	return &ListsOrchestrator{controller: controller, presenters: presenters, recorder: recorder, logger: logger}
}

// Execute runs the request and presents the result
func (o *ListsOrchestrator) Execute(ctx context.Context, req models.ListsRequest) error {
	resp, err := o.controller.GetLists(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get lists: %w", err)
	}
	o.recorder.Presented("lists")
	for _, p := range o.presenters {
		if err := p.PresentLists(ctx, resp); err != nil {
			o.logger.WithError(err).Error("Failed to present lists")
		}
	}
	return nil
}
