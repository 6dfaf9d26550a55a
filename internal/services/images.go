package services

import (
	"context"
	"fmt"

	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/repos"
	"github.com/yungbote/image-qc-backend/internal/types"
)

// PageSize is the fixed number of catalog rows fetched per page.
const PageSize = 100

// ImageService is the read-side merge engine: it joins one page of catalog
// rows with live review state and computes the derived per-product status.
type ImageService interface {
	ListImages(ctx context.Context, filter types.ImageFilter) (types.ImagesPage, error)
}

type imageService struct {
	catalog repos.CatalogRepo
	state   repos.ReviewStateRepo
	log     *logger.Logger
}

// NewImageService accepts a nil state repo; the merge then substitutes the
// default NOT_REVIEWED state for every slot.
func NewImageService(catalog repos.CatalogRepo, state repos.ReviewStateRepo, baseLog *logger.Logger) ImageService {
	return &imageService{
		catalog: catalog,
		state:   state,
		log:     baseLog.With("service", "ImageService"),
	}
}

func (is *imageService) ListImages(ctx context.Context, filter types.ImageFilter) (types.ImagesPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}

	// The status filter depends on merged per-image state, so it is the one
	// predicate not pushed to the catalog query.
	rows, err := is.catalog.FetchPage(ctx, filter, PageSize)
	if err != nil {
		return types.ImagesPage{}, fmt.Errorf("database query failed: %w", err)
	}
	if len(rows) == 0 {
		return types.ImagesPage{Items: []types.PvidItem{}, Page: page, PageSize: PageSize, HasMore: false}, nil
	}

	// The catalog may emit several rows per PVID; fold them keeping first-seen
	// order (rows arrive ordered by product_variant_id).
	order := make([]string, 0, len(rows))
	byPVID := make(map[string]*types.CatalogRow, len(rows))
	var keys []repos.StateKey
	for i := range rows {
		row := rows[i]
		merged, seen := byPVID[row.ProductVariantID]
		if !seen {
			order = append(order, row.ProductVariantID)
			byPVID[row.ProductVariantID] = &row
			merged = &row
		}
		for idx, slot := range row.Slots {
			if slot == nil {
				continue
			}
			if seen && merged.Slots[idx] == nil {
				merged.Slots[idx] = slot
			}
			keys = append(keys, repos.StateKey{ProductVariantID: row.ProductVariantID, ImageIndex: idx + 1})
		}
	}

	stateMap := is.lookupStates(ctx, keys)

	items := make([]types.PvidItem, 0, len(order))
	for _, pvid := range order {
		row := byPVID[pvid]

		images := make([]types.ImageItem, 0, types.MaxImageSlots)
		allReviewed := true
		for idx, slot := range row.Slots {
			if slot == nil {
				continue
			}
			key := repos.StateKey{ProductVariantID: pvid, ImageIndex: idx + 1}
			img := mergeImage(idx+1, slot, stateMap[key.DocID()])
			if img.ReviewStatus != types.StatusReviewed {
				allReviewed = false
			}
			images = append(images, img)
		}

		// A product with zero populated slots is never REVIEWED.
		pvidStatus := types.StatusNotReviewed
		if allReviewed && len(images) > 0 {
			pvidStatus = types.StatusReviewed
		}

		if filter.Status != "" && filter.Status != "All" {
			if filter.Status == types.StatusReviewed && pvidStatus != types.StatusReviewed {
				continue
			}
			if filter.Status == types.StatusNotReviewed && pvidStatus == types.StatusReviewed {
				continue
			}
		}

		items = append(items, types.PvidItem{
			ProductVariantID:       pvid,
			BrandName:              row.BrandName,
			ProductName:            row.ProductName,
			CategoryName:           row.CategoryName,
			SubcategoryName:        row.SubcategoryName,
			L3CategoryName:         row.L3CategoryName,
			CreatedDateBucketLabel: row.CreatedDateBucketLabel,
			PvidReviewStatus:       pvidStatus,
			Images:                 images,
		})
	}

	// has_more is a heuristic on the raw catalog page, deliberately not on the
	// post-filter result: a full catalog page signals more, even when the page
	// is an exact multiple of the table size or filtering emptied it.
	return types.ImagesPage{
		Items:    items,
		Page:     page,
		PageSize: PageSize,
		HasMore:  len(rows) == PageSize,
	}, nil
}

// lookupStates batch-reads review state for the page. Lookup failure is
// non-fatal: the page is served with defaults.
func (is *imageService) lookupStates(ctx context.Context, keys []repos.StateKey) map[string]types.ReviewState {
	if is.state == nil || len(keys) == 0 {
		return map[string]types.ReviewState{}
	}
	stateMap, err := is.state.BatchGet(ctx, keys)
	if err != nil {
		is.log.Error("State batch get failed, serving defaults", "keys", len(keys), "error", err)
		return map[string]types.ReviewState{}
	}
	return stateMap
}

func mergeImage(imageIndex int, slot *types.SlotMeta, state types.ReviewState) types.ImageItem {
	item := types.ImageItem{
		ImageIndex:       imageIndex,
		ImageURL:         slot.ImageURL,
		AspectRatioValue: slot.AspectRatioValue,
		Meta3x4:          slot.Meta3x4,
		HidePadding:      slot.HidePadding,
		DPI:              slot.DPI,
		WhiteBG:          slot.WhiteBG,
		ReviewStatus:     state.Status(),
		Issues:           types.IssuesFromMap(state.Issues),
	}
	if state.UpdatedBy != "" {
		by := state.UpdatedBy
		item.UpdatedBy = &by
	}
	if !state.UpdatedAt.IsZero() {
		at := state.UpdatedAt
		item.UpdatedAt = &at
	}
	return item
}
