package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/yungbote/image-qc-backend/internal/types"
)

type stubCatalogRepo struct {
	rows []types.CatalogRow
	err  error
}

func (s *stubCatalogRepo) FetchPage(ctx context.Context, filter types.ImageFilter, pageSize int) ([]types.CatalogRow, error) {
	return s.rows, s.err
}

func (s *stubCatalogRepo) DistinctFilterValues(ctx context.Context) ([]string, []string, []string, error) {
	return nil, nil, nil, s.err
}

func catalogRow(pvid string, slots ...int) types.CatalogRow {
	row := types.CatalogRow{
		ProductVariantID:       pvid,
		BrandName:              "Acme",
		CategoryName:           "Snacks",
		CreatedDateBucketLabel: types.BucketOverflow,
	}
	for _, idx := range slots {
		row.Slots[idx-1] = &types.SlotMeta{ImageURL: fmt.Sprintf("https://img/%s/%d.jpg", pvid, idx)}
	}
	return row
}

func reviewedState(pvid string, idx int) types.ReviewState {
	return types.ReviewState{
		ProductVariantID: pvid,
		ImageIndex:       idx,
		ReviewStatus:     types.StatusReviewed,
		UpdatedBy:        "qa@example.com",
	}
}

func TestAggregateStatusRequiresEverySlotReviewed(t *testing.T) {
	catalog := &stubCatalogRepo{rows: []types.CatalogRow{catalogRow("pvid-1", 1, 2, 3)}}
	state := newStubStateRepo()
	state.states["pvid-1__1"] = reviewedState("pvid-1", 1)
	state.states["pvid-1__3"] = reviewedState("pvid-1", 3)
	// slot 2 has no state document: defaults to NOT_REVIEWED

	svc := NewImageService(catalog, state, testLogger(t))
	page, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
	if got := page.Items[0].PvidReviewStatus; got != types.StatusNotReviewed {
		t.Fatalf("aggregate status: got=%q want=%q", got, types.StatusNotReviewed)
	}

	state.states["pvid-1__2"] = reviewedState("pvid-1", 2)
	page, err = svc.ListImages(context.Background(), types.ImageFilter{Page: 1})
	if err != nil {
		t.Fatalf("list after review: %v", err)
	}
	if got := page.Items[0].PvidReviewStatus; got != types.StatusReviewed {
		t.Fatalf("aggregate status after all reviewed: got=%q want=%q", got, types.StatusReviewed)
	}
}

func TestProductWithZeroSlotsIsNeverReviewed(t *testing.T) {
	catalog := &stubCatalogRepo{rows: []types.CatalogRow{catalogRow("pvid-empty")}}
	svc := NewImageService(catalog, newStubStateRepo(), testLogger(t))

	page, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
	item := page.Items[0]
	if item.PvidReviewStatus != types.StatusNotReviewed {
		t.Fatalf("zero-slot product status: got=%q", item.PvidReviewStatus)
	}
	if len(item.Images) != 0 {
		t.Fatalf("zero-slot product images: got=%d", len(item.Images))
	}
}

func TestStatusFilterAppliesToComputedAggregate(t *testing.T) {
	catalog := &stubCatalogRepo{rows: []types.CatalogRow{
		catalogRow("pvid-done", 1),
		catalogRow("pvid-pending", 1, 2),
	}}
	state := newStubStateRepo()
	state.states["pvid-done__1"] = reviewedState("pvid-done", 1)
	state.states["pvid-pending__1"] = reviewedState("pvid-pending", 1)

	svc := NewImageService(catalog, state, testLogger(t))

	cases := []struct {
		name   string
		status string
		want   []string
	}{
		{name: "reviewed_only", status: types.StatusReviewed, want: []string{"pvid-done"}},
		{name: "not_reviewed_only", status: types.StatusNotReviewed, want: []string{"pvid-pending"}},
		{name: "all", status: "All", want: []string{"pvid-done", "pvid-pending"}},
		{name: "unset", status: "", want: []string{"pvid-done", "pvid-pending"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1, Status: tc.status})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := make([]string, 0, len(page.Items))
			for _, item := range page.Items {
				got = append(got, item.ProductVariantID)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("items: got=%v want=%v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("items: got=%v want=%v", got, tc.want)
				}
			}
		})
	}
}

func TestBatchLookupFailureDegradesToDefaults(t *testing.T) {
	catalog := &stubCatalogRepo{rows: []types.CatalogRow{catalogRow("pvid-1", 1)}}
	state := newStubStateRepo()
	state.states["pvid-1__1"] = reviewedState("pvid-1", 1)
	state.fail = fmt.Errorf("firestore unavailable")

	svc := NewImageService(catalog, state, testLogger(t))
	page, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1})
	if err != nil {
		t.Fatalf("lookup failure must not fail the request: %v", err)
	}
	if got := page.Items[0].Images[0].ReviewStatus; got != types.StatusNotReviewed {
		t.Fatalf("degraded status: got=%q want=%q", got, types.StatusNotReviewed)
	}
}

func TestCatalogFailureIsFatal(t *testing.T) {
	catalog := &stubCatalogRepo{err: fmt.Errorf("query timeout")}
	svc := NewImageService(catalog, newStubStateRepo(), testLogger(t))

	if _, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1}); err == nil {
		t.Fatalf("expected catalog failure to surface")
	}
}

func TestHasMoreReflectsRawCatalogPageSize(t *testing.T) {
	rows := make([]types.CatalogRow, PageSize)
	for i := range rows {
		rows[i] = catalogRow(fmt.Sprintf("pvid-%03d", i), 1)
	}
	catalog := &stubCatalogRepo{rows: rows}
	svc := NewImageService(catalog, newStubStateRepo(), testLogger(t))

	// Status filter drops every product, yet has_more still reports on the
	// raw catalog page.
	page, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1, Status: types.StatusReviewed})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected all items filtered out, got %d", len(page.Items))
	}
	if !page.HasMore {
		t.Fatalf("has_more must reflect the raw catalog page size")
	}

	catalog.rows = rows[:PageSize-1]
	page, err = svc.ListImages(context.Background(), types.ImageFilter{Page: 1})
	if err != nil {
		t.Fatalf("list partial page: %v", err)
	}
	if page.HasMore {
		t.Fatalf("partial catalog page must not report has_more")
	}
}

func TestReadOnlyModeServesDefaultState(t *testing.T) {
	catalog := &stubCatalogRepo{rows: []types.CatalogRow{catalogRow("pvid-1", 1, 5)}}
	svc := NewImageService(catalog, nil, testLogger(t))

	page, err := svc.ListImages(context.Background(), types.ImageFilter{Page: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	item := page.Items[0]
	if len(item.Images) != 2 {
		t.Fatalf("expected 2 populated slots, got %d", len(item.Images))
	}
	for _, img := range item.Images {
		if img.ReviewStatus != types.StatusNotReviewed {
			t.Fatalf("default status: got=%q", img.ReviewStatus)
		}
		if img.UpdatedBy != nil || img.UpdatedAt != nil {
			t.Fatalf("default state must have no actor or timestamp")
		}
	}
	if item.Images[0].ImageIndex != 1 || item.Images[1].ImageIndex != 5 {
		t.Fatalf("slot indexes: got=%d,%d want=1,5", item.Images[0].ImageIndex, item.Images[1].ImageIndex)
	}
}
