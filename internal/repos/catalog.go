package repos

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/types"
)

// CatalogRepo reads the immutable product/image source table. The table is
// externally populated; this repo never writes it.
type CatalogRepo interface {
	FetchPage(ctx context.Context, filter types.ImageFilter, pageSize int) ([]types.CatalogRow, error)
	DistinctFilterValues(ctx context.Context) (categories, brands, buckets []string, err error)
}

type catalogRepo struct {
	bq      *bigquery.Client
	log     *logger.Logger
	project string
	dataset string
	table   string
}

func NewCatalogRepo(bq *bigquery.Client, baseLog *logger.Logger, project, dataset, table string) CatalogRepo {
	return &catalogRepo{
		bq:      bq,
		log:     baseLog.With("repo", "CatalogRepo"),
		project: project,
		dataset: dataset,
		table:   table,
	}
}

func (cr *catalogRepo) tableID() string {
	return fmt.Sprintf("`%s.%s.%s`", cr.project, cr.dataset, cr.table)
}

// slotColumns lists the wide numbered catalog columns for one attribute,
// e.g. image_url1..image_url10 or dpi_1..dpi_10.
func slotColumns(prefix string) string {
	cols := make([]string, 0, types.MaxImageSlots)
	for i := 1; i <= types.MaxImageSlots; i++ {
		cols = append(cols, fmt.Sprintf("%s%d", prefix, i))
	}
	return strings.Join(cols, ", ")
}

func (cr *catalogRepo) FetchPage(ctx context.Context, filter types.ImageFilter, pageSize int) ([]types.CatalogRow, error) {
	where := []string{"1=1"}
	params := []bigquery.QueryParameter{}

	if filter.Brand != "" && filter.Brand != "All" {
		where = append(where, "brand_name = @brand")
		params = append(params, bigquery.QueryParameter{Name: "brand", Value: filter.Brand})
	}
	categories := make([]string, 0, len(filter.Categories))
	for _, c := range filter.Categories {
		if c != "" && c != "All" {
			categories = append(categories, c)
		}
	}
	if len(categories) > 0 {
		where = append(where, "category_name IN UNNEST(@categories)")
		params = append(params, bigquery.QueryParameter{Name: "categories", Value: categories})
	}
	if filter.Subcategory != "" {
		where = append(where, "subcategory_name = @l2")
		params = append(params, bigquery.QueryParameter{Name: "l2", Value: filter.Subcategory})
	}
	if filter.L3Category != "" {
		where = append(where, "l3_category_name = @l3")
		params = append(params, bigquery.QueryParameter{Name: "l3", Value: filter.L3Category})
	}
	if filter.PVIDContains != "" {
		where = append(where, "LOWER(product_variant_id) LIKE LOWER(@pvid)")
		params = append(params, bigquery.QueryParameter{Name: "pvid", Value: "%" + filter.PVIDContains + "%"})
	}
	if filter.CreatedBucket != "" && filter.CreatedBucket != "All" {
		// Rows with no bucket label fall into the overflow bucket.
		where = append(where, fmt.Sprintf("COALESCE(created_date_bucket_label, '%s') = @created_bucket", types.BucketOverflow))
		params = append(params, bigquery.QueryParameter{Name: "created_bucket", Value: filter.CreatedBucket})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	params = append(params,
		bigquery.QueryParameter{Name: "limit", Value: int64(pageSize)},
		bigquery.QueryParameter{Name: "offset", Value: int64((page - 1) * pageSize)},
	)

	sql := fmt.Sprintf(`
SELECT
  product_variant_id,
  brand_name,
  product_name,
  category_name,
  subcategory_name,
  l3_category_name,
  COALESCE(created_date_bucket_label, '%s') AS created_date_bucket_label,
  %s,
  %s,
  %s,
  %s,
  %s,
  %s
FROM %s
WHERE %s
ORDER BY product_variant_id
LIMIT @limit OFFSET @offset`,
		types.BucketOverflow,
		slotColumns("image_url"),
		slotColumns("aspect_ratio"),
		slotColumns("meta_3x4_"),
		slotColumns("hide_padding"),
		slotColumns("dpi_"),
		slotColumns("white_bg"),
		cr.tableID(),
		strings.Join(where, " AND "),
	)

	q := cr.bq.Query(sql)
	q.Parameters = params

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}

	var rows []types.CatalogRow
	for {
		var raw map[string]bigquery.Value
		err := it.Next(&raw)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog row read: %w", err)
		}
		rows = append(rows, catalogRowFromValues(raw))
	}
	return rows, nil
}

// catalogRowFromValues folds the wide numbered columns into the bounded slot
// sequence. A slot with an empty image URL does not exist.
func catalogRowFromValues(raw map[string]bigquery.Value) types.CatalogRow {
	row := types.CatalogRow{
		ProductVariantID:       stringValue(raw["product_variant_id"]),
		BrandName:              stringValue(raw["brand_name"]),
		ProductName:            stringValue(raw["product_name"]),
		CategoryName:           stringValue(raw["category_name"]),
		SubcategoryName:        stringValue(raw["subcategory_name"]),
		L3CategoryName:         stringValue(raw["l3_category_name"]),
		CreatedDateBucketLabel: stringValue(raw["created_date_bucket_label"]),
	}
	for i := 1; i <= types.MaxImageSlots; i++ {
		url := stringValue(raw[fmt.Sprintf("image_url%d", i)])
		if url == "" {
			continue
		}
		row.Slots[i-1] = &types.SlotMeta{
			ImageURL:         url,
			AspectRatioValue: stringPtrValue(raw[fmt.Sprintf("aspect_ratio%d", i)]),
			Meta3x4:          stringPtrValue(raw[fmt.Sprintf("meta_3x4_%d", i)]),
			HidePadding:      boolPtrValue(raw[fmt.Sprintf("hide_padding%d", i)]),
			DPI:              floatPtrValue(raw[fmt.Sprintf("dpi_%d", i)]),
			WhiteBG:          boolPtrValue(raw[fmt.Sprintf("white_bg%d", i)]),
		}
	}
	return row
}

func stringValue(v bigquery.Value) string {
	s, _ := v.(string)
	return s
}

func stringPtrValue(v bigquery.Value) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func boolPtrValue(v bigquery.Value) *bool {
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

func floatPtrValue(v bigquery.Value) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

func (cr *catalogRepo) DistinctFilterValues(ctx context.Context) ([]string, []string, []string, error) {
	sql := fmt.Sprintf(`
SELECT 'category' AS type, category_name AS value FROM %[1]s GROUP BY 2
UNION ALL
SELECT 'brand' AS type, brand_name AS value FROM %[1]s GROUP BY 2
UNION ALL
SELECT 'created_date_bucket' AS type,
       COALESCE(created_date_bucket_label, '%[2]s') AS value
FROM %[1]s
GROUP BY 2`, cr.tableID(), types.BucketOverflow)

	it, err := cr.bq.Query(sql).Read(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("filters query: %w", err)
	}

	var categories, brands, buckets []string
	for {
		var raw map[string]bigquery.Value
		err := it.Next(&raw)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("filters row read: %w", err)
		}
		value := stringValue(raw["value"])
		if value == "" {
			continue
		}
		switch stringValue(raw["type"]) {
		case "category":
			categories = append(categories, value)
		case "brand":
			brands = append(brands, value)
		case "created_date_bucket":
			buckets = append(buckets, value)
		}
	}
	return categories, brands, buckets, nil
}
