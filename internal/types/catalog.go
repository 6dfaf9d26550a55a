package types

// MaxImageSlots is the catalog's fixed slot count per product variant. The
// source table stores them as numbered wide columns; internally a row is a
// bounded ordered sequence and a nil entry means the slot is unpopulated.
const MaxImageSlots = 10

// SlotMeta carries the immutable catalog attributes of one image slot.
type SlotMeta struct {
	ImageURL         string
	AspectRatioValue *string
	Meta3x4          *string
	HidePadding      *bool
	DPI              *float64
	WhiteBG          *bool
}

// CatalogRow is one product variant as read from the catalog store. Slots[i]
// holds image slot i+1.
type CatalogRow struct {
	ProductVariantID       string
	BrandName              string
	ProductName            string
	CategoryName           string
	SubcategoryName        string
	L3CategoryName         string
	CreatedDateBucketLabel string
	Slots                  [MaxImageSlots]*SlotMeta
}

// ImageFilter is the catalog-side filter set for a page request. Status is
// carried along but applied post-merge, never pushed to the catalog query.
type ImageFilter struct {
	Page          int
	Status        string
	Brand         string
	Categories    []string
	Subcategory   string
	L3Category    string
	PVIDContains  string
	CreatedBucket string
}

// BucketOverflow is the bucket label substituted for rows with no
// created-date bucket.
const BucketOverflow = "More than 30 Days"

// BucketOrder is the canonical report order for created-date buckets.
var BucketOrder = []string{
	"Last 10 Days",
	"11-20 Days",
	"21-30 Days",
	"More than 30 Days",
}

type FilterOptions struct {
	Categories         []string `json:"categories"`
	Brands             []string `json:"brands"`
	CreatedDateBuckets []string `json:"created_date_buckets"`
}
