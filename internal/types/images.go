package types

import "time"

// ImageIssues is the fixed-shape issues object served on the read path.
// Absent flags read as false.
type ImageIssues struct {
	ImageBlur         bool `json:"image_blur"`
	CroppedImage      bool `json:"cropped_image"`
	MRPPresentInImage bool `json:"mrp_present_in_image"`
	ImageQuality      bool `json:"image_quality"`
	AspectRatio       bool `json:"aspect_ratio"`
}

func IssuesFromMap(m map[string]bool) ImageIssues {
	return ImageIssues{
		ImageBlur:         m["image_blur"],
		CroppedImage:      m["cropped_image"],
		MRPPresentInImage: m["mrp_present_in_image"],
		ImageQuality:      m["image_quality"],
		AspectRatio:       m["aspect_ratio"],
	}
}

// ImageItem is one populated slot merged with its live review state.
type ImageItem struct {
	ImageIndex       int         `json:"image_index"`
	ImageURL         string      `json:"image_url"`
	AspectRatioValue *string     `json:"aspect_ratio_value"`
	Meta3x4          *string     `json:"meta_3x4"`
	HidePadding      *bool       `json:"hide_padding"`
	DPI              *float64    `json:"dpi"`
	WhiteBG          *bool       `json:"white_bg"`
	ReviewStatus     string      `json:"review_status"`
	Issues           ImageIssues `json:"issues"`
	UpdatedBy        *string     `json:"updated_by"`
	UpdatedAt        *time.Time  `json:"updated_at"`
}

// PvidItem is the per-product aggregate view. PvidReviewStatus is derived at
// read time: REVIEWED iff the product has at least one image and every image
// is REVIEWED.
type PvidItem struct {
	ProductVariantID       string      `json:"product_variant_id"`
	BrandName              string      `json:"brand_name"`
	ProductName            string      `json:"product_name"`
	CategoryName           string      `json:"category_name"`
	SubcategoryName        string      `json:"subcategory_name"`
	L3CategoryName         string      `json:"l3_category_name"`
	CreatedDateBucketLabel string      `json:"created_date_bucket_label"`
	PvidReviewStatus       string      `json:"pvid_review_status"`
	Images                 []ImageItem `json:"images"`
}

type ImagesPage struct {
	Items    []PvidItem `json:"items"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	HasMore  bool       `json:"has_more"`
}
