package types

import (
	"time"
)

const (
	StatusNotReviewed = "NOT_REVIEWED"
	StatusReviewed    = "REVIEWED"
)

const (
	EventTypeStatusChange = "STATUS_CHANGE"
	EventTypeIssueChange  = "ISSUE_CHANGE"
)

// IssueKeys is the closed set of per-image defect flags. Anything outside
// this list is rejected before any mutation.
var IssueKeys = []string{
	"image_blur",
	"cropped_image",
	"mrp_present_in_image",
	"image_quality",
	"aspect_ratio",
}

func ValidIssueKey(key string) bool {
	for _, k := range IssueKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ReviewState is the authoritative current-state document for one
// (product_variant_id, image_index) pair. The zero value stands in for an
// absent document: NOT_REVIEWED with no issues flagged.
type ReviewState struct {
	ProductVariantID string          `firestore:"product_variant_id" json:"product_variant_id"`
	ImageIndex       int             `firestore:"image_index" json:"image_index"`
	ReviewStatus     string          `firestore:"review_status" json:"review_status"`
	Issues           map[string]bool `firestore:"issues" json:"issues"`
	UpdatedBy        string          `firestore:"updated_by" json:"updated_by"`
	UpdatedAt        time.Time       `firestore:"updated_at" json:"updated_at"`
}

// Status normalizes the absent-document default.
func (s ReviewState) Status() string {
	if s.ReviewStatus == "" {
		return StatusNotReviewed
	}
	return s.ReviewStatus
}

// Event is one immutable audit record. STATUS_CHANGE events carry the status
// pair, ISSUE_CHANGE events carry the issue fields plus a full post-update
// issues snapshot so audit replay never needs to join against state history.
type Event struct {
	EventID          string          `firestore:"event_id" json:"event_id"`
	EventTS          time.Time       `firestore:"event_ts" json:"event_ts"`
	EventType        string          `firestore:"event_type" json:"event_type"`
	ProductVariantID string          `firestore:"product_variant_id" json:"product_variant_id"`
	ImageIndex       int             `firestore:"image_index" json:"image_index"`
	Actor            string          `firestore:"actor" json:"actor"`
	OldStatus        string          `firestore:"old_status,omitempty" json:"old_status,omitempty"`
	NewStatus        string          `firestore:"new_status,omitempty" json:"new_status,omitempty"`
	IssueKey         string          `firestore:"issue_key,omitempty" json:"issue_key,omitempty"`
	OldIssueValue    *bool           `firestore:"old_issue_value,omitempty" json:"old_issue_value,omitempty"`
	NewIssueValue    *bool           `firestore:"new_issue_value,omitempty" json:"new_issue_value,omitempty"`
	IssuesSnapshot   map[string]bool `firestore:"issues_snapshot,omitempty" json:"issues_snapshot,omitempty"`
}

const (
	RoleViewer   = "viewer"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

type RoleInfo struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Exists bool   `json:"exists"`
}
