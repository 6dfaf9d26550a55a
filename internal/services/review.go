package services

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/repos"
	"github.com/yungbote/image-qc-backend/internal/types"
)

var (
	// ErrReadOnly is returned by every write operation when the mutable
	// store was not configured at startup.
	ErrReadOnly = errors.New("review state store not configured, system is read-only")
	// ErrInvalidIssueKey rejects issue keys outside the fixed set before
	// any mutation happens.
	ErrInvalidIssueKey = errors.New("invalid issue_key")
	// ErrForbidden is returned when an actor lacks the reviewer role.
	ErrForbidden = errors.New("reviewer role required")
)

// ReviewService is the write surface: the two toggle operations, each an
// atomic current-state update paired with one immutable audit event.
type ReviewService interface {
	ToggleStatus(ctx context.Context, productVariantID string, imageIndex int, actor string) (newStatus, eventID string, err error)
	ToggleIssue(ctx context.Context, productVariantID string, imageIndex int, actor, issueKey string, value bool) (eventID string, err error)
}

type reviewService struct {
	state repos.ReviewStateRepo
	log   *logger.Logger
}

// NewReviewService accepts a nil state repo: the service then rejects every
// write with ErrReadOnly instead of failing at startup.
func NewReviewService(state repos.ReviewStateRepo, baseLog *logger.Logger) ReviewService {
	return &reviewService{state: state, log: baseLog.With("service", "ReviewService")}
}

func (rs *reviewService) ToggleStatus(ctx context.Context, productVariantID string, imageIndex int, actor string) (string, string, error) {
	if rs.state == nil {
		return "", "", ErrReadOnly
	}

	key := repos.StateKey{ProductVariantID: productVariantID, ImageIndex: imageIndex}
	ev, err := rs.state.Mutate(ctx, key, func(cur types.ReviewState, eventID string, eventTS time.Time) (map[string]interface{}, types.Event) {
		return statusToggleMutation(cur, key, actor, eventID, eventTS)
	})
	if err != nil {
		return "", "", err
	}
	rs.log.Info("Toggled review status",
		"product_variant_id", productVariantID, "image_index", imageIndex,
		"new_status", ev.NewStatus, "event_id", ev.EventID, "actor", actor)
	return ev.NewStatus, ev.EventID, nil
}

func (rs *reviewService) ToggleIssue(ctx context.Context, productVariantID string, imageIndex int, actor, issueKey string, value bool) (string, error) {
	if rs.state == nil {
		return "", ErrReadOnly
	}
	if !types.ValidIssueKey(issueKey) {
		return "", ErrInvalidIssueKey
	}

	key := repos.StateKey{ProductVariantID: productVariantID, ImageIndex: imageIndex}
	ev, err := rs.state.Mutate(ctx, key, func(cur types.ReviewState, eventID string, eventTS time.Time) (map[string]interface{}, types.Event) {
		return issueToggleMutation(cur, key, actor, issueKey, value, eventID, eventTS)
	})
	if err != nil {
		return "", err
	}
	rs.log.Info("Toggled issue flag",
		"product_variant_id", productVariantID, "image_index", imageIndex,
		"issue_key", issueKey, "value", value, "event_id", ev.EventID, "actor", actor)
	return ev.EventID, nil
}

// statusToggleMutation flips the persisted status to its opposite, defaulting
// an absent document to NOT_REVIEWED. The write merges over the current
// document, so issue flags are preserved.
func statusToggleMutation(cur types.ReviewState, key repos.StateKey, actor, eventID string, eventTS time.Time) (map[string]interface{}, types.Event) {
	oldStatus := cur.Status()
	newStatus := types.StatusReviewed
	if oldStatus == types.StatusReviewed {
		newStatus = types.StatusNotReviewed
	}

	write := map[string]interface{}{
		"product_variant_id": key.ProductVariantID,
		"image_index":        key.ImageIndex,
		"review_status":      newStatus,
		"updated_by":         actor,
		"updated_at":         eventTS,
	}
	ev := types.Event{
		EventID:          eventID,
		EventTS:          eventTS,
		EventType:        types.EventTypeStatusChange,
		ProductVariantID: key.ProductVariantID,
		ImageIndex:       key.ImageIndex,
		Actor:            actor,
		OldStatus:        oldStatus,
		NewStatus:        newStatus,
	}
	return write, ev
}

// issueToggleMutation sets one issue flag to the requested value. The event
// carries the full post-update issues map so audit replay never has to join
// against state history. Setting a flag to its current value still produces
// an event with old == new.
func issueToggleMutation(cur types.ReviewState, key repos.StateKey, actor, issueKey string, value bool, eventID string, eventTS time.Time) (map[string]interface{}, types.Event) {
	issues := make(map[string]bool, len(cur.Issues)+1)
	for k, v := range cur.Issues {
		issues[k] = v
	}
	oldValue := issues[issueKey]
	issues[issueKey] = value

	write := map[string]interface{}{
		"product_variant_id": key.ProductVariantID,
		"image_index":        key.ImageIndex,
		"review_status":      cur.Status(),
		"issues":             issues,
		"updated_by":         actor,
		"updated_at":         eventTS,
	}
	ev := types.Event{
		EventID:          eventID,
		EventTS:          eventTS,
		EventType:        types.EventTypeIssueChange,
		ProductVariantID: key.ProductVariantID,
		ImageIndex:       key.ImageIndex,
		Actor:            actor,
		IssueKey:         issueKey,
		OldIssueValue:    &oldValue,
		NewIssueValue:    &value,
		IssuesSnapshot:   issues,
	}
	return write, ev
}
