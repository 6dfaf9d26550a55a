package repos

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/types"
)

const (
	collectionCurrentState = "qc_current_state"
	collectionEventLog     = "qc_event_log"
)

// StateKey identifies one review-state document.
type StateKey struct {
	ProductVariantID string
	ImageIndex       int
}

func (k StateKey) DocID() string {
	return fmt.Sprintf("%s__%d", k.ProductVariantID, k.ImageIndex)
}

// Mutator computes the next state and its paired audit event from the
// current snapshot. It must be pure: the repo owns the transaction, the
// event id and the capture timestamp, and may call the mutator again on
// transaction retry.
type Mutator func(cur types.ReviewState, eventID string, eventTS time.Time) (stateWrite map[string]interface{}, ev types.Event)

// ReviewStateRepo is the single point of truth for current review state and
// the only transaction boundary in the system. Every mutation writes the
// state upsert and its event insert in one transaction: no reader ever sees
// one without the other.
type ReviewStateRepo interface {
	Get(ctx context.Context, key StateKey) (types.ReviewState, bool, error)
	BatchGet(ctx context.Context, keys []StateKey) (map[string]types.ReviewState, error)
	Mutate(ctx context.Context, key StateKey, fn Mutator) (types.Event, error)
}

type reviewStateRepo struct {
	fs  *firestore.Client
	log *logger.Logger
}

func NewReviewStateRepo(fs *firestore.Client, baseLog *logger.Logger) ReviewStateRepo {
	return &reviewStateRepo{fs: fs, log: baseLog.With("repo", "ReviewStateRepo")}
}

func (rr *reviewStateRepo) Get(ctx context.Context, key StateKey) (types.ReviewState, bool, error) {
	snap, err := rr.fs.Collection(collectionCurrentState).Doc(key.DocID()).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return types.ReviewState{}, false, nil
	}
	if err != nil {
		return types.ReviewState{}, false, fmt.Errorf("state get %s: %w", key.DocID(), err)
	}
	var state types.ReviewState
	if err := snap.DataTo(&state); err != nil {
		return types.ReviewState{}, false, fmt.Errorf("state decode %s: %w", key.DocID(), err)
	}
	return state, true, nil
}

func (rr *reviewStateRepo) BatchGet(ctx context.Context, keys []StateKey) (map[string]types.ReviewState, error) {
	result := make(map[string]types.ReviewState, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(keys))
	for _, k := range keys {
		refs = append(refs, rr.fs.Collection(collectionCurrentState).Doc(k.DocID()))
	}

	snaps, err := rr.fs.GetAll(ctx, refs)
	if err != nil {
		return result, fmt.Errorf("state batch get: %w", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var state types.ReviewState
		if err := snap.DataTo(&state); err != nil {
			rr.log.Warn("Skipping undecodable state document", "doc_id", snap.Ref.ID, "error", err)
			continue
		}
		result[snap.Ref.ID] = state
	}
	return result, nil
}

func (rr *reviewStateRepo) Mutate(ctx context.Context, key StateKey, fn Mutator) (types.Event, error) {
	stateRef := rr.fs.Collection(collectionCurrentState).Doc(key.DocID())

	eventID := uuid.NewString()
	eventTS := time.Now().UTC()

	var applied types.Event
	err := rr.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(stateRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return fmt.Errorf("state read: %w", err)
		}

		var cur types.ReviewState
		if snap != nil && snap.Exists() {
			if err := snap.DataTo(&cur); err != nil {
				return fmt.Errorf("state decode: %w", err)
			}
		}

		stateWrite, ev := fn(cur, eventID, eventTS)
		applied = ev

		if err := tx.Set(stateRef, stateWrite, firestore.MergeAll); err != nil {
			return fmt.Errorf("state write: %w", err)
		}
		eventRef := rr.fs.Collection(collectionEventLog).Doc(ev.EventID)
		if err := tx.Create(eventRef, ev); err != nil {
			return fmt.Errorf("event append: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Event{}, err
	}

	rr.log.Debug("Applied state mutation",
		"doc_id", key.DocID(), "event_id", applied.EventID, "event_type", applied.EventType)
	return applied, nil
}
