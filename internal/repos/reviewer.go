package repos

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yungbote/image-qc-backend/internal/logger"
)

const collectionReviewers = "Reviewers"

// ReviewerRepo looks up operator roles. Documents are keyed by email.
type ReviewerRepo interface {
	GetRole(ctx context.Context, email string) (role string, exists bool, err error)
}

type reviewerRepo struct {
	fs  *firestore.Client
	log *logger.Logger
}

func NewReviewerRepo(fs *firestore.Client, baseLog *logger.Logger) ReviewerRepo {
	return &reviewerRepo{fs: fs, log: baseLog.With("repo", "ReviewerRepo")}
}

func (rr *reviewerRepo) GetRole(ctx context.Context, email string) (string, bool, error) {
	snap, err := rr.fs.Collection(collectionReviewers).Doc(email).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reviewer get: %w", err)
	}

	data := snap.Data()
	role, _ := data["role"].(string)
	return role, true, nil
}
