package gcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/yungbote/image-qc-backend/internal/logger"
)

// NewFirestoreClient builds the client for the mutable store. A (nil, nil)
// return means no usable credentials were found: the caller must run the
// write surface in read-only mode rather than fail startup.
func NewFirestoreClient(ctx context.Context, log *logger.Logger) (*firestore.Client, error) {
	clientLog := log.With("client", "Firestore")

	project := strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT"))
	if project == "" {
		project = strings.TrimSpace(os.Getenv("BQ_PROJECT"))
	}
	if project == "" {
		clientLog.Warn("No FIRESTORE_PROJECT configured, running in READ-ONLY mode")
		return nil, nil
	}
	if !HasCredentialsInEnv() {
		clientLog.Warn("No credentials found for Firestore, running in READ-ONLY mode")
		return nil, nil
	}

	client, err := firestore.NewClient(ctx, project, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	clientLog.Info("Firestore client initialized", "project", project)
	return client, nil
}
