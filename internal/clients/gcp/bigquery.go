package gcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"

	"github.com/yungbote/image-qc-backend/internal/logger"
)

// NewBigQueryClient builds the client for the catalog store and the
// analytical sink. Unlike Firestore this one is required: without the
// catalog there is nothing to serve.
func NewBigQueryClient(ctx context.Context, log *logger.Logger) (*bigquery.Client, error) {
	clientLog := log.With("client", "BigQuery")

	project := strings.TrimSpace(os.Getenv("BQ_PROJECT"))
	if project == "" {
		return nil, fmt.Errorf("missing env var BQ_PROJECT")
	}

	client, err := bigquery.NewClient(ctx, project, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	clientLog.Info("BigQuery client initialized", "project", project)
	return client, nil
}
