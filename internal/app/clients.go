package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/firestore"

	"github.com/yungbote/image-qc-backend/internal/clients/gcp"
	"github.com/yungbote/image-qc-backend/internal/clients/redis"
	"github.com/yungbote/image-qc-backend/internal/logger"
)

type Clients struct {
	BigQuery    *bigquery.Client
	Firestore   *firestore.Client
	FilterCache redis.FilterCache
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	bq, err := gcp.NewBigQueryClient(ctx, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init bigquery client: %w", err)
	}

	// A nil Firestore client is a supported configuration: the write surface
	// runs read-only.
	fs, err := gcp.NewFirestoreClient(ctx, log)
	if err != nil {
		log.Warn("Firestore initialization failed, running in READ-ONLY mode", "error", err)
		fs = nil
	}

	var cache redis.FilterCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redis.NewFilterCache(log, cfg.FilterCacheTTL)
		if err != nil {
			log.Warn("Filter cache init failed, serving filters uncached", "error", err)
		} else {
			cache = c
		}
	}

	return Clients{
		BigQuery:    bq,
		Firestore:   fs,
		FilterCache: cache,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.FilterCache != nil {
		_ = c.FilterCache.Close()
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.BigQuery != nil {
		_ = c.BigQuery.Close()
	}
}
