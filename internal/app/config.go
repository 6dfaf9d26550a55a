package app

import (
	"time"

	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/utils"
)

type Config struct {
	Port                string
	BQDataset           string
	CatalogTable        string
	CORSOrigins         string
	RequireReviewerRole bool
	FilterCacheTTL      time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	dataset := utils.GetEnv("BQ_DATASET", "image_qc", log)
	catalogTable := utils.GetEnv("BQ_CATALOG_TABLE", "qc_image_source", log)
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "*", log)
	requireReviewer := utils.GetEnv("REQUIRE_REVIEWER_ROLE", "false", log) == "true"
	cacheTTLSeconds := utils.GetEnvAsInt("FILTER_CACHE_TTL_SECONDS", 300, log)
	return Config{
		Port:                port,
		BQDataset:           dataset,
		CatalogTable:        catalogTable,
		CORSOrigins:         corsOrigins,
		RequireReviewerRole: requireReviewer,
		FilterCacheTTL:      time.Duration(cacheTTLSeconds) * time.Second,
	}
}
