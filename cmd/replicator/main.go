package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/yungbote/image-qc-backend/internal/clients/gcp"
	"github.com/yungbote/image-qc-backend/internal/logger"
	"github.com/yungbote/image-qc-backend/internal/replicator"
	"github.com/yungbote/image-qc-backend/internal/utils"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "production"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	bq, err := gcp.NewBigQueryClient(ctx, log)
	if err != nil {
		log.Fatal("Failed to initialize BigQuery client", "error", err)
	}
	defer bq.Close()

	dataset := utils.GetEnv("BQ_DATASET", "image_qc", log)
	table := utils.GetEnv("BQ_TABLE", "qc_event_log", log)
	pipeline := replicator.NewPipeline(bq, log, dataset, table)

	if err := funcframework.RegisterCloudEventFunctionContext(ctx, "/", pipeline.HandleCloudEvent); err != nil {
		log.Fatal("Failed to register trigger function", "error", err)
	}

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Replicator listening", "port", port)
	if err := funcframework.Start(port); err != nil {
		log.Fatal("Replicator failed", "error", err)
	}
}
