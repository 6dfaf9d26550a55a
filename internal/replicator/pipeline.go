package replicator

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/bigquery"
	cloudevents "github.com/cloudevents/sdk-go/v2/event"

	"github.com/yungbote/image-qc-backend/internal/logger"
)

// Pipeline replicates audit-log document changes into the analytical sink.
// One invocation handles one document-change event; any insert failure is
// returned so the invoking delivery system retries (at-least-once, duplicate
// rows accepted).
type Pipeline struct {
	bq      *bigquery.Client
	log     *logger.Logger
	dataset string
	table   string
}

func NewPipeline(bq *bigquery.Client, baseLog *logger.Logger, dataset, table string) *Pipeline {
	return &Pipeline{
		bq:      bq,
		log:     baseLog.With("service", "ReplicatorPipeline"),
		dataset: dataset,
		table:   table,
	}
}

// HandleCloudEvent decodes the tagged document payload, projects it onto the
// analytical schema and streams one row into the sink. Payloads without the
// expected shape are skipped, not failed: there is nothing to retry.
func (p *Pipeline) HandleCloudEvent(ctx context.Context, e cloudevents.Event) error {
	var payload struct {
		Value map[string]any `json:"value"`
	}
	if err := json.Unmarshal(e.Data(), &payload); err != nil {
		p.log.Warn("Undecodable event payload, skipping", "event_type", e.Type(), "error", err)
		return nil
	}
	if payload.Value == nil {
		p.log.Warn("No 'value' found in event data, skipping", "event_type", e.Type())
		return nil
	}

	doc := DecodeDocument(payload.Value)
	if len(doc) == 0 {
		p.log.Warn("Parsed document data is empty, skipping", "event_type", e.Type())
		return nil
	}

	row := ProjectRow(doc)
	inserter := p.bq.Dataset(p.dataset).Table(p.table).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		// Propagate so the trigger redelivers.
		return fmt.Errorf("bigquery insert failed: %w", err)
	}

	p.log.Info("Inserted event row", "event_id", row["event_id"])
	return nil
}
