package replicator

import (
	"encoding/json"

	"cloud.google.com/go/bigquery"
)

// SourceTag marks rows ingested through the change-feed trigger.
const SourceTag = "firestore_trigger"

// Row is one analytical record. It implements bigquery.ValueSaver with no
// insert id: redelivered events insert duplicate rows, which the sink
// tolerates by design of the at-least-once trigger.
type Row map[string]bigquery.Value

func (r Row) Save() (map[string]bigquery.Value, string, error) {
	return r, "", nil
}

// ProjectRow maps a decoded event document onto the fixed analytical schema.
// Every destination column is present; missing source fields become NULL.
// issues_snapshot is the one schema-impedance mismatch: the sink's
// semi-structured column takes text, so the nested map is serialized to a
// canonical JSON string.
func ProjectRow(data map[string]any) Row {
	row := Row{
		"event_id":           data["event_id"],
		"event_ts":           data["event_ts"],
		"event_type":         data["event_type"],
		"actor":              data["actor"],
		"product_variant_id": data["product_variant_id"],
		"image_index":        data["image_index"],
		"old_status":         data["old_status"],
		"new_status":         data["new_status"],
		"issue_key":          data["issue_key"],
		"old_issue_value":    data["old_issue_value"],
		"new_issue_value":    data["new_issue_value"],
		"issues_snapshot":    nil,
		"source":             SourceTag,
	}
	if snapshot, ok := data["issues_snapshot"]; ok && snapshot != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			row["issues_snapshot"] = string(raw)
		}
	}
	return row
}
