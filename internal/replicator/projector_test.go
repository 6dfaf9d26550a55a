package replicator

import (
	"testing"
)

func TestProjectRowFillsEveryColumn(t *testing.T) {
	row := ProjectRow(map[string]any{
		"event_id":           "evt-1",
		"event_ts":           "2025-06-01T12:00:00Z",
		"event_type":         "STATUS_CHANGE",
		"actor":              "qa@example.com",
		"product_variant_id": "pvid-1",
		"image_index":        int64(3),
		"old_status":         "NOT_REVIEWED",
		"new_status":         "REVIEWED",
	})

	wantColumns := []string{
		"event_id", "event_ts", "event_type", "actor", "product_variant_id",
		"image_index", "old_status", "new_status", "issue_key",
		"old_issue_value", "new_issue_value", "issues_snapshot", "source",
	}
	for _, col := range wantColumns {
		if _, ok := row[col]; !ok {
			t.Fatalf("column %q missing from projected row", col)
		}
	}

	if row["source"] != SourceTag {
		t.Fatalf("source: got=%v want=%q", row["source"], SourceTag)
	}
	if row["issue_key"] != nil || row["issues_snapshot"] != nil {
		t.Fatalf("status event must project NULL issue columns, got key=%v snapshot=%v", row["issue_key"], row["issues_snapshot"])
	}
	if row["image_index"] != int64(3) {
		t.Fatalf("image_index: got=%v", row["image_index"])
	}
}

func TestProjectRowSerializesIssuesSnapshot(t *testing.T) {
	row := ProjectRow(map[string]any{
		"event_id":        "evt-2",
		"event_type":      "ISSUE_CHANGE",
		"issue_key":       "image_blur",
		"old_issue_value": false,
		"new_issue_value": true,
		"issues_snapshot": map[string]any{"image_blur": true},
	})

	snapshot, ok := row["issues_snapshot"].(string)
	if !ok {
		t.Fatalf("issues_snapshot must project as text, got %T", row["issues_snapshot"])
	}
	if snapshot != `{"image_blur":true}` {
		t.Fatalf("issues_snapshot: got=%q", snapshot)
	}
}

func TestProjectRowNullSnapshotStaysNull(t *testing.T) {
	row := ProjectRow(map[string]any{
		"event_id":        "evt-3",
		"issues_snapshot": nil,
	})
	if row["issues_snapshot"] != nil {
		t.Fatalf("nil snapshot must stay NULL, got %v", row["issues_snapshot"])
	}
}
