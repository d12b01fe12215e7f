package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTaskJSONOmitsUnsetOptionals(t *testing.T) {
	task := Task{ID: 3, Title: "write tests", ProjectID: InboxProjectID}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "parentId") || strings.Contains(out, "description") {
		t.Fatalf("expected optional fields to be omitted, got %s", out)
	}
	if !strings.Contains(out, `"depth":0`) {
		t.Fatalf("expected depth in output, got %s", out)
	}
}

func TestTaskHelpers(t *testing.T) {
	root := Task{ID: 1, Title: "root"}
	child := Task{ID: 2, Title: "child", ParentID: Int64(1), Description: String("notes")}

	if !root.IsRoot() {
		t.Fatalf("expected task without parent to be root")
	}
	if child.IsRoot() {
		t.Fatalf("expected task with parent not to be root")
	}
	if root.DescriptionText() != "" {
		t.Fatalf("expected empty description, got %q", root.DescriptionText())
	}
	if child.DescriptionText() != "notes" {
		t.Fatalf("expected description notes, got %q", child.DescriptionText())
	}
}
