package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// AssertItemCount verifies the expected number of items.
func AssertItemCount(t *testing.T, items []model.Item, expected int) {
	t.Helper()
	if len(items) != expected {
		t.Errorf("expected %d items, got %d", expected, len(items))
	}
}

// AssertNoDuplicateIDs verifies all item IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, items []model.Item) {
	t.Helper()
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate item ID: %s", it.ID)
		}
		seen[it.ID] = true
	}
}

// AssertAllValid verifies all items pass validation.
func AssertAllValid(t *testing.T, items []model.Item) {
	t.Helper()
	for i := range items {
		if err := items[i].Validate(); err != nil {
			t.Errorf("item %d (%s) invalid: %v", i, items[i].ID, err)
		}
	}
}

// AssertConnected verifies that from declares a connection to to.
func AssertConnected(t *testing.T, items []model.Item, from, to string) {
	t.Helper()
	it := FindItem(items, from)
	if it == nil {
		t.Errorf("item %s not found", from)
		return
	}
	for _, c := range it.Connections {
		if c == to {
			return
		}
	}
	t.Errorf("expected connection from %s to %s not found", from, to)
}

// WriteItemsFile writes items as JSONL to path, creating parent directories.
func WriteItemsFile(t *testing.T, path string, items []model.Item) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(ToJSONL(items)), 0644); err != nil {
		t.Fatalf("failed to write items file: %v", err)
	}
}

// FindItem returns the item with the given ID, or nil.
func FindItem(items []model.Item, id string) *model.Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// IDs returns the IDs of items in order.
func IDs(items []model.Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
