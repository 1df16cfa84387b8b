package search

import (
	"strings"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// ItemDocument returns the lower-cased fields a query is matched against:
// title, podcast, then each tag.
func ItemDocument(item model.Item) []string {
	fields := make([]string, 0, 2+len(item.Tags))
	if title := strings.TrimSpace(item.Title); title != "" {
		fields = append(fields, strings.ToLower(title))
	}
	if podcast := strings.TrimSpace(item.Podcast); podcast != "" {
		fields = append(fields, strings.ToLower(podcast))
	}
	for _, tag := range item.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			fields = append(fields, strings.ToLower(tag))
		}
	}
	return fields
}

// DocumentsFromItems builds an ID->fields map for a catalogue.
func DocumentsFromItems(items []model.Item) map[string][]string {
	docs := make(map[string][]string, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		docs[item.ID] = ItemDocument(item)
	}
	return docs
}
