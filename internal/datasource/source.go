// Package datasource detects and selects where a result set comes from:
// a SQLite database, a JSON Lines file or a JSON document. It picks the
// freshest valid source when a directory holds several.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/podgraph/pkg/loader"
)

// SourceType identifies the type of data source
type SourceType string

const (
	SourceTypeSQLite SourceType = "sqlite"
	SourceTypeJSONL  SourceType = "jsonl"
	SourceTypeJSON   SourceType = "json"
)

// Priority values for source types (higher = preferred at equal freshness)
const (
	PrioritySQLite = 100
	PriorityJSONL  = 50
	PriorityJSON   = 40
)

// DataSource is a potential source of result set data
type DataSource struct {
	Type            SourceType `json:"type"`
	Path            string     `json:"path"`
	Priority        int        `json:"priority"`
	ModTime         time.Time  `json:"mod_time"`
	Valid           bool       `json:"valid"`
	ValidationError string     `json:"validation_error,omitempty"`
	ItemCount       int        `json:"item_count"`
	Size            int64      `json:"size"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, items=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.ItemCount, status)
}

// TypeForPath infers the source type from a file extension.
func TypeForPath(path string) (SourceType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, true
	case ".jsonl", ".ndjson":
		return SourceTypeJSONL, true
	case ".json":
		return SourceTypeJSON, true
	default:
		return "", false
	}
}

func priorityFor(t SourceType) int {
	switch t {
	case SourceTypeSQLite:
		return PrioritySQLite
	case SourceTypeJSONL:
		return PriorityJSONL
	default:
		return PriorityJSON
	}
}

// NewSource stats path and builds an unvalidated DataSource.
func NewSource(path string) (DataSource, error) {
	typ, ok := TypeForPath(path)
	if !ok {
		return DataSource{}, fmt.Errorf("unsupported source %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("stat source: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return DataSource{
		Type:     typ,
		Path:     abs,
		Priority: priorityFor(typ),
		ModTime:  info.ModTime(),
		Size:     info.Size(),
	}, nil
}

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// ValidateAfterDiscovery runs validation on each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives progress messages
	Logger func(msg string)
}

// DiscoverSources finds every supported file directly inside dir.
func DiscoverSources(dir string, opts DiscoveryOptions) ([]DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var sources []DataSource
	for _, e := range entries {
		if e.IsDir() || strings.Contains(e.Name(), ".backup") {
			continue
		}
		src, err := NewSource(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		if opts.ValidateAfterDiscovery {
			ValidateSource(&src)
			if !src.Valid {
				opts.Logger(fmt.Sprintf("source %s invalid: %s", src.Path, src.ValidationError))
				if !opts.IncludeInvalid {
					continue
				}
			}
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ValidateSource opens the source and counts its items, recording the
// outcome on src.
func ValidateSource(src *DataSource) {
	if src.Size == 0 {
		src.Valid = false
		src.ValidationError = "empty file"
		return
	}
	rs, err := LoadFromSource(*src, loader.ParseOptions{WarningHandler: func(string) {}})
	if err != nil {
		src.Valid = false
		src.ValidationError = err.Error()
		return
	}
	if len(rs.Items) == 0 {
		src.Valid = false
		src.ValidationError = "no valid items"
		return
	}
	src.Valid = true
	src.ValidationError = ""
	src.ItemCount = len(rs.Items)
}

// SelectBestSource returns the freshest valid source. Sources modified
// within the same second are ranked by priority.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	var valid []DataSource
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return DataSource{}, fmt.Errorf("no valid sources among %d candidates", len(sources))
	}
	sort.SliceStable(valid, func(i, j int) bool {
		ti, tj := valid[i].ModTime.Truncate(time.Second), valid[j].ModTime.Truncate(time.Second)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return valid[i].Priority > valid[j].Priority
	})
	return valid[0], nil
}
