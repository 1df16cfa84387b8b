// Package loader reads result sets from disk.
//
// Two file shapes are understood: JSON Lines with one item per line, and a
// single JSON document of the form {"query": "...", "items": [...]}.
// Malformed and invalid items are skipped with a warning; they never fail
// the whole load.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// DataEnvVar names a result set file to load when no path is given.
const DataEnvVar = "PODGRAPH_DATA"

// PreferredNames defines the lookup order for result files in a directory.
var PreferredNames = []string{"results.jsonl", "segments.jsonl", "results.json", "segments.json"}

// ErrNoResults is returned when no result file can be found.
var ErrNoResults = errors.New("no result set found")

// FindResultsPath locates the result file in dir. Preferred names win;
// otherwise the first non-empty .jsonl or .json file is used. Backup and
// merge artefacts are ignored.
func FindResultsPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read results directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != ".jsonl" && ext != ".json" {
			continue
		}
		if strings.Contains(name, ".backup") ||
			strings.Contains(name, ".orig") ||
			strings.Contains(name, ".merge") {
			continue
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoResults, dir)
	}

	nonEmpty := func(name string) (string, bool) {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		return path, err == nil && info.Size() > 0
	}

	for _, preferred := range PreferredNames {
		for _, name := range candidates {
			if name != preferred {
				continue
			}
			if path, ok := nonEmpty(name); ok {
				return path, nil
			}
		}
	}
	for _, name := range candidates {
		if path, ok := nonEmpty(name); ok {
			return path, nil
		}
	}
	return filepath.Join(dir, candidates[0]), nil
}

// DefaultMaxBufferSize is the default maximum line size (10MB).
const DefaultMaxBufferSize = 1024 * 1024 * 10

// ParseOptions configures parsing.
type ParseOptions struct {
	// WarningHandler is called with warning messages (e.g., malformed JSON).
	// If nil, warnings are printed to os.Stderr.
	WarningHandler func(string)

	// BufferSize sets the maximum line size (in bytes) to read at once.
	// Lines longer than this are skipped with a warning.
	// If 0, uses DefaultMaxBufferSize (10MB).
	BufferSize int

	// ItemFilter optionally filters parsed items. Return true to include.
	ItemFilter func(*model.Item) bool
}

func (o ParseOptions) warn() func(string) {
	if o.WarningHandler != nil {
		return o.WarningHandler
	}
	return func(msg string) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}

// LoadResultSet reads a result set from path, choosing the format by
// extension (.json is a document, anything else is JSON Lines).
func LoadResultSet(path string, opts ParseOptions) (model.ResultSet, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.ResultSet{}, fmt.Errorf("%w at %s", ErrNoResults, path)
		}
		return model.ResultSet{}, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseDocument(file, opts)
	}
	items, err := ParseItemsWithOptions(file, opts)
	if err != nil {
		return model.ResultSet{}, err
	}
	return model.ResultSet{Items: items}, nil
}

// LoadItemsFromFile reads items from a JSONL file.
func LoadItemsFromFile(path string) ([]model.Item, error) {
	rs, err := LoadResultSet(path, ParseOptions{})
	return rs.Items, err
}

// ParseItems parses JSONL content from a reader into items.
func ParseItems(r io.Reader) ([]model.Item, error) {
	return ParseItemsWithOptions(r, ParseOptions{})
}

// ParseItemsWithOptions parses JSONL content. It handles a UTF-8 BOM,
// overlong lines, malformed JSON, invalid items and duplicate IDs; each of
// these is skipped with a warning.
func ParseItemsWithOptions(r io.Reader, opts ParseOptions) ([]model.Item, error) {
	maxCapacity := opts.BufferSize
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxBufferSize
	}
	reader := bufio.NewReaderSize(r, maxCapacity)
	warn := opts.warn()

	var items []model.Item
	seen := make(map[string]int)
	lineNum := 0
	for {
		lineNum++
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading results stream at line %d: %w", lineNum, err)
		}

		if isPrefix {
			warn(fmt.Sprintf("skipping line %d: line too long (exceeds %d bytes)", lineNum, maxCapacity))
			for isPrefix {
				_, isPrefix, err = reader.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					return nil, fmt.Errorf("error skipping long line at line %d: %w", lineNum, err)
				}
			}
			continue
		}

		if lineNum == 1 {
			line = stripBOM(line)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var item model.Item
		if err := json.Unmarshal(line, &item); err != nil {
			warn(fmt.Sprintf("skipping malformed JSON on line %d: %v", lineNum, err))
			continue
		}
		if accept(&item, lineNum, seen, opts, warn) {
			items = append(items, item)
		}
	}
	return items, nil
}

// ParseDocument parses a single {"query", "items"} JSON document.
func ParseDocument(r io.Reader, opts ParseOptions) (model.ResultSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.ResultSet{}, fmt.Errorf("reading results document: %w", err)
	}
	data = stripBOM(data)

	var raw struct {
		Query string            `json:"query"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.ResultSet{}, fmt.Errorf("parsing results document: %w", err)
	}

	warn := opts.warn()
	seen := make(map[string]int)
	rs := model.ResultSet{Query: raw.Query}
	for i, msg := range raw.Items {
		var item model.Item
		if err := json.Unmarshal(msg, &item); err != nil {
			warn(fmt.Sprintf("skipping malformed item %d: %v", i+1, err))
			continue
		}
		if accept(&item, i+1, seen, opts, warn) {
			rs.Items = append(rs.Items, item)
		}
	}
	return rs, nil
}

func accept(item *model.Item, pos int, seen map[string]int, opts ParseOptions, warn func(string)) bool {
	item.ID = strings.TrimSpace(item.ID)
	if err := item.Validate(); err != nil {
		warn(fmt.Sprintf("skipping invalid item at %d: %v", pos, err))
		return false
	}
	if first, dup := seen[item.ID]; dup {
		warn(fmt.Sprintf("skipping duplicate item %s at %d (first seen at %d)", item.ID, pos, first))
		return false
	}
	if opts.ItemFilter != nil && !opts.ItemFilter(item) {
		return false
	}
	seen[item.ID] = pos
	return true
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}
