package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/podgraph/pkg/debug"
)

// SaveAll writes base once per format into dir, naming each file
// <name>.<format>. Formats are written concurrently; the first failure
// cancels the rest. It returns the written paths in format order.
func SaveAll(ctx context.Context, dir, name string, formats []Format, base Options) ([]string, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: none selected", ErrUnsupportedFormat)
	}
	parsed := make([]Format, len(formats))
	for i, raw := range formats {
		f, err := ParseFormat(string(raw))
		if err != nil {
			return nil, err
		}
		parsed[i] = f
	}

	paths := make([]string, len(parsed))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range parsed {
		f := f
		opts := base
		opts.Format = f
		opts.Path = PathFor(dir, name, f)
		paths[i] = opts.Path

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := Save(opts); err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}
			debug.LogTiming("export "+string(f), time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// PathFor is the file SaveAll writes for format f.
func PathFor(dir, name string, f Format) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "podgraph"
	}
	return filepath.Join(dir, name+"."+string(f))
}
