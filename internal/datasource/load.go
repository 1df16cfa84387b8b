package datasource

import (
	"fmt"
	"os"

	"github.com/vanderheijden86/podgraph/pkg/debug"
	"github.com/vanderheijden86/podgraph/pkg/loader"
	"github.com/vanderheijden86/podgraph/pkg/metrics"
	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Load reads a result set from path. A directory is searched for sources
// and the freshest valid one wins; a file is read according to its
// extension.
func Load(path string, opts loader.ParseOptions) (model.ResultSet, DataSource, error) {
	defer metrics.Timer(metrics.ResultSetLoad)()
	info, err := os.Stat(path)
	if err != nil {
		return model.ResultSet{}, DataSource{}, fmt.Errorf("%w: %v", loader.ErrNoResults, err)
	}

	var src DataSource
	if info.IsDir() {
		sources, err := DiscoverSources(path, DiscoveryOptions{
			ValidateAfterDiscovery: true,
			Logger:                 func(msg string) { debug.Log("%s", msg) },
		})
		if err != nil {
			return model.ResultSet{}, DataSource{}, err
		}
		if src, err = SelectBestSource(sources); err != nil {
			return model.ResultSet{}, DataSource{}, fmt.Errorf("%w in %s: %v", loader.ErrNoResults, path, err)
		}
	} else if src, err = NewSource(path); err != nil {
		return model.ResultSet{}, DataSource{}, err
	}

	debug.Log("loading result set from %s", src)
	rs, err := LoadFromSource(src, opts)
	return rs, src, err
}

// LoadFromSource loads a result set from a specific DataSource, dispatching
// to the appropriate reader based on source type.
func LoadFromSource(source DataSource, opts loader.ParseOptions) (model.ResultSet, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return model.ResultSet{}, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadResultSet()

	case SourceTypeJSONL, SourceTypeJSON:
		return loader.LoadResultSet(source.Path, opts)

	default:
		return model.ResultSet{}, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
