package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/podgraph/pkg/model"
)

// Schema is the SQLite layout of a result set. Segment order is the rank
// column; relevance and connections are stored as in the item model.
const Schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT
);
CREATE TABLE IF NOT EXISTS segments (
	id           TEXT PRIMARY KEY,
	rank         INTEGER NOT NULL,
	title        TEXT NOT NULL,
	podcast      TEXT,
	duration     TEXT,
	description  TEXT,
	episode      TEXT,
	publish_date TEXT,
	transcript   TEXT,
	relevance    REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
	segment_id TEXT NOT NULL,
	tag        TEXT NOT NULL,
	position   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS connections (
	segment_id TEXT NOT NULL,
	target_id  TEXT NOT NULL,
	position   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tags_segment ON tags(segment_id);
CREATE INDEX IF NOT EXISTS idx_connections_segment ON connections(segment_id);
`

// SQLiteReader provides read access to a result set database
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA cache_size = -16000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		// Best effort: read-only handles may refuse some pragmas.
		_, _ = db.Exec(pragma)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadResultSet reads the query and every segment in rank order.
func (r *SQLiteReader) LoadResultSet() (model.ResultSet, error) {
	items, err := r.LoadItemsFiltered(nil)
	if err != nil {
		return model.ResultSet{}, err
	}
	return model.ResultSet{Query: r.query(), Items: items}, nil
}

// LoadItemsFiltered reads items matching the filter function
func (r *SQLiteReader) LoadItemsFiltered(filter func(*model.Item) bool) ([]model.Item, error) {
	rows, err := r.db.Query(`
		SELECT id, title, podcast, duration, description, episode,
		       publish_date, transcript, relevance
		FROM segments
		ORDER BY rank, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		var podcast, duration, description, episode, publishDate, transcript sql.NullString
		if err := rows.Scan(
			&it.ID, &it.Title, &podcast, &duration, &description, &episode,
			&publishDate, &transcript, &it.Relevance,
		); err != nil {
			continue
		}
		it.Podcast = podcast.String
		it.Duration = duration.String
		it.Description = description.String
		it.Episode = episode.String
		it.PublishDate = publishDate.String
		it.Transcript = transcript.String
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segments: %w", err)
	}

	rows.Close()

	out := items[:0]
	for i := range items {
		items[i].Tags = r.loadStrings(`SELECT tag FROM tags WHERE segment_id = ? ORDER BY position`, items[i].ID)
		items[i].Connections = r.loadStrings(`SELECT target_id FROM connections WHERE segment_id = ? ORDER BY position`, items[i].ID)
		if items[i].Validate() != nil {
			continue
		}
		if filter != nil && !filter(&items[i]) {
			continue
		}
		out = append(out, items[i])
	}
	return out, nil
}

// CountItems returns the number of stored segments
func (r *SQLiteReader) CountItems() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM segments").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// loadStrings is a best-effort helper that returns nil on any error.
func (r *SQLiteReader) loadStrings(query, id string) []string {
	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func (r *SQLiteReader) query() string {
	var q sql.NullString
	if err := r.db.QueryRow(`SELECT value FROM meta WHERE key = 'query'`).Scan(&q); err != nil {
		return ""
	}
	return q.String
}

// WriteSQLite stores rs in a fresh database at path, replacing any
// existing file.
func WriteSQLite(path string, rs model.ResultSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO meta(key, value) VALUES ('query', ?)`, rs.Query); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}
	for rank, it := range rs.Items {
		if _, err := tx.Exec(`
			INSERT INTO segments(id, rank, title, podcast, duration, description,
			                     episode, publish_date, transcript, relevance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, rank, it.Title, it.Podcast, it.Duration, it.Description,
			it.Episode, it.PublishDate, it.Transcript, it.Relevance,
		); err != nil {
			return fmt.Errorf("writing segment %s: %w", it.ID, err)
		}
		for pos, tag := range it.Tags {
			if _, err := tx.Exec(`INSERT INTO tags(segment_id, tag, position) VALUES (?, ?, ?)`, it.ID, tag, pos); err != nil {
				return fmt.Errorf("writing tag for %s: %w", it.ID, err)
			}
		}
		for pos, target := range it.Connections {
			if _, err := tx.Exec(`INSERT INTO connections(segment_id, target_id, position) VALUES (?, ?, ?)`, it.ID, target, pos); err != nil {
				return fmt.Errorf("writing connection for %s: %w", it.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
