package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// SchemaVersion is stored in the meta table of written databases.
const SchemaVersion = 1

const trendsSchema = `
	CREATE TABLE IF NOT EXISTS trends (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		readiness_level INTEGER NOT NULL,
		business_readiness INTEGER NOT NULL,
		impact TEXT NOT NULL,
		time_horizon TEXT NOT NULL,
		angle REAL NOT NULL,
		radius REAL NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		last_updated TEXT NOT NULL DEFAULT ''
	)
`

const metaSchema = `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)
`

// SQLiteReader provides read access to a trends database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTrends reads all trends in their stored order. Enumeration values and
// dates decode through the same text forms as the file formats.
func (r *SQLiteReader) LoadTrends() ([]model.Trend, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, category, readiness_level, business_readiness,
			impact, time_horizon, angle, radius, tags, last_updated
		FROM trends
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query trends in %s: %w", r.path, err)
	}
	defer rows.Close()

	var trends []model.Trend
	for rows.Next() {
		var (
			t                              model.Trend
			category, impact, horizon, day string
			tags                           sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &category, &t.ReadinessLevel,
			&t.BusinessReadiness, &impact, &horizon, &t.Angle, &t.Radius, &tags, &day); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		t.Category = model.ParseCategory(category)
		t.Impact = model.ParseImpact(impact)
		t.TimeHorizon = model.ParseTimeHorizon(horizon)
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &t.Tags); err != nil {
				return nil, fmt.Errorf("trend %s: decoding tags: %w", t.ID, err)
			}
		}
		if t.LastUpdated, err = model.ParseDate(day); err != nil {
			return nil, fmt.Errorf("trend %s: %w", t.ID, err)
		}
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trends: %w", err)
	}
	return trends, nil
}

// SaveSQLite writes trends to a fresh database at path, replacing any
// existing file.
func SaveSQLite(path string, trends []model.Trend) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	for _, stmt := range []string{trendsSchema, metaSchema} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO trends (id, position, name, description, category, readiness_level,
			business_readiness, impact, time_horizon, angle, radius, tags, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range trends {
		tags, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("trend %s: encoding tags: %w", t.ID, err)
		}
		if _, err := stmt.Exec(t.ID, i, t.Name, t.Description, t.Category.String(),
			t.ReadinessLevel, t.BusinessReadiness, t.Impact.String(), t.TimeHorizon.String(),
			t.Angle, t.Radius, string(tags), t.LastUpdated.String()); err != nil {
			return fmt.Errorf("insert trend %s: %w", t.ID, err)
		}
	}

	meta := map[string]string{
		"schema_version": fmt.Sprint(SchemaVersion),
		"exported_at":    time.Now().UTC().Format(time.RFC3339),
		"trend_count":    fmt.Sprint(len(trends)),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
