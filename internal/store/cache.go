// Package store provides a SQLite-backed cache for parsed report data.
//
// Cached records carry raw project names; cleaning rules are applied after
// load so that rule changes never invalidate the cache.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/dave-doty/aggie-unterprise/internal/model"
)

// Cache provides SQLite-backed report caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a report file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFiles returns a map of file_path -> FileInfo for all cached reports.
func (c *Cache) TrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM reports")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveSummary stores a parsed report and its file tracking info, replacing
// any previous entry for the same file.
func (c *Cache) SaveSummary(s model.Summary, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// RFC3339 keeps the local offset; converting to UTC here would shift
	// the calendar day for timestamps near midnight.
	reportDate := ""
	if !s.Date.IsZero() {
		reportDate = s.Date.Format(time.RFC3339)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO reports
		(file_path, report_date, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.FilePath, reportDate, mtimeNs, sizeBytes, now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec("DELETE FROM project_records WHERE file_path = ?", s.FilePath)
	if err != nil {
		return err
	}

	for i, r := range s.Records {
		_, err = tx.Exec(`INSERT INTO project_records
			(file_path, position, name, expenses, salary, travel, supplies,
			 fringe, fellowship, indirect, balance, budget)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.FilePath, i, r.Name, r.Expenses, r.Salary, r.Travel, r.Supplies,
			r.Fringe, r.Fellowship, r.Indirect, r.Balance, r.Budget,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSummaries reads all cached reports with their project records.
func (c *Cache) LoadSummaries() ([]model.Summary, error) {
	rows, err := c.db.Query("SELECT file_path, report_date FROM reports ORDER BY file_path")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.Summary
	for rows.Next() {
		var s model.Summary
		var dateStr sql.NullString
		if err := rows.Scan(&s.FilePath, &dateStr); err != nil {
			return nil, err
		}
		if dateStr.Valid && dateStr.String != "" {
			s.Date, _ = time.Parse(time.RFC3339, dateStr.String)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(summaries))
	for i, s := range summaries {
		idx[s.FilePath] = i
	}

	recRows, err := c.db.Query(`SELECT
		file_path, name, expenses, salary, travel, supplies,
		fringe, fellowship, indirect, balance, budget
		FROM project_records ORDER BY file_path, position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = recRows.Close() }()

	for recRows.Next() {
		var path string
		var r model.ProjectRecord
		err := recRows.Scan(&path, &r.Name, &r.Expenses, &r.Salary, &r.Travel,
			&r.Supplies, &r.Fringe, &r.Fellowship, &r.Indirect, &r.Balance, &r.Budget)
		if err != nil {
			return nil, err
		}
		if i, ok := idx[path]; ok {
			summaries[i].Records = append(summaries[i].Records, r)
		}
	}

	return summaries, recRows.Err()
}

// DeleteReport removes a report and its records.
func (c *Cache) DeleteReport(filePath string) error {
	_, err := c.db.Exec("DELETE FROM reports WHERE file_path = ?", filePath)
	return err
}

// ReportCount returns the number of cached reports.
func (c *Cache) ReportCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM reports").Scan(&count)
	return count, err
}
