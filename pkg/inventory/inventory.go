package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Page is one generated page as recorded in the inventory. The
// sitemap is built from these rows, and rows not refreshed by the
// current run are pruned afterwards.
type Page struct {
	Slug       string
	DocType    string
	Path       string
	Canonical  string
	Title      string
	ChangeFreq string
	Priority   string
	LastMod    time.Time
}

// SetupSchema initializes the inventory table in the provided
// database. It is idempotent and safe to call on an
// already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaPages = `
CREATE TABLE IF NOT EXISTS inventory_pages (
    slug TEXT PRIMARY KEY,
    doc_type TEXT NOT NULL,
    path TEXT NOT NULL,
    canonical TEXT NOT NULL,
    title TEXT NOT NULL,
    changefreq TEXT NOT NULL DEFAULT 'weekly',
    priority TEXT NOT NULL DEFAULT '0.7',
    last_mod INTEGER NOT NULL
);
`
	if _, err := db.Exec(schemaPages); err != nil {
		return fmt.Errorf("failed to create inventory schema: %w", err)
	}
	return nil
}

// Store provides access to the page inventory over an initialized
// database. All methods are safe for concurrent use.
type Store struct {
	db         *sql.DB
	logger     *slog.Logger
	stmtRecord *sql.Stmt
	stmtPages  *sql.Stmt
	stmtPrune  *sql.Stmt
	stmtCount  *sql.Stmt
}

// NewStore prepares the inventory statements. SetupSchema must have
// run against the database first.
func NewStore(db *sql.DB, logger *slog.Logger) (*Store, error) {
	stmtRecord, err := db.Prepare(`
INSERT INTO inventory_pages (slug, doc_type, path, canonical, title, changefreq, priority, last_mod)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    doc_type = excluded.doc_type,
    path = excluded.path,
    canonical = excluded.canonical,
    title = excluded.title,
    changefreq = excluded.changefreq,
    priority = excluded.priority,
    last_mod = excluded.last_mod;`)
	if err != nil {
		return nil, err
	}

	stmtPages, err := db.Prepare(`
SELECT slug, doc_type, path, canonical, title, changefreq, priority, last_mod
FROM inventory_pages ORDER BY doc_type, slug;`)
	if err != nil {
		return nil, err
	}

	stmtPrune, err := db.Prepare(`DELETE FROM inventory_pages WHERE last_mod < ?;`)
	if err != nil {
		return nil, err
	}

	stmtCount, err := db.Prepare(`SELECT COUNT(*) FROM inventory_pages;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		logger:     logger,
		stmtRecord: stmtRecord,
		stmtPages:  stmtPages,
		stmtPrune:  stmtPrune,
		stmtCount:  stmtCount,
	}, nil
}

// Close releases the prepared statements. The *sql.DB itself belongs
// to the caller.
func (s *Store) Close() {
	_ = s.stmtRecord.Close()
	_ = s.stmtPages.Close()
	_ = s.stmtPrune.Close()
	_ = s.stmtCount.Close()
}

// Record upserts one generated page, keyed by slug.
func (s *Store) Record(ctx context.Context, p Page) error {
	changefreq := p.ChangeFreq
	if changefreq == "" {
		changefreq = "weekly"
	}
	priority := p.Priority
	if priority == "" {
		priority = "0.7"
	}
	_, err := s.stmtRecord.ExecContext(ctx,
		p.Slug, p.DocType, p.Path, p.Canonical, p.Title, changefreq, priority, p.LastMod.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to record page %q: %w", p.Slug, err)
	}
	return nil
}

// Pages returns every recorded page, ordered by document type then
// slug so sitemap output is deterministic.
func (s *Store) Pages(ctx context.Context) ([]Page, error) {
	rows, err := s.stmtPages.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var pages []Page
	for rows.Next() {
		var p Page
		var lastMod int64
		if err = rows.Scan(&p.Slug, &p.DocType, &p.Path, &p.Canonical, &p.Title, &p.ChangeFreq, &p.Priority, &lastMod); err != nil {
			return nil, err
		}
		p.LastMod = time.Unix(lastMod, 0).UTC()
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// PruneBefore removes pages last touched before cutoff, i.e. pages
// that no longer exist in the input data and were not regenerated by
// the current run. It returns the number of pages removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.stmtPrune.ExecContext(ctx, cutoff.UTC().Unix())
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "Pruned stale pages from inventory", "count", removed)
	}
	return removed, nil
}

// Count returns the number of recorded pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.stmtCount.QueryRowContext(ctx).Scan(&n)
	return n, err
}
