package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) (context.Context, *Store) {
	t.Helper()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewStore(db, logger)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(store.Close)

	return context.Background(), store
}

func testPage(slug string, lastMod time.Time) Page {
	return Page{
		Slug:      slug,
		DocType:   "articles",
		Path:      "articles/" + slug + ".html",
		Canonical: "https://gcctaxlaws.com/articles/" + slug,
		Title:     "Article " + slug,
		LastMod:   lastMod,
	}
}

func TestRecordAndPages(t *testing.T) {
	ctx, store := setupTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	if err := store.Record(ctx, testPage("uae-cit-article-1", now)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	pages, err := store.Pages(ctx)
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}

	p := pages[0]
	if p.Slug != "uae-cit-article-1" || p.DocType != "articles" {
		t.Errorf("unexpected page: %+v", p)
	}
	if !p.LastMod.Equal(now) {
		t.Errorf("LastMod = %v, want %v", p.LastMod, now)
	}
	if p.ChangeFreq != "weekly" || p.Priority != "0.7" {
		t.Errorf("defaults not applied: changefreq=%q priority=%q", p.ChangeFreq, p.Priority)
	}
}

func TestRecordUpsertsBySlug(t *testing.T) {
	ctx, store := setupTestStore(t)
	now := time.Now().UTC()

	if err := store.Record(ctx, testPage("slug-1", now.Add(-time.Hour))); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	updated := testPage("slug-1", now)
	updated.Title = "Updated title"
	if err := store.Record(ctx, updated); err != nil {
		t.Fatalf("Record (upsert) failed: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1 after upsert", n)
	}

	pages, _ := store.Pages(ctx)
	if pages[0].Title != "Updated title" {
		t.Errorf("Title = %q, upsert did not replace the row", pages[0].Title)
	}
}

func TestPruneBefore(t *testing.T) {
	ctx, store := setupTestStore(t)
	now := time.Now().UTC()

	if err := store.Record(ctx, testPage("stale", now.Add(-48*time.Hour))); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record(ctx, testPage("fresh", now)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	removed, err := store.PruneBefore(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	pages, _ := store.Pages(ctx)
	if len(pages) != 1 || pages[0].Slug != "fresh" {
		t.Errorf("unexpected surviving pages: %+v", pages)
	}
}
