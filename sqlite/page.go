package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shaulkr/ragcontent"
)

// Ensure service implements interface.
var _ ragcontent.PageService = (*PageService)(nil)

// PageService is a SQLite implementation of ragcontent.PageService. It also
// carries the write side used to seed and maintain the store: page upserts,
// revision saves and category updates.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService with the given database.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// FindPageByID retrieves a page snapshot by ID.
// Returns ENOTFOUND if no such page exists.
func (s *PageService) FindPageByID(ctx context.Context, id int64) (*ragcontent.Page, error) {
	var page ragcontent.Page
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, namespace, language, is_wikitext, is_redirect, url
		FROM pages
		WHERE id = ?
	`, id).Scan(
		&page.ID,
		&page.Title,
		&page.Namespace,
		&page.Language,
		&page.IsWikitext,
		&page.IsRedirect,
		&page.URL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ragcontent.Errorf(ragcontent.ENOTFOUND, "page %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find page %d: %w", id, err)
	}
	page.Exists = true
	return &page, nil
}

// CurrentRevision resolves the current revision of a page.
// Returns ENOTFOUND if the page has no renderable revision.
func (s *PageService) CurrentRevision(ctx context.Context, pageID int64) (*ragcontent.Revision, error) {
	var (
		rev ragcontent.Revision
		ts  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, page_id, created_at
		FROM revisions
		WHERE page_id = ? AND is_current = 1
	`, pageID).Scan(&rev.ID, &rev.PageID, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ragcontent.Errorf(ragcontent.ENOTFOUND, "page %d has no current revision", pageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current revision of page %d: %w", pageID, err)
	}
	rev.Timestamp, err = time.Parse(time.RFC3339, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse revision timestamp: %w", err)
	}
	return &rev, nil
}

// RenderPage returns the rendered content of the page's current revision.
// Returns ENOTFOUND if the page has no renderable revision.
func (s *PageService) RenderPage(ctx context.Context, pageID int64) (*ragcontent.RenderedContent, error) {
	var html string
	err := s.db.QueryRowContext(ctx, `
		SELECT html
		FROM revisions
		WHERE page_id = ? AND is_current = 1
	`, pageID).Scan(&html)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ragcontent.Errorf(ragcontent.ENOTFOUND, "page %d has no current revision", pageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageID, err)
	}

	cats, err := s.pageCategories(ctx, pageID)
	if err != nil {
		return nil, err
	}

	return &ragcontent.RenderedContent{HTML: html, Categories: cats}, nil
}

func (s *PageService) pageCategories(ctx context.Context, pageID int64) ([]ragcontent.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, hidden
		FROM categories
		WHERE page_id = ?
		ORDER BY position, name
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories of page %d: %w", pageID, err)
	}
	defer rows.Close()

	var cats []ragcontent.Category
	for rows.Next() {
		var c ragcontent.Category
		if err := rows.Scan(&c.Name, &c.Hidden); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return cats, nil
}

// ListPageIDs returns the IDs of all stored pages in ascending order.
func (s *PageService) ListPageIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM pages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan page id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return ids, nil
}

// UpsertPage inserts or updates a page's metadata row.
func (s *PageService) UpsertPage(ctx context.Context, page *ragcontent.Page) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, title, namespace, language, is_wikitext, is_redirect, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			namespace = excluded.namespace,
			language = excluded.language,
			is_wikitext = excluded.is_wikitext,
			is_redirect = excluded.is_redirect,
			url = excluded.url
	`, page.ID, page.Title, page.Namespace, page.Language,
		page.IsWikitext, page.IsRedirect, page.URL)
	if err != nil {
		return fmt.Errorf("failed to upsert page %d: %w", page.ID, err)
	}
	return nil
}

// SaveRevision stores a new current revision of a page, demoting the
// previous one. The wikitext is scanned for the in-text exclude directive:
// when present the exclude marker property is set and the hidden tracking
// category attached, when absent both are removed.
func (s *PageService) SaveRevision(ctx context.Context, pageID int64, wikitext, html string, ts time.Time) (*ragcontent.Revision, error) {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE revisions SET is_current = 0 WHERE page_id = ?
	`, pageID); err != nil {
		return nil, fmt.Errorf("failed to demote revisions of page %d: %w", pageID, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO revisions (page_id, created_at, html, is_current)
		VALUES (?, ?, ?, 1)
	`, pageID, ts.UTC().Format(time.RFC3339), html)
	if err != nil {
		return nil, fmt.Errorf("failed to save revision of page %d: %w", pageID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision id: %w", err)
	}

	if err := s.applyExcludeDirective(ctx, pageID, wikitext); err != nil {
		return nil, err
	}

	return &ragcontent.Revision{ID: id, PageID: pageID, Timestamp: ts.UTC()}, nil
}

func (s *PageService) applyExcludeDirective(ctx context.Context, pageID int64, wikitext string) error {
	if ragcontent.HasExcludeDirective(wikitext) {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO page_props (page_id, name, value)
			VALUES (?, ?, '1')
			ON CONFLICT (page_id, name) DO NOTHING
		`, pageID, ragcontent.ExcludeMarkerProp); err != nil {
			return fmt.Errorf("failed to set exclude marker on page %d: %w", pageID, err)
		}
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO categories (page_id, name, hidden, position)
			VALUES (?, ?, 1, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories WHERE page_id = ?))
			ON CONFLICT (page_id, name) DO NOTHING
		`, pageID, ragcontent.ExcludeTrackingCategory, pageID); err != nil {
			return fmt.Errorf("failed to attach tracking category to page %d: %w", pageID, err)
		}
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM page_props WHERE page_id = ? AND name = ?
	`, pageID, ragcontent.ExcludeMarkerProp); err != nil {
		return fmt.Errorf("failed to clear exclude marker on page %d: %w", pageID, err)
	}
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE page_id = ? AND name = ?
	`, pageID, ragcontent.ExcludeTrackingCategory); err != nil {
		return fmt.Errorf("failed to detach tracking category from page %d: %w", pageID, err)
	}
	return nil
}

// SetCategories replaces the page's categories, preserving the given order.
// The exclude tracking category is managed by SaveRevision and left intact.
func (s *PageService) SetCategories(ctx context.Context, pageID int64, cats []ragcontent.Category) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE page_id = ? AND name <> ?
	`, pageID, ragcontent.ExcludeTrackingCategory); err != nil {
		return fmt.Errorf("failed to clear categories of page %d: %w", pageID, err)
	}
	for i, c := range cats {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO categories (page_id, name, hidden, position)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (page_id, name) DO UPDATE SET
				hidden = excluded.hidden,
				position = excluded.position
		`, pageID, c.Name, c.Hidden, i); err != nil {
			return fmt.Errorf("failed to set category %q on page %d: %w", c.Name, pageID, err)
		}
	}
	return nil
}

// DeletePage removes a page and, through cascading deletes, its revisions,
// categories, properties and grants.
func (s *PageService) DeletePage(ctx context.Context, pageID int64) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM pages WHERE id = ?
	`, pageID); err != nil {
		return fmt.Errorf("failed to delete page %d: %w", pageID, err)
	}
	return nil
}
