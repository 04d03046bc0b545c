package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shaulkr/ragcontent"
)

// Ensure service implements interface.
var _ ragcontent.PermissionChecker = (*PermissionChecker)(nil)

// PermissionChecker is a SQLite implementation of
// ragcontent.PermissionChecker. Pages are world-readable unless marked
// restricted, in which case the actor needs an explicit read grant.
type PermissionChecker struct {
	db *DB
}

// NewPermissionChecker creates a new PermissionChecker with the given
// database.
func NewPermissionChecker(db *DB) *PermissionChecker {
	return &PermissionChecker{db: db}
}

// CanRead reports whether the actor may read the page. The empty actor is
// the anonymous reader and can only read unrestricted pages.
func (s *PermissionChecker) CanRead(ctx context.Context, actor string, page *ragcontent.Page) (bool, error) {
	if page == nil {
		return false, nil
	}

	var restricted bool
	err := s.db.QueryRowContext(ctx, `
		SELECT is_restricted FROM pages WHERE id = ?
	`, page.ID).Scan(&restricted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check restriction of page %d: %w", page.ID, err)
	}
	if !restricted {
		return true, nil
	}
	if actor == "" {
		return false, nil
	}

	var one int
	err = s.db.QueryRowContext(ctx, `
		SELECT 1 FROM read_grants WHERE page_id = ? AND actor = ?
	`, page.ID, actor).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check read grant of page %d: %w", page.ID, err)
	}
	return true, nil
}

// RestrictPage marks a page as readable only by actors holding a grant.
func (s *PermissionChecker) RestrictPage(ctx context.Context, pageID int64, restricted bool) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE pages SET is_restricted = ? WHERE id = ?
	`, restricted, pageID); err != nil {
		return fmt.Errorf("failed to restrict page %d: %w", pageID, err)
	}
	return nil
}

// GrantRead allows an actor to read a restricted page.
func (s *PermissionChecker) GrantRead(ctx context.Context, pageID int64, actor string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO read_grants (page_id, actor)
		VALUES (?, ?)
		ON CONFLICT (page_id, actor) DO NOTHING
	`, pageID, actor); err != nil {
		return fmt.Errorf("failed to grant read on page %d to %q: %w", pageID, actor, err)
	}
	return nil
}
