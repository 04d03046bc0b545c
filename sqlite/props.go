package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shaulkr/ragcontent"
)

// Property names written by the classification gadgets on the wiki side.
const (
	articleTypeProp = "articletype"
	contentAreaProp = "articlecontentarea"
)

// Ensure services implement interfaces.
var (
	_ ragcontent.PropertyService = (*PropertyService)(nil)
	_ ragcontent.Classifier      = (*Classifier)(nil)
)

// PropertyService is a SQLite implementation of ragcontent.PropertyService
// over the page_props table.
type PropertyService struct {
	db *DB
}

// NewPropertyService creates a new PropertyService with the given database.
func NewPropertyService(db *DB) *PropertyService {
	return &PropertyService{db: db}
}

// HasProperty reports whether the page carries the named property.
func (s *PropertyService) HasProperty(ctx context.Context, pageID int64, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM page_props WHERE page_id = ? AND name = ?
	`, pageID, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up property %q of page %d: %w", name, pageID, err)
	}
	return true, nil
}

// SetProperty stores a property value on a page, replacing any previous one.
func (s *PropertyService) SetProperty(ctx context.Context, pageID int64, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_props (page_id, name, value)
		VALUES (?, ?, ?)
		ON CONFLICT (page_id, name) DO UPDATE SET value = excluded.value
	`, pageID, name, value)
	if err != nil {
		return fmt.Errorf("failed to set property %q on page %d: %w", name, pageID, err)
	}
	return nil
}

// Classifier is a SQLite implementation of ragcontent.Classifier reading the
// article-type and content-area classifications from page properties.
type Classifier struct {
	db *DB
}

// NewClassifier creates a new Classifier with the given database.
func NewClassifier(db *DB) *Classifier {
	return &Classifier{db: db}
}

// ArticleType returns the page's article-type classification. A page with no
// classification yields the zero ArticleType.
func (c *Classifier) ArticleType(ctx context.Context, page *ragcontent.Page) (ragcontent.ArticleType, error) {
	code, err := c.propValue(ctx, page.ID, articleTypeProp)
	if err != nil {
		return ragcontent.ArticleType{}, err
	}
	if code == "" {
		return ragcontent.ArticleType{}, nil
	}
	return ragcontent.ArticleType{Code: code, Label: labelForCode(code)}, nil
}

// ContentArea returns the page's content-area classification, or the empty
// string when the page has none.
func (c *Classifier) ContentArea(ctx context.Context, page *ragcontent.Page) (string, error) {
	return c.propValue(ctx, page.ID, contentAreaProp)
}

func (c *Classifier) propValue(ctx context.Context, pageID int64, name string) (string, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `
		SELECT value FROM page_props WHERE page_id = ? AND name = ?
	`, pageID, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up property %q of page %d: %w", name, pageID, err)
	}
	return value, nil
}

// labelForCode derives a display label from a classification code. The wiki
// resolves labels through its message system; the store keeps only codes, so
// the label is a readable rendering of the code.
func labelForCode(code string) string {
	label := strings.ReplaceAll(code, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
