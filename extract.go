package ragcontent

import (
	"context"
	"time"
)

// ContentAreaUnknown is reported when no content-area classification is
// available for a page.
const ContentAreaUnknown = "unknown"

// ArticleType pairs an article-type classification code with its
// human-readable label.
type ArticleType struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Classifier is an optional external capability attaching article-type and
// content-area classifications to pages. Components hold it as a nilable
// reference: a nil Classifier means the capability is absent, the
// article-type check is skipped and content area defaults to
// ContentAreaUnknown. Lookups are by page, never cached.
type Classifier interface {
	ArticleType(ctx context.Context, page *Page) (ArticleType, error)
	ContentArea(ctx context.Context, page *Page) (string, error)
}

// ExtractionResult is the structured plain-text representation of one
// page's rendered content, returned to the external indexing service. It is
// constructed fresh per request and never persisted.
type ExtractionResult struct {
	PageID      int64       `json:"page_id"`
	Title       string      `json:"title"`
	Namespace   int         `json:"namespace"`
	URL         string      `json:"url"`
	ArticleType ArticleType `json:"article_type"`
	ContentArea string      `json:"content_area"`

	// Summary is the plain-text lead section, empty when the page has none.
	Summary string `json:"summary"`

	// Content is the plain-text body with anchors reformatted and
	// entities decoded.
	Content string `json:"content"`

	// ContentHTML is the cleaned HTML the plain text was derived from.
	ContentHTML string `json:"content_html"`

	// ContentHash is a stable hash of Content, letting pull consumers
	// detect unchanged pages cheaply.
	ContentHash string `json:"content_hash"`

	Categories   []string  `json:"categories"`
	RevisionID   int64     `json:"revision_id"`
	RevisionDate time.Time `json:"revision_date"`
}

// Extractor builds an ExtractionResult from a page's rendered content.
// Extraction is a pure transformation: running it twice over the same
// rendered content yields an identical result.
type Extractor interface {
	Extract(ctx context.Context, page *Page) (*ExtractionResult, error)
}
