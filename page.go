package ragcontent

import (
	"context"
	"time"
)

// Page is an immutable snapshot of a wiki page's metadata, resolved fresh
// for each operation and never cached across requests.
type Page struct {
	ID int64 `json:"id"`

	// Title is the full title text, including any namespace prefix.
	Title string `json:"title"`

	Namespace int `json:"namespace"`

	// Language is the page's content language code (e.g. "he").
	Language string `json:"language"`

	// IsWikitext reports whether the page holds wikitext content, as
	// opposed to scripts, media descriptions or other special content.
	IsWikitext bool `json:"isWikitext"`

	Exists     bool   `json:"exists"`
	IsRedirect bool   `json:"isRedirect"`
	URL        string `json:"url"`
}

// Revision identifies a concrete version of a page. A page has exactly one
// current revision at any time; extraction always operates on the current
// revision as resolved at request time.
type Revision struct {
	ID        int64     `json:"id"`
	PageID    int64     `json:"pageId"`
	Timestamp time.Time `json:"timestamp"`
}

// Category is a category attached to a page. Hidden categories are
// maintenance annotations excluded from reader-facing output.
type Category struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

// RenderedContent is the HTML produced by rendering a page's current
// revision, with table-of-contents and section-edit affordances disabled,
// plus the categories attached to the page in declaration order.
type RenderedContent struct {
	HTML       string     `json:"html"`
	Categories []Category `json:"categories"`
}

// VisibleCategories returns the names of non-hidden categories, preserving
// the page's category declaration order.
func (rc *RenderedContent) VisibleCategories() []string {
	names := make([]string, 0, len(rc.Categories))
	for _, c := range rc.Categories {
		if !c.Hidden {
			names = append(names, c.Name)
		}
	}
	return names
}

// PageService resolves pages, their current revisions and rendered content.
// Implementations stand in for the wiki storage and rendering engine.
type PageService interface {
	// FindPageByID retrieves a page snapshot by ID.
	// Returns ENOTFOUND if no such page exists.
	FindPageByID(ctx context.Context, id int64) (*Page, error)

	// CurrentRevision resolves the current revision of a page.
	// Returns ENOTFOUND if the page has no renderable revision.
	CurrentRevision(ctx context.Context, pageID int64) (*Revision, error)

	// RenderPage returns the rendered content of the page's current
	// revision. Returns ENOTFOUND if the page has no renderable revision.
	RenderPage(ctx context.Context, pageID int64) (*RenderedContent, error)
}

// PermissionChecker answers read-permission questions for an acting
// identity. The empty actor is the anonymous reader.
type PermissionChecker interface {
	CanRead(ctx context.Context, actor string, page *Page) (bool, error)
}

// PropertyService exposes the post-render property store keyed by page.
// The exclude marker set by the in-text directive is surfaced here.
type PropertyService interface {
	HasProperty(ctx context.Context, pageID int64, name string) (bool, error)
}
