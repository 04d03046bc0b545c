// Package goquery implements content extraction over rendered wiki HTML
// using goquery/cascadia CSS selection.
package goquery

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/shaulkr/ragcontent"
)

// Ensure Extractor implements ragcontent.Extractor at compile time.
var _ ragcontent.Extractor = (*Extractor)(nil)

// summarySelector locates the lead section of a rendered page.
const summarySelector = ".article-summary"

// clutterSelectors match presentational and navigational elements with no
// semantic value for indexing. Absence of a match is not an error.
var clutterSelectors = []string{".share-links", ".toc-box", ".maps-map"}

// commentRE strips HTML comments before DOM parsing. Comments in rendered
// wiki HTML may contain unbalanced markup that a parser would mishandle, so
// this runs as a textual pass first. Known approximation: a literal "-->"
// inside a pre or code block terminates the match early.
var commentRE = regexp.MustCompile(`<!--[\s\S]*?-->`)

// Extractor turns a page's rendered HTML into a plain-text extraction
// result. Each call builds its own working document; the extractor holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	pages      ragcontent.PageService
	classifier ragcontent.Classifier // optional, may be nil
}

// NewExtractor creates an Extractor. Pass a nil classifier when no
// article-type/content-area capability is available.
func NewExtractor(pages ragcontent.PageService, classifier ragcontent.Classifier) *Extractor {
	return &Extractor{pages: pages, classifier: classifier}
}

// Extract resolves the page's current revision, renders it and transforms
// the rendered HTML into an ExtractionResult. It never returns a partial
// result: any resolution, rendering or classification failure fails the
// whole operation.
func (e *Extractor) Extract(ctx context.Context, page *ragcontent.Page) (*ragcontent.ExtractionResult, error) {
	rev, err := e.pages.CurrentRevision(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	rendered, err := e.pages.RenderPage(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(commentRE.ReplaceAllString(rendered.HTML, "")))
	if err != nil {
		return nil, ragcontent.Errorf(ragcontent.EINTERNAL, "parse rendered HTML for page %d: %v", page.ID, err)
	}

	// Capture the lead section before removing it from the tree.
	var summaryHTML string
	if sel := doc.Find(summarySelector); sel.Length() > 0 {
		summaryHTML, err = goquery.OuterHtml(sel.First())
		if err != nil {
			return nil, ragcontent.Errorf(ragcontent.EINTERNAL, "serialize summary for page %d: %v", page.ID, err)
		}
		sel.Remove()
	}

	for _, s := range clutterSelectors {
		doc.Find(s).Remove()
	}

	pruneEmptyElements(doc)

	contentHTML, err := doc.Find("body").Html()
	if err != nil {
		return nil, ragcontent.Errorf(ragcontent.EINTERNAL, "serialize content for page %d: %v", page.ID, err)
	}
	contentHTML = strings.TrimSpace(contentHTML)

	// Entities are decoded before the plain-text pass; contentHTML keeps
	// them encoded.
	content := htmlToText(html.UnescapeString(contentHTML))
	summary := htmlToText(summaryHTML)

	articleType := ragcontent.ArticleType{}
	contentArea := ragcontent.ContentAreaUnknown
	if e.classifier != nil {
		articleType, err = e.classifier.ArticleType(ctx, page)
		if err != nil {
			return nil, ragcontent.Errorf(ragcontent.EINTERNAL, "article type lookup for page %d: %v", page.ID, err)
		}
		area, err := e.classifier.ContentArea(ctx, page)
		if err != nil {
			return nil, ragcontent.Errorf(ragcontent.EINTERNAL, "content area lookup for page %d: %v", page.ID, err)
		}
		if area != "" {
			contentArea = area
		}
	}

	return &ragcontent.ExtractionResult{
		PageID:       page.ID,
		Title:        page.Title,
		Namespace:    page.Namespace,
		URL:          decodeURL(page.URL),
		ArticleType:  articleType,
		ContentArea:  contentArea,
		Summary:      summary,
		Content:      content,
		ContentHTML:  contentHTML,
		ContentHash:  hashContent(content),
		Categories:   rendered.VisibleCategories(),
		RevisionID:   rev.ID,
		RevisionDate: rev.Timestamp,
	}, nil
}

// pruneEmptyElements removes elements that have no child elements, no
// attributes and no non-whitespace text. Removing a leaf can orphan a
// newly-empty ancestor, so passes repeat until a fixed point.
func pruneEmptyElements(doc *goquery.Document) {
	for {
		removed := false
		doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
			n := sel.Nodes[0]
			if n.Parent == nil {
				return // detached earlier in this pass
			}
			if len(n.Attr) > 0 || hasElementChild(n) {
				return
			}
			if strings.TrimSpace(sel.Text()) != "" {
				return
			}
			sel.Remove()
			removed = true
		})
		if !removed {
			return
		}
	}
}

// decodeURL percent-decodes a page URL for readability in the result.
// Returns the input unchanged when it does not decode cleanly.
func decodeURL(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// hashContent computes xxHash of content and returns it as a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}
