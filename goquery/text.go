package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// htmlToText converts an HTML fragment to plain text. Anchors are
// reformatted before generic tag stripping, or their targets would be lost:
//
//   - an anchor whose text equals its own mailto:/tel: target becomes
//     "(target)" with the scheme dropped;
//   - every other anchor becomes "text (decoded-url)", with a mailto:
//     prefix dropped and the remainder percent-decoded.
//
// The result is trimmed of leading and trailing whitespace.
func htmlToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		reformatAnchor(a)
	})

	return strings.TrimSpace(doc.Find("body").Text())
}

// reformatAnchor replaces an anchor element with its plain-text rendering.
// Anchors without an href contribute their text only.
func reformatAnchor(a *goquery.Selection) {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	text := a.Text()
	if href == "" {
		return
	}

	// Self-referential contact links: the link text is the address itself.
	for _, scheme := range []string{"mailto:", "tel:"} {
		if target, ok := cutPrefixFold(href, scheme); ok && text == target {
			replaceWithText(a, "("+target+")")
			return
		}
	}

	u := href
	if rest, ok := cutPrefixFold(u, "mailto:"); ok {
		u = rest
	}
	if decoded, err := url.QueryUnescape(u); err == nil {
		u = decoded
	}
	replaceWithText(a, text+" ("+u+")")
}

// cutPrefixFold is strings.CutPrefix with ASCII case-insensitive matching.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func replaceWithText(sel *goquery.Selection, text string) {
	sel.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: text})
}

// hasElementChild reports whether n has at least one element child.
func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}
