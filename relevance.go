package ragcontent

import (
	"context"
	"regexp"
	"slices"
)

// ExcludeMarkerProp is the page property recording that the page carries
// the in-text exclude directive. It is set by the rendering pipeline when
// the directive is recognized and queried here through a PropertyService.
const ExcludeMarkerProp = "ragcontent_exclude"

// ExcludeTrackingCategory is the hidden category attached to pages carrying
// the exclude directive, so excluded pages remain auditable.
const ExcludeTrackingCategory = "Pages excluded from the chatbot"

// excludeDirectiveRE matches the reserved in-text switch. The token is
// case-insensitive and tolerates the underscore-separated spelling.
var excludeDirectiveRE = regexp.MustCompile(`(?i)__NO_?RAG__`)

// HasExcludeDirective reports whether the given wikitext carries the
// reserved exclude-from-indexing directive (__NORAG__).
func HasExcludeDirective(wikitext string) bool {
	return excludeDirectiveRE.MatchString(wikitext)
}

// IsAllowedNamespace reports whether nsID is a member of the configured
// allowed-namespace set. It is independently callable: the page-move
// handler consults it for both ends of a move without evaluating the rest
// of the relevance policy.
func IsAllowedNamespace(cfg *Config, nsID int) bool {
	return slices.Contains(cfg.Namespaces, nsID)
}

// RelevanceFilter decides whether a page qualifies for inclusion in the
// external RAG index. The decision is a pure function of the page snapshot,
// the configuration and the optional capabilities; there is no hidden state
// and no caching.
//
// Classifier and Props are optional. A nil Classifier skips the
// article-type blocklist check; a nil Props skips the exclude-marker check.
type RelevanceFilter struct {
	Config     *Config
	Classifier Classifier
	Props      PropertyService
}

// IsRelevant reports whether the page qualifies for indexing.
//
// A page fails outright when it does not exist, is a redirect, is not
// written in the wiki's content language, or does not hold wikitext. An
// allowlisted title is immediately relevant. Otherwise the page must be in
// an allowed namespace (unless ignoreNamespaceCheck is set), must not have
// a blocklisted article type, and must not carry the exclude marker.
//
// Capability lookup failures are returned as errors rather than silently
// deciding either way.
func (f *RelevanceFilter) IsRelevant(ctx context.Context, page *Page, ignoreNamespaceCheck bool) (bool, error) {
	if page == nil || !page.Exists || page.IsRedirect ||
		page.Language != f.Config.ContentLanguage || !page.IsWikitext {
		return false, nil
	}

	if slices.Contains(f.Config.TitleAllowlist, page.Title) {
		return true, nil
	}

	if !ignoreNamespaceCheck && !IsAllowedNamespace(f.Config, page.Namespace) {
		return false, nil
	}

	if f.Classifier != nil {
		at, err := f.Classifier.ArticleType(ctx, page)
		if err != nil {
			return false, Errorf(EINTERNAL, "article type lookup for page %d: %v", page.ID, err)
		}
		if slices.Contains(f.Config.ArticleTypeBlocklist, at.Code) {
			return false, nil
		}
	}

	if f.Props != nil {
		excluded, err := f.Props.HasProperty(ctx, page.ID, ExcludeMarkerProp)
		if err != nil {
			return false, Errorf(EINTERNAL, "exclude marker lookup for page %d: %v", page.ID, err)
		}
		if excluded {
			return false, nil
		}
	}

	return true, nil
}
