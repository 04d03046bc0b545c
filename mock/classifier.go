package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of ragcontent.Classifier.
type Classifier struct {
	ArticleTypeFn func(ctx context.Context, page *ragcontent.Page) (ragcontent.ArticleType, error)
	ContentAreaFn func(ctx context.Context, page *ragcontent.Page) (string, error)
}

func (c *Classifier) ArticleType(ctx context.Context, page *ragcontent.Page) (ragcontent.ArticleType, error) {
	return c.ArticleTypeFn(ctx, page)
}

func (c *Classifier) ContentArea(ctx context.Context, page *ragcontent.Page) (string, error) {
	return c.ContentAreaFn(ctx, page)
}
