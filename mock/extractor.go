package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ragcontent.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, page *ragcontent.Page) (*ragcontent.ExtractionResult, error)
}

func (e *Extractor) Extract(ctx context.Context, page *ragcontent.Page) (*ragcontent.ExtractionResult, error) {
	return e.ExtractFn(ctx, page)
}
