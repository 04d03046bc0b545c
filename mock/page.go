package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.PageService = (*PageService)(nil)

// PageService is a mock implementation of ragcontent.PageService.
type PageService struct {
	FindPageByIDFn    func(ctx context.Context, id int64) (*ragcontent.Page, error)
	CurrentRevisionFn func(ctx context.Context, pageID int64) (*ragcontent.Revision, error)
	RenderPageFn      func(ctx context.Context, pageID int64) (*ragcontent.RenderedContent, error)
}

func (s *PageService) FindPageByID(ctx context.Context, id int64) (*ragcontent.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) CurrentRevision(ctx context.Context, pageID int64) (*ragcontent.Revision, error) {
	return s.CurrentRevisionFn(ctx, pageID)
}

func (s *PageService) RenderPage(ctx context.Context, pageID int64) (*ragcontent.RenderedContent, error) {
	return s.RenderPageFn(ctx, pageID)
}
