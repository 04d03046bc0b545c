package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.PropertyService = (*PropertyService)(nil)

// PropertyService is a mock implementation of ragcontent.PropertyService.
type PropertyService struct {
	HasPropertyFn func(ctx context.Context, pageID int64, name string) (bool, error)
}

func (s *PropertyService) HasProperty(ctx context.Context, pageID int64, name string) (bool, error) {
	return s.HasPropertyFn(ctx, pageID, name)
}
