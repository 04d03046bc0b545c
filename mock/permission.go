package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.PermissionChecker = (*PermissionChecker)(nil)

// PermissionChecker is a mock implementation of ragcontent.PermissionChecker.
type PermissionChecker struct {
	CanReadFn func(ctx context.Context, actor string, page *ragcontent.Page) (bool, error)
}

func (c *PermissionChecker) CanRead(ctx context.Context, actor string, page *ragcontent.Page) (bool, error) {
	return c.CanReadFn(ctx, actor, page)
}
