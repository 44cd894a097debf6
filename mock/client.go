package mock

import (
	"context"

	"github.com/fwojciec/context7"
)

var _ context7.DocsClient = (*DocsClient)(nil)

// DocsClient is a mock implementation of context7.DocsClient.
type DocsClient struct {
	ResolveLibraryFn func(ctx context.Context, name, query string) (*context7.LibraryResolution, error)
	QueryDocsFn      func(ctx context.Context, libraryID, query string) (string, error)
	QueryHeadlinesFn func(ctx context.Context, libraryID, query string) (string, error)
	CloseFn          func() error
}

func (c *DocsClient) ResolveLibrary(ctx context.Context, name, query string) (*context7.LibraryResolution, error) {
	return c.ResolveLibraryFn(ctx, name, query)
}

func (c *DocsClient) QueryDocs(ctx context.Context, libraryID, query string) (string, error) {
	return c.QueryDocsFn(ctx, libraryID, query)
}

func (c *DocsClient) QueryHeadlines(ctx context.Context, libraryID, query string) (string, error) {
	return c.QueryHeadlinesFn(ctx, libraryID, query)
}

func (c *DocsClient) Close() error {
	return c.CloseFn()
}
