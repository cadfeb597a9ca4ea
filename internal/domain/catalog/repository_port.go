// internal/domain/catalog/repository_port.go
package catalog

import "context"

// Repository is the read-only catalog port.
//
// List pages in stable id order; page is zero-based. GetBySlug returns
// ErrNotFound when the slug does not exist.
type Repository interface {
	List(ctx context.Context, page, pageSize int) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	CountAll(ctx context.Context) (int, error)
}
