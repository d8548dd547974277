package documentmock

import (
	"context"
	"fmt"
	"io"
	"strings"

	"smartbikepass-backend/internal/domain/document"
)

var _ document.Store = (*Store)(nil)

// Store is a function-backed mock of document.Store. Without StoreFn it hands out
// sequential references and records them in Stored.
type Store struct {
	StoreFn  func(ctx context.Context, category document.Category, u document.Upload) (string, error)
	OpenFn   func(ctx context.Context, ref string) (io.ReadCloser, string, error)
	DeleteFn func(ctx context.Context, ref string) error

	Stored  []string
	Deleted []string
}

func (m *Store) Store(ctx context.Context, category document.Category, u document.Upload) (string, error) {
	if m.StoreFn != nil {
		return m.StoreFn(ctx, category, u)
	}
	ref := fmt.Sprintf("%s_%d%s", category, len(m.Stored)+1, ".pdf")
	m.Stored = append(m.Stored, ref)
	return ref, nil
}

func (m *Store) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	if m.OpenFn != nil {
		return m.OpenFn(ctx, ref)
	}
	return io.NopCloser(strings.NewReader("")), "application/pdf", nil
}

func (m *Store) Delete(ctx context.Context, ref string) error {
	m.Deleted = append(m.Deleted, ref)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ref)
	}
	return nil
}
