package document

import (
	"context"
	"errors"
	"io"
)

var (
	ErrRejectedFormat = errors.New("unsupported document format")
	ErrNotFound       = errors.New("document not found")
)

type Category string

const (
	CategoryRCBook    Category = "rc"
	CategoryLicense   Category = "dl"
	CategoryInsurance Category = "ins"
)

// Upload is one file as received from the applicant.
type Upload struct {
	Filename string
	Content  []byte
}

// Store keeps uploaded documents. It knows nothing about the workflow.
type Store interface {
	// Store persists u under category and returns an opaque reference. Files outside the
	// accepted formats fail with ErrRejectedFormat.
	Store(ctx context.Context, category Category, u Upload) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, ref string) error
}
