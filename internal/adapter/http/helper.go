package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"smartbikepass-backend/internal/adapter/middleware"
	"smartbikepass-backend/internal/domain/document"
	"smartbikepass-backend/internal/domain/user"
)

// formUpload reads one multipart file. A missing part yields (nil, nil).
func formUpload(c echo.Context, field string) (*document.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return &document.Upload{Filename: fh.Filename, Content: content}, nil
}

func actor(c echo.Context) user.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}
