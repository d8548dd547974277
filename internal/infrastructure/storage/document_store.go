package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartbikepass-backend/internal/domain/document"
)

// accepted maps file extension to the content type the bytes must sniff as.
var accepted = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var reRef = regexp.MustCompile(`^(rc|dl|ins)_[0-9a-f]{32}\.(pdf|jpg|jpeg|png)$`)

// LocalDocumentStore keeps documents as flat files under baseDir.
type LocalDocumentStore struct {
	baseDir string
	logger  *zap.Logger
}

var _ document.Store = (*LocalDocumentStore)(nil)

func NewLocalDocumentStore(baseDir string, logger *zap.Logger) (*LocalDocumentStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalDocumentStore{baseDir: baseDir, logger: logger}, nil
}

func (s *LocalDocumentStore) Store(ctx context.Context, category document.Category, u document.Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(u.Filename))
	want, ok := accepted[ext]
	if !ok || len(u.Content) == 0 {
		return "", document.ErrRejectedFormat
	}
	if got := mimetype.Detect(u.Content); !got.Is(want) {
		s.logger.Info("Rejected document with mismatched content",
			zap.String("category", string(category)),
			zap.String("ext", ext),
			zap.String("detected", got.String()))
		return "", document.ErrRejectedFormat
	}

	ref := fmt.Sprintf("%s_%s%s", category, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
	if !reRef.MatchString(ref) {
		return "", fmt.Errorf("unknown document category %q", category)
	}
	fullPath := filepath.Join(s.baseDir, ref)
	if err := os.WriteFile(fullPath, u.Content, 0o644); err != nil {
		s.logger.Error("Failed to write document",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	s.logger.Debug("Document stored",
		zap.String("ref", ref),
		zap.Int("size", len(u.Content)))
	return ref, nil
}

// Open returns the document and its content type.
func (s *LocalDocumentStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	if !reRef.MatchString(ref) {
		return nil, "", document.ErrNotFound
	}
	content, err := os.ReadFile(filepath.Join(s.baseDir, ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", document.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}
	return io.NopCloser(bytes.NewReader(content)), accepted[filepath.Ext(ref)], nil
}

func (s *LocalDocumentStore) Delete(ctx context.Context, ref string) error {
	if !reRef.MatchString(ref) {
		return document.ErrNotFound
	}
	if err := os.Remove(filepath.Join(s.baseDir, ref)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to delete document", zap.String("ref", ref), zap.Error(err))
		return err
	}
	return nil
}
