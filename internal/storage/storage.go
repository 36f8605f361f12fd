// Package storage keeps uploaded document attachments on local disk and
// serves them back by URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/uuid"
)

// Storage stores document attachments.
type Storage interface {
	// Upload saves the file under the investor and returns its URL.
	Upload(ctx context.Context, investorID, filename string, size int64, r io.Reader) (string, error)
	// Open returns the content previously stored at url.
	Open(ctx context.Context, url string) (io.ReadCloser, error)
	// Delete removes the file at url. Unknown URLs are ignored.
	Delete(ctx context.Context, url string) error
}

// Options configures a LocalStorage.
type Options struct {
	Dir          string
	BaseURL      string
	MaxMB        int64
	AllowedTypes []string
}

// LocalStorage writes files to Dir/<investorID>/<uuid><ext> and exposes them
// under BaseURL.
type LocalStorage struct {
	dir      string
	baseURL  string
	maxBytes int64
	allowed  map[string]bool
}

// NewLocalStorage returns a LocalStorage for opts.
func NewLocalStorage(opts Options) *LocalStorage {
	allowed := make(map[string]bool, len(opts.AllowedTypes))
	for _, ext := range opts.AllowedTypes {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	return &LocalStorage{
		dir:      opts.Dir,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		maxBytes: opts.MaxMB * 1024 * 1024,
		allowed:  allowed,
	}
}

// MaxBytes returns the upload size limit.
func (s *LocalStorage) MaxBytes() int64 { return s.maxBytes }

func (s *LocalStorage) Upload(ctx context.Context, investorID, filename string, size int64, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowed[ext] {
		return "", apperrors.WithMessage(apperrors.ErrUnsupportedFileType,
			fmt.Sprintf("file type %q is not allowed", ext))
	}
	if size > s.maxBytes {
		return "", apperrors.WithMessage(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes/(1024*1024)))
	}
	if !validSegment(investorID) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid investor id")
	}

	dir := filepath.Join(s.dir, investorID)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	name := uuid.New() + ext
	full := filepath.Join(dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	// One byte past the limit is enough to tell the declared size was wrong.
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if n > s.maxBytes {
		_ = os.Remove(full)
		return "", apperrors.WithMessage(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes/(1024*1024)))
	}

	return s.baseURL + "/" + investorID + "/" + name, nil
}

func (s *LocalStorage) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(url)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.WithMessage(apperrors.ErrDocumentNotFound, "attachment not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(url)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// resolve maps a URL issued by Upload back to a path inside dir.
func (s *LocalStorage) resolve(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrDocumentNotFound, "attachment not found")
	}
	rel = path.Clean(rel)
	parts := strings.Split(rel, "/")
	if len(parts) != 2 || !validSegment(parts[0]) || !validSegment(parts[1]) {
		return "", apperrors.WithMessage(apperrors.ErrDocumentNotFound, "attachment not found")
	}
	return filepath.Join(s.dir, parts[0], parts[1]), nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
