package fsxlocal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/fsx"
)

// LocalFileSystem implements fsx.FileReader using local disk
type LocalFileSystem struct {
	basePath string // Root directory for all files
}

// NewLocalFileSystem creates a new local file system rooted at basePath,
// creating it when missing.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errx.Wrap(err, "failed to create base directory", errx.TypeConfiguration).
			WithDetail("path", basePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errx.Wrap(err, "failed to resolve absolute path", errx.TypeConfiguration).
			WithDetail("path", basePath)
	}

	return &LocalFileSystem{basePath: absPath}, nil
}

// ============================================================================
// FileReader Implementation
// ============================================================================

func (l *LocalFileSystem) ReadFileStream(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(full)
	if err != nil {
		return nil, l.wrap(err, path)
	}
	return file, nil
}

func (l *LocalFileSystem) Stat(_ context.Context, path string) (fsx.FileInfo, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return fsx.FileInfo{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return fsx.FileInfo{}, l.wrap(err, path)
	}

	return fsx.FileInfo{
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		ContentType: detectContentType(full),
	}, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, path string) (bool, error) {
	full, err := l.fullPath(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, l.wrap(err, path)
	}
	return true, nil
}

// ============================================================================
// Helper Methods
// ============================================================================

// fullPath joins path onto the base directory and refuses anything that
// lands outside it.
func (l *LocalFileSystem) fullPath(path string) (string, error) {
	full := filepath.Join(l.basePath, filepath.FromSlash(path))
	if full != l.basePath && !strings.HasPrefix(full, l.basePath+string(filepath.Separator)) {
		return "", fsx.ErrInvalidPath(path)
	}
	return full, nil
}

func (l *LocalFileSystem) wrap(err error, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fsx.ErrNotFound(path)
	}
	return fsx.ErrRegistry.NewWithCause(fsx.CodeRead, err).WithDetail("path", path)
}

// detectContentType detects MIME type from file extension
func detectContentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// GetBasePath returns the base path
func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}
