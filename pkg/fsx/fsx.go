// Package fsx reads tenant-scoped static assets from a pluggable store.
package fsx

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/kernel"
)

// FileInfo represents information about a file
type FileInfo struct {
	Name        string    // Base name of the file
	Size        int64     // File size in bytes
	ModTime     time.Time // Modification time
	IsDir       bool      // Is a directory
	ContentType string    // MIME type (when available)
}

// FileReader provides read-only operations. Paths are slash separated and
// relative to the store root.
type FileReader interface {
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidPath = ErrRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid file path")
	CodeRead        = ErrRegistry.Register("READ", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
)

func ErrNotFound(p string) *errx.Error {
	return ErrRegistry.New(CodeNotFound).WithDetail("path", p)
}

func ErrInvalidPath(p string) *errx.Error {
	return ErrRegistry.New(CodeInvalidPath).WithDetail("path", p)
}

// ============================================================================
// Tenant scoping
// ============================================================================

// TenantAssets confines reads to <root>/<slug>/.
type TenantAssets struct {
	store FileReader
}

func NewTenantAssets(store FileReader) *TenantAssets {
	return &TenantAssets{store: store}
}

// Resolve maps an asset path requested under tenant to a store path. Paths
// that climb out of the tenant directory are rejected.
func Resolve(tenant kernel.TenantSlug, rel string) (string, error) {
	if tenant.IsEmpty() {
		return "", ErrInvalidPath(rel)
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", ErrInvalidPath(rel)
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+rel), "/")
	if clean == "" {
		return "", ErrInvalidPath(rel)
	}
	return tenant.String() + "/" + clean, nil
}

// Open returns the asset and its metadata. Directories are not served.
func (a *TenantAssets) Open(ctx context.Context, tenant kernel.TenantSlug, rel string) (io.ReadCloser, FileInfo, error) {
	p, err := Resolve(tenant, rel)
	if err != nil {
		return nil, FileInfo{}, err
	}

	info, err := a.store.Stat(ctx, p)
	if err != nil {
		return nil, FileInfo{}, err
	}
	if info.IsDir {
		return nil, FileInfo{}, ErrNotFound(rel)
	}

	rc, err := a.store.ReadFileStream(ctx, p)
	if err != nil {
		return nil, FileInfo{}, err
	}
	return rc, info, nil
}
