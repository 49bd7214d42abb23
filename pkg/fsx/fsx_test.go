package fsx_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/fsx"
	"github.com/riderota/core/pkg/fsx/fsxlocal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	p, err := fsx.Resolve("acme", "img/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "acme/img/logo.png", p)

	p, err = fsx.Resolve("acme", "/css//site.css")
	require.NoError(t, err)
	assert.Equal(t, "acme/css/site.css", p)

	for _, bad := range []string{"", "/", "../globex/logo.png", "img/../../globex/logo.png"} {
		_, err := fsx.Resolve("acme", bad)
		assert.True(t, errx.HasCode(err, fsx.CodeInvalidPath), bad)
	}
}

func TestTenantAssetsOpen(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "acme", "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "acme", "img", "logo.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "globex"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "globex", "secret.txt"), []byte("x"), 0o644))

	store, err := fsxlocal.NewLocalFileSystem(root)
	require.NoError(t, err)
	assets := fsx.NewTenantAssets(store)
	ctx := context.Background()

	rc, info, err := assets.Open(ctx, "acme", "img/logo.svg")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "<svg/>", string(body))
	assert.Equal(t, "image/svg+xml", info.ContentType)
	assert.EqualValues(t, 6, info.Size)

	_, _, err = assets.Open(ctx, "acme", "secret.txt")
	assert.True(t, errx.HasCode(err, fsx.CodeNotFound))

	_, _, err = assets.Open(ctx, "acme", "img")
	assert.True(t, errx.HasCode(err, fsx.CodeNotFound))

	_, _, err = assets.Open(ctx, "acme", "../globex/secret.txt")
	assert.True(t, errx.HasCode(err, fsx.CodeInvalidPath))

	ok, err := store.Exists(ctx, "globex/secret.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.Stat(ctx, "../outside")
	assert.True(t, errx.HasCode(err, fsx.CodeInvalidPath))
}
