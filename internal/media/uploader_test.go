package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Cabecera PNG mínima, suficiente para la detección de tipo
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func newTestUploader(t *testing.T) (*Uploader, *DiskStore, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Bucket), 0o755))
	store := NewDiskStore(dir, "http://localhost:8081")
	return NewUploader(store, zaptest.NewLogger(t)), store, dir
}

func TestUpload_StoresImageAndReturnsPublicURL(t *testing.T) {
	uploader, _, dir := newTestUploader(t)

	url, err := uploader.Upload(pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url,
		"http://localhost:8081/storage/v1/object/public/product-images/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	path := PathFromURL(url)
	require.NotEmpty(t, path)
	data, err := os.ReadFile(filepath.Join(dir, Bucket, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestUpload_RejectsNonImages(t *testing.T) {
	uploader, _, _ := newTestUploader(t)

	_, err := uploader.Upload([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUpload_UniqueNames(t *testing.T) {
	uploader, _, _ := newTestUploader(t)

	first, err := uploader.Upload(pngHeader)
	require.NoError(t, err)
	second, err := uploader.Upload(pngHeader)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDelete_RemovesObject(t *testing.T) {
	uploader, _, dir := newTestUploader(t)

	url, err := uploader.Upload(pngHeader)
	require.NoError(t, err)
	path := PathFromURL(url)

	require.NoError(t, uploader.Delete(path))
	_, err = os.Stat(filepath.Join(dir, Bucket, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	// Borrar lo ya borrado no es un error
	assert.NoError(t, uploader.Delete(path))
}

func TestPathFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"public object URL",
			"http://localhost:8081/storage/v1/object/public/product-images/products/abc.png",
			"products/abc.png",
		},
		{
			"wrong bucket",
			"http://localhost:8081/storage/v1/object/public/other-bucket/products/abc.png",
			"",
		},
		{
			"no public segment",
			"http://localhost:8081/product-images/products/abc.png",
			"",
		},
		{
			"not a URL",
			"://bad",
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PathFromURL(tc.url))
		})
	}
}

func TestDiskStore_BucketExists(t *testing.T) {
	_, store, _ := newTestUploader(t)
	assert.True(t, store.BucketExists(Bucket))
	assert.False(t, store.BucketExists("missing-bucket"))
}
