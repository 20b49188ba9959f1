package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore implements ObjectStore on the local filesystem, serving public
// URLs under a configured base. Objects live at <root>/<bucket>/<path>.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a DiskStore rooted at dir, issuing public URLs
// under baseURL.
func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes an object under the product-images bucket.
func (d *DiskStore) Upload(path string, data []byte, _ string) error {
	full := filepath.Join(d.root, Bucket, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating object dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("writing object: %w", err)
	}
	return nil
}

// PublicURL returns the public URL for an object path. The URL shape
// matches the hosted storage platform so PathFromURL can reverse it.
func (d *DiskStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", d.baseURL, Bucket, path)
}

// Remove deletes the objects at the given paths. Missing objects are not
// an error.
func (d *DiskStore) Remove(paths []string) error {
	for _, p := range paths {
		full := filepath.Join(d.root, Bucket, filepath.FromSlash(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing object %s: %w", p, err)
		}
	}
	return nil
}

// BucketExists reports whether the bucket directory is present on disk.
func (d *DiskStore) BucketExists(name string) bool {
	info, err := os.Stat(filepath.Join(d.root, name))
	return err == nil && info.IsDir()
}
