package media

import (
	"net/url"
	"strings"
)

// Bucket is the object-store bucket holding product images.
const Bucket = "product-images"

// ObjectStore is the consumed interface of the file-storage platform. Only
// the operations the image flow needs are required.
type ObjectStore interface {
	// Upload stores data under path inside the bucket.
	Upload(path string, data []byte, contentType string) error

	// PublicURL returns the publicly reachable URL for an object path.
	PublicURL(path string) string

	// Remove deletes the objects at the given paths.
	Remove(paths []string) error

	// BucketExists reports whether the named bucket is present.
	BucketExists(name string) bool
}

// PathFromURL recovers the object path from a public URL of the form
// <base>/storage/v1/object/public/<bucket>/<path>. Returns "" when the URL
// does not point into the product-images bucket.
func PathFromURL(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(u.Path, "/")
	publicIdx, bucketIdx := -1, -1
	for i, part := range parts {
		if part == "public" && publicIdx == -1 {
			publicIdx = i
		}
		if part == Bucket {
			bucketIdx = i
		}
	}
	if publicIdx == -1 || bucketIdx == -1 || bucketIdx < publicIdx {
		return ""
	}
	if bucketIdx+1 >= len(parts) {
		return ""
	}
	return strings.Join(parts[bucketIdx+1:], "/")
}
