// Package storage turns validated multipart uploads into durable object
// URLs. Two drivers exist: Amazon S3 for production and a local-disk
// store for development and tests.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore is the contract the upload handlers program against: store
// a stream under a key and get back a durable URL, or delete by key.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Kind describes the constraints for one media family.
type Kind struct {
	// Folder is the destination namespace prefixed to every key.
	Folder string
	// Exts is the accepted extension allow-list, lower case with dot.
	Exts []string
	// MaxBytes caps the upload size; it doubles as the only resource
	// guard on the upload path.
	MaxBytes int64
	// Transform, when set, is applied to decodable images before storing.
	Transform TransformFunc
}

var (
	GalleryImage = Kind{
		Folder:    "gallery",
		Exts:      []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		MaxBytes:  10 << 20,
		Transform: FitWidth(1600),
	}
	ProjectThumbnail = Kind{
		Folder:    "projects",
		Exts:      []string{".jpg", ".jpeg", ".png", ".webp"},
		MaxBytes:  5 << 20,
		Transform: FitWidth(800),
	}
	ProfilePicture = Kind{
		Folder:    "profiles",
		Exts:      []string{".jpg", ".jpeg", ".png", ".webp"},
		MaxBytes:  5 << 20,
		Transform: CropSquare(400),
	}
	MusicFile = Kind{
		Folder:   "music",
		Exts:     []string{".mp3", ".wav", ".ogg", ".m4a"},
		MaxBytes: 20 << 20,
	}
	CVFile = Kind{
		Folder:   "cv",
		Exts:     []string{".pdf"},
		MaxBytes: 10 << 20,
	}
)

// Validate checks an incoming file against the kind's constraints.
func (k Kind) Validate(filename string, size int64) error {
	if size > k.MaxBytes {
		return fmt.Errorf("file too large: %d bytes exceeds limit of %d", size, k.MaxBytes)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range k.Exts {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported file type %q (allowed: %s)", ext, strings.Join(k.Exts, ", "))
}

// Key mints a provider key under the kind's folder. The original name is
// kept only as a suffix hint; uniqueness comes from the uuid.
func (k Kind) Key(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return k.Folder + "/" + uuid.NewString() + ext
}
