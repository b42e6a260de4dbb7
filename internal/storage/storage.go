// Package storage stores guideline PDFs and other brand files in an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an object does not exist
var ErrNotFound = errors.New("object not found")

// ProgressFunc receives upload progress as a percentage from 0 to 100
type ProgressFunc func(percent int)

// Object describes a stored object
type Object struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	URL         string `json:"url"`
}

// ObjectStore is the object storage boundary
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, progress ProgressFunc) (*Object, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GuidelineKey is the object key of a brand's guideline file
func GuidelineKey(brandID uuid.UUID, fileName string) string {
	return fmt.Sprintf("brands/%s/guidelines/%s", brandID, SanitizeFileName(fileName))
}

// GuidelinePrefix is the key prefix of all guideline files of a brand
func GuidelinePrefix(brandID uuid.UUID) string {
	return fmt.Sprintf("brands/%s/guidelines/", brandID)
}

// SanitizeFileName keeps the base name with only safe characters
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

// ContentTypeForKey guesses a content type from the key's extension
func ContentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(s, ".json"):
		return "application/json"
	case strings.HasSuffix(s, ".html"), strings.HasSuffix(s, ".htm"):
		return "text/html"
	default:
		return ""
	}
}

// percent converts written bytes to a 0-100 progress value
func percent(written, size int64) int {
	if size <= 0 {
		return 0
	}
	p := int(written * 100 / size)
	if p > 100 {
		p = 100
	}
	return p
}
