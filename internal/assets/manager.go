// Package assets keeps embedded rich-text image references consistent
// with files in the uploads directory.
//
// Item content is the single source of truth for which images are live:
// there is no reference-count table, so cleanup is always a full rescan
// of the previous content string. This holds because every asset is
// referenced exclusively from its own item's content.
package assets

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// servePrefix is the public path assets are rewritten to.
const servePrefix = "/api/uploads/"

var (
	// src="data:image/<subtype>;base64,<payload>"
	dataURIRe = regexp.MustCompile(`src="data:image/([a-zA-Z]+);base64,([^"]+)"`)

	// src="/uploads/..." and src="/api/uploads/..."
	refRe = regexp.MustCompile(`src="/(?:api/)?uploads/([^"]+)"`)
)

// Manager persists inline images as files and garbage-collects assets
// no longer referenced by content.
type Manager struct {
	dir string
	log *zap.Logger
	now func() time.Time
}

// New constructs a manager writing to dir, creating it if needed.
func New(dir string, log *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}
	return &Manager{dir: dir, log: log, now: time.Now}, nil
}

// ExtractAndPersist scans content for inline base64 images, writes each
// to the uploads directory and rewrites the reference to a stable serve
// path. A match that fails to decode or write is logged and left
// untouched; the rest are still processed. Content without inline
// images is returned unchanged.
func (m *Manager) ExtractAndPersist(content, itemID string) string {
	matches := dataURIRe.FindAllStringSubmatch(content, -1)
	for _, match := range matches {
		full, subtype, payload := match[0], match[1], match[2]

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			m.log.Warn("skip undecodable inline image",
				zap.String("item", itemID), zap.Error(err))
			continue
		}
		ext := strings.ToLower(subtype)
		if ext == "jpeg" {
			ext = "jpg"
		}
		filename := fmt.Sprintf("%s_%d.%s", itemID, m.now().UnixNano(), ext)
		if err := os.WriteFile(filepath.Join(m.dir, filename), data, 0o644); err != nil {
			m.log.Warn("skip unwritable inline image",
				zap.String("item", itemID), zap.String("file", filename), zap.Error(err))
			continue
		}

		// Replace the exact matched substring: replacements change the
		// string length, so positional indexes from the scan are stale.
		content = strings.Replace(content, full, `src="`+servePrefix+filename+`"`, 1)
	}
	return content
}

// Cleanup deletes every asset file referenced from oldContent. Missing
// files are not an error; all failures are logged only, never returned,
// since cleanup must not block the primary mutation.
func (m *Manager) Cleanup(oldContent string) {
	for _, match := range refRe.FindAllStringSubmatch(oldContent, -1) {
		filename, ok := sanitize(match[1])
		if !ok {
			continue
		}
		err := os.Remove(filepath.Join(m.dir, filename))
		if err != nil && !os.IsNotExist(err) {
			m.log.Warn("asset cleanup failed",
				zap.String("file", filename), zap.Error(err))
		}
	}
}

// Open opens a stored asset by filename for serving.
func (m *Manager) Open(filename string) (*os.File, error) {
	name, ok := sanitize(filename)
	if !ok {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(m.dir, name))
}

// ContentType maps an asset filename extension to a MIME type.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// sanitize rejects names that could escape the uploads directory.
func sanitize(name string) (string, bool) {
	if name == "" || name == "." || name == ".." {
		return "", false
	}
	if strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return name, true
}
