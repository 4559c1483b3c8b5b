// Package artifact keeps the page state of failed scenarios on disk.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	"github.com/disintegration/imaging"
)

const (
	maxScreenshotWidth = 1024
	jpegQuality        = 75
)

var _ output.ArtifactStore = (*FileStore)(nil)

// FileStore writes one directory per key below Dir.
type FileStore struct {
	dir   string
	clean *CleanConfig
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, clean: &DefaultCleanConfig}
}

func (s *FileStore) Save(ctx context.Context, key string, snapshot *entity.PageSnapshot) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	dir := filepath.Join(s.dir, sanitizeKey(key))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	var paths []string

	page := fmt.Sprintf("<!-- url: %s -->\n<!-- title: %s -->\n%s",
		snapshot.URL, snapshot.Title, CleanHTML(snapshot.HTML, s.clean))
	htmlPath := filepath.Join(dir, "page.html")
	if err := os.WriteFile(htmlPath, []byte(page), 0644); err != nil {
		return nil, fmt.Errorf("write page html: %w", err)
	}
	paths = append(paths, htmlPath)

	if snapshot.Screenshot != nil && len(snapshot.Screenshot.Data) > 0 {
		shot, err := downscale(snapshot.Screenshot.Data)
		if err != nil {
			return paths, fmt.Errorf("screenshot: %w", err)
		}
		shotPath := filepath.Join(dir, "screenshot.jpg")
		if err := os.WriteFile(shotPath, shot, 0644); err != nil {
			return paths, fmt.Errorf("write screenshot: %w", err)
		}
		paths = append(paths, shotPath)
	}
	return paths, nil
}

// downscale re-encodes a PNG or JPEG capture as JPEG no wider than
// maxScreenshotWidth.
func downscale(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotWidth {
		img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

func sanitizeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		p = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
				return r
			}
			return '_'
		}, p)
		if p == "" || p == "." || p == ".." {
			p = "_"
		}
		parts[i] = p
	}
	return filepath.Join(parts...)
}
