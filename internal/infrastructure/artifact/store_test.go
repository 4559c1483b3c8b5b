package artifact

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"shopcheck/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOfWidth(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFileStore_SaveHTMLOnly(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	paths, err := store.Save(context.Background(), "run-1/complete-purchase-rod", &entity.PageSnapshot{
		URL:   "https://www.saucedemo.com/cart.html",
		Title: "Swag Labs",
		HTML:  `<html><body><div class="cart_list"></div><script>x</script></body></html>`,
	})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "run-1", "complete-purchase-rod", "page.html"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "url: https://www.saucedemo.com/cart.html")
	assert.Contains(t, string(data), `class="cart_list"`)
	assert.NotContains(t, string(data), "<script")
}

func TestFileStore_SaveDownscalesScreenshot(t *testing.T) {
	store := NewFileStore(t.TempDir())

	paths, err := store.Save(context.Background(), "run/shot", &entity.PageSnapshot{
		HTML:       "<html></html>",
		Screenshot: &entity.Screenshot{Data: pngOfWidth(t, 2048, 100), Format: "png"},
	})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()

	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, maxScreenshotWidth, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestFileStore_BadScreenshotKeepsHTML(t *testing.T) {
	store := NewFileStore(t.TempDir())

	paths, err := store.Save(context.Background(), "run/bad", &entity.PageSnapshot{
		HTML:       "<html></html>",
		Screenshot: &entity.Screenshot{Data: []byte("not an image")},
	})
	assert.Error(t, err)
	assert.Len(t, paths, 1)
}

func TestFileStore_NilSnapshot(t *testing.T) {
	paths, err := NewFileStore(t.TempDir()).Save(context.Background(), "k", nil)
	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, filepath.Join("run", "a_b-rod"), sanitizeKey("run/a b-rod"))
	assert.Equal(t, filepath.Join("_", "_", "etc"), sanitizeKey("../../etc"))
}
