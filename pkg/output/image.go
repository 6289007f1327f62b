// Package output writes finished renders to disk and object storage.
package output

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// SaveImage writes img to path, creating parent directories. The format follows the extension (.png, .jpg, .jpeg).
func SaveImage(img image.Image, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported image format for %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// RenderPath returns outputDir/<scene>/render_<timestamp>.<format>
func RenderPath(outputDir, sceneID, format string, now time.Time) string {
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), strings.ToLower(format))
	return filepath.Join(outputDir, sceneID, filename)
}

// ThumbnailPath inserts a "_thumb" suffix before the extension
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

// Thumbnail scales img so its longest side is maxDim, preserving aspect ratio.
// Images already within maxDim are returned unchanged.
func Thumbnail(img *image.RGBA, maxDim int) *image.RGBA {
	bounds := img.Bounds()
	if maxDim <= 0 || (bounds.Dx() <= maxDim && bounds.Dy() <= maxDim) {
		return img
	}

	var scaled image.Image
	if bounds.Dx() >= bounds.Dy() {
		scaled = resize.Resize(uint(maxDim), 0, img, resize.Lanczos3)
	} else {
		scaled = resize.Resize(0, uint(maxDim), img, resize.Lanczos3)
	}

	if rgba, ok := scaled.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, scaled.Bounds().Dx(), scaled.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return rgba
}
