package renderer

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	X, Y   int             // Tile coordinates (not pixel coordinates)
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Edge tiles are clipped to the image bounds.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				X:      tileX,
				Y:      tileY,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}

// TileRenderer shades the pixels of individual tiles into a shared image
type TileRenderer struct {
	scene     *scene.Scene
	raytracer *Raytracer
}

// NewTileRenderer creates a new tile renderer for the given scene
func NewTileRenderer(s *scene.Scene, raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{
		scene:     s,
		raytracer: raytracer,
	}
}

// RenderTile writes every pixel inside bounds into img.
// Concurrent calls are safe as long as their bounds do not overlap.
func (tr *TileRenderer) RenderTile(img *image.RGBA, bounds image.Rectangle) {
	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colorVec := tr.raytracer.TracePixel(tr.scene, x, y, width, height)
			img.SetRGBA(x, y, tr.raytracer.vec3ToColor(colorVec))
		}
	}
}

// extractTileImage copies a finished tile out of the full image
func extractTileImage(img *image.RGBA, bounds image.Rectangle) *image.RGBA {
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		src := img.PixOffset(bounds.Min.X, y)
		dst := tileImage.PixOffset(0, y-bounds.Min.Y)
		copy(tileImage.Pix[dst:dst+4*bounds.Dx()], img.Pix[src:src+4*bounds.Dx()])
	}
	return tileImage
}
