package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Render defaults
const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultTileSize = 64
)

// RenderConfig contains configuration for a single frame
type RenderConfig struct {
	Width      int         // Image width in pixels
	Height     int         // Image height in pixels
	TileSize   int         // Size of each tile (64x64 recommended)
	NumWorkers int         // Number of parallel workers (0 = use CPU count)
	Trace      TraceConfig // Shading configuration
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
		Trace:      DefaultTraceConfig(),
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds within the full image
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completion order (1-based)
	TotalTiles int // Total number of tiles in the image
}

// Renderer turns a scene into a pixel buffer using a pool of tile workers
type Renderer struct {
	scene      *scene.Scene
	config     RenderConfig
	raytracer  *Raytracer
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRenderer creates a renderer for one scene. The scene must not change while Render runs.
func NewRenderer(s *scene.Scene, config RenderConfig, logger core.Logger) *Renderer {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.Trace == (TraceConfig{}) {
		config.Trace = DefaultTraceConfig()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:      s,
		config:     config,
		raytracer:  NewRaytracer(config.Trace),
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// Render traces every pixel once and returns the finished frame.
// onTile, if set, is called from the calling goroutine as each tile finishes.
// The only error is the context's, when the render is abandoned between tiles.
func (r *Renderer) Render(ctx context.Context, onTile func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()

	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)
	tileRenderer := NewTileRenderer(r.scene, r.raytracer)
	tilesX := (r.config.Width + r.config.TileSize - 1) / r.config.TileSize

	stats := RenderStats{
		TotalPixels: r.config.Width * r.config.Height,
		TotalTiles:  len(tiles),
		NumWorkers:  r.workerPool.GetNumWorkers(),
		MaxDepth:    r.raytracer.Config().MaxDepth,
	}

	r.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		r.config.Width, r.config.Height, len(tiles), stats.NumWorkers)

	// Buffered so workers never wait on the callback
	done := make(chan *Tile, len(tiles))
	errChan := make(chan error, 1)

	go func() {
		defer close(done)
		errChan <- r.workerPool.Run(ctx, tiles, func(tile *Tile) error {
			tileRenderer.RenderTile(img, tile.Bounds)
			done <- tile
			return nil
		})
	}()

	completed := 0
	for tile := range done {
		completed++

		if onTile != nil {
			onTile(TileCompletionResult{
				TileX:      tile.X,
				TileY:      tile.Y,
				Bounds:     tile.Bounds,
				TileImage:  extractTileImage(img, tile.Bounds),
				TileNumber: completed,
				TotalTiles: len(tiles),
			})
		}

		if completed%tilesX == 0 || completed == len(tiles) {
			r.logger.Printf("Rendered %d/%d tiles\n", completed, len(tiles))
		}
	}

	if err := <-errChan; err != nil {
		r.logger.Printf("Rendering cancelled after %d/%d tiles\n", completed, len(tiles))
		return nil, stats, err
	}

	stats.Elapsed = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(img)
	r.logger.Printf("Rendering complete in %v (average luminance %.3f)\n", stats.Elapsed, stats.AverageLuminance)

	return img, stats, nil
}

// GetRaytracer returns the shading engine used by the renderer
func (r *Renderer) GetRaytracer() *Raytracer {
	return r.raytracer
}
