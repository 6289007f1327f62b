package renderer

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 128, 64, 64, 2},
		{"clipped edges", 100, 70, 32, 12},
		{"single tile", 10, 10, 64, 1},
		{"empty image", 0, 10, 64, 0},
		{"default tile size", 200, 100, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel must belong to exactly one tile
			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				if tile.Bounds.Empty() {
					t.Errorf("Tile %d has empty bounds %v", i, tile.Bounds)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestNewTileGrid_TileCoordinates(t *testing.T) {
	tiles := NewTileGrid(100, 70, 32)

	last := tiles[len(tiles)-1]
	if last.X != 3 || last.Y != 2 {
		t.Errorf("Expected last tile at (3,2), got (%d,%d)", last.X, last.Y)
	}
	if last.Bounds != image.Rect(96, 64, 100, 70) {
		t.Errorf("Expected last tile clipped to (96,64)-(100,70), got %v", last.Bounds)
	}
}

func TestTileRenderer_RenderTile(t *testing.T) {
	s := createTestScene()
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, diffuseOnly(core.NewVec3(1, 1, 1))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 0, 100), core.NewVec3(1, 1, 1), 1))

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	tr := NewTileRenderer(s, NewRaytracer(DefaultTraceConfig()))
	tr.RenderTile(img, image.Rect(0, 0, 8, 8))

	// Rendered tile is opaque, the rest untouched
	if img.RGBAAt(0, 0).A != 255 {
		t.Error("Expected pixel inside the tile to be written")
	}
	if img.RGBAAt(12, 12).A != 0 {
		t.Error("Expected pixel outside the tile to be untouched")
	}
}

func TestExtractTileImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Pix[img.PixOffset(x, y)] = uint8(y*8 + x)
		}
	}

	tile := extractTileImage(img, image.Rect(2, 3, 5, 6))
	if tile.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Fatalf("Expected 3x3 tile, got %v", tile.Bounds())
	}
	if got := tile.Pix[tile.PixOffset(1, 2)]; got != uint8(5*8+3) {
		t.Errorf("Expected pixel value %d, got %d", 5*8+3, got)
	}
}

func TestWorkerPool_RunsEveryTile(t *testing.T) {
	pool := NewWorkerPool(3)
	tiles := NewTileGrid(100, 100, 10)

	var mu sync.Mutex
	seen := make(map[int]bool)
	var active, peak int32

	err := pool.Run(context.Background(), tiles, func(tile *Tile) error {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&active, -1)

		mu.Lock()
		seen[tile.ID] = true
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(seen) != len(tiles) {
		t.Errorf("Expected %d tiles to run, got %d", len(tiles), len(seen))
	}
	if peak > 3 {
		t.Errorf("Expected at most 3 concurrent workers, got %d", peak)
	}
}

func TestWorkerPool_PropagatesError(t *testing.T) {
	pool := NewWorkerPool(2)
	tiles := NewTileGrid(64, 64, 8)
	failure := errors.New("boom")

	err := pool.Run(context.Background(), tiles, func(tile *Tile) error {
		if tile.ID == 5 {
			return failure
		}
		return nil
	})
	if !errors.Is(err, failure) {
		t.Errorf("Expected %v, got %v", failure, err)
	}
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	pool := NewWorkerPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	err := pool.Run(ctx, NewTileGrid(64, 64, 8), func(tile *Tile) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if ran != 0 {
		t.Errorf("Expected no tiles to run after cancellation, got %d", ran)
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	if NewWorkerPool(0).GetNumWorkers() <= 0 {
		t.Error("Expected a positive worker count")
	}
}
