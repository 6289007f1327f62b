// Package display shows rendered frames in a desktop window and turns keyboard input into orbit camera moves.
package display

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// RenderFunc renders the scene as seen from cam
type RenderFunc func(ctx context.Context, cam camera.Camera) (*image.RGBA, error)

// Options configures a Viewer. Orbit and Render are only needed for interactive scenes.
type Options struct {
	Title     string
	Orbit     *camera.Orbit
	Render    RenderFunc
	OrbitStep float64           // degrees per frame of held arrow key
	ZoomStep  float64           // radius change per frame of held zoom key
	OnFrame   func(*image.RGBA) // called with every frame produced by an interactive re-render
	Logger    core.Logger
}

// Viewer implements ebiten.Game around a single frame buffer
type Viewer struct {
	opts   Options
	logger core.Logger

	mu    sync.Mutex
	frame *image.RGBA
	dirty bool

	rendering bool // owned by the game loop goroutine
	done      chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc

	texture *ebiten.Image
}

// NewViewer creates a viewer showing the initial frame
func NewViewer(initial *image.RGBA, opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Viewer{
		opts:   opts,
		logger: logger,
		frame:  initial,
		dirty:  true,
		done:   make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Interactive reports whether keyboard input moves the camera
func (v *Viewer) Interactive() bool {
	return v.opts.Orbit != nil && v.opts.Render != nil
}

// Frame returns the frame currently on screen
func (v *Viewer) Frame() *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// Update polls the keyboard once per tick
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.step(InputFromKeys(ebiten.IsKeyPressed))
	return nil
}

// step applies held input to the orbit camera and starts a re-render. Input is ignored
// while a render is in flight so the camera never runs ahead of the picture.
// It returns whether a render was started.
func (v *Viewer) step(in camera.Input) bool {
	select {
	case <-v.done:
		v.rendering = false
	default:
	}

	if !v.Interactive() || v.rendering || !in.Any() {
		return false
	}
	if !v.opts.Orbit.Apply(in, v.opts.OrbitStep, v.opts.ZoomStep) {
		return false
	}

	cam := v.opts.Orbit.Snapshot()
	v.rendering = true
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer func() { v.done <- struct{}{} }()

		img, err := v.opts.Render(v.ctx, cam)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				v.logger.Printf("Re-render failed: %v\n", err)
			}
			return
		}

		v.mu.Lock()
		v.frame = img
		v.dirty = true
		v.mu.Unlock()

		if v.opts.OnFrame != nil {
			v.opts.OnFrame(img)
		}
	}()
	return true
}

// Draw uploads the latest frame when it changed and blits it to the screen
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	frame, dirty := v.frame, v.dirty
	v.dirty = false
	v.mu.Unlock()

	if frame == nil {
		return
	}

	bounds := frame.Bounds()
	if v.texture == nil || v.texture.Bounds().Dx() != bounds.Dx() || v.texture.Bounds().Dy() != bounds.Dy() {
		if v.texture != nil {
			v.texture.Deallocate()
		}
		v.texture = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		dirty = true
	}
	if dirty {
		v.texture.WritePixels(frame.Pix)
	}
	screen.DrawImage(v.texture, nil)
}

// Layout keeps the logical screen at the frame size; ebiten scales it to the window
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frame == nil {
		return outsideWidth, outsideHeight
	}
	return v.frame.Bounds().Dx(), v.frame.Bounds().Dy()
}

// Close cancels any in-flight render and waits for it to finish
func (v *Viewer) Close() {
	v.cancel()
	v.wg.Wait()
}

// Run opens a window showing initial and blocks until it is closed or Escape is pressed
func Run(initial *image.RGBA, opts Options) error {
	if initial == nil {
		return errors.New("display: no frame to show")
	}

	viewer := NewViewer(initial, opts)
	defer viewer.Close()

	title := opts.Title
	if title == "" {
		title = "Ray Tracer"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(initial.Bounds().Dx(), initial.Bounds().Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	return ebiten.RunGame(viewer)
}
