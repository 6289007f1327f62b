package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/display"
	"github.com/df07/go-phong-raytracer/pkg/framecodec"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// cliOptions holds the flags that are not part of the shared configuration
type cliOptions struct {
	Thumb      int
	FrameDump  bool
	OrbitYaw   float64
	OrbitPitch float64
	List       bool
	Help       bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	opts, err := parseFlags(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if opts.Help {
		printHelp(os.Stdout, flag.CommandLine)
		return
	}
	if opts.List {
		listScenes(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("%v", err)
	}
}

// parseFlags applies command line flags on top of cfg
func parseFlags(fs *flag.FlagSet, args []string, cfg *config.Config) (*cliOptions, error) {
	opts := &cliOptions{}

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene id (see -list)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum reflection/refraction depth")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of render workers")
	fs.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "Gamma applied when converting to 8-bit color (1 = linear)")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Image format: png or jpg")
	fs.BoolVar(&cfg.Window, "window", cfg.Window, "Show the result in a window (orbit scenes follow the arrow keys)")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "Upload the render to this S3 bucket")
	fs.IntVar(&opts.Thumb, "thumb", 0, "Also save a thumbnail with this longest side")
	fs.BoolVar(&opts.FrameDump, "frame-dump", false, "Also write raw frames to a zstd stream next to the image")
	fs.Float64Var(&opts.OrbitYaw, "orbit-yaw", 0, "Degrees added to the orbit camera's yaw")
	fs.Float64Var(&opts.OrbitPitch, "orbit-pitch", 0, "Degrees added to the orbit camera's pitch")
	fs.BoolVar(&opts.List, "list", false, "List available scenes")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Format = strings.ToLower(cfg.Format)
	if opts.Thumb < 0 {
		return nil, fmt.Errorf("thumb must not be negative, got %d", opts.Thumb)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Phong Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	listScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<format>")
	fmt.Fprintf(w, "Every option can also be set with a %s* environment variable or a .env file.\n", config.EnvPrefix)
}

func listScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		marker := ""
		if info.Orbit {
			marker = " (interactive)"
		}
		fmt.Fprintf(w, "  %-12s - %s%s\n", info.ID, info.Description, marker)
	}
}

// createScene builds the configured scene, turning the orbit camera if requested
func createScene(cfg *config.Config, opts *cliOptions) (*scene.Scene, error) {
	s, err := scene.Build(cfg.Scene, float64(cfg.Width)/float64(cfg.Height))
	if err != nil {
		return nil, err
	}
	if orbit, ok := s.Orbit(); ok {
		orbit.Orbit(opts.OrbitYaw, opts.OrbitPitch)
	} else if opts.OrbitYaw != 0 || opts.OrbitPitch != 0 {
		return nil, fmt.Errorf("scene %s has no orbit camera", cfg.Scene)
	}
	return s, nil
}

func renderConfig(cfg *config.Config) renderer.RenderConfig {
	trace := renderer.DefaultTraceConfig()
	trace.MaxDepth = cfg.MaxDepth
	trace.Gamma = cfg.Gamma
	return renderer.RenderConfig{
		Width:      cfg.Width,
		Height:     cfg.Height,
		TileSize:   cfg.TileSize,
		NumWorkers: cfg.Workers,
		Trace:      trace,
	}
}

// run renders once, saves the result and optionally uploads and displays it
func run(ctx context.Context, cfg *config.Config, opts *cliOptions, logger core.Logger) error {
	logger.Printf("Starting Phong Raytracer...\n")

	selectedScene, err := createScene(cfg, opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d primitives, %d lights)...\n",
		cfg.Scene, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights))
	if box, ok := selectedScene.Bounds(); ok {
		logger.Printf("Scene bounds centered at %v, size %v\n", box.Center(), box.Size())
	}

	img, stats, err := renderer.NewRenderer(selectedScene, renderConfig(cfg), logger).Render(ctx, nil)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Elapsed, stats.PixelsPerSecond())

	filename := output.RenderPath(cfg.OutputDir, strings.ToLower(cfg.Scene), cfg.Format, time.Now())
	if err := output.SaveImage(img, filename); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)

	if opts.Thumb > 0 {
		thumbPath := output.ThumbnailPath(filename)
		if err := output.SaveImage(output.Thumbnail(img, opts.Thumb), thumbPath); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	var dump *framecodec.StreamWriter
	if opts.FrameDump {
		dumpPath := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".rgba.zst"
		file, err := os.Create(dumpPath)
		if err != nil {
			return fmt.Errorf("failed to create frame dump: %w", err)
		}
		defer file.Close()

		if dump, err = framecodec.NewStreamWriter(file); err != nil {
			return err
		}
		defer func() {
			if err := dump.Close(); err != nil {
				logger.Printf("Error closing frame dump: %v\n", err)
			}
			logger.Printf("Wrote %d frame(s) to %s\n", dump.Frames(), dumpPath)
		}()

		if err := dump.WriteFrame(img); err != nil {
			return err
		}
	}

	if cfg.S3.Enabled() {
		if err := upload(ctx, cfg, filename, logger); err != nil {
			return err
		}
	}

	if cfg.Window {
		return showWindow(cfg, selectedScene, img, dump, logger)
	}
	return nil
}

func upload(ctx context.Context, cfg *config.Config, filename string, logger core.Logger) error {
	uploader, err := output.NewS3Uploader(cfg.S3, logger)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	contentType := "image/png"
	if cfg.Format != "png" {
		contentType = "image/jpeg"
	}
	key := filepath.ToSlash(filepath.Join(strings.ToLower(cfg.Scene), filepath.Base(filename)))
	_, err = uploader.Upload(ctx, key, data, contentType)
	return err
}

func showWindow(cfg *config.Config, s *scene.Scene, img *image.RGBA, dump *framecodec.StreamWriter, logger core.Logger) error {
	opts := display.Options{
		Title:     fmt.Sprintf("Phong Raytracer - %s", cfg.Scene),
		OrbitStep: cfg.OrbitStep,
		ZoomStep:  cfg.ZoomStep,
		Logger:    logger,
	}

	if orbit, ok := s.Orbit(); ok {
		rc := renderConfig(cfg)
		opts.Orbit = orbit
		opts.Render = func(ctx context.Context, cam camera.Camera) (*image.RGBA, error) {
			frame, _, err := renderer.NewRenderer(s.WithCamera(cam), rc, nil).Render(ctx, nil)
			return frame, err
		}
		logger.Printf("Arrow keys orbit, +/- zoom, Escape quits\n")
	}
	if dump != nil {
		opts.OnFrame = func(frame *image.RGBA) {
			if err := dump.WriteFrame(frame); err != nil {
				logger.Printf("Error writing frame dump: %v\n", err)
			}
		}
	}

	return display.Run(img, opts)
}
