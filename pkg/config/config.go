package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultScene is rendered when nothing else is requested.
	DefaultScene = "default"
	// DefaultWidth and DefaultHeight match the reference 800x600 raster.
	DefaultWidth  = 800
	DefaultHeight = 600
	// DefaultMaxDepth bounds reflection and refraction recursion.
	DefaultMaxDepth = 3
	// DefaultTileSize is the edge length of a render tile in pixels.
	DefaultTileSize = 64
	// DefaultGamma leaves colors linear.
	DefaultGamma = 1.0
	// DefaultOutputDir is where the CLI writes images.
	DefaultOutputDir = "output"
	// DefaultFormat is the image file format written by the CLI.
	DefaultFormat = "png"
	// DefaultWebPort is the HTTP port of the web server.
	DefaultWebPort = 8080
	// DefaultOrbitStep is the yaw/pitch change per frame of held input, in degrees.
	DefaultOrbitStep = 3.0
	// DefaultZoomStep is the radius change per frame of held zoom input.
	DefaultZoomStep = 0.25
	// DefaultS3Region is used when a bucket is set without a region.
	DefaultS3Region = "us-east-1"

	// MaxDimension bounds width and height.
	MaxDimension = 8192
	// MaxDepthLimit bounds the recursion setting.
	MaxDepthLimit = 32
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RAYTRACER_"

// Config captures all runtime tunables for the CLI, window and web server.
type Config struct {
	Scene     string
	Width     int
	Height    int
	MaxDepth  int
	TileSize  int
	Workers   int
	Gamma     float64
	OutputDir string
	Format    string
	Window    bool
	WebPort   int
	OrbitStep float64
	ZoomStep  float64
	S3        S3Config
}

// S3Config describes where finished renders are uploaded. An empty bucket disables uploads.
type S3Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Enabled reports whether uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the configuration used when no environment overrides are present.
func Default() *Config {
	return &Config{
		Scene:     DefaultScene,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		MaxDepth:  DefaultMaxDepth,
		TileSize:  DefaultTileSize,
		Workers:   runtime.NumCPU(),
		Gamma:     DefaultGamma,
		OutputDir: DefaultOutputDir,
		Format:    DefaultFormat,
		WebPort:   DefaultWebPort,
		OrbitStep: DefaultOrbitStep,
		ZoomStep:  DefaultZoomStep,
		S3:        S3Config{Region: DefaultS3Region},
	}
}

// Load reads the given .env files (missing files are ignored), then the RAYTRACER_*
// environment variables, applying defaults and returning one error that lists every invalid override.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.Scene = getString("SCENE", cfg.Scene)
	cfg.OutputDir = getString("OUTPUT_DIR", cfg.OutputDir)
	cfg.Format = strings.ToLower(getString("FORMAT", cfg.Format))
	cfg.S3 = S3Config{
		Bucket:    getString("S3_BUCKET", ""),
		Prefix:    strings.Trim(getString("S3_PREFIX", ""), "/"),
		Region:    getString("S3_REGION", DefaultS3Region),
		Endpoint:  getString("S3_ENDPOINT", ""),
		AccessKey: getString("S3_ACCESS_KEY", ""),
		SecretKey: getString("S3_SECRET_KEY", ""),
	}

	var problems []string

	parseInt := func(key string, target *int, minValue, maxValue int) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < minValue || value > maxValue {
			problems = append(problems, fmt.Sprintf("%s%s must be an integer between %d and %d, got %q", EnvPrefix, key, minValue, maxValue, raw))
			return
		}
		*target = value
	}

	parseFloat := func(key string, target *float64) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("%s%s must be a positive number, got %q", EnvPrefix, key, raw))
			return
		}
		*target = value
	}

	parseInt("WIDTH", &cfg.Width, 1, MaxDimension)
	parseInt("HEIGHT", &cfg.Height, 1, MaxDimension)
	parseInt("MAX_DEPTH", &cfg.MaxDepth, 0, MaxDepthLimit)
	parseInt("TILE_SIZE", &cfg.TileSize, 1, MaxDimension)
	parseInt("WORKERS", &cfg.Workers, 1, 1024)
	parseInt("WEB_PORT", &cfg.WebPort, 1, 65535)
	parseFloat("GAMMA", &cfg.Gamma)
	parseFloat("ORBIT_STEP", &cfg.OrbitStep)
	parseFloat("ZOOM_STEP", &cfg.ZoomStep)

	if raw := lookup("WINDOW"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%sWINDOW must be a boolean value, got %q", EnvPrefix, raw))
		} else {
			cfg.Window = value
		}
	}

	problems = append(problems, cfg.problems()...)

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// Validate checks cross-field constraints, typically after command-line overrides.
func (c *Config) Validate() error {
	if problems := c.problems(); len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) problems() []string {
	var problems []string
	if c.Width <= 0 || c.Width > MaxDimension || c.Height <= 0 || c.Height > MaxDimension {
		problems = append(problems, fmt.Sprintf("image size must be within 1..%d, got %dx%d", MaxDimension, c.Width, c.Height))
	}
	if c.MaxDepth < 0 || c.MaxDepth > MaxDepthLimit {
		problems = append(problems, fmt.Sprintf("max depth must be within 0..%d, got %d", MaxDepthLimit, c.MaxDepth))
	}
	if !IsSupportedFormat(c.Format) {
		problems = append(problems, fmt.Sprintf("format must be one of %s, got %q", strings.Join(SupportedFormats, ", "), c.Format))
	}
	if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		problems = append(problems, EnvPrefix+"S3_ACCESS_KEY and "+EnvPrefix+"S3_SECRET_KEY must be provided together")
	}
	return problems
}

// SupportedFormats lists the image file formats the CLI can write.
var SupportedFormats = []string{"png", "jpg", "jpeg"}

// IsSupportedFormat reports whether format is one of SupportedFormats
func IsSupportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func getString(key, fallback string) string {
	if value := lookup(key); value != "" {
		return value
	}
	return fallback
}
