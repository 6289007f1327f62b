package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/framecodec"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Request limits
const (
	DefaultWidth  = 400
	DefaultHeight = 300
	MinDimension  = 16
	MaxDimension  = 2000
	MaxDepthParam = 10
)

// Server handles web requests for the ray tracer
type Server struct {
	config   *config.Config
	logger   core.Logger
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer creates a new web server. A nil config uses the defaults.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		config: cfg,
		logger: renderer.NewDefaultLogger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	s.mux.HandleFunc("/ws/orbit", s.handleOrbit)
	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured port
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.WebPort)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Scene id (e.g., "cornell-box")
	Width    int    // Image width
	Height   int    // Image height
	MaxDepth int    // Reflection/refraction recursion limit
	Codec    framecodec.Codec
	Thumb    int // Longest side of the returned image, 0 = full size
}

// renderConfig converts the request into a renderer configuration
func (s *Server) renderConfig(req *RenderRequest) renderer.RenderConfig {
	trace := renderer.DefaultTraceConfig()
	trace.MaxDepth = req.MaxDepth
	trace.Gamma = s.config.Gamma
	return renderer.RenderConfig{
		Width:      req.Width,
		Height:     req.Height,
		TileSize:   s.config.TileSize,
		NumWorkers: s.config.Workers,
		Trace:      trace,
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default": scene.DefaultSceneID,
		"scenes":  scene.ListScenes(),
	})
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: strings.TrimSpace(query.Get("scene"))}
	if req.Scene == "" {
		req.Scene = s.config.Scene
	}
	if _, ok := scene.Lookup(req.Scene); !ok {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", DefaultWidth, MinDimension, MaxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", DefaultHeight, MinDimension, MaxDimension); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", min(s.config.MaxDepth, MaxDepthParam), 0, MaxDepthParam); err != nil {
		return nil, err
	}
	if req.Thumb, err = parseIntParam(query, "thumb", 0, 0, MaxDimension); err != nil {
		return nil, err
	}

	format := query.Get("format")
	if format == "" {
		format = query.Get("codec")
	}
	if req.Codec, err = framecodec.Lookup(format); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes v with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError sends a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
