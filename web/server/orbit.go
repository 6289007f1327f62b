package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// OrbitMessage moves the session camera: yaw and pitch in degrees, zoom as a radius change
type OrbitMessage struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Zoom  float64 `json:"zoom"`
}

// FrameHeader precedes every binary frame on the orbit websocket
type FrameHeader struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Codec     string  `json:"codec"`
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
	Radius    float64 `json:"radius"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// orbitWriteTimeout bounds each websocket write
const orbitWriteTimeout = 10 * time.Second

// handleOrbit runs an interactive session: every client message moves the session's own
// orbit camera and is answered with a freshly rendered frame.
func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Each session builds its own scene so cameras are never shared between clients
	sceneObj, err := scene.Build(req.Scene, float64(req.Width)/float64(req.Height))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	orbit, ok := sceneObj.Orbit()
	if !ok {
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, fmt.Sprintf("scene %s has no orbit camera", req.Scene))
		_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(orbitWriteTimeout))
		return
	}

	ctx := r.Context()
	rend := renderer.NewRenderer(sceneObj, s.renderConfig(req), nil)

	sendFrame := func() error {
		img, stats, err := rend.Render(ctx, nil)
		if err != nil {
			return err
		}
		data, err := req.Codec.Encode(img)
		if err != nil {
			return err
		}

		cfg := orbit.Config()
		header, err := json.Marshal(FrameHeader{
			Width:     img.Bounds().Dx(),
			Height:    img.Bounds().Dy(),
			Codec:     req.Codec.Name(),
			Yaw:       cfg.Yaw,
			Pitch:     cfg.Pitch,
			Radius:    cfg.Radius,
			ElapsedMs: stats.Elapsed.Milliseconds(),
		})
		if err != nil {
			return err
		}

		_ = conn.SetWriteDeadline(time.Now().Add(orbitWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, header); err != nil {
			return err
		}
		return conn.WriteMessage(websocket.BinaryMessage, data)
	}

	if err := sendFrame(); err != nil {
		log.Printf("Orbit session %s: %v", r.RemoteAddr, err)
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("read error:", err)
			}
			return
		}

		var move OrbitMessage
		if err := json.Unmarshal(msg, &move); err != nil {
			reply, _ := json.Marshal(map[string]string{"error": fmt.Sprintf("invalid orbit message: %v", err)})
			_ = conn.SetWriteDeadline(time.Now().Add(orbitWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}
			continue
		}

		// The renderer reads the camera only inside Render, which runs on this goroutine
		orbit.Orbit(move.Yaw, move.Pitch)
		orbit.Zoom(move.Zoom)

		if err := sendFrame(); err != nil {
			log.Printf("Orbit session %s: %v", r.RemoteAddr, err)
			return
		}
	}
}
