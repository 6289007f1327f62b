package camera

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Camera generates a primary ray for normalized screen coordinates.
// u runs left to right and v bottom to top, both in [0,1].
type Camera interface {
	GetRay(u, v float64) core.Ray
	Origin() core.Vec3
}

// CameraConfig describes a pinhole perspective camera
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // World up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Perspective is a fixed pinhole camera with a precomputed orthonormal basis
type Perspective struct {
	config     CameraConfig
	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	halfWidth  float64
	halfHeight float64
}

// NewCamera creates a perspective camera from the given configuration
func NewCamera(config CameraConfig) *Perspective {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 4.0 / 3.0
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		config.VFov = 45
	}

	forward := config.LookAt.Subtract(config.Position).NormalizeOr(core.NewVec3(0, 0, -1))
	right := forward.Cross(config.Up).Normalize()
	if right == (core.Vec3{}) {
		// Looking straight along the up vector: any horizontal right axis will do
		right = forward.Cross(core.NewVec3(0, 0, 1)).NormalizeOr(core.NewVec3(1, 0, 0))
	}
	up := right.Cross(forward)

	halfHeight := math.Tan(config.VFov * math.Pi / 180.0 / 2.0)

	return &Perspective{
		config:     config,
		forward:    forward,
		right:      right,
		up:         up,
		halfWidth:  halfHeight * config.AspectRatio,
		halfHeight: halfHeight,
	}
}

// GetRay returns the ray from the eye through viewport point (u, v)
func (c *Perspective) GetRay(u, v float64) core.Ray {
	direction := c.forward.
		Add(c.right.Multiply((2*u - 1) * c.halfWidth)).
		Add(c.up.Multiply((2*v - 1) * c.halfHeight))

	return core.NewRay(c.config.Position, direction)
}

// Origin returns the eye position
func (c *Perspective) Origin() core.Vec3 {
	return c.config.Position
}

// Config returns the configuration the camera was built from
func (c *Perspective) Config() CameraConfig {
	return c.config
}

// Basis returns the camera's right, up and forward axes
func (c *Perspective) Basis() (right, up, forward core.Vec3) {
	return c.right, c.up, c.forward
}
