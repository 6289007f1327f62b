package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Pitch stays strictly inside (-90°, 90°) so forward never lines up with world up
const (
	MaxPitch       = 89.0
	MinPitch       = -89.0
	MinOrbitRadius = 0.1
)

// OrbitConfig places a camera on a sphere around a pivot. Angles are in degrees.
type OrbitConfig struct {
	Center      core.Vec3 // Pivot the camera circles and looks at
	Radius      float64   // Distance from the pivot
	Yaw         float64   // Rotation about world up; 0 puts the eye on +Z
	Pitch       float64   // Elevation above the pivot's horizontal plane
	Up          core.Vec3 // World up direction
	VFov        float64   // Vertical field of view
	AspectRatio float64   // Width / height
}

// Orbit is a camera driven by spherical coordinates around a pivot.
// It is not safe for concurrent mutation; render from Snapshot when input runs on another goroutine.
type Orbit struct {
	config OrbitConfig
	eye    core.Vec3
	view   *Perspective
}

// NewOrbit creates an orbit camera, clamping pitch and radius into range
func NewOrbit(config OrbitConfig) *Orbit {
	o := &Orbit{config: config}
	o.config.Pitch = mgl64.Clamp(config.Pitch, MinPitch, MaxPitch)
	o.config.Radius = max(config.Radius, MinOrbitRadius)
	o.update()
	return o
}

// Orbit adds yaw and pitch deltas (degrees) and re-derives the eye
func (o *Orbit) Orbit(deltaYaw, deltaPitch float64) {
	o.config.Yaw += deltaYaw
	o.config.Pitch = mgl64.Clamp(o.config.Pitch+deltaPitch, MinPitch, MaxPitch)
	o.update()
}

// Zoom moves the eye toward (negative delta) or away from the pivot
func (o *Orbit) Zoom(deltaRadius float64) {
	o.config.Radius = max(o.config.Radius+deltaRadius, MinOrbitRadius)
	o.update()
}

// update recomputes the eye from (radius, yaw, pitch) and rebuilds the view basis
func (o *Orbit) update() {
	// mgl64 measures theta from +Z and phi around it; swizzle into a y-up frame
	s := mgl64.SphericalToCartesian(
		o.config.Radius,
		mgl64.DegToRad(90-o.config.Pitch),
		mgl64.DegToRad(o.config.Yaw),
	)
	offset := core.NewVec3(s.Y(), s.Z(), s.X())

	o.eye = o.config.Center.Add(offset)
	o.view = NewCamera(CameraConfig{
		Position:    o.eye,
		LookAt:      o.config.Center,
		Up:          o.config.Up,
		VFov:        o.config.VFov,
		AspectRatio: o.config.AspectRatio,
	})
}

// GetRay generates a ray exactly like a perspective camera placed at the current eye
func (o *Orbit) GetRay(u, v float64) core.Ray {
	return o.view.GetRay(u, v)
}

// Origin returns the current eye position
func (o *Orbit) Origin() core.Vec3 {
	return o.eye
}

// Eye returns the current eye position
func (o *Orbit) Eye() core.Vec3 {
	return o.eye
}

// Config returns the current orbit parameters
func (o *Orbit) Config() OrbitConfig {
	return o.config
}

// Snapshot returns an immutable perspective camera for the current eye
func (o *Orbit) Snapshot() *Perspective {
	return o.view
}

// Input is one frame of orbit controls from a keyboard or remote client
type Input struct {
	Left, Right bool
	Up, Down    bool
	ZoomIn      bool
	ZoomOut     bool
}

// Any reports whether any control is active
func (in Input) Any() bool {
	return in != Input{}
}

// Delta converts the controls to (yaw, pitch, radius) deltas.
// Opposite controls cancel out.
func (in Input) Delta(angleStep, zoomStep float64) (deltaYaw, deltaPitch, deltaRadius float64) {
	if in.Left {
		deltaYaw -= angleStep
	}
	if in.Right {
		deltaYaw += angleStep
	}
	if in.Up {
		deltaPitch += angleStep
	}
	if in.Down {
		deltaPitch -= angleStep
	}
	if in.ZoomIn {
		deltaRadius -= zoomStep
	}
	if in.ZoomOut {
		deltaRadius += zoomStep
	}
	return deltaYaw, deltaPitch, deltaRadius
}

// Apply moves the camera by one frame of input and reports whether anything changed
func (o *Orbit) Apply(in Input, angleStep, zoomStep float64) bool {
	if !in.Any() {
		return false
	}
	before := o.config
	deltaYaw, deltaPitch, deltaRadius := in.Delta(angleStep, zoomStep)
	o.Orbit(deltaYaw, deltaPitch)
	if deltaRadius != 0 {
		o.Zoom(deltaRadius)
	}
	return o.config != before
}
