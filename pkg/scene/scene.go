package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering.
// It is built once and must not be mutated while a render is in progress.
type Scene struct {
	Camera     camera.Camera
	Primitives []geometry.Primitive // Objects in the scene, in insertion order
	Lights     []lights.PointLight  // Lights in the scene
	Background core.Vec3            // Color returned by rays that escape
}

// New creates an empty scene with the given camera and background color
func New(cam camera.Camera, background core.Vec3) *Scene {
	return &Scene{
		Camera:     cam,
		Primitives: make([]geometry.Primitive, 0),
		Lights:     make([]lights.PointLight, 0),
		Background: background,
	}
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(l ...lights.PointLight) {
	s.Lights = append(s.Lights, l...)
}

// NearestHit tests every primitive and keeps the closest hit in (tMin, tMax).
// On an exact tie the primitive added first wins.
func (s *Scene) NearestHit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord
	closestT := tMax

	for _, p := range s.Primitives {
		if hit, ok := geometry.Intersect(p, ray, tMin, closestT); ok && hit.T < closestT {
			closest = hit
			closestT = hit.T
		}
	}

	return closest, closest != nil
}

// Occluded reports whether anything lies along the ray within (tMin, tMax)
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float64) bool {
	for _, p := range s.Primitives {
		if _, ok := geometry.Intersect(p, ray, tMin, tMax); ok {
			return true
		}
	}
	return false
}

// WithCamera returns a shallow copy that renders through a different camera.
// Primitives and lights are shared, so neither copy may be mutated afterwards.
func (s *Scene) WithCamera(cam camera.Camera) *Scene {
	clone := *s
	clone.Camera = cam
	return &clone
}

// Orbit returns the scene's camera as an orbit camera, if it is one
func (s *Scene) Orbit() (*camera.Orbit, bool) {
	orbit, ok := s.Camera.(*camera.Orbit)
	return orbit, ok
}

// Bounds returns the box around every bounded primitive; planes are ignored
func (s *Scene) Bounds() (core.AABB, bool) {
	var box core.AABB
	found := false
	for _, p := range s.Primitives {
		bounded, ok := p.(geometry.Bounded)
		if !ok {
			continue
		}
		if !found {
			box = bounded.Bounds()
			found = true
			continue
		}
		box = box.Union(bounded.Bounds())
	}
	return box, found
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}

// aspectOrDefault guards builders against zero or negative raster sizes
func aspectOrDefault(aspectRatio float64) float64 {
	if aspectRatio <= 0 || math.IsNaN(aspectRatio) || math.IsInf(aspectRatio, 0) {
		return 4.0 / 3.0
	}
	return aspectRatio
}
