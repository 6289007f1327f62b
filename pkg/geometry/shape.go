package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Epsilon is the smallest accepted hit distance; closer hits are treated as self-intersection
const Epsilon = 1e-4

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64            // Distance along the ray
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Unit outward surface normal (planes face the ray)
	Material *material.Material // Material of the primitive that was hit
}

// FrontFace reports whether the ray arrived against the normal, i.e. from outside
func (h *HitRecord) FrontFace(ray core.Ray) bool {
	return ray.Direction.Dot(h.Normal) < 0
}

// FacingNormal returns the normal flipped, if needed, to point back toward the ray origin
func (h *HitRecord) FacingNormal(ray core.Ray) core.Vec3 {
	if h.FrontFace(ray) {
		return h.Normal
	}
	return h.Normal.Negate()
}

// Primitive is the closed set of shapes the tracer understands: *Sphere, *Cube and *Plane.
// Adding a shape means adding a case to Intersect.
type Primitive interface {
	primitive()
}

// Bounded primitives expose a box used as a cheap reject test before the exact intersection
type Bounded interface {
	Bounds() core.AABB
}

// Intersect tests a ray against any primitive within (tMin, tMax).
// tMin should be at least Epsilon to keep hits in front of the ray origin.
func Intersect(p Primitive, ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	switch shape := p.(type) {
	case *Sphere:
		if !shape.Bounds().Hit(ray, tMin, tMax) {
			return nil, false
		}
		return shape.hit(ray, tMin, tMax)
	case *Cube:
		return shape.hit(ray, tMin, tMax)
	case *Plane:
		return shape.hit(ray, tMin, tMax)
	default:
		return nil, false
	}
}
