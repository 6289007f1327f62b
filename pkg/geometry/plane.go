package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane. A zero normal falls back to +Y.
func NewPlane(point, normal core.Vec3, material *material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.NormalizeOr(core.NewVec3(0, 1, 0)),
		Material: material,
	}
}

func (*Plane) primitive() {}

// hit solves dot(P - point, normal) = 0 along the ray
func (p *Plane) hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	// Planes have no inside, so the normal always faces the incoming ray
	normal := p.Normal
	if denominator > 0 {
		normal = normal.Negate()
	}

	return &HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   normal,
		Material: p.Material,
	}, true
}
