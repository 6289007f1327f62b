package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Cube is an axis-aligned box spanning Min to Max
type Cube struct {
	Min      core.Vec3
	Max      core.Vec3
	Material *material.Material
}

// NewCube creates a box from its two extreme corners, in any order
func NewCube(a, b core.Vec3, material *material.Material) *Cube {
	bounds := core.NewAABBFromPoints(a, b)
	return &Cube{
		Min:      bounds.Min,
		Max:      bounds.Max,
		Material: material,
	}
}

// NewCubeAt creates a box centered at center with full edge lengths given by size
func NewCubeAt(center, size core.Vec3, material *material.Material) *Cube {
	half := size.Multiply(0.5)
	return NewCube(center.Subtract(half), center.Add(half), material)
}

func (*Cube) primitive() {}

// hit uses the slab method. The face normal comes from the axis whose slab bound the
// interval: the entry face when the ray starts outside, the exit face when it starts inside.
func (c *Cube) hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	slab, ok := c.Bounds().Clip(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	var t float64
	var normal core.Vec3
	switch {
	case slab.NearAxis >= 0 && slab.TNear > tMin:
		t = slab.TNear
		normal = axisNormal(slab.NearAxis, -sign(ray.Direction.Axis(slab.NearAxis)))
	case slab.FarAxis >= 0 && slab.TFar < tMax:
		t = slab.TFar
		normal = axisNormal(slab.FarAxis, sign(ray.Direction.Axis(slab.FarAxis)))
	default:
		return nil, false
	}

	return &HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   normal,
		Material: c.Material,
	}, true
}

// Bounds returns the box itself
func (c *Cube) Bounds() core.AABB {
	return core.NewAABB(c.Min, c.Max)
}

func axisNormal(axis int, s float64) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(s, 0, 0)
	case 1:
		return core.NewVec3(0, s, 0)
	default:
		return core.NewVec3(0, 0, s)
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
