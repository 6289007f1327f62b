package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Slab is the parametric interval in which a ray lies inside an AABB.
// NearAxis and FarAxis record which axis bounded each end (-1 when no axis did).
type Slab struct {
	TNear, TFar       float64
	NearAxis, FarAxis int
}

// Clip intersects the ray with the box using the slab method, starting from [tMin, tMax].
// It reports false when the interval is empty.
func (aabb AABB) Clip(ray Ray, tMin, tMax float64) (Slab, bool) {
	slab := Slab{TNear: tMin, TFar: tMax, NearAxis: -1, FarAxis: -1}

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Parallel to this slab: either always inside it or never
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return Slab{}, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if invDirection < 0 {
			t1, t2 = t2, t1
		}

		if t1 > slab.TNear {
			slab.TNear = t1
			slab.NearAxis = axis
		}
		if t2 < slab.TFar {
			slab.TFar = t2
			slab.FarAxis = axis
		}

		if slab.TNear > slab.TFar {
			return Slab{}, false
		}
	}

	return slab, true
}

// Hit tests if a ray intersects with this AABB within [tMin, tMax]
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, ok := aabb.Clip(ray, tMin, tMax)
	return ok
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Union returns the smallest AABB containing both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: NewVec3(math.Min(aabb.Min.X, other.Min.X), math.Min(aabb.Min.Y, other.Min.Y), math.Min(aabb.Min.Z, other.Min.Z)),
		Max: NewVec3(math.Max(aabb.Max.X, other.Max.X), math.Max(aabb.Max.Y, other.Max.Y), math.Max(aabb.Max.Z, other.Max.Z)),
	}
}
