package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func TestNewCubeAt(t *testing.T) {
	cube := NewCubeAt(core.NewVec3(0, -0.5, -3), core.NewVec3(1.5, 1.5, 1.5), material.New())

	if cube.Min.Subtract(core.NewVec3(-0.75, -1.25, -3.75)).Length() > 1e-12 {
		t.Errorf("Unexpected min corner %v", cube.Min)
	}
	if cube.Max.Subtract(core.NewVec3(0.75, 0.25, -2.25)).Length() > 1e-12 {
		t.Errorf("Unexpected max corner %v", cube.Max)
	}
}

func TestNewCube_OrdersCorners(t *testing.T) {
	cube := NewCube(core.NewVec3(1, -1, 1), core.NewVec3(-1, 1, -1), material.New())

	if cube.Min != core.NewVec3(-1, -1, -1) || cube.Max != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected corners (-1,-1,-1)..(1,1,1), got %v..%v", cube.Min, cube.Max)
	}
}

func TestCube_Hit_AxisAligned(t *testing.T) {
	// 2x2x2 box centered at origin
	cube := NewCube(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), material.New())

	tests := []struct {
		name           string
		ray            core.Ray
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "Ray hits front face",
			ray:            core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			shouldHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "Ray hits back face",
			ray:            core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "Ray hits right face",
			ray:            core.NewRay(core.NewVec3(5, 0.2, 0.3), core.NewVec3(-1, 0, 0)),
			shouldHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "Ray hits top face",
			ray:            core.NewRay(core.NewVec3(0.5, 3, -0.5), core.NewVec3(0, -1, 0)),
			shouldHit:      true,
			expectedT:      2,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "Oblique ray bound by the x slab",
			ray:            core.NewRay(core.NewVec3(-3, 0, -0.5), core.NewVec3(1, 0, 0.1)),
			shouldHit:      true,
			expectedT:      2 * math.Sqrt(1.01),
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name:           "Ray from inside exits through top",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
			shouldHit:      true,
			expectedT:      1,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:      "Ray misses box",
			ray:       core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray points away from box",
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := Intersect(cube, tt.ray, Epsilon, math.Inf(1))

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestCube_Hit_RespectsRange(t *testing.T) {
	cube := NewCube(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), material.New())
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	if hit, isHit := Intersect(cube, ray, Epsilon, 3); isHit {
		t.Errorf("Expected miss due to tMax, got hit at t=%f", hit.T)
	}
}
