package scene

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func newTestScene() *Scene {
	return New(camera.NewCamera(camera.CameraConfig{
		Position: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
	}), core.NewVec3(0.2, 0.3, 0.4))
}

func TestNearestHit_PicksClosest(t *testing.T) {
	s := newTestScene()
	far := geometry.NewSphere(core.NewVec3(0, 0, -10), 1, material.New())
	near := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.New())
	s.Add(far, near)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := s.NearestHit(ray, geometry.Epsilon, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected nearest hit at t=2, got t=%f", hit.T)
	}
	if hit.Material != near.Material {
		t.Error("Expected hit to carry the nearer sphere's material")
	}
}

func TestNearestHit_FirstWinsTies(t *testing.T) {
	s := newTestScene()
	first := material.New(material.WithColor(core.NewVec3(1, 0, 0)))
	second := material.New(material.WithColor(core.NewVec3(0, 1, 0)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, first),
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, second),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := s.NearestHit(ray, geometry.Epsilon, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != first {
		t.Error("Expected the first primitive to win an exact tie")
	}
}

func TestNearestHit_EmptyScene(t *testing.T) {
	s := newTestScene()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, ok := s.NearestHit(ray, geometry.Epsilon, math.Inf(1)); ok {
		t.Error("Expected miss in empty scene")
	}
}

func TestOccluded(t *testing.T) {
	s := newTestScene()
	s.Add(geometry.NewCubeAt(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1), material.New()))

	up := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	if !s.Occluded(up, geometry.Epsilon, 10) {
		t.Error("Expected cube to block the ray toward y=10")
	}
	if s.Occluded(up, geometry.Epsilon, 1) {
		t.Error("Expected no blocker before the cube's lower face")
	}

	side := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	if s.Occluded(side, geometry.Epsilon, 10) {
		t.Error("Expected sideways ray to be clear")
	}
}

func TestWithCamera_SharesContent(t *testing.T) {
	s := newTestScene()
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.New()))

	other := camera.NewCamera(camera.CameraConfig{
		Position: core.NewVec3(5, 0, 0),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
	})
	clone := s.WithCamera(other)

	if clone.Camera != camera.Camera(other) {
		t.Error("Expected clone to use the new camera")
	}
	if s.Camera == clone.Camera {
		t.Error("Expected original camera to be untouched")
	}
	if clone.GetPrimitiveCount() != 1 || clone.Primitives[0] != s.Primitives[0] {
		t.Error("Expected clone to share primitives")
	}
}

func TestBounds_IgnoresPlanes(t *testing.T) {
	s := newTestScene()
	if _, ok := s.Bounds(); ok {
		t.Error("Expected no bounds for an empty scene")
	}

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), material.New()),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.New()),
		geometry.NewCube(core.NewVec3(2, 2, 2), core.NewVec3(3, 3, 3), material.New()),
	)

	box, ok := s.Bounds()
	if !ok {
		t.Fatal("Expected bounds")
	}
	if box.Min != core.NewVec3(-1, -1, -1) || box.Max != core.NewVec3(3, 3, 3) {
		t.Errorf("Expected bounds (-1,-1,-1)..(3,3,3), got %v..%v", box.Min, box.Max)
	}
}

func TestOrbitScene_StartsAtDefaultEye(t *testing.T) {
	s := NewOrbitScene(4.0 / 3.0)
	orbit, ok := s.Orbit()
	if !ok {
		t.Fatal("Expected orbit camera")
	}
	// Rounded yaw and pitch put the eye within a few centimeters of the fixed camera
	if d := orbit.Eye().Subtract(defaultEye).Length(); d > 0.05 {
		t.Errorf("Expected orbit eye near %v, got %v (distance %f)", defaultEye, orbit.Eye(), d)
	}
}
