package camera

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestCamera_CenterRayIsForward(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Position:    core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: 1,
	})

	ray := camera.GetRay(0.5, 0.5)
	if !vecNear(ray.Direction, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected center ray direction (0,0,-1), got %v", ray.Direction)
	}
	if ray.Origin != core.NewVec3(0, 0, 5) {
		t.Errorf("Expected ray origin at eye, got %v", ray.Origin)
	}
}

func TestCamera_BasisIsOrthonormal(t *testing.T) {
	configs := []CameraConfig{
		{Position: core.NewVec3(0, 0, 5), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0)},
		{Position: core.NewVec3(3, 2, -1), LookAt: core.NewVec3(0, -0.5, -3), Up: core.NewVec3(0, 1, 0)},
		// Looking straight down the up axis
		{Position: core.NewVec3(0, 10, 0), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0)},
	}

	for i, config := range configs {
		right, up, forward := NewCamera(config).Basis()
		for name, v := range map[string]core.Vec3{"right": right, "up": up, "forward": forward} {
			if math.Abs(v.Length()-1) > 1e-9 {
				t.Errorf("config %d: expected unit %s axis, got length %f", i, name, v.Length())
			}
		}
		if math.Abs(right.Dot(up)) > 1e-9 || math.Abs(right.Dot(forward)) > 1e-9 || math.Abs(up.Dot(forward)) > 1e-9 {
			t.Errorf("config %d: expected orthogonal basis, got right=%v up=%v forward=%v", i, right, up, forward)
		}
	}
}

func TestCamera_CornersFollowFieldOfView(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	})

	// tan(45°) = 1, so the top edge is one unit up and the right edge two units across
	top := camera.GetRay(0.5, 1)
	expectedTop := core.NewVec3(0, 1, -1).Normalize()
	if !vecNear(top.Direction, expectedTop, 1e-9) {
		t.Errorf("Expected top ray %v, got %v", expectedTop, top.Direction)
	}

	right := camera.GetRay(1, 0.5)
	expectedRight := core.NewVec3(2, 0, -1).Normalize()
	if !vecNear(right.Direction, expectedRight, 1e-9) {
		t.Errorf("Expected right ray %v, got %v", expectedRight, right.Direction)
	}

	bottomLeft := camera.GetRay(0, 0)
	if bottomLeft.Direction.X >= 0 || bottomLeft.Direction.Y >= 0 {
		t.Errorf("Expected bottom-left ray to point left and down, got %v", bottomLeft.Direction)
	}
}

func TestCamera_InvalidConfigUsesDefaults(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
	})

	config := camera.Config()
	if config.VFov != 45 {
		t.Errorf("Expected default vfov 45, got %f", config.VFov)
	}
	if math.Abs(config.AspectRatio-4.0/3.0) > 1e-12 {
		t.Errorf("Expected default aspect ratio 4/3, got %f", config.AspectRatio)
	}
}

func TestOrbit_EyePosition(t *testing.T) {
	tests := []struct {
		name     string
		yaw      float64
		pitch    float64
		expected core.Vec3
	}{
		{"front", 0, 0, core.NewVec3(0, 0, 5)},
		{"quarter turn", 90, 0, core.NewVec3(5, 0, 0)},
		{"half turn", 180, 0, core.NewVec3(0, 0, -5)},
		{"raised", 0, 30, core.NewVec3(0, 2.5, 5*math.Cos(math.Pi/6))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orbit := NewOrbit(OrbitConfig{
				Center: core.NewVec3(0, 0, 0),
				Radius: 5,
				Yaw:    tt.yaw,
				Pitch:  tt.pitch,
				Up:     core.NewVec3(0, 1, 0),
			})

			if !vecNear(orbit.Eye(), tt.expected, 1e-9) {
				t.Errorf("Expected eye %v, got %v", tt.expected, orbit.Eye())
			}
			if math.Abs(orbit.Eye().Length()-5) > 1e-9 {
				t.Errorf("Expected eye distance 5, got %f", orbit.Eye().Length())
			}
		})
	}
}

func TestOrbit_LooksAtCenter(t *testing.T) {
	center := core.NewVec3(0, -0.5, -3)
	orbit := NewOrbit(OrbitConfig{Center: center, Radius: 4, Yaw: 37, Pitch: 20, Up: core.NewVec3(0, 1, 0)})

	ray := orbit.GetRay(0.5, 0.5)
	expected := center.Subtract(orbit.Eye()).Normalize()
	if !vecNear(ray.Direction, expected, 1e-9) {
		t.Errorf("Expected center ray %v, got %v", expected, ray.Direction)
	}
	if orbit.Origin() != orbit.Eye() {
		t.Errorf("Expected origin to match eye, got %v vs %v", orbit.Origin(), orbit.Eye())
	}
}

func TestOrbit_PitchClamped(t *testing.T) {
	orbit := NewOrbit(OrbitConfig{Radius: 5, Pitch: 120, Up: core.NewVec3(0, 1, 0)})
	if orbit.Config().Pitch != MaxPitch {
		t.Errorf("Expected initial pitch clamped to %f, got %f", MaxPitch, orbit.Config().Pitch)
	}

	orbit.Orbit(0, -500)
	if orbit.Config().Pitch != MinPitch {
		t.Errorf("Expected pitch clamped to %f, got %f", MinPitch, orbit.Config().Pitch)
	}

	// The basis must stay valid right at the limit
	right, up, _ := orbit.Snapshot().Basis()
	if math.Abs(right.Length()-1) > 1e-9 || math.Abs(up.Length()-1) > 1e-9 {
		t.Errorf("Expected unit basis at pitch limit, got right=%v up=%v", right, up)
	}
}

func TestOrbit_ZoomKeepsMinimumRadius(t *testing.T) {
	orbit := NewOrbit(OrbitConfig{Radius: 2, Up: core.NewVec3(0, 1, 0)})

	orbit.Zoom(-0.5)
	if math.Abs(orbit.Config().Radius-1.5) > 1e-12 {
		t.Errorf("Expected radius 1.5, got %f", orbit.Config().Radius)
	}

	orbit.Zoom(-10)
	if orbit.Config().Radius != MinOrbitRadius {
		t.Errorf("Expected radius clamped to %f, got %f", MinOrbitRadius, orbit.Config().Radius)
	}
}

func TestInput_Delta(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		yaw, pitch float64
		radius     float64
	}{
		{"idle", Input{}, 0, 0, 0},
		{"left", Input{Left: true}, -5, 0, 0},
		{"right and up", Input{Right: true, Up: true}, 5, 5, 0},
		{"opposites cancel", Input{Left: true, Right: true, Up: true, Down: true}, 0, 0, 0},
		{"zoom in", Input{ZoomIn: true}, 0, 0, -0.25},
		{"zoom out", Input{ZoomOut: true, Down: true}, 0, -5, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaw, pitch, radius := tt.input.Delta(5, 0.25)
			if yaw != tt.yaw || pitch != tt.pitch || radius != tt.radius {
				t.Errorf("Expected (%f, %f, %f), got (%f, %f, %f)", tt.yaw, tt.pitch, tt.radius, yaw, pitch, radius)
			}
		})
	}
}

func TestOrbit_Apply(t *testing.T) {
	orbit := NewOrbit(OrbitConfig{Radius: 5, Up: core.NewVec3(0, 1, 0)})

	if orbit.Apply(Input{}, 5, 0.25) {
		t.Error("Expected idle input to leave the camera unchanged")
	}

	if !orbit.Apply(Input{Right: true}, 5, 0.25) {
		t.Error("Expected right input to move the camera")
	}
	if orbit.Config().Yaw != 5 {
		t.Errorf("Expected yaw 5, got %f", orbit.Config().Yaw)
	}

	// Already at the pitch limit, so further up input is a no-op
	orbit.Orbit(0, MaxPitch)
	if orbit.Apply(Input{Up: true}, 5, 0.25) {
		t.Error("Expected clamped pitch input to report no change")
	}
}
