package core

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Clamp", NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}
	if length := NewVec3(3, 4, 0).Length(); length != 5 {
		t.Errorf("Expected length 5, got %f", length)
	}
}

func TestVec3_NormalizeDegenerate(t *testing.T) {
	zero := NewVec3(0, 0, 0)
	if got := zero.Normalize(); got != zero {
		t.Errorf("Expected zero vector, got %v", got)
	}

	fallback := NewVec3(0, 1, 0)
	if got := zero.NormalizeOr(fallback); got != fallback {
		t.Errorf("Expected fallback %v, got %v", fallback, got)
	}

	got := NewVec3(0, 0, 10).NormalizeOr(fallback)
	if got != NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", got)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
		t.Errorf("Normalize produced NaN: %v", got)
	}
}

func TestReflect(t *testing.T) {
	got := Reflect(NewVec3(1, -1, 0), NewVec3(0, 1, 0))
	expected := NewVec3(1, 1, 0)
	if !vecClose(got, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRefract_StraightThroughAtNormalIncidence(t *testing.T) {
	incident := NewVec3(0, 0, -1)
	normal := NewVec3(0, 0, 1)

	got, ok := Refract(incident, normal, 1.0/1.5)
	if !ok {
		t.Fatal("Expected refraction at normal incidence")
	}
	if !vecClose(got, incident, 1e-12) {
		t.Errorf("Expected %v, got %v", incident, got)
	}
}

func TestRefract_ApproachesIncidentAsIndexApproachesOne(t *testing.T) {
	incident := NewVec3(1, -1, 0).Normalize()
	normal := NewVec3(0, 1, 0)

	previous := math.Inf(1)
	for _, ior := range []float64{1.5, 1.1, 1.01, 1.001, 1.0} {
		got, ok := Refract(incident, normal, 1.0/ior)
		if !ok {
			t.Fatalf("Unexpected total internal reflection for ior %f", ior)
		}
		deviation := got.Subtract(incident).Length()
		if deviation > previous {
			t.Errorf("Deviation grew from %g to %g at ior %f", previous, deviation, ior)
		}
		previous = deviation
	}

	if previous > 1e-12 {
		t.Errorf("Expected no bend at ior 1.0, deviation %g", previous)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	incident := NewVec3(math.Sin(math.Pi/6), -math.Cos(math.Pi/6), 0)
	normal := NewVec3(0, 1, 0)
	eta := 1.0 / 1.5

	got, ok := Refract(incident, normal, eta)
	if !ok {
		t.Fatal("Expected refraction")
	}

	if math.Abs(got.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted direction, got length %f", got.Length())
	}
	sinT := math.Abs(got.X)
	if math.Abs(sinT-eta*math.Sin(math.Pi/6)) > 1e-9 {
		t.Errorf("Expected sin(theta_t) %f, got %f", eta*math.Sin(math.Pi/6), sinT)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at 60 degrees is past the ~41.8 degree critical angle
	incident := NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	normal := NewVec3(0, 1, 0)

	if _, ok := Refract(incident, normal, 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, 5))

	if ray.Direction != NewVec3(0, 0, 1) {
		t.Errorf("Expected normalized direction, got %v", ray.Direction)
	}
	if got := ray.At(2); got != NewVec3(1, 2, 5) {
		t.Errorf("Expected (1,2,5), got %v", got)
	}
}

func TestVec3_Luminance(t *testing.T) {
	tests := []struct {
		name     string
		color    Vec3
		expected float64
	}{
		{"red", NewVec3(1, 0, 0), 0.2126},
		{"green", NewVec3(0, 1, 0), 0.7152},
		{"blue", NewVec3(0, 0, 1), 0.0722},
		{"white", NewVec3(1, 1, 1), 1.0},
		{"black", NewVec3(0, 0, 0), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Luminance(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected luminance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestVec3_LengthSquared(t *testing.T) {
	if got := NewVec3(1, -2, 2).LengthSquared(); got != 9 {
		t.Errorf("Expected squared length 9, got %f", got)
	}
}
