package lights

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Falloff attenuates a light with distance as 1/(1 + Linear*d + Quadratic*d²).
// The zero value disables attenuation.
type Falloff struct {
	Linear    float64
	Quadratic float64
}

// PointLight emits from a single position in all directions
type PointLight struct {
	Position  core.Vec3 // Light position in world space
	Color     core.Vec3 // Linear RGB color
	Intensity float64   // Scalar multiplier, >= 0
	Falloff   Falloff   // Optional distance attenuation
}

// NewPointLight creates a point light without distance attenuation
func NewPointLight(position, color core.Vec3, intensity float64) PointLight {
	return PointLight{
		Position:  position,
		Color:     color,
		Intensity: max(0, intensity),
	}
}

// WithFalloff returns a copy of the light with distance attenuation enabled
func (l PointLight) WithFalloff(linear, quadratic float64) PointLight {
	l.Falloff = Falloff{Linear: max(0, linear), Quadratic: max(0, quadratic)}
	return l
}

// DirectionFrom returns the unit direction from point toward the light and the distance to it
func (l PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	if distance < core.DegenerateLength {
		return core.NewVec3(0, 1, 0), 0
	}
	return toLight.Multiply(1.0 / distance), distance
}

// Radiance returns color*intensity reaching a point at the given distance
func (l PointLight) Radiance(distance float64) core.Vec3 {
	attenuation := 1.0
	if l.Falloff != (Falloff{}) {
		attenuation = 1.0 / (1.0 + l.Falloff.Linear*distance + l.Falloff.Quadratic*distance*distance)
	}
	return l.Color.Multiply(l.Intensity * attenuation)
}
