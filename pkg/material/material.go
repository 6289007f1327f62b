package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Albedo weights how much of a surface's final color comes from each lighting term.
// The weights are not required to sum to one; anything above one simply over-brightens.
type Albedo struct {
	Diffuse    float64 // kd
	Specular   float64 // ks
	Reflective float64 // kr
	Refractive float64 // kt
}

// Material describes how a surface responds to light under the Phong model
type Material struct {
	Color            core.Vec3 // Base color for solid textures
	Texture          Texture   // Procedural color source
	Albedo           Albedo
	SpecularExponent float64 // Phong shininess, > 0
	RefractiveIndex  float64 // Index of refraction, >= 1
}

// Default values for a freshly created material
const (
	DefaultSpecularExponent = 50.0
	DefaultRefractiveIndex  = 1.0
)

// Option customizes a material at construction time
type Option func(*Material)

// New creates a matte light-gray material and applies the options in order
func New(opts ...Option) *Material {
	m := &Material{
		Color:            core.NewVec3(0.7, 0.7, 0.7),
		Texture:          Solid{},
		Albedo:           Albedo{Diffuse: 0.9, Specular: 0.1},
		SpecularExponent: DefaultSpecularExponent,
		RefractiveIndex:  DefaultRefractiveIndex,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewPhong creates a solid material from explicit Phong parameters
func NewPhong(color core.Vec3, albedo Albedo, specularExponent, refractiveIndex float64) *Material {
	return &Material{
		Color:            color,
		Texture:          Solid{},
		Albedo:           albedo,
		SpecularExponent: specularExponent,
		RefractiveIndex:  refractiveIndex,
	}
}

// WithColor sets the base color
func WithColor(color core.Vec3) Option {
	return func(m *Material) { m.Color = color }
}

// WithDiffuse sets the diffuse weight, clamped to [0,1]
func WithDiffuse(kd float64) Option {
	return func(m *Material) { m.Albedo.Diffuse = clamp01(kd) }
}

// WithSpecular sets the specular weight (clamped to [0,1]) and the Phong exponent
func WithSpecular(ks, exponent float64) Option {
	return func(m *Material) {
		m.Albedo.Specular = clamp01(ks)
		if exponent > 0 {
			m.SpecularExponent = exponent
		}
	}
}

// WithReflectivity sets the mirror weight, clamped to [0,1]
func WithReflectivity(kr float64) Option {
	return func(m *Material) { m.Albedo.Reflective = clamp01(kr) }
}

// WithTransparency sets the refraction weight (clamped to [0,1]) and index of refraction (at least 1)
func WithTransparency(kt, refractiveIndex float64) Option {
	return func(m *Material) {
		m.Albedo.Refractive = clamp01(kt)
		m.RefractiveIndex = max(1.0, refractiveIndex)
	}
}

// WithCheckerboard switches the texture to a two-color checkerboard
func WithCheckerboard(scale float64, even, odd core.Vec3) Option {
	return func(m *Material) {
		m.Texture = Checkerboard{Scale: scale, Even: even, Odd: odd}
	}
}

// SampleColor returns the surface color at a world-space point
func (m *Material) SampleColor(point core.Vec3) core.Vec3 {
	if m.Texture == nil {
		return m.Color
	}
	return m.Texture.ColorAt(m.Color, point)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
