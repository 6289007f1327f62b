package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Defaults for TraceConfig
const (
	DefaultMaxDepth   = 3
	DefaultShadowBias = 1e-3
)

// TraceConfig contains the shading configuration
type TraceConfig struct {
	MaxDepth   int     // Deepest recursion level that is still shaded
	ShadowBias float64 // Offset along the normal for secondary ray origins
	Gamma      float64 // Display gamma applied at color conversion (1 = none)
}

// DefaultTraceConfig returns sensible default values
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		MaxDepth:   DefaultMaxDepth,
		ShadowBias: DefaultShadowBias,
		Gamma:      1.0,
	}
}

// Raytracer computes Phong-shaded colors with recursive reflection and refraction.
// It holds no per-ray state, so one instance can be shared by every worker.
type Raytracer struct {
	config TraceConfig
}

// NewRaytracer creates a new raytracer, filling in defaults for unset values
func NewRaytracer(config TraceConfig) *Raytracer {
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	if config.ShadowBias <= 0 {
		config.ShadowBias = DefaultShadowBias
	}
	if config.Gamma <= 0 {
		config.Gamma = 1.0
	}
	return &Raytracer{config: config}
}

// Config returns the effective configuration
func (rt *Raytracer) Config() TraceConfig {
	return rt.config
}

// CastRay returns the color seen along a ray. Primary rays start at depth 0;
// anything deeper than MaxDepth sees only the background.
func (rt *Raytracer) CastRay(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	if depth > rt.config.MaxDepth {
		return s.Background
	}

	hit, isHit := s.NearestHit(ray, geometry.Epsilon, math.Inf(1))
	if !isHit {
		return s.Background
	}

	mat := hit.Material
	normal := hit.FacingNormal(ray)
	result := rt.DirectLighting(ray, hit, s)

	if mat.Albedo.Reflective > 0 {
		reflected := core.NewRay(rt.offset(hit.Point, normal), core.Reflect(ray.Direction, normal))
		result = result.Add(rt.CastRay(reflected, s, depth+1).Multiply(mat.Albedo.Reflective))
	}

	if mat.Albedo.Refractive > 0 {
		result = result.Add(rt.refractedColor(ray, hit, s, depth).Multiply(mat.Albedo.Refractive))
	}

	return result.Clamp(0, 1)
}

// DirectLighting sums the diffuse and specular Phong terms over every unshadowed light.
// There is no ambient term, so a point every light is blocked from is black here.
func (rt *Raytracer) DirectLighting(ray core.Ray, hit *geometry.HitRecord, s *scene.Scene) core.Vec3 {
	mat := hit.Material
	normal := hit.FacingNormal(ray)
	surface := mat.SampleColor(hit.Point)
	view := ray.Origin.Subtract(hit.Point).NormalizeOr(ray.Direction.Negate())

	var total core.Vec3
	for _, light := range s.Lights {
		toLight, distance := light.DirectionFrom(hit.Point)
		if rt.InShadow(hit.Point, normal, light, s) {
			continue
		}

		radiance := light.Radiance(distance)
		nDotL := normal.Dot(toLight)
		if nDotL <= 0 {
			continue
		}

		diffuse := radiance.MultiplyVec(surface).Multiply(mat.Albedo.Diffuse * nDotL)
		total = total.Add(diffuse)

		if mat.Albedo.Specular > 0 {
			mirrored := core.Reflect(toLight.Negate(), normal)
			highlight := math.Pow(max(0, view.Dot(mirrored)), mat.SpecularExponent)
			total = total.Add(radiance.Multiply(mat.Albedo.Specular * highlight))
		}
	}

	return total
}

// InShadow reports whether any primitive blocks the segment from the biased surface point to the light
func (rt *Raytracer) InShadow(point, normal core.Vec3, light lights.PointLight, s *scene.Scene) bool {
	origin := rt.offset(point, normal)
	toLight, distance := light.DirectionFrom(origin)
	if distance == 0 {
		return false
	}
	return s.Occluded(core.NewRay(origin, toLight), geometry.Epsilon, distance)
}

// refractedColor follows the transmitted ray, falling back to a mirror bounce past the critical angle
func (rt *Raytracer) refractedColor(ray core.Ray, hit *geometry.HitRecord, s *scene.Scene, depth int) core.Vec3 {
	ior := hit.Material.RefractiveIndex
	eta := 1.0 / ior
	if !hit.FrontFace(ray) {
		eta = ior
	}

	normal := hit.FacingNormal(ray)
	direction, ok := core.Refract(ray.Direction, normal, eta)
	if !ok {
		// Total internal reflection stays on the incident side
		reflected := core.NewRay(rt.offset(hit.Point, normal), core.Reflect(ray.Direction, normal))
		return rt.CastRay(reflected, s, depth+1)
	}

	return rt.CastRay(core.NewRay(rt.offset(hit.Point, normal.Negate()), direction), s, depth+1)
}

func (rt *Raytracer) offset(point, normal core.Vec3) core.Vec3 {
	return point.Add(normal.Multiply(rt.config.ShadowBias))
}

// TracePixel returns the color through the center of pixel (x, y), with y counted from the top row
func (rt *Raytracer) TracePixel(s *scene.Scene, x, y, width, height int) core.Vec3 {
	u := (float64(x) + 0.5) / float64(width)
	v := (float64(height-y) - 0.5) / float64(height)
	return rt.CastRay(s.Camera.GetRay(u, v), s, 0)
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and optional gamma correction
func (rt *Raytracer) vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if rt.config.Gamma != 1.0 {
		colorVec = colorVec.GammaCorrect(rt.config.Gamma)
	}

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
