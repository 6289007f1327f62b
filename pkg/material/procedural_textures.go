package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Texture picks a surface color from a world-space position.
// The set of textures is closed: Solid and Checkerboard.
type Texture interface {
	ColorAt(base core.Vec3, point core.Vec3) core.Vec3
	texture()
}

// Solid returns the material's base color everywhere
type Solid struct{}

func (Solid) ColorAt(base core.Vec3, point core.Vec3) core.Vec3 {
	return base
}

func (Solid) texture() {}

// Checkerboard alternates two colors on a grid of Scale-sized cells in the XZ plane
type Checkerboard struct {
	Scale float64   // Cell size in world units
	Even  core.Vec3 // Color where floor(x/scale)+floor(z/scale) is even
	Odd   core.Vec3 // Color where it is odd
}

// NewCheckerboard pairs a color with black, the pattern used by the demo scenes
func NewCheckerboard(scale float64, color core.Vec3) Checkerboard {
	return Checkerboard{Scale: scale, Even: color, Odd: core.NewVec3(0, 0, 0)}
}

// ColorAt selects Even or Odd by cell parity. Texture lookup ignores the base color.
func (c Checkerboard) ColorAt(base core.Vec3, point core.Vec3) core.Vec3 {
	if c.Parity(point) == 0 {
		return c.Even
	}
	return c.Odd
}

// Parity returns 0 or 1 for the cell containing point.
// Floored modulo keeps the pattern regular across negative coordinates.
func (c Checkerboard) Parity(point core.Vec3) int {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	cell := int64(math.Floor(point.X/scale)) + int64(math.Floor(point.Z/scale))
	return int(((cell % 2) + 2) % 2)
}

func (Checkerboard) texture() {}
