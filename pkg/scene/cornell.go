package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell-style room built from planes, holding a mirror cube,
// a matte cube and a glass sphere under a single ceiling light
func NewCornellScene(aspectRatio float64) *Scene {
	cam := camera.NewCamera(camera.CameraConfig{
		Position:    core.NewVec3(278, 278, -800), // Outside the open front of the box
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: aspectOrDefault(aspectRatio),
	})

	s := New(cam, core.NewVec3(0, 0, 0)) // Black background

	// Create materials
	white := material.New(material.WithColor(core.NewVec3(0.73, 0.73, 0.73)), material.WithDiffuse(0.9), material.WithSpecular(0, 1))
	red := material.New(material.WithColor(core.NewVec3(0.65, 0.05, 0.05)), material.WithDiffuse(0.9), material.WithSpecular(0, 1))
	green := material.New(material.WithColor(core.NewVec3(0.12, 0.45, 0.15)), material.WithDiffuse(0.9), material.WithSpecular(0, 1))
	mirror := material.New(
		material.WithColor(core.NewVec3(0.8, 0.8, 0.9)),
		material.WithDiffuse(0.1),
		material.WithSpecular(0.5, 200),
		material.WithReflectivity(0.85),
	)
	glass := material.New(
		material.WithDiffuse(0.05),
		material.WithSpecular(0.5, 200),
		material.WithReflectivity(0.1),
		material.WithTransparency(0.85, 1.5),
	)

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), white),           // Floor
		geometry.NewPlane(core.NewVec3(0, boxSize, 0), core.NewVec3(0, -1, 0), white),    // Ceiling
		geometry.NewPlane(core.NewVec3(0, 0, boxSize), core.NewVec3(0, 0, -1), white),    // Back wall
		geometry.NewPlane(core.NewVec3(boxSize, 0, 0), core.NewVec3(-1, 0, 0), red),      // Left wall as seen from the camera
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), green),           // Right wall as seen from the camera
		geometry.NewCube(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460), mirror), // Tall box
		geometry.NewCube(core.NewVec3(130, 0, 65), core.NewVec3(295, 165, 230), white),   // Short box
		geometry.NewSphere(core.NewVec3(212, 247.5, 147), 82.5, glass),                   // Glass ball resting on the short box
	)

	// Point light just below the center of the ceiling
	s.AddLight(lights.NewPointLight(core.NewVec3(278, boxSize-5, 278), core.NewVec3(1, 1, 1), 1.0))

	return s
}
