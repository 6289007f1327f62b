package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Default scene layout, shared by the fixed and orbit variants
var (
	defaultCubeCenter = core.NewVec3(0, -0.5, -3)
	defaultEye        = core.NewVec3(3, 4, 2)
)

// NewDefaultScene creates the demo scene: a checkered cube on a gray floor under one warm light,
// seen from above and to the side so two faces are visible
func NewDefaultScene(aspectRatio float64) *Scene {
	cam := camera.NewCamera(camera.CameraConfig{
		Position:    defaultEye,
		LookAt:      defaultCubeCenter,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: aspectOrDefault(aspectRatio),
	})

	s := New(cam, core.NewVec3(1, 1, 1)) // White background
	addDefaultContent(s)
	return s
}

// NewOrbitScene creates the default scene content viewed through an orbit camera.
// The initial eye matches the fixed default camera.
func NewOrbitScene(aspectRatio float64) *Scene {
	offset := defaultEye.Subtract(defaultCubeCenter)

	cam := camera.NewOrbit(camera.OrbitConfig{
		Center:      defaultCubeCenter,
		Radius:      offset.Length(),
		Yaw:         31.0,
		Pitch:       37.7,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: aspectOrDefault(aspectRatio),
	})

	s := New(cam, core.NewVec3(1, 1, 1))
	addDefaultContent(s)
	return s
}

func addDefaultContent(s *Scene) {
	// Light gray floor
	floor := material.New(
		material.WithColor(core.NewVec3(0.7, 0.7, 0.7)),
		material.WithDiffuse(0.9),
	)

	// Magenta and black checkered cube with a hint of mirror
	checker := material.New(
		material.WithCheckerboard(1.0, core.NewVec3(1, 0, 1), core.NewVec3(0, 0, 0)),
		material.WithDiffuse(0.7),
		material.WithSpecular(0.5, material.DefaultSpecularExponent),
		material.WithReflectivity(0.2),
	)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewCubeAt(defaultCubeCenter, core.NewVec3(1.5, 1.5, 1.5), checker),
	)

	s.AddLight(lights.NewPointLight(core.NewVec3(-3, 5, 2), core.NewVec3(1, 1, 0.9), 1.0))
}
