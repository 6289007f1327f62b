package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/camera"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewSpheresScene creates a front view of a mirror sphere, a glass sphere and a small checkered cube
// on a green checkered floor, lit by a cool and a warm light
func NewSpheresScene(aspectRatio float64) *Scene {
	cam := camera.NewCamera(camera.CameraConfig{
		Position:    core.NewVec3(0, 0, 2),
		LookAt:      core.NewVec3(0, -0.5, -3),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: aspectOrDefault(aspectRatio),
	})

	s := New(cam, core.NewVec3(0.1, 0.1, 0.2))

	floor := material.New(
		material.WithCheckerboard(1.0, core.NewVec3(0.3, 0.5, 0.3), core.NewVec3(0.9, 0.9, 0.9)),
		material.WithDiffuse(0.8),
	)
	red := material.New(
		material.WithColor(core.NewVec3(1.0, 0.2, 0.2)),
		material.WithDiffuse(0.5),
		material.WithSpecular(0.8, 50),
		material.WithReflectivity(0.5),
	)
	glass := material.New(
		material.WithColor(core.NewVec3(0.9, 0.95, 1.0)),
		material.WithDiffuse(0.1),
		material.WithSpecular(0.6, 125),
		material.WithReflectivity(0.1),
		material.WithTransparency(0.8, 1.5),
	)
	checker := material.New(
		material.WithCheckerboard(0.25, core.NewVec3(1, 0, 1), core.NewVec3(0, 0, 0)),
		material.WithSpecular(0.5, material.DefaultSpecularExponent),
	)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(-1.2, -1.0, -4), 1.0, red),
		geometry.NewSphere(core.NewVec3(0.6, -1.2, -2.8), 0.8, glass),
		geometry.NewCubeAt(core.NewVec3(2, -1.5, -4.5), core.NewVec3(1, 1, 1), checker),
	)

	s.AddLight(
		lights.NewPointLight(core.NewVec3(3, 3, 0), core.NewVec3(0.8, 0.8, 1.0), 0.7),
		lights.NewPointLight(core.NewVec3(-2, 4, -2), core.NewVec3(1.0, 0.8, 0.6), 0.5),
	)

	return s
}
