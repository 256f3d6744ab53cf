package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSimpleScene creates a grey diffuse sphere resting on a large grey ground sphere
func NewSimpleScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene(renderer.DefaultCameraConfig(), renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}, cameraOverrides)

	grey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, grey)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, grey)

	return s
}
