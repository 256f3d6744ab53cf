package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	World          *geometry.HittableList  // Objects in the scene, tested in order
	CameraConfig   renderer.CameraConfig   // Recommended camera
	SamplingConfig renderer.SamplingConfig // Recommended sampling budget
}

// NewCamera builds the scene's camera
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.CameraConfig)
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the total number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// newScene creates an empty scene with the given camera, applying any overrides
func newScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		World:          geometry.NewHittableList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}
