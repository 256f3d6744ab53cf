package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not in the catalogue
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Name used on the command line
	DisplayName string // Human-readable name
	Description string // One-line description
}

// builtInScene pairs a scene description with its constructor
type builtInScene struct {
	info   SceneInfo
	create func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene
}

var builtInScenes = []builtInScene{
	{
		info: SceneInfo{
			ID:          "default",
			Description: "Glass, diffuse and rough gold spheres with depth of field",
		},
		create: func(_ int64, overrides ...renderer.CameraConfig) *Scene { return NewDefaultScene(overrides...) },
	},
	{
		info: SceneInfo{
			ID:          "simple",
			Description: "A diffuse sphere resting on a large ground sphere",
		},
		create: func(_ int64, overrides ...renderer.CameraConfig) *Scene { return NewSimpleScene(overrides...) },
	},
	{
		info: SceneInfo{
			ID:          "random",
			Description: "Hundreds of small random spheres around three large ones",
		},
		create: NewRandomScene,
	},
}

// ListScenes returns the built-in scenes in display order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	for i, s := range builtInScenes {
		scenes[i] = s.info
		scenes[i].DisplayName = titleCase(s.info.ID)
	}
	return scenes
}

// Create builds the scene with the given ID. Seed only affects procedural scenes.
func Create(id string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, s := range builtInScenes {
		if s.info.ID == id {
			return s.create(seed, cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
