package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line and in URLs
	Name        string `json:"name"`        // UI display name
	Description string `json:"description"` // Optional description
	Orbit       bool   `json:"orbit"`       // Camera can be steered interactively
}

// Builder constructs a fresh scene for the given raster aspect ratio
type Builder func(aspectRatio float64) *Scene

type entry struct {
	info  SceneInfo
	build Builder
}

// DefaultSceneID is rendered when no scene is requested
const DefaultSceneID = "default"

var registry = map[string]entry{
	"default": {
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Checkered cube on a gray floor under a warm light",
		},
		build: NewDefaultScene,
	},
	"spheres": {
		info: SceneInfo{
			ID:          "spheres",
			Name:        "Spheres",
			Description: "Mirror and glass spheres on a checkered floor with two tinted lights",
		},
		build: NewSpheresScene,
	},
	"cornell-box": {
		info: SceneInfo{
			ID:          "cornell-box",
			Name:        "Cornell Box",
			Description: "Cornell box with a mirror cube and a glass sphere",
		},
		build: NewCornellScene,
	},
	"orbit": {
		info: SceneInfo{
			ID:          "orbit",
			Name:        "Orbit",
			Description: "Default scene with a camera that orbits the cube",
			Orbit:       true,
		},
		build: NewOrbitScene,
	},
}

// ListScenes returns every built-in scene sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, e := range registry {
		scenes = append(scenes, e.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Lookup returns the metadata for a scene id
func Lookup(id string) (SceneInfo, bool) {
	e, ok := registry[normalizeID(id)]
	return e.info, ok
}

// Build constructs the scene with the given id. An empty id selects the default scene.
func Build(id string, aspectRatio float64) (*Scene, error) {
	e, ok := registry[normalizeID(id)]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(sceneIDs(), ", "))
	}
	return e.build(aspectRatio), nil
}

func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return DefaultSceneID
	}
	return id
}

func sceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
