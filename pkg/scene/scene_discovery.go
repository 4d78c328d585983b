package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Load
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"`
}

type builtinScene struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Green sphere on a blue background", Type: "builtin"},
		build: func() (*Scene, error) {
			return NewDefaultScene()
		},
	},
	{
		info: SceneInfo{ID: "overlap", DisplayName: "Overlapping Spheres", Description: "Three spheres at different depths", Type: "builtin"},
		build: func() (*Scene, error) {
			return NewOverlapScene()
		},
	},
	{
		info: SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "10x10 grid of hue-shifted spheres", Type: "builtin"},
		build: func() (*Scene, error) {
			return NewSphereGridScene()
		},
	},
}

// BuiltinNames returns the names of the built-in scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		names = append(names, b.info.ID)
	}
	return names
}

// Load builds a built-in scene by name, or a JSON scene from a path ending in .json
func Load(nameOrPath string) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		return LoadFile(nameOrPath)
	}
	for _, b := range builtinScenes {
		if b.info.ID == nameOrPath {
			return b.build()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, nameOrPath)
}

// ListSceneFiles scans dir for JSON scene descriptions. A missing directory yields no scenes.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		scenes = append(scenes, readSceneInfo(path))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(scenes, files...), nil
}

// readSceneInfo extracts metadata from a scene file, falling back to the file name
func readSceneInfo(path string) SceneInfo {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          path,
		DisplayName: titleCase(name),
		Type:        "file",
		FilePath:    path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info
	}
	defer file.Close()

	desc, err := DecodeDescription(file)
	if err != nil {
		return info
	}
	if desc.Name != "" {
		info.DisplayName = desc.Name
	}
	info.Description = desc.Description
	return info
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
