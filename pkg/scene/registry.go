package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
)

// SceneInfo describes a built-in scene or a scene file
type SceneInfo struct {
	ID          string
	Name        string
	Description string
	Type        string // "builtin" or "file"
	FilePath    string // file type only
}

type builtin struct {
	info   SceneInfo
	create func() *Scene
}

var builtins = []builtin{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Spheres of every material on a ground quad"}, NewDefaultScene},
	{SceneInfo{ID: "random-spheres", Name: "Random Spheres", Description: "Field of random small spheres, some in motion, around three large ones"}, NewRandomSpheresScene},
	{SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Cornell box with two spheres"}, NewCornellScene},
	{SceneInfo{ID: "cornell-smoke", Name: "Cornell Smoke", Description: "Cornell box with two rotated blocks of smoke and fog"}, NewCornellSmokeScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "Grid of rainbow-colored metallic spheres"}, NewSphereGridScene},
	{SceneInfo{ID: "textures", Name: "Textures", Description: "Texture mapping on every primitive type"}, NewTextureScene},
	{SceneInfo{ID: "triangle-mesh", Name: "Triangle Meshes", Description: "Polyhedra built from triangles"}, NewTriangleMeshScene},
}

// Names returns the IDs of the built-in scenes in registry order
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.info.ID
	}
	return names
}

// Create returns a new instance of the named built-in scene
func Create(name string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == name {
			return b.create(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Load reads a YAML scene file
func Load(path string) (*Scene, error) {
	data, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	s := New(data.Name, data.Camera)
	s.Add(data.Shapes...)
	return s, nil
}

// ListScenes returns the built-in scenes followed by the scene files in dir,
// sorted by name. A missing dir yields only the built-in scenes.
func ListScenes(dir string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(scenes, files...), nil
}

// ListSceneFiles scans dir for *.yaml and *.yml scene files
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("while scanning scene directory: %w", err)
		}
		paths = append(paths, matches...)
	}

	scenes := make([]SceneInfo, 0, len(paths))
	for _, path := range paths {
		info, err := ParseSceneFileMetadata(path)
		if err != nil {
			return nil, fmt.Errorf("while reading metadata of %s: %w", path, err)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneFileMetadata reads "# Scene:" and "# Description:" header
// comments. Missing fields fall back to values derived from the file name.
func ParseSceneFileMetadata(path string) (SceneInfo, error) {
	filename := filepath.Base(path)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:       "file:" + nameWithoutExt,
		Name:     titleCase(nameWithoutExt),
		Type:     "file",
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata ends at the first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		}
	}

	return info, scanner.Err()
}

// titleCase converts a filename-style string to title case,
// e.g. "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
