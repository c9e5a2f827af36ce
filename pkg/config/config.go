package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Config represents the render configuration
type Config struct {
	Scene  SceneConfig  `yaml:"scene"`
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
}

// SceneConfig selects what to render
type SceneConfig struct {
	Name string `yaml:"name"` // built-in scene ID
	File string `yaml:"file"` // YAML scene file; takes precedence over Name
	Dir  string `yaml:"dir"`  // directory listed alongside the built-in scenes
}

// RenderConfig overrides the scene's camera settings. Zero sizes and sample
// counts and a nil MaxDepth keep the scene's own setting.
type RenderConfig struct {
	Width    int   `yaml:"width"`
	Height   int   `yaml:"height"`
	Samples  int   `yaml:"samples"`
	MaxDepth *int  `yaml:"max_depth,omitempty"` // 0 is a valid depth
	Seed     int64 `yaml:"seed"`
	Workers  int   `yaml:"workers"`   // 0 means one per CPU
	TileSize int   `yaml:"tile_size"` // 0 means renderer.DefaultTileSize
}

// OutputConfig contains output-related configuration
type OutputConfig struct {
	Path   string `yaml:"path"`   // "-" writes to stdout
	Format string `yaml:"format"` // png or ppm; empty infers from Path
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Scene: SceneConfig{
			Name: "default",
			Dir:  "scenes",
		},
		Render: RenderConfig{
			Seed:     42,
			TileSize: renderer.DefaultTileSize,
		},
		Output: OutputConfig{
			Path: "output/render.png",
		},
	}
}

// LoadConfig loads configuration from a YAML file. On error the returned
// config holds the defaults.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("while reading config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("while parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("while serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("while writing config file: %w", err)
	}

	return nil
}

// Validate rejects negative overrides and unknown output formats
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.Width < 0 || r.Height < 0:
		return fmt.Errorf("image size must not be negative, got %dx%d", r.Width, r.Height)
	case r.Samples < 0:
		return fmt.Errorf("samples must not be negative, got %d", r.Samples)
	case r.MaxDepth != nil && *r.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", *r.MaxDepth)
	case r.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d", r.Workers)
	case r.TileSize < 0:
		return fmt.Errorf("tile size must not be negative, got %d", r.TileSize)
	}
	if c.Scene.Name == "" && c.Scene.File == "" {
		return fmt.Errorf("either a scene name or a scene file is required")
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	return nil
}

// OutputFormat resolves the image format, inferring it from the output
// path when not set explicitly
func (c *Config) OutputFormat() (renderer.Format, error) {
	if c.Output.Format != "" {
		return renderer.ParseFormat(c.Output.Format)
	}
	if c.Output.Path == "-" {
		return renderer.FormatPPM, nil
	}
	return renderer.FormatForPath(c.Output.Path), nil
}

// ApplyTo returns camera with the render overrides applied
func (c *Config) ApplyTo(camera renderer.CameraConfig) renderer.CameraConfig {
	r := c.Render
	if r.Width > 0 {
		camera.Width = r.Width
	}
	if r.Height > 0 {
		camera.Height = r.Height
	}
	if r.Samples > 0 {
		camera.SamplesPerPixel = r.Samples
	}
	if r.MaxDepth != nil {
		camera.MaxDepth = *r.MaxDepth
	}
	return camera
}

// RenderOptions returns the scheduling options for a render
func (c *Config) RenderOptions() renderer.Options {
	options := renderer.DefaultOptions()
	options.Seed = c.Render.Seed
	options.NumWorkers = c.Render.Workers
	options.TileSize = c.Render.TileSize
	return options
}
