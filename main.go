// pathtracer renders a built-in or YAML-described scene to a PNG or PPM image.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	configFile = flag.String("config", "", "YAML render configuration file. Flags override its values.")
	saveConfig = flag.String("save-config", "", "Write the effective configuration to this file and exit.")
	listScenes = flag.Bool("list", false, "List available scenes and exit.")

	sceneName = flag.String("scene", "default", "Built-in scene to render.")
	sceneFile = flag.String("scene-file", "", "YAML scene file to render instead of a built-in scene.")
	scenesDir = flag.String("scenes-dir", "scenes", "Directory of YAML scene files shown by -list.")

	outPath  = flag.String("out", "output/render.png", "Output image path, or - for stdout.")
	format   = flag.String("format", "", "Output format: png or ppm. Inferred from -out when empty.")
	width    = flag.Int("width", 0, "Override image width.")
	height   = flag.Int("height", 0, "Override image height.")
	samples  = flag.Int("samples", 0, "Override samples per pixel.")
	maxDepth = flag.Int("depth", -1, "Override maximum bounce depth (-1 = keep the scene's).")
	seed     = flag.Int64("seed", 42, "Random seed. Equal seeds give identical images.")
	workers  = flag.Int("workers", 0, "Parallel workers (0 = one per CPU).")
	tileSize = flag.Int("tile-size", renderer.DefaultTileSize, "Edge length of render tiles in pixels.")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Invalid configuration: %v", err)
	}

	if *saveConfig != "" {
		if err := config.SaveConfig(cfg, *saveConfig); err != nil {
			glog.Exitf("Failed to save configuration: %v", err)
		}
		glog.Infof("Configuration saved to %s", *saveConfig)
		return
	}

	if *listScenes {
		if err := printScenes(os.Stdout, cfg.Scene.Dir); err != nil {
			glog.Exitf("Failed to list scenes: %v", err)
		}
		return
	}

	if err := renderer.RegisterViews(); err != nil {
		glog.Exitf("Failed to register metric views: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, progressReporter(os.Stderr)); err != nil {
		glog.Errorf("Render failed: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// loadConfig reads -config if given and applies the flags that were set on
// the command line on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadConfig(*configFile); err != nil {
			return nil, err
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, set)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags into cfg. Without a config file
// the flag defaults are used as well.
func applyFlags(cfg *config.Config, set map[string]bool) {
	useFlag := func(name string) bool {
		return set[name] || *configFile == ""
	}

	if useFlag("scene") {
		cfg.Scene.Name = *sceneName
	}
	if useFlag("scene-file") {
		cfg.Scene.File = *sceneFile
	}
	if useFlag("scenes-dir") {
		cfg.Scene.Dir = *scenesDir
	}
	if useFlag("out") {
		cfg.Output.Path = *outPath
	}
	if useFlag("format") {
		cfg.Output.Format = *format
	}
	if useFlag("width") {
		cfg.Render.Width = *width
	}
	if useFlag("height") {
		cfg.Render.Height = *height
	}
	if useFlag("samples") {
		cfg.Render.Samples = *samples
	}
	if useFlag("depth") {
		cfg.Render.MaxDepth = nil
		if depth := *maxDepth; depth >= 0 {
			cfg.Render.MaxDepth = &depth
		}
	}
	if useFlag("seed") {
		cfg.Render.Seed = *seed
	}
	if useFlag("workers") {
		cfg.Render.Workers = *workers
	}
	if useFlag("tile-size") {
		cfg.Render.TileSize = *tileSize
	}
}

// progressReporter draws a progress line on w when it is a terminal
func progressReporter(w *os.File) func(done, total int) {
	if !term.IsTerminal(int(w.Fd())) {
		return nil
	}
	return func(done, total int) {
		const barWidth = 40
		filled := barWidth * done / total
		fmt.Fprintf(w, "\r[%s%s] %d/%d tiles", strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled), done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

func printScenes(w io.Writer, dir string) error {
	scenes, err := scene.ListScenes(dir)
	if err != nil {
		return err
	}
	for _, s := range scenes {
		id := s.ID
		if s.Type == "file" {
			id = s.FilePath
		}
		fmt.Fprintf(w, "%-24s %s", id, s.Name)
		if s.Description != "" {
			fmt.Fprintf(w, ": %s", s.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// run loads the configured scene, renders it and writes the image. When the
// output path is "-" the image goes to stdout.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer, progress func(done, total int)) error {
	var s *scene.Scene
	var err error
	if cfg.Scene.File != "" {
		s, err = scene.Load(cfg.Scene.File)
	} else {
		s, err = scene.Create(cfg.Scene.Name)
	}
	if err != nil {
		return fmt.Errorf("while loading scene: %w", err)
	}

	camera := cfg.ApplyTo(s.Camera)
	if err := camera.Validate(); err != nil {
		return fmt.Errorf("invalid camera for scene %q: %w", s.Name, err)
	}

	options := cfg.RenderOptions()
	options.SceneName = s.Name
	options.Progress = progress
	s.Logger = options.Logger

	if err := s.Build(ctx); err != nil {
		return err
	}

	rt := renderer.NewRaytracer(s.World(), camera, options)
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	glog.Infof("Rendered %q: %d pixels, %d samples in %v, average luminance %.4f",
		s.Name, stats.TotalPixels, stats.TotalSamples, stats.Duration, renderer.CalculateAverageLuminance(img))

	outFormat, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	if cfg.Output.Path == "-" {
		return renderer.WriteImage(stdout, img, outFormat)
	}

	if dir := filepath.Dir(cfg.Output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}
	if err := renderer.SaveImage(cfg.Output.Path, img, outFormat); err != nil {
		return err
	}
	glog.Infof("Render saved as %s", cfg.Output.Path)
	return nil
}
