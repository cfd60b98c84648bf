package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"pinhole3d/internal/batch"
	"pinhole3d/internal/camera"
	"pinhole3d/internal/compositor"
	"pinhole3d/internal/config"
	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/raster"
	"pinhole3d/internal/scene"
	"pinhole3d/internal/scenefile"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene description (JSON)")
	frames := flag.Int("frames", 0, "Number of frames to render (default: 1)")
	width := flag.Int("width", 0, "Image width in pixels (default: 800)")
	height := flag.Int("height", 0, "Image height in pixels (default: 500)")
	format := flag.String("format", "", "Output format: webp or tga (default: webp)")
	thumb := flag.Int("thumb", 0, "Also write thumbnails of at most this size")
	workers := flag.Int("workers", 0, "Number of encoder goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Scene:     *sceneFile,
		OutputDir: *outputDir,
		Format:    *format,
		Frames:    *frames,
		Width:     *width,
		Height:    *height,
		Thumb:     *thumb,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Scene == "" {
		fmt.Fprintln(os.Stderr, "Error: no scene. Use -scene flag or config.json.")
		os.Exit(1)
	}

	// Load scene
	sf, err := scenefile.Load(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	root, err := sf.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}
	bg, err := background(cfg, sf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cam, err := cfg.Camera()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	camStep, err := config.DegRotation(cfg.CameraStepDeg, cam.Rotation().Order())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	modelStep, err := config.DegRotation(cfg.ModelStepDeg, root.Rotation().Order())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Print summary
	fmt.Printf("pinhole3d renderer → %s\n", cfg.Format)
	fmt.Printf("Scene: %s (%d top-level nodes)\n", cfg.Scene, len(root.Children()))
	fmt.Printf("Frames: %d, Size: %dx%d, Workers: %d\n", cfg.Frames, cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	canvas := raster.NewCanvas(cfg.Width, cfg.Height)
	render := func(i int) (*image.RGBA, compositor.Stats, error) {
		if i > 0 {
			advance(cam, root, camStep, modelStep)
		}
		canvas.Clear(bg)
		st, err := compositor.Frame(root, cam, canvas)
		return canvas.Image(), st, err
	}

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Workers:   cfg.Workers,
		Thumb:     cfg.Thumb,
	}, cfg.Frames, render)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	manifest := batch.Manifest{
		Scene:  cfg.Scene,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: cfg.Format,
	}
	if err := batch.WriteManifest(manifestPath, manifest, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// advance applies the per-frame rotation deltas.
func advance(cam *camera.Camera, root *scene.Model, camStep, modelStep mathutil.Rotation) {
	cam.Rotate(camStep)
	root.Rotate(modelStep)
}

// background prefers the config value over the scene file's.
func background(cfg config.Config, sf scenefile.File) (color.NRGBA, error) {
	if cfg.Background != "" {
		return raster.ParseHex(cfg.Background)
	}
	return sf.BackgroundColor()
}
