package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/mathutil"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PINHOLE_"

// Output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Config holds the scene, camera and output settings of a render.
type Config struct {
	// Paths
	Scene     string `json:"scene" env:"SCENE"`
	OutputDir string `json:"output_dir" env:"OUTPUT_DIR"`

	// Screen
	Width      int     `json:"width" env:"WIDTH"`
	Height     int     `json:"height" env:"HEIGHT"`
	FOV        float64 `json:"fov" env:"FOV"`
	Background string  `json:"background" env:"BACKGROUND"` // overrides the scene file

	// Camera
	CameraLocation []float64 `json:"camera_location" env:"CAMERA_LOCATION"`
	CameraFocus    []float64 `json:"camera_focus" env:"CAMERA_FOCUS"`
	CameraRotDeg   []float64 `json:"camera_rot_deg" env:"CAMERA_ROT_DEG"`
	CameraOrder    string    `json:"camera_order" env:"CAMERA_ORDER"`

	// Sequence: rotation deltas applied after every frame
	Frames        int       `json:"frames" env:"FRAMES"`
	CameraStepDeg []float64 `json:"camera_step_deg" env:"CAMERA_STEP_DEG"`
	ModelStepDeg  []float64 `json:"model_step_deg" env:"MODEL_STEP_DEG"`

	// Output
	Format  string `json:"format" env:"FORMAT"`
	Thumb   int    `json:"thumb" env:"THUMB"` // thumbnail size, 0 for none
	Workers int    `json:"workers" env:"WORKERS"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays PINHOLE_* environment variables onto c. Variables that
// are not set leave the field alone. Lists are comma separated.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	return nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file and environment
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Thumb > 0 {
		c.Thumb = flags.Thumb
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	// Screen defaults match the 800x500 window of the interactive viewer
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 500
	}
	if c.FOV <= 0 {
		c.FOV = 60
	}

	if len(c.CameraLocation) == 0 {
		c.CameraLocation = camera.DefaultLocation()
	}
	if len(c.CameraFocus) == 0 {
		c.CameraFocus = camera.DefaultFocus()
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings that Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Format != FormatWebP && c.Format != FormatTGA {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	for name, v := range map[string][]float64{
		"camera_location": c.CameraLocation,
		"camera_focus":    c.CameraFocus,
	} {
		if len(v) != 3 {
			return fmt.Errorf("config: %s needs 3 values, have %d", name, len(v))
		}
	}
	for name, v := range map[string][]float64{
		"camera_rot_deg":  c.CameraRotDeg,
		"camera_step_deg": c.CameraStepDeg,
		"model_step_deg":  c.ModelStepDeg,
	} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("config: %s needs 3 values, have %d", name, len(v))
		}
	}
	if c.CameraOrder != "" {
		if _, err := mathutil.ParseOrder(c.CameraOrder); err != nil {
			return fmt.Errorf("config: camera_order: %w", err)
		}
	}
	return nil
}

// Camera builds the configured camera with its screen set.
func (c *Config) Camera() (*camera.Camera, error) {
	order := mathutil.DefaultOrder
	if c.CameraOrder != "" {
		o, err := mathutil.ParseOrder(c.CameraOrder)
		if err != nil {
			return nil, fmt.Errorf("config: camera_order: %w", err)
		}
		order = o
	}
	rot, err := DegRotation(c.CameraRotDeg, order)
	if err != nil {
		return nil, err
	}
	cam, err := camera.New(mathutil.NewVector(c.CameraLocation...), mathutil.NewVector(c.CameraFocus...), rot)
	if err != nil {
		return nil, fmt.Errorf("config: camera: %w", err)
	}
	if err := cam.SetScreen(camera.Screen{Width: float64(c.Width), Height: float64(c.Height), FOV: c.FOV}); err != nil {
		return nil, fmt.Errorf("config: screen: %w", err)
	}
	return cam, nil
}

// DegRotation converts an optional x, y, z triple in degrees to a Rotation.
// An empty slice is the identity.
func DegRotation(deg []float64, order mathutil.Order) (mathutil.Rotation, error) {
	var a [3]float64
	switch len(deg) {
	case 0:
	case 3:
		copy(a[:], deg)
	default:
		return mathutil.Rotation{}, fmt.Errorf("config: rotation needs 3 angles, have %d", len(deg))
	}
	return mathutil.NewRotationOrder(mathutil.Deg2Rad(a[0]), mathutil.Deg2Rad(a[1]), mathutil.Deg2Rad(a[2]), order)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene     string
	OutputDir string
	Format    string
	Frames    int
	Width     int
	Height    int
	Thumb     int
	Workers   int
}
