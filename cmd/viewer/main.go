package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/compositor"
	"pinhole3d/internal/config"
	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/raster"
	"pinhole3d/internal/scene"
	"pinhole3d/internal/scenefile"
)

const (
	moveSpeed = 2.0  // world units per tick
	turnSpeed = 0.03 // radians per tick
	dragSpeed = 0.01 // radians per pixel
)

var moveKeys = map[ebiten.Key]mathutil.Vector{
	ebiten.KeyW: mathutil.NewVector(0, 0, moveSpeed),
	ebiten.KeyS: mathutil.NewVector(0, 0, -moveSpeed),
	ebiten.KeyD: mathutil.NewVector(moveSpeed, 0, 0),
	ebiten.KeyA: mathutil.NewVector(-moveSpeed, 0, 0),
	ebiten.KeyE: mathutil.NewVector(0, moveSpeed, 0),
	ebiten.KeyQ: mathutil.NewVector(0, -moveSpeed, 0),
}

var turnKeys = map[ebiten.Key]mathutil.Rotation{
	ebiten.KeyArrowLeft:  mathutil.NewRotation(0, -turnSpeed, 0),
	ebiten.KeyArrowRight: mathutil.NewRotation(0, turnSpeed, 0),
	ebiten.KeyArrowUp:    mathutil.NewRotation(-turnSpeed, 0, 0),
	ebiten.KeyArrowDown:  mathutil.NewRotation(turnSpeed, 0, 0),
}

type viewer struct {
	cam    *camera.Camera
	root   *scene.Model
	canvas *raster.Canvas
	bg     color.NRGBA

	dragging     bool
	lastX, lastY int

	err error
}

func (v *viewer) Update() error {
	if v.err != nil {
		return v.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for key, d := range moveKeys {
		if ebiten.IsKeyPressed(key) {
			if err := v.cam.Move(d); err != nil {
				return err
			}
		}
	}
	for key, r := range turnKeys {
		if ebiten.IsKeyPressed(key) {
			v.cam.Rotate(r)
		}
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if v.dragging {
			dx, dy := float64(x-v.lastX), float64(y-v.lastY)
			v.root.Rotate(mathutil.NewRotation(-dy*dragSpeed, -dx*dragSpeed, 0))
		}
		v.dragging = true
	} else {
		v.dragging = false
	}
	v.lastX, v.lastY = x, y
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.canvas.Clear(v.bg)
	st, err := compositor.Frame(v.root, v.cam, v.canvas)
	if err != nil {
		v.err = err
		return
	}
	screen.WritePixels(v.canvas.Image().Pix)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nTPS %.0f", st, ebiten.ActualTPS()))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.canvas.Width() || outsideHeight != v.canvas.Height() {
		v.canvas.Resize(outsideWidth, outsideHeight)
		if err := v.cam.Resize(float64(outsideWidth), float64(outsideHeight)); err != nil && v.err == nil {
			v.err = err
		}
	}
	return outsideWidth, outsideHeight
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	tps := flag.Int("tps", 20, "Ticks per second")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{Scene: flag.Arg(0)})
	if cfg.Scene == "" {
		fmt.Fprintln(os.Stderr, "usage: viewer [-config file] scene.json")
		os.Exit(2)
	}

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
	bg, err := sf.BackgroundColor()
	if cfg.Background != "" {
		bg, err = raster.ParseHex(cfg.Background)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cam, err := cfg.Camera()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v := &viewer{
		cam:    cam,
		root:   root,
		canvas: raster.NewCanvas(cfg.Width, cfg.Height),
		bg:     bg,
	}

	ebiten.SetWindowTitle("pinhole3d - " + cfg.Scene)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(*tps)
	if err := ebiten.RunGame(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
