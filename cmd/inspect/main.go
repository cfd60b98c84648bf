package main

import (
	"flag"
	"fmt"
	"os"

	"pinhole3d/internal/camera"
	"pinhole3d/internal/compositor"
	"pinhole3d/internal/config"
	"pinhole3d/internal/mathutil"
	"pinhole3d/internal/scene"
	"pinhole3d/internal/scenefile"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	all := flag.Bool("all", false, "Also list culled commands")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{Scene: flag.Arg(0)})
	if cfg.Scene == "" {
		fmt.Println("usage: inspect [-config file] [-all] scene.json")
		os.Exit(2)
	}

	sf, err := scenefile.Load(cfg.Scene)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	root, err := sf.Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cam, err := cfg.Camera()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	root.Walk(printNode)

	cmds, err := root.Commands(cam)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	visible := compositor.Visible(cmds)
	fmt.Printf("Commands: %d gathered, %d visible\n", len(cmds), len(visible))
	fmt.Println("--- dispatch order ---")
	for i, c := range visible {
		printCommand(i, c)
	}

	if *all && len(visible) < len(cmds) {
		fmt.Println("--- culled ---")
		n := 0
		for _, c := range cmds {
			if c.Class == camera.InFront {
				continue
			}
			printCommand(n, c)
			n++
		}
	}
}

type placed interface {
	Location() mathutil.Vector
	Rotation() mathutil.Rotation
}

func printNode(d scene.Drawable, depth int) {
	indent := depth * 2
	fmt.Printf("%*s%T", indent, "", d)
	if p, ok := d.(placed); ok {
		x, y, z := p.Rotation().Angles()
		fmt.Printf(" at %v rot=(%.1f°, %.1f°, %.1f°)",
			p.Location(), mathutil.Rad2Deg(x), mathutil.Rad2Deg(y), mathutil.Rad2Deg(z))
	}
	fmt.Println()
	if poly, ok := d.(interface{ Vertices() []mathutil.Vector }); ok {
		for _, v := range poly.Vertices() {
			fmt.Printf("%*s  %v\n", indent, "", v)
		}
	}
}

func printCommand(i int, c scene.DrawCommand) {
	fmt.Printf("  [%2d] depth=%8.3f %-8s %-12s fill=#%02x%02x%02x%02x outline=#%02x%02x%02x%02x\n",
		i, c.Depth, c.Class, c.Type,
		c.Color.R, c.Color.G, c.Color.B, c.Color.A,
		c.Outline.R, c.Outline.G, c.Outline.B, c.Outline.A)
	for _, p := range c.Points {
		fmt.Printf("       (%.2f, %.2f)\n", p[0], p[1])
	}
}
