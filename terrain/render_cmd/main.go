// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"github.com/SoftbearStudios/relief/cloud"
	"github.com/SoftbearStudios/relief/config"
	"github.com/SoftbearStudios/relief/export"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/terrain/noise"
	"github.com/SoftbearStudios/relief/world"
	"image"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
)

func main() {
	var cpuProfile, in, out, preview, configPath string
	var width, height int
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&in, "in", "", "terrain snapshot to render, default noise if empty")
	flag.StringVar(&out, "out", "out.png", "rendered image `file` (png or jpeg)")
	flag.StringVar(&preview, "preview", "", "render the catalog preview of terrain `id` instead")
	flag.StringVar(&configPath, "config", "", "job `file` whose cloud section locates the catalog")
	flag.IntVar(&width, "width", 0, "preview width, native if 0")
	flag.IntVar(&height, "height", 0, "preview height, native if 0")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	var err error
	if preview != "" {
		err = renderPreview(configPath, preview, out, width, height)
	} else {
		err = run(in, out)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(in, out string) error {
	g, err := loadOrGenerate(in)
	if err != nil {
		return err
	}
	return export.SaveImage(out, g.Render())
}

func loadOrGenerate(in string) (*terrain.Grid, error) {
	if in == "" {
		return noise.Generate(noise.DefaultParams())
	}
	return export.LoadSnapshot(in)
}

// renderPreview draws a published terrain from its catalog record alone.
func renderPreview(configPath, id, out string, width, height int) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	c, err := cloud.New(cfg.Cloud, filepath.Join(cfg.Output, "published"))
	if err != nil {
		return err
	}
	defer c.Close()

	data, err := c.Preview(id)
	if err != nil {
		return err
	}

	var img image.Image
	if width > 0 && height > 0 {
		img, err = data.Render(terrain.DefaultRamp, width, height)
	} else {
		// At native size the restored grid gives shading too.
		var g *terrain.Grid
		bounds := world.Box2From(world.Vec2{}, world.Vec2{X: float64(data.Width), Y: float64(data.Height)})
		if g, err = data.Grid(bounds); err == nil {
			img = g.Render()
		}
	}
	if err != nil {
		return err
	}
	log.Printf("rendering preview %s (%dx%d) to %s", id, img.Bounds().Dx(), img.Bounds().Dy(), out)
	return export.SaveImage(out, img)
}
