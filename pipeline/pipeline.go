// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline runs a terrain job: synthesis, erosion, corals, roads,
// export and publishing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/cloud"
	"github.com/SoftbearStudios/relief/cloud/db"
	"github.com/SoftbearStudios/relief/config"
	"github.com/SoftbearStudios/relief/export"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/terrain/coral"
	"github.com/SoftbearStudios/relief/terrain/erosion"
	"github.com/SoftbearStudios/relief/terrain/noise"
	"github.com/SoftbearStudios/relief/terrain/road"
	"github.com/SoftbearStudios/relief/world"
	"github.com/dustin/go-humanize"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Result summarizes a finished job. It is embedded in the manifest.
type Result struct {
	Name     string        `json:"name"`
	NX       int           `json:"nx"`
	NY       int           `json:"ny"`
	Lowest   float64       `json:"lowest"`
	Highest  float64       `json:"highest"`
	Corals   int           `json:"corals,omitempty"`
	Roads    []RoadResult  `json:"roads,omitempty"`
	Files    []string      `json:"files"`
	Bytes    uint64        `json:"bytes"`
	Duration time.Duration `json:"duration"`
	Record   *db.Record    `json:"-"`
	Grid     *terrain.Grid `json:"-"`
}

type RoadResult struct {
	From    [2]int `json:"from"`
	To      [2]int `json:"to"`
	Cells   int    `json:"cells"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Run executes cfg, publishing through c unless it is nil. Unreachable roads,
// starved corals and failed exports are logged and skipped; anything else
// stops the job.
// ctx is checked between stages.
func Run(ctx context.Context, cfg *config.Config, c *cloud.Cloud) (*Result, error) {
	start := time.Now()
	logger := slog.Default().With("job", cfg.Name)

	g, err := buildGrid(cfg)
	if err != nil {
		if errors.Is(err, terrain.ErrNotGrayscale) {
			logger.Warn("rejected heightmap", "path", cfg.Image.Path, "err", err)
		}
		return nil, err
	}
	logger.Info("synthesized", "nx", g.NX(), "ny", g.NY(), "source", source(cfg))

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Erosion.Strength > 0 && cfg.Erosion.Iterations > 0 {
		if err = erosion.Run(g, cfg.Erosion.Strength, cfg.Erosion.Iterations); err != nil {
			return nil, err
		}
		logger.Info("eroded", "strength", cfg.Erosion.Strength, "iterations", cfg.Erosion.Iterations)
	}

	result := &Result{Name: cfg.Name, NX: g.NX(), NY: g.NY(), Grid: g}

	if cfg.Coral.Particles > 0 {
		agg, err := coral.Run(g, coral.Params{
			Seed:         cfg.Coral.Seed,
			Particles:    cfg.Coral.Particles,
			CellSize:     cfg.Coral.CellSize,
			Height:       cfg.Coral.Height,
			ShallowLimit: cfg.Coral.ShallowLimit,
		})
		if errors.Is(err, coral.ErrStarved) {
			logger.Warn("coral starved", "cells", len(agg.Cells), "err", err)
		} else if err != nil {
			return nil, err
		}
		result.Corals = len(agg.Cells)
		logger.Info("grew coral", "cells", len(agg.Cells), "cell_size", cfg.Coral.CellSize)
	}

	planner := road.NewPlanner(g)
	if len(cfg.Roads) > 0 {
		// The first road reuses this graph.
		logger.Debug("road graph", "nodes", g.Len(), "arcs", planner.Graph().Edges())
	}
	for _, r := range cfg.Roads {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		roadResult := RoadResult{From: r.From, To: r.To}
		path, err := planner.Carve(road.Cell{X: r.From[0], Y: r.From[1]}, road.Cell{X: r.To[0], Y: r.To[1]}, road.Options{
			Width:      r.Width,
			Transition: r.Transition,
			Mode:       road.Mode(r.Mode),
		})
		if errors.Is(err, road.ErrUnreachable) {
			logger.Warn("skipped road", "from", r.From, "to", r.To, "err", err)
			roadResult.Skipped = true
		} else if err != nil {
			return nil, err
		} else {
			roadResult.Cells = len(path)
			logger.Info("carved road", "from", r.From, "to", r.To, "cells", len(path))
		}
		result.Roads = append(result.Roads, roadResult)
	}

	result.Lowest, result.Highest = heightRange(g)

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.Output, 0o755); err != nil {
		return nil, err
	}

	base := slug(cfg.Name)
	for _, format := range cfg.Formats {
		name := base + extension(format)
		path := filepath.Join(cfg.Output, name)
		if err := write(format, path, g); err != nil {
			logger.Error("export failed", "format", format, "path", path, "err", err)
			continue
		}

		if info, err := os.Stat(path); err == nil {
			result.Bytes += uint64(info.Size())
			logger.Info("exported", "format", format, "path", path, "size", humanize.Bytes(uint64(info.Size())))
		}
		result.Files = append(result.Files, name)
	}

	result.Duration = time.Since(start)

	manifest, err := cfg.Manifest(result)
	if err != nil {
		return nil, err
	}
	if err = os.WriteFile(filepath.Join(cfg.Output, cloud.ManifestFile), manifest, 0o644); err != nil {
		return nil, err
	}

	if c != nil {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		files := make(map[string][]byte, len(result.Files))
		for _, name := range result.Files {
			data, err := os.ReadFile(filepath.Join(cfg.Output, name))
			if err != nil {
				return nil, err
			}
			files[name] = data
		}

		result.Record, err = c.Publish(cloud.Publication{
			Name:     cfg.Name,
			Seed:     cfg.Noise.Seed,
			Grid:     g,
			Files:    files,
			Manifest: manifest,
		})
		if err != nil {
			return nil, fmt.Errorf("publishing: %w", err)
		}
		logger.Info("published", "cloud", c, "id", result.Record.ID, "size", humanize.Bytes(result.Bytes))
	}

	history := filepath.Join(cfg.Output, HistoryFile)
	if err = AppendHistory(history, result.historyRow(cfg.Noise.Seed, time.Now())...); err != nil {
		logger.Warn("could not append history", "path", history, "err", err)
	}

	logger.Info("finished", "duration", result.Duration, "files", len(result.Files))
	return result, nil
}

func buildGrid(cfg *config.Config) (*terrain.Grid, error) {
	if cfg.Image.Path == "" {
		return noise.Generate(noise.Params{
			NX:        cfg.Grid.NX,
			NY:        cfg.Grid.NY,
			Scale:     cfg.Grid.Scale,
			Octaves:   cfg.Noise.Octaves,
			Amplitude: cfg.Noise.Amplitude,
			Frequency: cfg.Noise.Frequency,
			Seed:      cfg.Noise.Seed,
			Source:    cfg.Noise.Source,
			Workers:   cfg.Noise.Workers,

			Redistribution: cfg.Noise.Redistribution,
		})
	}

	img, err := export.LoadImage(cfg.Image.Path, cfg.Image.Width, cfg.Image.Height)
	if err != nil {
		return nil, err
	}

	size := img.Bounds().Size()
	bounds := world.Box2From(world.Vec2{}, world.Vec2{X: float64(size.X) * cfg.Grid.Scale, Y: float64(size.Y) * cfg.Grid.Scale})
	g, err := terrain.FromImage(img, bounds, cfg.Grid.MinHeight, cfg.Grid.MaxHeight)
	if err != nil {
		return nil, err
	}

	for i, r := range cfg.Roads {
		for _, cell := range [...][2]int{r.From, r.To} {
			if !g.Contains(cell[0], cell[1]) {
				return nil, fmt.Errorf("%w: road %d at %v, image is %dx%d", config.ErrRoadOutside, i, cell, g.NX(), g.NY())
			}
		}
	}
	return g, nil
}

func write(format, path string, g *terrain.Grid) error {
	switch format {
	case config.FormatOBJ:
		return export.SaveOBJ(path, g)
	case config.FormatPNG, config.FormatJPEG:
		return export.SaveImage(path, export.Heightmap(g))
	case config.FormatRender:
		return export.SaveImage(path, g.Render())
	case config.FormatSnapshot:
		return export.SaveSnapshot(path, g)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func extension(format string) string {
	switch format {
	case config.FormatJPEG:
		return ".jpg"
	case config.FormatRender:
		return ".render.png"
	case config.FormatSnapshot:
		return export.SnapshotExtension
	default:
		return "." + format
	}
}

func source(cfg *config.Config) string {
	if cfg.Image.Path != "" {
		return cfg.Image.Path
	}
	return cfg.Noise.Source
}

func heightRange(g *terrain.Grid) (lowest, highest float64) {
	for i := 0; i < g.Len(); i++ {
		h := g.HeightAt(i)
		if i == 0 || h < lowest {
			lowest = h
		}
		if i == 0 || h > highest {
			highest = h
		}
	}
	return
}

// slug keeps letters and digits of name, joining the rest with dashes.
func slug(name string) string {
	var builder strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			dash = false
		} else {
			dash = true
		}
	}
	if builder.Len() == 0 {
		return "terrain"
	}
	return builder.String()
}
