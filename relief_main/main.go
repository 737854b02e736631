// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"github.com/SoftbearStudios/relief/cloud"
	"github.com/SoftbearStudios/relief/config"
	"github.com/SoftbearStudios/relief/pipeline"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
)

func main() {
	var (
		configPath string
		cpuProfile string
		name       string
		seed       int64
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "", "terrain job `file` (yaml), defaults if empty")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&name, "name", "", "override the terrain name")
	flag.Int64Var(&seed, "seed", 0, "override the noise seed (0 keeps the job's)")
	flag.BoolVar(&verbose, "verbose", false, "log debug output")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			fatal("could not create CPU profile", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fatal("could not start CPU profile", err)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fatal("could not load job", err)
		}
	}
	if name != "" {
		cfg.Name = name
	}
	if seed != 0 {
		cfg.Noise.Seed = seed
	}

	c, err := cloud.New(cfg.Cloud, filepath.Join(cfg.Output, "published"))
	if err != nil {
		// Cloud is not required to generate terrain, just log an error
		slog.Error("cloud unavailable, running offline", "err", err)
		c = nil
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := pipeline.Run(ctx, cfg, c)
	if err != nil {
		pprof.StopCPUProfile()
		fatal("job failed", err)
	}

	slog.Info("done", "cloud", c, "files", result.Files, "output", cfg.Output)
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
