// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config reads terrain job files.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
	"os"
)

// Output formats.
const (
	FormatOBJ      = "obj"
	FormatPNG      = "png"
	FormatJPEG     = "jpeg"
	FormatRender   = "render"
	FormatSnapshot = "snapshot"
)

var (
	ErrInvalidHeightRange = errors.New("config: min_height must not exceed max_height")
	ErrRoadOutside        = errors.New("config: road endpoint outside grid")
)

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("relief.schema.json", schemaSource)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Name    string   `yaml:"name" json:"name"`
	Output  string   `yaml:"output" json:"output"`
	Formats []string `yaml:"formats" json:"formats"`
	Grid    Grid     `yaml:"grid" json:"grid"`
	Noise   Noise    `yaml:"noise" json:"noise"`
	Image   Image    `yaml:"image" json:"image"`
	Erosion Erosion  `yaml:"erosion" json:"erosion"`
	Coral   Coral    `yaml:"coral" json:"coral"`
	Roads   []Road   `yaml:"roads" json:"roads,omitempty"`
	Cloud   Cloud    `yaml:"cloud" json:"cloud"`
}

// Grid is the sampling of the terrain. The height range only applies to
// image sources; noise terrain derives it from the amplitude.
type Grid struct {
	NX        int     `yaml:"nx" json:"nx"`
	NY        int     `yaml:"ny" json:"ny"`
	Scale     float64 `yaml:"scale" json:"scale"`
	MinHeight float64 `yaml:"min_height" json:"minHeight"`
	MaxHeight float64 `yaml:"max_height" json:"maxHeight"`
}

type Noise struct {
	Source    string  `yaml:"source" json:"source"`
	Octaves   int     `yaml:"octaves" json:"octaves"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Frequency float64 `yaml:"frequency" json:"frequency"`
	Seed      int64   `yaml:"seed" json:"seed"`
	Workers   int     `yaml:"workers" json:"workers"`

	// Redistribution > 1 flattens lowlands into wider valleys.
	Redistribution float64 `yaml:"redistribution" json:"redistribution"`
}

// Image replaces noise with a grayscale heightmap when Path is set.
type Image struct {
	Path   string `yaml:"path" json:"path,omitempty"`
	Width  int    `yaml:"width" json:"width,omitempty"`
	Height int    `yaml:"height" json:"height,omitempty"`
}

type Erosion struct {
	Strength   float64 `yaml:"strength" json:"strength"`
	Iterations int     `yaml:"iterations" json:"iterations"`
}

// Coral grows a reef when Particles > 0.
type Coral struct {
	Particles    int     `yaml:"particles" json:"particles"`
	Seed         int64   `yaml:"seed" json:"seed"`
	CellSize     int     `yaml:"cell_size" json:"cellSize"`
	Height       float64 `yaml:"height" json:"height"`
	ShallowLimit float64 `yaml:"shallow_limit" json:"shallowLimit"`
}

type Road struct {
	From       [2]int  `yaml:"from" json:"from"`
	To         [2]int  `yaml:"to" json:"to"`
	Width      float64 `yaml:"width" json:"width"`
	Transition float64 `yaml:"transition" json:"transition"`
	Mode       string  `yaml:"mode" json:"mode"`
}

// Cloud is empty for offline jobs. Bucket and Table select AWS, SQLite a local
// catalog.
type Cloud struct {
	Region       string `yaml:"region" json:"region,omitempty"`
	Profile      string `yaml:"profile" json:"profile,omitempty"`
	Bucket       string `yaml:"bucket" json:"bucket,omitempty"`
	Table        string `yaml:"table" json:"table,omitempty"`
	SQLite       string `yaml:"sqlite" json:"sqlite,omitempty"`
	CacheSeconds int    `yaml:"cache_seconds" json:"cacheSeconds,omitempty"`
}

// Offline has nowhere to publish to.
func (c Cloud) Offline() bool {
	return c.Bucket == "" && c.Table == "" && c.SQLite == ""
}

func Default() *Config {
	return &Config{
		Name:    "relief",
		Output:  "out",
		Formats: []string{FormatOBJ, FormatPNG},
		Grid: Grid{
			NX:        256,
			NY:        256,
			Scale:     1,
			MinHeight: 0,
			MaxHeight: 100,
		},
		Noise: Noise{
			Source:    "gradient",
			Octaves:   5,
			Amplitude: 100,
			Frequency: 0.05,
			Seed:      56,

			Redistribution: 1,
		},
		Erosion: Erosion{
			Iterations: 1,
		},
		Coral: Coral{
			Seed:         1,
			CellSize:     1,
			Height:       5,
			ShallowLimit: 1,
		},
		Cloud: Cloud{
			Region:       "us-east-1",
			CacheSeconds: 3600,
		},
	}
}

// Load reads the YAML job at path over Default. The document is checked
// against the job schema before decoding.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// Parse is Load for a document already in memory.
func Parse(buf []byte) (*Config, error) {
	var document interface{}
	if err := yaml.Unmarshal(buf, &document); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if document != nil {
		if err := validateSchema(document); err != nil {
			return nil, err
		}
	}

	c := Default()
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validateSchema round trips the YAML document through JSON so the validator
// sees JSON types (float64 numbers, string keyed maps).
func validateSchema(document interface{}) error {
	buf, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var v interface{}
	if err = json.Unmarshal(buf, &v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err = schema.Validate(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks what the schema cannot express.
func (c *Config) Validate() error {
	if c.Grid.MinHeight > c.Grid.MaxHeight {
		return ErrInvalidHeightRange
	}
	if c.Image.Path != "" {
		// Road endpoints are checked once the image size is known.
		return nil
	}
	for i, road := range c.Roads {
		for _, cell := range [...][2]int{road.From, road.To} {
			if cell[0] >= c.Grid.NX || cell[1] >= c.Grid.NY {
				return fmt.Errorf("%w: road %d at %v, grid is %dx%d", ErrRoadOutside, i, cell, c.Grid.NX, c.Grid.NY)
			}
		}
	}
	return nil
}

// Manifest is the effective configuration with the results of running it,
// as indented JSON.
func (c *Config) Manifest(results interface{}) ([]byte, error) {
	return json.MarshalIndent(struct {
		Config  *Config     `json:"config"`
		Results interface{} `json:"results,omitempty"`
	}{c, results}, "", "  ")
}
