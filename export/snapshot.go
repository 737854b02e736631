// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/world"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"
	"io"
	"os"
)

const (
	SnapshotExtension = ".hf.zst"
	snapshotVersion   = 1
	// MaxSnapshotCells caps the allocation a snapshot header may request.
	MaxSnapshotCells = 1 << 28
)

var ErrSnapshotVersion = errors.New("export: unsupported snapshot version")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotHeader is the first line of a snapshot. Heights follow it as little
// endian float64s, row major.
type SnapshotHeader struct {
	Version   int        `json:"version"`
	NX        int        `json:"nx"`
	NY        int        `json:"ny"`
	Bounds    world.Box2 `json:"bounds"`
	MinHeight float64    `json:"minHeight"`
	MaxHeight float64    `json:"maxHeight"`
}

// WriteSnapshot writes g losslessly as a zstd stream.
func WriteSnapshot(w io.Writer, g *terrain.Grid) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 64*1024)

	header, err := json.Marshal(SnapshotHeader{
		Version:   snapshotVersion,
		NX:        g.NX(),
		NY:        g.NY(),
		Bounds:    g.Bounds(),
		MinHeight: g.MinHeight(),
		MaxHeight: g.MaxHeight(),
	})
	if err != nil {
		enc.Close()
		return err
	}
	if _, err = bw.Write(append(header, '\n')); err != nil {
		enc.Close()
		return err
	}
	if err = binary.Write(bw, binary.LittleEndian, g.Heights()); err != nil {
		enc.Close()
		return err
	}
	if err = bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot restores a grid written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*terrain.Grid, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}

	var header SnapshotHeader
	if err = json.Unmarshal(line, &header); err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, header.Version)
	}
	if header.NX <= 0 || header.NY <= 0 || header.NX > MaxSnapshotCells/header.NY {
		return nil, fmt.Errorf("%w: %dx%d", terrain.ErrInvalidSize, header.NX, header.NY)
	}

	heights := make([]float64, header.NX*header.NY)
	if err = binary.Read(br, binary.LittleEndian, heights); err != nil {
		return nil, fmt.Errorf("snapshot heights: %w", err)
	}

	g, err := terrain.FromHeights(header.Bounds, heights, header.NX, header.NY)
	if err != nil {
		return nil, err
	}
	if err = g.SetHeightRange(header.MinHeight, header.MaxHeight); err != nil {
		return nil, err
	}
	return g, nil
}

// SaveSnapshot writes g to the snapshot file at path.
func SaveSnapshot(path string, g *terrain.Grid) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	return WriteSnapshot(file, g)
}

// LoadSnapshot reads the snapshot file at path.
func LoadSnapshot(path string) (*terrain.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadSnapshot(file)
}
