// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

const (
	nibble   = 0b11110000
	maxCount = 0b00001111
)

// Buffer keeps the 4 most significant bits of every written byte, run length
// encoded. Each stored byte is 4 bits of value followed by 4 bits of count - 1.
// Reading does not consume the stored runs; Reset rewinds.
type Buffer struct {
	runs []byte
	off  int  // Run being read.
	used byte // Bytes already read from that run.
}

// Reset replaces the stored runs and rewinds.
func (buffer *Buffer) Reset(runs []byte) {
	buffer.runs = runs
	buffer.off = 0
	buffer.used = 0
}

func (buffer *Buffer) writeByte(b byte) {
	value := b & nibble
	last := len(buffer.runs) - 1

	if last >= 0 {
		run := buffer.runs[last]
		if run&nibble == value && run&maxCount < maxCount {
			buffer.runs[last] = run + 1
			return
		}
	}

	buffer.runs = append(buffer.runs, value)
}

func (buffer *Buffer) Write(p []byte) (int, error) {
	for _, b := range p {
		buffer.writeByte(b)
	}
	return len(p), nil
}

func (buffer *Buffer) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && buffer.off < len(buffer.runs) {
		run := buffer.runs[buffer.off]
		p[n] = run & nibble
		n++

		if buffer.used < run&maxCount {
			buffer.used++
		} else {
			buffer.off++
			buffer.used = 0
		}
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Grow makes space for about n more written bytes.
func (buffer *Buffer) Grow(n int) {
	if n /= 2; cap(buffer.runs)-len(buffer.runs) < n {
		runs := make([]byte, len(buffer.runs), len(buffer.runs)+n)
		copy(runs, buffer.runs)
		buffer.runs = runs
	}
}

// Bytes are the stored runs.
func (buffer *Buffer) Bytes() []byte {
	return buffer.runs
}

// Len is the number of bytes the runs decode to.
func (buffer *Buffer) Len() int {
	n := 0
	for _, run := range buffer.runs {
		n += int(run&maxCount) + 1
	}
	return n
}
