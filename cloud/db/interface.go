// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import "errors"

var ErrNotFound = errors.New("db: terrain not found")

type Database interface {
	PutTerrain(record Record) error
	ReadTerrain(id string) (Record, error)
	ReadTerrains() ([]Record, error)
	// DeleteTerrain succeeds for missing ids.
	DeleteTerrain(id string) error
}
