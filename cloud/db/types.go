// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

// Record catalogs one published terrain. Files are listed in the manifest.
type Record struct {
	ID        string  `dynamo:"id" db:"id" json:"id"`
	Name      string  `dynamo:"name" db:"name" json:"name"`
	Seed      int64   `dynamo:"seed" db:"seed" json:"seed"`
	NX        int     `dynamo:"nx" db:"nx" json:"nx"`
	NY        int     `dynamo:"ny" db:"ny" json:"ny"`
	MinHeight float64 `dynamo:"min_height" db:"min_height" json:"minHeight"`
	MaxHeight float64 `dynamo:"max_height" db:"max_height" json:"maxHeight"`
	Manifest  string  `dynamo:"manifest" db:"manifest" json:"manifest"`
	Preview   []byte  `dynamo:"preview,omitempty" db:"preview" json:"preview,omitempty"`
	Created   int64   `dynamo:"created" db:"created" json:"created"`
}
