// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS terrains (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	seed INTEGER NOT NULL,
	nx INTEGER NOT NULL,
	ny INTEGER NOT NULL,
	min_height REAL NOT NULL,
	max_height REAL NOT NULL,
	manifest TEXT NOT NULL,
	preview BLOB,
	created INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_terrains_created ON terrains(created);
`

// SQLiteDatabase is a catalog in a local SQLite file, for publishing without
// AWS.
type SQLiteDatabase struct {
	conn *sqlx.DB
}

// NewSQLiteDatabase opens or creates the catalog at path (":memory:" for a
// throwaway one).
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// One connection, or every connection to :memory: would see its own database.
	conn.SetMaxOpenConns(1)

	if _, err = conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &SQLiteDatabase{conn: conn}, nil
}

func (sdb *SQLiteDatabase) Close() error {
	return sdb.conn.Close()
}

func (sdb *SQLiteDatabase) PutTerrain(record Record) error {
	_, err := sdb.conn.NamedExec(`INSERT OR REPLACE INTO terrains
		(id, name, seed, nx, ny, min_height, max_height, manifest, preview, created)
		VALUES (:id, :name, :seed, :nx, :ny, :min_height, :max_height, :manifest, :preview, :created)`, record)
	return err
}

func (sdb *SQLiteDatabase) ReadTerrain(id string) (record Record, err error) {
	err = sdb.conn.Get(&record, "SELECT * FROM terrains WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return
}

func (sdb *SQLiteDatabase) ReadTerrains() (records []Record, err error) {
	err = sdb.conn.Select(&records, "SELECT * FROM terrains ORDER BY created, id")
	return
}

func (sdb *SQLiteDatabase) DeleteTerrain(id string) error {
	_, err := sdb.conn.Exec("DELETE FROM terrains WHERE id = ?", id)
	return err
}
