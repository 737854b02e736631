// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud publishes finished terrains to a file store and catalogs them.
package cloud

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/relief/cloud/db"
	"github.com/SoftbearStudios/relief/cloud/fs"
	"github.com/SoftbearStudios/relief/config"
	"github.com/SoftbearStudios/relief/terrain"
	"github.com/SoftbearStudios/relief/terrain/compressed"
	"github.com/finnbear/moderation"
	"github.com/gofrs/uuid"
	"golang.org/x/sync/errgroup"
	"path"
	"sort"
	"strings"
	"time"
)

const (
	ManifestFile = "manifest.json"
	keyPrefix    = "terrains"
	maxUploads   = 4
)

var (
	ErrNoGrid  = errors.New("cloud: publication has no grid")
	ErrOffline = errors.New("cloud: offline")
)

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means terrain is generated in offline mode
type Cloud struct {
	region       string
	database     db.Database
	fs           fs.Filesystem
	cacheSeconds int
}

// Publication is a finished terrain and its exported files, keyed by file name.
type Publication struct {
	Name     string
	Seed     int64
	Grid     *terrain.Grid
	Files    map[string][]byte
	Manifest []byte
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.region)
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects to what c configures. An offline configuration returns a nil
// cloud. Without a bucket, files are published under localRoot.
func New(c config.Cloud, localRoot string) (*Cloud, error) {
	if c.Offline() {
		return nil, nil
	}

	cloud := &Cloud{region: c.Region, cacheSeconds: c.CacheSeconds}

	if c.Bucket != "" || c.Table != "" {
		session, err := getAWSSession(c.Region, c.Profile)
		if err != nil {
			return nil, err
		}
		if c.Bucket != "" {
			if cloud.fs, err = fs.NewS3Filesystem(session, c.Bucket); err != nil {
				return nil, err
			}
		}
		if c.Table != "" {
			if cloud.database, err = db.NewDynamoDBDatabase(session, c.Table); err != nil {
				return nil, err
			}
		}
	}

	if cloud.database == nil {
		if c.SQLite == "" {
			return nil, fmt.Errorf("cloud: bucket %q has no catalog, set table or sqlite", c.Bucket)
		}
		database, err := db.NewSQLiteDatabase(c.SQLite)
		if err != nil {
			return nil, err
		}
		cloud.database = database
		if cloud.region == "" {
			cloud.region = "local"
		}
	}

	if cloud.fs == nil {
		local, err := fs.NewLocalFilesystem(localRoot)
		if err != nil {
			return nil, err
		}
		cloud.fs = local
	}

	return cloud, nil
}

// NewWith assembles a cloud from existing stores.
func NewWith(region string, filesystem fs.Filesystem, database db.Database, cacheSeconds int) *Cloud {
	return &Cloud{region: region, fs: filesystem, database: database, cacheSeconds: cacheSeconds}
}

// Close releases the catalog if it holds a connection.
func (cloud *Cloud) Close() error {
	if cloud == nil {
		return nil
	}
	if closer, ok := cloud.database.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Publish uploads every file and the manifest under a fresh id, then catalogs
// the terrain. Inappropriate names are censored. The catalog is only written
// once all uploads succeed.
func (cloud *Cloud) Publish(publication Publication) (*db.Record, error) {
	if cloud == nil {
		return nil, nil
	}
	if publication.Grid == nil {
		return nil, ErrNoGrid
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	prefix := path.Join(keyPrefix, id.String())

	files := make([]string, 0, len(publication.Files))
	for name := range publication.Files {
		files = append(files, name)
	}
	sort.Strings(files)

	var group errgroup.Group
	group.SetLimit(maxUploads)
	for _, name := range files {
		key, data := path.Join(prefix, name), publication.Files[name]
		group.Go(func() error {
			if err := cloud.fs.Upload(key, cloud.cacheSeconds, data); err != nil {
				return fmt.Errorf("uploading %s: %w", key, err)
			}
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	manifest := path.Join(prefix, ManifestFile)
	if publication.Manifest != nil {
		if err = cloud.fs.Upload(manifest, cloud.cacheSeconds, publication.Manifest); err != nil {
			return nil, fmt.Errorf("uploading %s: %w", manifest, err)
		}
	}

	g := publication.Grid
	record := db.Record{
		ID:        id.String(),
		Name:      ModerateName(publication.Name),
		Seed:      publication.Seed,
		NX:        g.NX(),
		NY:        g.NY(),
		MinHeight: g.MinHeight(),
		MaxHeight: g.MaxHeight(),
		Manifest:  manifest,
		Preview:   compressed.Encode(g).Runs,
		Created:   time.Now().Unix(),
	}
	if err = cloud.database.PutTerrain(record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Catalog lists published terrains, oldest first.
func (cloud *Cloud) Catalog() ([]db.Record, error) {
	if cloud == nil {
		return nil, nil
	}
	return cloud.database.ReadTerrains()
}

// Preview returns the packed preview stored with the terrain id.
func (cloud *Cloud) Preview(id string) (*compressed.Data, error) {
	if cloud == nil {
		return nil, ErrOffline
	}
	record, err := cloud.database.ReadTerrain(id)
	if err != nil {
		return nil, err
	}
	return PreviewOf(record), nil
}

// PreviewOf unpacks the preview fields of record.
func PreviewOf(record db.Record) *compressed.Data {
	return &compressed.Data{
		Runs:      record.Preview,
		Width:     record.NX,
		Height:    record.NY,
		MinHeight: record.MinHeight,
		MaxHeight: record.MaxHeight,
	}
}

// ModerateName censors inappropriate words.
func ModerateName(name string) string {
	name = strings.TrimSpace(name)
	if moderation.Scan(name).Is(moderation.Inappropriate) {
		name, _ = moderation.Censor(name, moderation.Inappropriate)
	}
	return name
}
