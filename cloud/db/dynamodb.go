// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"errors"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
	"sort"
)

type DynamoDBDatabase struct {
	svc      *dynamodb.DynamoDB
	db       *dynamo.DB
	terrains dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, table string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.terrains = ddb.db.Table(table)
	return ddb, nil
}

func (ddb *DynamoDBDatabase) PutTerrain(record Record) error {
	return ddb.terrains.Put(record).Run()
}

func (ddb *DynamoDBDatabase) ReadTerrain(id string) (record Record, err error) {
	err = ddb.terrains.Get("id", id).One(&record)
	if errors.Is(err, dynamo.ErrNotFound) {
		err = ErrNotFound
	}
	return
}

// ReadTerrains scans the whole table, oldest first.
func (ddb *DynamoDBDatabase) ReadTerrains() (records []Record, err error) {
	query := ddb.terrains.Scan().Iter()

	for {
		var record Record
		if !query.Next(&record) {
			err = query.Err()
			break
		}
		records = append(records, record)
	}

	sortRecords(records)
	return
}

func (ddb *DynamoDBDatabase) DeleteTerrain(id string) error {
	return ddb.terrains.Delete("id", id).Run()
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Created != records[j].Created {
			return records[i].Created < records[j].Created
		}
		return records[i].ID < records[j].ID
	})
}
