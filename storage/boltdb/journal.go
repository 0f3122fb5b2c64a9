// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/boltdb/bolt"
	monkit "github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/topology"
)

var mon = monkit.Package()

const journalBucketName = "lifecycle"

// Journal records topology lifecycle notifications in order.
type Journal struct {
	client *Client
}

// NewJournal creates the journal bucket if needed.
func NewJournal(client *Client) (*Journal, error) {
	err := client.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(journalBucketName))
		return err
	})
	if err != nil {
		return nil, Error.New("error creating journal bucket: %v", err)
	}
	return &Journal{client: client}, nil
}

type record struct {
	Kind       string `json:"kind"`
	Package    string `json:"package"`
	ObjectID   uint32 `json:"object_id"`
	ClassID    string `json:"class"`
	Generation uint64 `json:"generation"`
	Time       int64  `json:"time"`
	Err        string `json:"error,omitempty"`
}

// Notify implements topology.Notifier.
func (journal *Journal) Notify(ctx context.Context, notification topology.Notification) (err error) {
	defer mon.Task()(&ctx)(&err)

	value, err := json.Marshal(record{
		Kind:       notification.Kind.String(),
		Package:    notification.Package.String(),
		ObjectID:   uint32(notification.ObjectID),
		ClassID:    notification.ClassID.String(),
		Generation: notification.Generation,
		Time:       notification.Time.UnixNano(),
		Err:        notification.Err,
	})
	if err != nil {
		return Error.Wrap(err)
	}

	return Error.Wrap(journal.client.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(journalBucketName))
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return bucket.Put(key[:], value)
	}))
}

// Entry is a notification read back from the journal.
type Entry struct {
	Sequence   uint64
	Kind       string
	Package    string
	ObjectID   fbe.ObjectID
	ClassID    string
	Generation uint64
	Err        string
}

// List returns every journal entry in the order it was recorded.
func (journal *Journal) List(ctx context.Context) (_ []Entry, err error) {
	defer mon.Task()(&ctx)(&err)

	var entries []Entry
	err = journal.client.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(journalBucketName)).ForEach(func(key, value []byte) error {
			var rec record
			if err := json.Unmarshal(value, &rec); err != nil {
				journal.client.log.Warn("skipping corrupt journal entry", zap.Binary("key", key), zap.Error(err))
				return nil
			}
			entries = append(entries, Entry{
				Sequence:   binary.BigEndian.Uint64(key),
				Kind:       rec.Kind,
				Package:    rec.Package,
				ObjectID:   fbe.ObjectID(rec.ObjectID),
				ClassID:    rec.ClassID,
				Generation: rec.Generation,
				Err:        rec.Err,
			})
			return nil
		})
	})
	return entries, Error.Wrap(err)
}

// Live replays the journal and returns the objects of packageName that
// were created and not destroyed, keyed by id with their class name.
func (journal *Journal) Live(ctx context.Context, packageName string) (_ map[fbe.ObjectID]string, err error) {
	defer mon.Task()(&ctx)(&err)

	entries, err := journal.List(ctx)
	if err != nil {
		return nil, err
	}
	live := map[fbe.ObjectID]string{}
	for _, entry := range entries {
		if entry.Package != packageName {
			continue
		}
		switch entry.Kind {
		case topology.ObjectCreated.String():
			live[entry.ObjectID] = entry.ClassID
		case topology.ObjectDestroyed.String():
			delete(live, entry.ObjectID)
		}
	}
	return live, nil
}

// Truncate removes every journal entry.
func (journal *Journal) Truncate(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	return Error.Wrap(journal.client.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(journalBucketName)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(journalBucketName))
		return err
	}))
}
