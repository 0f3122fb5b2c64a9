// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package boltdb keeps the lifecycle journal of a topology service in a
// bolt database.
package boltdb

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// Error is the error class for the bolt journal.
var Error = errs.Class("boltdb")

var (
	defaultTimeout = 1 * time.Second
)

const (
	// fileMode sets permissions so owner can read and write
	fileMode = 0600
)

// Client is a handle to the bolt database.
type Client struct {
	log  *zap.Logger
	db   *bolt.DB
	Path string
}

// New opens or creates the database at path.
func New(log *zap.Logger, path string) (*Client, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: defaultTimeout})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	return &Client{
		log:  log,
		db:   db,
		Path: path,
	}, nil
}

// Close closes the database.
func (client *Client) Close() error {
	return Error.Wrap(client.db.Close())
}
