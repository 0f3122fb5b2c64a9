// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package redis publishes topology lifecycle notifications to redis lists.
package redis

import (
	"net/url"
	"strconv"

	"github.com/go-redis/redis"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// Error is the redis error class.
var Error = errs.Class("redis error")

// Client is the entrypoint into Redis.
type Client struct {
	log *zap.Logger
	db  *redis.Client
}

// NewClient returns a configured Client instance, verifying a successful
// connection to redis.
func NewClient(log *zap.Logger, address, password string, db int) (*Client, error) {
	client := &Client{
		log: log,
		db: redis.NewClient(&redis.Options{
			Addr:     address,
			Password: password,
			DB:       db,
		}),
	}

	// ping here to verify we are able to connect to redis with the
	// initialized client.
	if err := client.db.Ping().Err(); err != nil {
		return nil, errs.Combine(Error.New("ping failed: %v", err), client.db.Close())
	}
	return client, nil
}

// NewClientFrom returns a configured Client instance from a redis url of the
// form redis://host:port?db=0&password=secret.
func NewClientFrom(log *zap.Logger, address string) (*Client, error) {
	redisurl, err := url.Parse(address)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if redisurl.Scheme != "redis" {
		return nil, Error.New("not a redis:// formatted address: %q", address)
	}

	q := redisurl.Query()
	db := 0
	if value := q.Get("db"); value != "" {
		db, err = strconv.Atoi(value)
		if err != nil {
			return nil, Error.New("invalid db %q: %v", value, err)
		}
	}
	return NewClient(log, redisurl.Host, q.Get("password"), db)
}

// Close closes the connection to redis.
func (client *Client) Close() error {
	return Error.Wrap(client.db.Close())
}
