// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package redis

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis"
	monkit "github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"

	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/topology"
)

var mon = monkit.Package()

// DefaultBacklog is how many notifications a publisher keeps per package.
const DefaultBacklog = 1024

// Message is a lifecycle notification as it is stored in redis.
type Message struct {
	Kind       string       `json:"kind"`
	Package    string       `json:"package"`
	ObjectID   fbe.ObjectID `json:"object_id"`
	Class      string       `json:"class"`
	Generation uint64       `json:"generation"`
	Time       int64        `json:"time"`
	Err        string       `json:"error,omitempty"`
}

// Publisher appends lifecycle notifications to one list per package and
// trims each list to the newest Backlog entries.
type Publisher struct {
	client  *Client
	Backlog int64
}

// NewPublisher creates a publisher on client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client, Backlog: DefaultBacklog}
}

// Key returns the list that holds the notifications of packageID.
func Key(packageID fbe.PackageID) string {
	return "topology:" + packageID.String() + ":lifecycle"
}

// Notify implements topology.Notifier.
func (publisher *Publisher) Notify(ctx context.Context, notification topology.Notification) (err error) {
	defer mon.Task()(&ctx)(&err)

	value, err := json.Marshal(Message{
		Kind:       notification.Kind.String(),
		Package:    notification.Package.String(),
		ObjectID:   notification.ObjectID,
		Class:      notification.ClassID.String(),
		Generation: notification.Generation,
		Time:       notification.Time.UnixNano(),
		Err:        notification.Err,
	})
	if err != nil {
		return Error.Wrap(err)
	}

	key := Key(notification.Package)
	_, err = publisher.client.db.Pipelined(func(pipe redis.Pipeliner) error {
		pipe.RPush(key, value)
		pipe.LTrim(key, -publisher.Backlog, -1)
		return nil
	})
	if err != nil {
		return Error.New("publish error: %v", err)
	}
	return nil
}

// Recent returns up to limit of the newest notifications of packageID,
// oldest first. Entries that do not decode are skipped.
func (publisher *Publisher) Recent(ctx context.Context, packageID fbe.PackageID, limit int64) (_ []Message, err error) {
	defer mon.Task()(&ctx)(&err)

	if limit <= 0 {
		return nil, nil
	}
	items, err := publisher.client.db.LRange(Key(packageID), -limit, -1).Result()
	if err != nil {
		return nil, Error.New("range error: %v", err)
	}

	messages := make([]Message, 0, len(items))
	for _, item := range items {
		var message Message
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			publisher.client.log.Warn("skipping malformed notification", zap.Error(err))
			continue
		}
		messages = append(messages, message)
	}
	return messages, nil
}
