// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package redis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storj.io/topology/internal/testcontext"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/topology"
	"storj.io/topology/storage/redis"
	"storj.io/topology/storage/redis/redisserver"
)

func newPublisher(t *testing.T) (*redis.Publisher, func()) {
	addr, cleanup, err := redisserver.Mini()
	require.NoError(t, err)

	client, err := redis.NewClientFrom(zaptest.NewLogger(t), "redis://"+addr+"?db=0")
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	return redis.NewPublisher(client), func() {
		assert.NoError(t, client.Close())
		cleanup()
	}
}

func TestPublisher(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	publisher, cleanup := newPublisher(t)
	defer cleanup()
	publisher.Backlog = 3

	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, publisher.Notify(ctx, topology.Notification{
			Kind:       topology.ObjectCreated,
			Package:    fbe.PackageIDSEP0,
			ObjectID:   fbe.ObjectID(i),
			ClassID:    fbe.ClassIDProvisionDrive,
			Generation: 1,
			Time:       now,
		}))
	}
	require.NoError(t, publisher.Notify(ctx, topology.Notification{
		Kind:     topology.ObjectDestroyFailed,
		Package:  fbe.PackageIDESP,
		ObjectID: 9,
		ClassID:  fbe.ClassIDDriveMgmt,
		Time:     now,
		Err:      "stuck",
	}))

	messages, err := publisher.Recent(ctx, fbe.PackageIDSEP0, 10)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, message := range messages {
		assert.Equal(t, fbe.ObjectID(i+2), message.ObjectID)
		assert.Equal(t, "created", message.Kind)
		assert.Equal(t, "sep", message.Package)
		assert.Equal(t, "provision-drive", message.Class)
		assert.Equal(t, now.UnixNano(), message.Time)
	}

	messages, err = publisher.Recent(ctx, fbe.PackageIDSEP0, 1)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, fbe.ObjectID(4), messages[0].ObjectID)

	messages, err = publisher.Recent(ctx, fbe.PackageIDESP, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "destroy-failed", messages[0].Kind)
	assert.Equal(t, "stuck", messages[0].Err)

	messages, err = publisher.Recent(ctx, fbe.PackageIDKMS, 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestNewClientFrom(t *testing.T) {
	log := zaptest.NewLogger(t)

	_, err := redis.NewClientFrom(log, "http://localhost:6379")
	assert.Error(t, err)

	_, err = redis.NewClientFrom(log, "redis://localhost:6379?db=x")
	assert.Error(t, err)

	assert.Equal(t, "topology:sep:lifecycle", redis.Key(fbe.PackageIDSEP0))
}
