// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package boltdb_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storj.io/topology/internal/testcontext"
	"storj.io/topology/pkg/fbe"
	"storj.io/topology/pkg/topology"
	"storj.io/topology/storage/boltdb"
)

func TestJournal(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	client, err := boltdb.New(zaptest.NewLogger(t), filepath.Join(ctx.Dir("bolt"), "journal.db"))
	require.NoError(t, err)
	defer ctx.Check(client.Close)

	journal, err := boltdb.NewJournal(client)
	require.NoError(t, err)

	now := time.Now()
	for _, n := range []topology.Notification{
		{Kind: topology.ObjectCreated, Package: fbe.PackageIDSEP0, ObjectID: 5, ClassID: fbe.ClassIDLUN, Generation: 1, Time: now},
		{Kind: topology.ObjectCreated, Package: fbe.PackageIDSEP0, ObjectID: 6, ClassID: fbe.ClassIDParity, Generation: 1, Time: now},
		{Kind: topology.ObjectCreated, Package: fbe.PackageIDPhysical, ObjectID: 5, ClassID: fbe.ClassIDSASPort, Generation: 1, Time: now},
		{Kind: topology.ObjectDestroyed, Package: fbe.PackageIDSEP0, ObjectID: 5, ClassID: fbe.ClassIDLUN, Generation: 1, Time: now},
		{Kind: topology.ObjectDestroyFailed, Package: fbe.PackageIDSEP0, ObjectID: 6, ClassID: fbe.ClassIDParity, Generation: 1, Time: now, Err: "stuck"},
	} {
		require.NoError(t, journal.Notify(ctx, n))
	}

	entries, err := journal.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.EqualValues(t, i+1, entry.Sequence)
	}
	assert.Equal(t, "destroy-failed", entries[4].Kind)
	assert.Equal(t, "stuck", entries[4].Err)

	live, err := journal.Live(ctx, "sep")
	require.NoError(t, err)
	assert.Equal(t, map[fbe.ObjectID]string{6: "parity"}, live)

	require.NoError(t, journal.Truncate(ctx))
	entries, err = journal.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalReopen(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	path := filepath.Join(ctx.Dir("bolt"), "journal.db")

	client, err := boltdb.New(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	journal, err := boltdb.NewJournal(client)
	require.NoError(t, err)
	require.NoError(t, journal.Notify(ctx, topology.Notification{Kind: topology.ObjectCreated, Package: fbe.PackageIDESP, ObjectID: 1}))
	require.NoError(t, client.Close())

	client, err = boltdb.New(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	defer ctx.Check(client.Close)
	journal, err = boltdb.NewJournal(client)
	require.NoError(t, err)

	live, err := journal.Live(ctx, "esp")
	require.NoError(t, err)
	assert.Len(t, live, 1)
}
