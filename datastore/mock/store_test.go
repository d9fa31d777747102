/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/datastore/mock"
	dlerrors "github.com/suparena/drivelog/errors"
	sm "github.com/suparena/drivelog/storagemodels"
)

var (
	_ datastore.KeyValueStore = (*mock.Store)(nil)
	_ datastore.Scanner       = (*mock.Store)(nil)
	_ datastore.BlobStore     = (*mock.Blobs)(nil)
)

func driveRow(drive, logtime int64) sm.Row {
	return sm.Row{
		"driveid": sm.Int(drive),
		"logtime": sm.Int(logtime),
		"speed":   sm.Float(12.5),
	}
}

func newDriveStore(t *testing.T, pageSize int) *mock.Store {
	t.Helper()
	store := mock.New().
		WithPageSize(pageSize).
		CreateCollection("drives", mock.KeySchema{Partition: "driveid", Range: "logtime"})
	require.NoError(t, store.Put("drives",
		driveRow(2, 30),
		driveRow(1, 20),
		driveRow(1, 10),
		driveRow(2, 5),
		driveRow(1, 30),
	))
	return store
}

func TestMockStoreQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("PartitionOrderedByRange", func(t *testing.T) {
		store := newDriveStore(t, 0)
		out, err := store.Query(ctx, &sm.QuerySpec{
			Collection: "drives",
			Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(1)},
		})
		require.NoError(t, err)
		require.Len(t, out.Rows, 3)
		assert.True(t, out.ResumeToken.Done())
		for i, want := range []int64{10, 20, 30} {
			got, err := out.Rows[i]["logtime"].Int64()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Paging", func(t *testing.T) {
		store := newDriveStore(t, 2)
		spec := sm.QuerySpec{
			Collection: "drives",
			Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(1)},
		}

		first, err := store.Query(ctx, &spec)
		require.NoError(t, err)
		require.Len(t, first.Rows, 2)
		require.False(t, first.ResumeToken.Done())
		assert.True(t, first.ResumeToken["logtime"].Equal(sm.Int(20)))

		next := spec.WithResumeToken(first.ResumeToken)
		second, err := store.Query(ctx, &next)
		require.NoError(t, err)
		require.Len(t, second.Rows, 1)
		assert.True(t, second.ResumeToken.Done())
		assert.Equal(t, 2, store.Calls())
	})

	t.Run("RangeAndProjection", func(t *testing.T) {
		store := newDriveStore(t, 0)
		out, err := store.Query(ctx, &sm.QuerySpec{
			Collection: "drives",
			Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(2)},
			Range:      sm.RangeEquals("logtime", sm.Int(30)),
			Projection: []string{"speed"},
		})
		require.NoError(t, err)
		require.Len(t, out.Rows, 1)
		assert.Equal(t, []string{"speed"}, out.Rows[0].Names())
	})

	t.Run("Between", func(t *testing.T) {
		store := newDriveStore(t, 0)
		out, err := store.Query(ctx, &sm.QuerySpec{
			Collection: "drives",
			Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(1)},
			Range:      sm.RangeBetweenValues("logtime", sm.Int(15), sm.Int(30)),
		})
		require.NoError(t, err)
		assert.Len(t, out.Rows, 2)
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		store := mock.New()
		_, err := store.Query(ctx, &sm.QuerySpec{Collection: "nope"})
		assert.True(t, dlerrors.IsNotFound(err))
	})

	t.Run("WrongPartitionAttribute", func(t *testing.T) {
		store := newDriveStore(t, 0)
		_, err := store.Query(ctx, &sm.QuerySpec{
			Collection: "drives",
			Partition:  sm.KeyCondition{Name: "logtime", Value: sm.Int(1)},
		})
		assert.True(t, dlerrors.IsValidationError(err))
	})

	t.Run("FailOnCall", func(t *testing.T) {
		boom := errors.New("boom")
		store := newDriveStore(t, 1).FailOnCall(2, boom)
		spec := sm.QuerySpec{
			Collection: "drives",
			Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(1)},
		}
		_, err := store.Query(ctx, &spec)
		require.NoError(t, err)
		_, err = store.Query(ctx, &spec)
		assert.ErrorIs(t, err, boom)
	})
}

func TestMockStorePutReplaces(t *testing.T) {
	store := newDriveStore(t, 0)
	updated := driveRow(1, 10)
	updated["speed"] = sm.Float(99)

	require.NoError(t, store.Put("drives", updated))
	assert.Equal(t, 5, store.Count("drives"))

	err := store.Put("drives", sm.Row{"driveid": sm.Int(1)})
	assert.True(t, dlerrors.IsValidationError(err))
}

func TestMockStoreScan(t *testing.T) {
	ctx := context.Background()
	store := newDriveStore(t, 3)

	spec := sm.ScanSpec{Collection: "drives"}
	first, err := store.Scan(ctx, &spec)
	require.NoError(t, err)
	require.Len(t, first.Rows, 3)
	require.False(t, first.ResumeToken.Done())

	next := spec.WithResumeToken(first.ResumeToken)
	second, err := store.Scan(ctx, &next)
	require.NoError(t, err)
	require.Len(t, second.Rows, 2)
	assert.True(t, second.ResumeToken.Done())

	drive, err := second.Rows[0]["driveid"].Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(2), drive)
}

func TestMockBlobs(t *testing.T) {
	ctx := context.Background()
	blobs := mock.NewBlobs("videos")
	blobs.PutObject("video-files/a.m4v", []byte("abc"))

	rc, err := blobs.Get(ctx, "video-files/a.m4v")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "abc", string(data))

	_, err = blobs.Get(ctx, "missing")
	assert.True(t, dlerrors.IsStoreError(err))
	assert.True(t, dlerrors.IsNotFound(err))

	assert.Equal(t, []string{"video-files/a.m4v", "missing"}, blobs.Gets())
}
