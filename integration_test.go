//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package drivelog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/drivelog"
	"github.com/suparena/drivelog/config"
	"github.com/suparena/drivelog/datastore/ddb"
	"github.com/suparena/drivelog/datastore/paging"
	"github.com/suparena/drivelog/datastore/s3blob"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/logging"
)

const (
	sampleDrive   = int64(20181120104743)
	sampleLogTime = int64(1376395)
	sampleKey     = "video-files/Recfile P3 Edge 20181120 104743 Webcam Driver Outputiplimage.m4v"
)

func liveClient(t *testing.T) *drivelog.Client {
	t.Helper()

	cfg, err := config.Load(os.Getenv("DRIVELOG_CONFIG"), ".env")
	if err != nil {
		t.Skipf("no usable configuration: %v", err)
	}
	if !cfg.HasStaticCredentials() && cfg.Profile == "" {
		t.Skip("no AWS credentials configured")
	}

	logger, err := logging.New("debug", "text")
	require.NoError(t, err)

	ctx := context.Background()
	store, err := ddb.NewDynamodbDataStoreFromConfig(ctx, cfg, ddb.WithLogger(logger))
	require.NoError(t, err)

	opts := []drivelog.Option{drivelog.WithTable(cfg.Table), drivelog.WithLogger(logger)}
	if cfg.Bucket != "" {
		blobs, err := s3blob.NewFromConfig(ctx, cfg, s3blob.WithLogger(logger))
		require.NoError(t, err)
		opts = append(opts, drivelog.WithBlobStore(blobs))
	}
	return drivelog.NewClient(paging.NewRunner(store, paging.WithLogger(logger)), opts...)
}

func TestLiveDriveScenario(t *testing.T) {
	client := liveClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rows, err := client.QueryDriveScenario(ctx, sampleDrive)
	require.NoError(t, err)
	t.Logf("retrieved %d log(s)", len(rows))

	var prev int64
	for i, row := range rows {
		lt, err := drivelog.LogTime(row)
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, lt, prev)
		}
		prev = lt
	}
}

func TestLiveSpecificTimestamp(t *testing.T) {
	client := liveClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rows, err := client.QuerySpecificTimestamp(ctx, sampleDrive, sampleLogTime)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rows), 1)
}

func TestLiveGPSData(t *testing.T) {
	client := liveClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fixes, err := client.QueryAllGPSData(ctx, sampleDrive)
	require.NoError(t, err)
	t.Logf("retrieved %d GPS fix(es)", len(fixes))
}

func TestLiveDownloadFile(t *testing.T) {
	client := liveClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	out := filepath.Join(t.TempDir(), "recording.m4v")
	err := client.DownloadFile(ctx, sampleKey, out)
	if errors.IsValidationError(err) {
		t.Skip("no bucket configured")
	}
	if errors.IsNotFound(err) {
		t.Skip("sample recording is not in the bucket")
	}
	require.NoError(t, err)
	assert.FileExists(t, out)
}
