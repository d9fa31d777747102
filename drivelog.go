/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package drivelog

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/datastore/paging"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/logging"
	"github.com/suparena/drivelog/storagemodels"
)

// Drive log table layout
const (
	DefaultTable = "honda-hackathon1"

	AttrDriveID = "driveid"
	AttrLogTime = "logtime"
	AttrGPSLat  = "GPS_Lat"
	AttrGPSLon  = "GPS_Lon"
	AttrGPSAlt  = "GPS_Alt"
)

// Client runs the drive log queries and artifact downloads.
type Client struct {
	runner *paging.Runner
	blobs  datastore.BlobStore
	table  string
	logger logrus.FieldLogger
	clock  func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithTable overrides the drive log table name
func WithTable(table string) Option {
	return func(c *Client) {
		c.table = table
	}
}

// WithBlobStore enables DownloadFile
func WithBlobStore(blobs datastore.BlobStore) Option {
	return func(c *Client) {
		c.blobs = blobs
	}
}

// WithLogger sets the logger for query summaries
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClock sets the time source used for export timestamps
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// NewClient creates a Client that pages through runner.
func NewClient(runner *paging.Runner, opts ...Option) *Client {
	c := &Client{
		runner: runner,
		table:  DefaultTable,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the table the client reads from
func (c *Client) Table() string {
	return c.table
}

func (c *Client) driveSpec(driveID int64) storagemodels.QuerySpec {
	return storagemodels.QuerySpec{
		Collection: c.table,
		Partition:  storagemodels.KeyCondition{Name: AttrDriveID, Value: storagemodels.Int(driveID)},
	}
}

func (c *Client) fetch(ctx context.Context, what string, spec storagemodels.QuerySpec) ([]storagemodels.Row, error) {
	rows, err := c.runner.FetchAll(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	c.logger.WithFields(logrus.Fields{
		"query": what,
		"table": c.table,
		"count": len(rows),
	}).Infof("Retrieved %d log(s)", len(rows))
	return rows, nil
}

// QueryDriveScenario returns every log entry recorded for a drive, ordered by logtime.
func (c *Client) QueryDriveScenario(ctx context.Context, driveID int64) ([]storagemodels.Row, error) {
	return c.fetch(ctx, "drive scenario", c.driveSpec(driveID))
}

// QuerySpecificTimestamp returns the log entry of a drive at exactly logTime, if any.
func (c *Client) QuerySpecificTimestamp(ctx context.Context, driveID, logTime int64) ([]storagemodels.Row, error) {
	spec := c.driveSpec(driveID)
	spec.Range = storagemodels.RangeEquals(AttrLogTime, storagemodels.Int(logTime))
	return c.fetch(ctx, "specific timestamp", spec)
}

// QueryTimeWindow returns the log entries of a drive with from <= logtime <= to.
func (c *Client) QueryTimeWindow(ctx context.Context, driveID, from, to int64) ([]storagemodels.Row, error) {
	if from > to {
		return nil, errors.NewValidationError("window", fmt.Sprintf("from %d is after to %d", from, to))
	}
	spec := c.driveSpec(driveID)
	spec.Range = storagemodels.RangeBetweenValues(AttrLogTime, storagemodels.Int(from), storagemodels.Int(to))
	return c.fetch(ctx, "time window", spec)
}

// ReadAll scans the whole table.
func (c *Client) ReadAll(ctx context.Context) ([]storagemodels.Row, error) {
	rows, err := c.runner.ScanAll(ctx, storagemodels.ScanSpec{Collection: c.table})
	if err != nil {
		return nil, fmt.Errorf("read all: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"query": "read all",
		"table": c.table,
		"count": len(rows),
	}).Infof("Retrieved %d log(s)", len(rows))
	return rows, nil
}

// DownloadFile fetches key from the blob store and writes it to localPath.
func (c *Client) DownloadFile(ctx context.Context, key, localPath string) error {
	if c.blobs == nil {
		return errors.NewValidationError("blobstore", "no blob store configured")
	}

	body, err := c.blobs.Get(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := c.blobs.SaveToLocal(body, localPath); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"key":  key,
		"path": localPath,
	}).Info("Downloaded file")
	return nil
}
