/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
	"github.com/suparena/drivelog/config"
	"github.com/suparena/drivelog/logging"
	"github.com/suparena/drivelog/storagemodels"
)

// Client is the subset of *dynamodb.Client used by the store.
type Client interface {
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// DynamodbDataStore answers single pages of queries and scans against DynamoDB.
// It implements datastore.KeyValueStore and datastore.Scanner.
type DynamodbDataStore struct {
	client         Client
	logger         logrus.FieldLogger
	consistentRead bool
}

// Option configures a DynamodbDataStore
type Option func(*DynamodbDataStore)

// WithLogger sets the logger used for per-call debug output
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *DynamodbDataStore) {
		d.logger = l
	}
}

// WithConsistentRead requests strongly consistent reads
func WithConsistentRead(enabled bool) Option {
	return func(d *DynamodbDataStore) {
		d.consistentRead = enabled
	}
}

// NewDynamoDBClient initializes a DynamoDB client from cfg. cfg.Endpoint, when set,
// points the client at another endpoint such as DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, cfg *config.Config) (*sdk.Client, error) {
	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	client := sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return client, nil
}

// NewDynamodbDataStore wraps an initialized client.
func NewDynamodbDataStore(client Client, opts ...Option) *DynamodbDataStore {
	d := &DynamodbDataStore{
		client: client,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDynamodbDataStoreFromConfig creates the client from cfg and wraps it.
func NewDynamodbDataStoreFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewDynamodbDataStore(client, opts...), nil
}

// Query runs one page of spec.
func (d *DynamodbDataStore) Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.PageResult, error) {
	input, err := d.buildQueryInput(spec)
	if err != nil {
		return nil, err
	}

	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"table":   spec.Collection,
		"count":   out.Count,
		"scanned": out.ScannedCount,
	}).Debug("dynamodb query page")

	return toPageResult(out.Items, out.LastEvaluatedKey)
}

// Scan runs one page of a full-table scan.
func (d *DynamodbDataStore) Scan(ctx context.Context, spec *storagemodels.ScanSpec) (*storagemodels.PageResult, error) {
	input, err := d.buildScanInput(spec)
	if err != nil {
		return nil, err
	}

	out, err := d.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"table":   spec.Collection,
		"count":   out.Count,
		"scanned": out.ScannedCount,
	}).Debug("dynamodb scan page")

	return toPageResult(out.Items, out.LastEvaluatedKey)
}
