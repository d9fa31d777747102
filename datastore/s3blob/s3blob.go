/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package s3blob implements datastore.BlobStore on top of Amazon S3.
package s3blob

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/sirupsen/logrus"
	"github.com/suparena/drivelog/config"
	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/logging"
)

// Client is the subset of *s3.Client used by the store.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// BlobStore reads objects from a single bucket
type BlobStore struct {
	client Client
	bucket string
	logger logrus.FieldLogger
}

// Option configures a BlobStore
type Option func(*BlobStore)

// WithLogger sets the logger used for per-call debug output
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *BlobStore) {
		b.logger = l
	}
}

// NewS3Client initializes an S3 client from cfg. A custom endpoint switches to
// path-style addressing, which S3-compatible local servers expect.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// New wraps an initialized client for bucket
func New(client Client, bucket string, opts ...Option) *BlobStore {
	b := &BlobStore{
		client: client,
		bucket: bucket,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromConfig creates the client from cfg and wraps it for cfg.Bucket
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.NewValidationError("bucket", "must not be empty")
	}
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return New(client, cfg.Bucket, opts...), nil
}

// Get opens the object stored under key. A missing object is reported as a StoreError
// wrapping a NotFoundError.
func (b *BlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, errors.NewValidationError("key", "must not be empty")
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			err = errors.NewNotFoundError("object", key)
		}
		return nil, errors.NewStoreError("get", b.bucket, 0, err)
	}

	b.logger.WithFields(logrus.Fields{
		"bucket": b.bucket,
		"key":    key,
		"size":   aws.ToInt64(out.ContentLength),
	}).Debug("s3 object opened")
	return out.Body, nil
}

// SaveToLocal writes r to path on the local filesystem
func (b *BlobStore) SaveToLocal(r io.Reader, path string) error {
	return datastore.SaveToLocal(r, path)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return true
	}
	var respErr *smithyhttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
