/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/errors"
)

// Blobs is an in-memory BlobStore. Missing objects fail the same way the S3 store does:
// a StoreError wrapping a NotFoundError.
type Blobs struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string][]byte
	getErr  error
	saveErr error
	gets    []string
}

// NewBlobs creates an empty mock BlobStore for bucket
func NewBlobs(bucket string) *Blobs {
	return &Blobs{
		bucket:  bucket,
		objects: make(map[string][]byte),
	}
}

// WithGetError makes Get fail with err, wrapped in a StoreError
func (b *Blobs) WithGetError(err error) *Blobs {
	b.getErr = err
	return b
}

// WithSaveError makes SaveToLocal return err unchanged
func (b *Blobs) WithSaveError(err error) *Blobs {
	b.saveErr = err
	return b
}

// PutObject stores data under key
func (b *Blobs) PutObject(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = append([]byte(nil), data...)
}

// Get opens the object stored under key
func (b *Blobs) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreError("get", b.bucket, 0, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.gets = append(b.gets, key)
	if b.getErr != nil {
		return nil, errors.NewStoreError("get", b.bucket, 0, b.getErr)
	}
	data, ok := b.objects[key]
	if !ok {
		return nil, errors.NewStoreError("get", b.bucket, 0, errors.NewNotFoundError("object", key))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// SaveToLocal writes r to path on the local filesystem
func (b *Blobs) SaveToLocal(r io.Reader, path string) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	return datastore.SaveToLocal(r, path)
}

// Gets returns the keys requested so far, in call order
func (b *Blobs) Gets() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.gets...)
}
