/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"io"

	"github.com/suparena/drivelog/storagemodels"
)

// KeyValueStore answers one page of a partition-key query.
type KeyValueStore interface {
	Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.PageResult, error)
}

// Scanner answers one page of a full-collection scan.
type Scanner interface {
	Scan(ctx context.Context, spec *storagemodels.ScanSpec) (*storagemodels.PageResult, error)
}

// BlobStore fetches named objects and persists them locally.
type BlobStore interface {
	// Get opens the named object. The caller closes the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// SaveToLocal writes r to path.
	SaveToLocal(r io.Reader, path string) error
}
