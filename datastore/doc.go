/*
Package datastore defines the capabilities drivelog consumes from its backing stores.

	type KeyValueStore interface {
	    Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.PageResult, error)
	}

	type Scanner interface {
	    Scan(ctx context.Context, spec *storagemodels.ScanSpec) (*storagemodels.PageResult, error)
	}

	type BlobStore interface {
	    Get(ctx context.Context, key string) (io.ReadCloser, error)
	    SaveToLocal(r io.Reader, path string) error
	}

A store answers exactly one page per call. Following resume tokens until the result set is
exhausted is the job of the paging package.

Implementations:
  - ddb: DynamoDB KeyValueStore and Scanner
  - s3blob: S3 BlobStore
  - mock: In-memory doubles for testing
*/
package datastore
