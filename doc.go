/*
Package drivelog reads vehicle drive logs out of a partitioned key-value table and
downloads drive recordings from an object store.

Every query pages through the store until it is exhausted, so callers always get
the complete result set in key order or an error naming the page that failed:

	cfg, _ := config.Load("drivelog.yaml", ".env")
	store, _ := ddb.NewDynamodbDataStoreFromConfig(ctx, cfg)
	blobs, _ := s3blob.NewFromConfig(ctx, cfg)

	client := drivelog.NewClient(paging.NewRunner(store),
	    drivelog.WithTable(cfg.Table),
	    drivelog.WithBlobStore(blobs))

	rows, err := client.QueryDriveScenario(ctx, 20181120104743)
	fixes, err := client.QueryAllGPSData(ctx, 20181120104743)

Whole-table exports are written as JSON or YAML documents:

	_, err := client.ExportAll(ctx, f, drivelog.FormatYAML)

The paging engine lives in datastore/paging, the DynamoDB and S3 adapters in
datastore/ddb and datastore/s3blob, and an in-memory store for tests in
datastore/mock.
*/
package drivelog
