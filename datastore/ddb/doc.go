/*
Package ddb provides the DynamoDB implementation of datastore.KeyValueStore and
datastore.Scanner.

Each call answers exactly one page. Key conditions and projections are built with the
expression builder, so attribute names never collide with DynamoDB reserved words:

	store, err := ddb.NewDynamodbDataStoreFromConfig(ctx, cfg)
	page, err := store.Query(ctx, &storagemodels.QuerySpec{
	    Collection: "honda-hackathon1",
	    Partition:  storagemodels.KeyCondition{Name: "driveid", Value: storagemodels.Int(20181120104743)},
	    Range:      storagemodels.RangeEquals("logtime", storagemodels.Int(1376395)),
	})

Items convert to rows attribute by attribute: S and N map to string and number values, NULL
attributes are dropped and any other type is rejected. LastEvaluatedKey becomes the page's
ResumeToken and is sent back as ExclusiveStartKey on the next call.

To exhaust a query, hand the store to paging.NewRunner.
*/
package ddb
