/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/datastore/paging"
	dlerrors "github.com/suparena/drivelog/errors"
	sm "github.com/suparena/drivelog/storagemodels"
)

var (
	_ datastore.KeyValueStore = (*DynamodbDataStore)(nil)
	_ datastore.Scanner       = (*DynamodbDataStore)(nil)
	_ Client                  = (*sdk.Client)(nil)
)

// fakeClient replays canned outputs and records every input.
type fakeClient struct {
	queryOutputs []*sdk.QueryOutput
	scanOutputs  []*sdk.ScanOutput
	err          error
	queries      []*sdk.QueryInput
	scans        []*sdk.ScanInput
}

func (f *fakeClient) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.err != nil {
		return nil, f.err
	}
	out := f.queryOutputs[0]
	f.queryOutputs = f.queryOutputs[1:]
	return out, nil
}

func (f *fakeClient) Scan(ctx context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.scans = append(f.scans, in)
	if f.err != nil {
		return nil, f.err
	}
	out := f.scanOutputs[0]
	f.scanOutputs = f.scanOutputs[1:]
	return out, nil
}

func n(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }
func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func item(drive, logtime string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"driveid":   n(drive),
		"logtime":   n(logtime),
		"GPS_Lat":   n("37.386051"),
		"File_Name": s("Recfile P3 Edge 20181120 104743.csv"),
	}
}

// placeholderFor finds the expression placeholder that stands for attribute name.
func placeholderFor(t *testing.T, names map[string]string, name string) string {
	t.Helper()
	for k, v := range names {
		if v == name {
			return k
		}
	}
	t.Fatalf("attribute %q not found in %v", name, names)
	return ""
}

func TestQueryBuildsInput(t *testing.T) {
	client := &fakeClient{queryOutputs: []*sdk.QueryOutput{{}}}
	store := NewDynamodbDataStore(client, WithConsistentRead(true))

	spec := &sm.QuerySpec{
		Collection:  "honda-hackathon1",
		Partition:   sm.KeyCondition{Name: "driveid", Value: sm.Int(20181120104743)},
		Range:       sm.RangeEquals("logtime", sm.Int(1376395)),
		Projection:  []string{"GPS_Lat", "GPS_Lon", "GPS_Alt"},
		PageSize:    25,
		ResumeToken: sm.ResumeToken{"driveid": sm.Int(20181120104743), "logtime": sm.Int(1376000)},
	}

	_, err := store.Query(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, client.queries, 1)
	in := client.queries[0]

	assert.Equal(t, "honda-hackathon1", aws.ToString(in.TableName))
	assert.Equal(t, int32(25), aws.ToInt32(in.Limit))
	assert.True(t, aws.ToBool(in.ConsistentRead))
	assert.Nil(t, in.IndexName)

	pk := placeholderFor(t, in.ExpressionAttributeNames, "driveid")
	rk := placeholderFor(t, in.ExpressionAttributeNames, "logtime")
	cond := aws.ToString(in.KeyConditionExpression)
	assert.Contains(t, cond, pk+" = ")
	assert.Contains(t, cond, rk+" = ")
	assert.Contains(t, cond, "AND")

	proj := aws.ToString(in.ProjectionExpression)
	assert.Len(t, strings.Split(proj, ","), 3)
	for _, attr := range spec.Projection {
		assert.Contains(t, proj, placeholderFor(t, in.ExpressionAttributeNames, attr))
	}

	var numbers []string
	for _, v := range in.ExpressionAttributeValues {
		nv, ok := v.(*types.AttributeValueMemberN)
		require.True(t, ok, "key values must stay numeric, got %T", v)
		numbers = append(numbers, nv.Value)
	}
	assert.ElementsMatch(t, []string{"20181120104743", "1376395"}, numbers)

	require.Len(t, in.ExclusiveStartKey, 2)
	assert.Equal(t, n("1376000"), in.ExclusiveStartKey["logtime"])
}

func TestQueryBetweenAndIndex(t *testing.T) {
	client := &fakeClient{queryOutputs: []*sdk.QueryOutput{{}}}
	store := NewDynamodbDataStore(client)

	_, err := store.Query(context.Background(), &sm.QuerySpec{
		Collection: "t",
		IndexName:  "by-weather",
		Partition:  sm.KeyCondition{Name: "Weather_Conditions", Value: sm.String("rain")},
		Range:      sm.RangeBetweenValues("logtime", sm.Int(1), sm.Int(9)),
	})
	require.NoError(t, err)

	in := client.queries[0]
	assert.Equal(t, "by-weather", aws.ToString(in.IndexName))
	assert.Contains(t, aws.ToString(in.KeyConditionExpression), "BETWEEN")
	assert.Nil(t, in.ProjectionExpression)
	assert.Nil(t, in.ExclusiveStartKey)
	assert.Nil(t, in.Limit)
	assert.Nil(t, in.ConsistentRead)
	assert.Len(t, in.ExpressionAttributeValues, 3)
}

func TestQueryConvertsOutput(t *testing.T) {
	client := &fakeClient{queryOutputs: []*sdk.QueryOutput{{
		Items: []map[string]types.AttributeValue{item("20181120104743", "1376395")},
		LastEvaluatedKey: map[string]types.AttributeValue{
			"driveid": n("20181120104743"),
			"logtime": n("1376395"),
		},
	}}}
	store := NewDynamodbDataStore(client)

	out, err := store.Query(context.Background(), &sm.QuerySpec{
		Collection: "t",
		Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(20181120104743)},
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)

	row := out.Rows[0]
	assert.Equal(t, []string{"File_Name", "GPS_Lat", "driveid", "logtime"}, row.Names())
	assert.Equal(t, sm.KindString, row["File_Name"].Kind())
	lat, err := row["GPS_Lat"].Float64()
	require.NoError(t, err)
	assert.InDelta(t, 37.386051, lat, 1e-9)

	assert.False(t, out.ResumeToken.Done())
	assert.True(t, out.ResumeToken["logtime"].Equal(sm.Int(1376395)))
}

func TestQueryRejectsUnsupportedAttributes(t *testing.T) {
	bad := item("1", "2")
	bad["Tags"] = &types.AttributeValueMemberSS{Value: []string{"a"}}
	bad["Missing"] = &types.AttributeValueMemberNULL{Value: true}

	client := &fakeClient{queryOutputs: []*sdk.QueryOutput{{Items: []map[string]types.AttributeValue{bad}}}}
	_, err := NewDynamodbDataStore(client).Query(context.Background(), &sm.QuerySpec{
		Collection: "t",
		Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(1)},
	})
	assert.True(t, dlerrors.IsValidationError(err))
}

func TestNullAttributesAreDropped(t *testing.T) {
	row, err := toRow(map[string]types.AttributeValue{
		"driveid": n("1"),
		"Missing": &types.AttributeValueMemberNULL{Value: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"driveid"}, row.Names())
}

func TestQueryPropagatesClientError(t *testing.T) {
	cause := &types.ProvisionedThroughputExceededException{Message: aws.String("slow down")}
	client := &fakeClient{err: cause}

	_, err := NewDynamodbDataStore(client).Query(context.Background(), &sm.QuerySpec{
		Collection: "t",
		Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(1)},
	})
	var pte *types.ProvisionedThroughputExceededException
	assert.True(t, errors.As(err, &pte))
}

func TestScanBuildsInput(t *testing.T) {
	client := &fakeClient{scanOutputs: []*sdk.ScanOutput{{}, {}}}
	store := NewDynamodbDataStore(client)

	_, err := store.Scan(context.Background(), &sm.ScanSpec{Collection: "t"})
	require.NoError(t, err)
	in := client.scans[0]
	assert.Nil(t, in.ProjectionExpression)
	assert.Nil(t, in.ExpressionAttributeNames)

	_, err = store.Scan(context.Background(), &sm.ScanSpec{
		Collection: "t",
		Projection: []string{"driveid", "logtime"},
		PageSize:   10,
	})
	require.NoError(t, err)
	in = client.scans[1]
	assert.NotNil(t, in.ProjectionExpression)
	assert.Len(t, in.ExpressionAttributeNames, 2)
	assert.Equal(t, int32(10), aws.ToInt32(in.Limit))
}

func TestRunnerOverDynamoDB(t *testing.T) {
	client := &fakeClient{queryOutputs: []*sdk.QueryOutput{
		{
			Items:            []map[string]types.AttributeValue{item("7", "1"), item("7", "2")},
			LastEvaluatedKey: map[string]types.AttributeValue{"driveid": n("7"), "logtime": n("2")},
		},
		{
			Items: []map[string]types.AttributeValue{item("7", "3")},
		},
	}}

	rows, err := paging.NewRunner(NewDynamodbDataStore(client)).FetchAll(context.Background(), sm.QuerySpec{
		Collection: "t",
		Partition:  sm.KeyCondition{Name: "driveid", Value: sm.Int(7)},
		Projection: []string{"logtime"},
	})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	require.Len(t, client.queries, 2)
	assert.Nil(t, client.queries[0].ExclusiveStartKey)
	assert.Equal(t, n("2"), client.queries[1].ExclusiveStartKey["logtime"])
	assert.Equal(t, client.queries[0].ProjectionExpression, client.queries[1].ProjectionExpression)
}
