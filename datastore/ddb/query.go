/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/storagemodels"
)

// keyCondition builds "partition = :v [AND range = :r | range BETWEEN :lo AND :hi]".
func keyCondition(spec *storagemodels.QuerySpec) (expression.KeyConditionBuilder, error) {
	key := expression.KeyEqual(
		expression.Key(spec.Partition.Name),
		expression.Value(expressionValue(spec.Partition.Value)),
	)
	if spec.Range == nil {
		return key, nil
	}

	rangeKey := expression.Key(spec.Range.Name)
	switch spec.Range.Operator {
	case storagemodels.RangeEqual, "":
		return key.And(expression.KeyEqual(rangeKey, expression.Value(expressionValue(spec.Range.Value)))), nil
	case storagemodels.RangeBetween:
		return key.And(expression.KeyBetween(
			rangeKey,
			expression.Value(expressionValue(spec.Range.Value)),
			expression.Value(expressionValue(spec.Range.Upper)),
		)), nil
	default:
		return key, errors.NewValidationError("range", fmt.Sprintf("unsupported operator %q", spec.Range.Operator))
	}
}

func projection(names []string) (expression.ProjectionBuilder, bool) {
	if len(names) == 0 {
		return expression.ProjectionBuilder{}, false
	}
	proj := expression.NamesList(expression.Name(names[0]))
	for _, name := range names[1:] {
		proj = proj.AddNames(expression.Name(name))
	}
	return proj, true
}

func (d *DynamodbDataStore) buildQueryInput(spec *storagemodels.QuerySpec) (*sdk.QueryInput, error) {
	key, err := keyCondition(spec)
	if err != nil {
		return nil, err
	}

	b := expression.NewBuilder().WithKeyCondition(key)
	if proj, ok := projection(spec.Projection); ok {
		b = b.WithProjection(proj)
	}

	expr, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &sdk.QueryInput{
		TableName:                 aws.String(spec.Collection),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         fromToken(spec.ResumeToken),
	}
	if d.consistentRead {
		input.ConsistentRead = aws.Bool(true)
	}
	if spec.IndexName != "" {
		input.IndexName = aws.String(spec.IndexName)
	}
	if spec.PageSize > 0 {
		input.Limit = aws.Int32(spec.PageSize)
	}
	return input, nil
}

func (d *DynamodbDataStore) buildScanInput(spec *storagemodels.ScanSpec) (*sdk.ScanInput, error) {
	input := &sdk.ScanInput{
		TableName:         aws.String(spec.Collection),
		ExclusiveStartKey: fromToken(spec.ResumeToken),
	}

	if proj, ok := projection(spec.Projection); ok {
		expr, err := expression.NewBuilder().WithProjection(proj).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build scan projection: %w", err)
		}
		input.ProjectionExpression = expr.Projection()
		input.ExpressionAttributeNames = expr.Names()
	}
	if d.consistentRead {
		input.ConsistentRead = aws.Bool(true)
	}
	if spec.PageSize > 0 {
		input.Limit = aws.Int32(spec.PageSize)
	}
	return input, nil
}
