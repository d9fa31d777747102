/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/storagemodels"
)

// toValue converts a scalar attribute. ok is false for NULL, which is dropped from rows.
func toValue(name string, av types.AttributeValue) (v storagemodels.Value, ok bool, err error) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return storagemodels.String(tv.Value), true, nil
	case *types.AttributeValueMemberN:
		return storagemodels.Number(tv.Value), true, nil
	case *types.AttributeValueMemberNULL:
		return storagemodels.Value{}, false, nil
	default:
		return storagemodels.Value{}, false, errors.NewValidationError(name, fmt.Sprintf("unsupported attribute type %T", av))
	}
}

// fromValue converts a Value back into an attribute for use in keys.
func fromValue(v storagemodels.Value) types.AttributeValue {
	if v.Kind() == storagemodels.KindNumber {
		return &types.AttributeValueMemberN{Value: v.Text()}
	}
	return &types.AttributeValueMemberS{Value: v.Text()}
}

// expressionValue is the operand handed to the expression builder. attributevalue.Number
// keeps numbers typed as N without going through float64.
func expressionValue(v storagemodels.Value) interface{} {
	if v.Kind() == storagemodels.KindNumber {
		return attributevalue.Number(v.Text())
	}
	return v.Text()
}

func toRow(item map[string]types.AttributeValue) (storagemodels.Row, error) {
	row := make(storagemodels.Row, len(item))
	for name, av := range item {
		v, ok, err := toValue(name, av)
		if err != nil {
			return nil, err
		}
		if ok {
			row[name] = v
		}
	}
	return row, nil
}

func toToken(key map[string]types.AttributeValue) (storagemodels.ResumeToken, error) {
	if len(key) == 0 {
		return nil, nil
	}
	token := make(storagemodels.ResumeToken, len(key))
	for name, av := range key {
		v, ok, err := toValue(name, av)
		if err != nil {
			return nil, fmt.Errorf("failed to convert LastEvaluatedKey: %w", err)
		}
		if ok {
			token[name] = v
		}
	}
	return token, nil
}

func fromToken(token storagemodels.ResumeToken) map[string]types.AttributeValue {
	if token.Done() {
		return nil
	}
	key := make(map[string]types.AttributeValue, len(token))
	for name, v := range token {
		key[name] = fromValue(v)
	}
	return key
}

func toPageResult(items []map[string]types.AttributeValue, lastKey map[string]types.AttributeValue) (*storagemodels.PageResult, error) {
	out := &storagemodels.PageResult{Rows: make([]storagemodels.Row, 0, len(items))}
	for _, item := range items {
		row, err := toRow(item)
		if err != nil {
			return nil, fmt.Errorf("failed to convert item: %w", err)
		}
		out.Rows = append(out.Rows, row)
	}

	token, err := toToken(lastKey)
	if err != nil {
		return nil, err
	}
	out.ResumeToken = token
	return out, nil
}
