/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// RangeOperator selects how a RangeCondition matches the range key.
type RangeOperator string

const (
	RangeEqual   RangeOperator = "="
	RangeBetween RangeOperator = "BETWEEN"
)

// KeyCondition is an equality condition on a key attribute.
type KeyCondition struct {
	Name  string
	Value Value
}

// RangeCondition restricts the range key within a partition.
// Upper is only used by RangeBetween; both bounds are inclusive.
type RangeCondition struct {
	Name     string
	Operator RangeOperator
	Value    Value
	Upper    Value
}

// Matches reports whether v satisfies the condition.
func (c RangeCondition) Matches(v Value) bool {
	switch c.Operator {
	case RangeBetween:
		return v.Compare(c.Value) >= 0 && v.Compare(c.Upper) <= 0
	default:
		return v.Equal(c.Value)
	}
}

// RangeEquals builds an equality range condition.
func RangeEquals(name string, v Value) *RangeCondition {
	return &RangeCondition{Name: name, Operator: RangeEqual, Value: v}
}

// RangeBetweenValues builds an inclusive BETWEEN range condition.
func RangeBetweenValues(name string, lower, upper Value) *RangeCondition {
	return &RangeCondition{Name: name, Operator: RangeBetween, Value: lower, Upper: upper}
}

// ResumeToken marks where the next page starts. It is opaque to callers and only valid
// for the spec that produced it. A nil or empty token means there are no more pages.
type ResumeToken map[string]Value

// Done reports whether the token signals the end of paging.
func (t ResumeToken) Done() bool {
	return len(t) == 0
}

// QuerySpec describes a partition-key query against a named collection.
type QuerySpec struct {
	// Collection is the table name.
	Collection string
	// Partition is the mandatory partition-key equality condition.
	Partition KeyCondition
	// Range optionally restricts the range key.
	Range *RangeCondition
	// Projection lists the attributes to return; empty returns all of them.
	Projection []string
	// IndexName optionally targets a secondary index.
	IndexName string
	// PageSize caps rows per page; 0 leaves it to the store.
	PageSize int32
	// ResumeToken is nil for the first page.
	ResumeToken ResumeToken
}

// WithResumeToken returns a copy of the spec that resumes at token.
func (q QuerySpec) WithResumeToken(token ResumeToken) QuerySpec {
	q.ResumeToken = token
	return q
}

// ScanSpec describes a full-collection scan.
type ScanSpec struct {
	Collection  string
	Projection  []string
	PageSize    int32
	ResumeToken ResumeToken
}

// WithResumeToken returns a copy of the spec that resumes at token.
func (s ScanSpec) WithResumeToken(token ResumeToken) ScanSpec {
	s.ResumeToken = token
	return s
}

// PageResult is one page returned by a store.
type PageResult struct {
	Rows        []Row
	ResumeToken ResumeToken
}
