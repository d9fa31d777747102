/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore interfaces for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/storagemodels"
)

// KeySchema names the key attributes of a collection. Range may be empty.
type KeySchema struct {
	Partition string
	Range     string
}

type collection struct {
	schema KeySchema
	rows   []storagemodels.Row
}

// Store is an in-memory KeyValueStore and Scanner. Rows are kept ordered by partition
// then range key, and resume tokens carry the key of the last row on a page, the way
// DynamoDB's LastEvaluatedKey does.
type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
	pageSize    int
	queryFunc   func(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.PageResult, error)
	scanFunc    func(ctx context.Context, spec *storagemodels.ScanSpec) (*storagemodels.PageResult, error)
	failures    map[int]error
	calls       int
	querySpecs  []storagemodels.QuerySpec
	scanSpecs   []storagemodels.ScanSpec
}

// New creates a new empty mock Store
func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
		failures:    make(map[int]error),
	}
}

// WithPageSize sets the page size used when a spec does not set one. 0 returns
// everything in a single page.
func (m *Store) WithPageSize(n int) *Store {
	m.pageSize = n
	return m
}

// WithQueryFunc replaces the built-in query evaluation. f runs with the store locked.
func (m *Store) WithQueryFunc(f func(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.PageResult, error)) *Store {
	m.queryFunc = f
	return m
}

// WithScanFunc replaces the built-in scan evaluation. f runs with the store locked.
func (m *Store) WithScanFunc(f func(ctx context.Context, spec *storagemodels.ScanSpec) (*storagemodels.PageResult, error)) *Store {
	m.scanFunc = f
	return m
}

// FailOnCall makes the n-th call (1-based, queries and scans counted together) return err
func (m *Store) FailOnCall(n int, err error) *Store {
	m.failures[n] = err
	return m
}

// CreateCollection registers a collection with its key schema
func (m *Store) CreateCollection(name string, schema KeySchema) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[name] = &collection{schema: schema}
	return m
}

// Put inserts or replaces rows by key
func (m *Store) Put(name string, rows ...storagemodels.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		return errors.NewNotFoundError("collection", name)
	}

	for _, row := range rows {
		if _, ok := row[c.schema.Partition]; !ok {
			return errors.NewValidationError(c.schema.Partition, "partition attribute missing from row")
		}
		if c.schema.Range != "" {
			if _, ok := row[c.schema.Range]; !ok {
				return errors.NewValidationError(c.schema.Range, "range attribute missing from row")
			}
		}

		stored := row.Project(nil)
		replaced := false
		for i, existing := range c.rows {
			if c.compareKey(existing, c.keyOf(stored)) == 0 {
				c.rows[i] = stored
				replaced = true
				break
			}
		}
		if !replaced {
			c.rows = append(c.rows, stored)
		}
	}

	sort.SliceStable(c.rows, func(i, j int) bool {
		return c.compareKey(c.rows[i], c.keyOf(c.rows[j])) < 0
	})
	return nil
}

// Query evaluates one page of spec against the stored rows
func (m *Store) Query(ctx context.Context, spec *storagemodels.QuerySpec) (*storagemodels.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.querySpecs = append(m.querySpecs, cloneQuerySpec(*spec))
	if err, ok := m.failures[m.calls]; ok {
		return nil, err
	}
	if m.queryFunc != nil {
		return m.queryFunc(ctx, spec)
	}

	c, ok := m.collections[spec.Collection]
	if !ok {
		return nil, errors.NewNotFoundError("collection", spec.Collection)
	}
	if spec.IndexName != "" {
		return nil, fmt.Errorf("mock: secondary index %q is not supported", spec.IndexName)
	}
	if spec.Partition.Name != c.schema.Partition {
		return nil, errors.NewValidationError("partition", fmt.Sprintf("%q is not the partition key of %q", spec.Partition.Name, spec.Collection))
	}
	if spec.Range != nil && spec.Range.Name != c.schema.Range {
		return nil, errors.NewValidationError("range", fmt.Sprintf("%q is not the range key of %q", spec.Range.Name, spec.Collection))
	}

	var matching []storagemodels.Row
	for _, row := range c.rows {
		if !row[c.schema.Partition].Equal(spec.Partition.Value) {
			continue
		}
		if spec.Range != nil && !spec.Range.Matches(row[c.schema.Range]) {
			continue
		}
		matching = append(matching, row)
	}

	return m.page(c, matching, spec.ResumeToken, spec.PageSize, spec.Projection), nil
}

// Scan evaluates one page of a full-collection scan
func (m *Store) Scan(ctx context.Context, spec *storagemodels.ScanSpec) (*storagemodels.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.scanSpecs = append(m.scanSpecs, *spec)
	if err, ok := m.failures[m.calls]; ok {
		return nil, err
	}
	if m.scanFunc != nil {
		return m.scanFunc(ctx, spec)
	}

	c, ok := m.collections[spec.Collection]
	if !ok {
		return nil, errors.NewNotFoundError("collection", spec.Collection)
	}
	return m.page(c, c.rows, spec.ResumeToken, spec.PageSize, spec.Projection), nil
}

func (m *Store) page(c *collection, rows []storagemodels.Row, token storagemodels.ResumeToken, specSize int32, projection []string) *storagemodels.PageResult {
	start := 0
	if !token.Done() {
		start = len(rows)
		for i, row := range rows {
			if c.compareKey(row, token) > 0 {
				start = i
				break
			}
		}
	}

	size := m.pageSize
	if specSize > 0 {
		size = int(specSize)
	}
	end := len(rows)
	if size > 0 && start+size < end {
		end = start + size
	}

	out := &storagemodels.PageResult{Rows: make([]storagemodels.Row, 0, end-start)}
	for _, row := range rows[start:end] {
		out.Rows = append(out.Rows, row.Project(projection))
	}
	if end < len(rows) {
		out.ResumeToken = c.keyOf(rows[end-1])
	}
	return out
}

func (c *collection) keyOf(row storagemodels.Row) storagemodels.ResumeToken {
	key := storagemodels.ResumeToken{c.schema.Partition: row[c.schema.Partition]}
	if c.schema.Range != "" {
		key[c.schema.Range] = row[c.schema.Range]
	}
	return key
}

func (c *collection) compareKey(row storagemodels.Row, key storagemodels.ResumeToken) int {
	if cmp := row[c.schema.Partition].Compare(key[c.schema.Partition]); cmp != 0 {
		return cmp
	}
	if c.schema.Range == "" {
		return 0
	}
	return row[c.schema.Range].Compare(key[c.schema.Range])
}

func cloneQuerySpec(spec storagemodels.QuerySpec) storagemodels.QuerySpec {
	if spec.Projection != nil {
		spec.Projection = append([]string(nil), spec.Projection...)
	}
	if spec.ResumeToken != nil {
		token := make(storagemodels.ResumeToken, len(spec.ResumeToken))
		for k, v := range spec.ResumeToken {
			token[k] = v
		}
		spec.ResumeToken = token
	}
	return spec
}

// Helper methods for testing

// Calls returns the number of Query and Scan calls made so far
func (m *Store) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// QuerySpecs returns copies of the specs passed to Query, in call order
func (m *Store) QuerySpecs() []storagemodels.QuerySpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storagemodels.QuerySpec(nil), m.querySpecs...)
}

// ScanSpecs returns the specs passed to Scan, in call order
func (m *Store) ScanSpecs() []storagemodels.ScanSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storagemodels.ScanSpec(nil), m.scanSpecs...)
}

// Count returns the number of rows stored in a collection
func (m *Store) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.collections[name]; ok {
		return len(c.rows)
	}
	return 0
}

// Reset clears call counters, recorded specs and injected failures
func (m *Store) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
	m.querySpecs = nil
	m.scanSpecs = nil
	m.failures = make(map[int]error)
}
