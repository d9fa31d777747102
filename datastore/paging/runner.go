/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package paging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/suparena/drivelog/datastore"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/logging"
	"github.com/suparena/drivelog/storagemodels"
)

// Runner exhaustively collects every row of a query by following resume tokens.
// Pages are fetched strictly one after another. A Runner holds no per-query state and
// may be shared between goroutines.
type Runner struct {
	store  datastore.KeyValueStore
	logger logrus.FieldLogger
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the logger used for page-level debug output
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner over store.
func NewRunner(store datastore.KeyValueStore, opts ...Option) *Runner {
	r := &Runner{
		store:  store,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errNoPage is the cause reported when a store returns neither a page nor an error.
var errNoPage = fmt.Errorf("store returned no page")

// pageFunc fetches the page starting at token.
type pageFunc func(ctx context.Context, token storagemodels.ResumeToken) (*storagemodels.PageResult, error)

// FetchAll returns every row matching spec in page-arrival order. Paging starts at
// spec.ResumeToken, which is nil for a fresh query. If any page fails the rows gathered
// so far are dropped and a *errors.StoreError is returned.
func (r *Runner) FetchAll(ctx context.Context, spec storagemodels.QuerySpec) ([]storagemodels.Row, error) {
	if err := validateQuery(&spec); err != nil {
		return nil, err
	}
	return r.collect(ctx, "query", spec.Collection, spec.ResumeToken, r.queryPages(spec))
}

// ScanAll returns every row of a collection. The store must implement datastore.Scanner.
func (r *Runner) ScanAll(ctx context.Context, spec storagemodels.ScanSpec) ([]storagemodels.Row, error) {
	fetch, err := r.scanPages(spec)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, "scan", spec.Collection, spec.ResumeToken, fetch)
}

func (r *Runner) queryPages(spec storagemodels.QuerySpec) pageFunc {
	return func(ctx context.Context, token storagemodels.ResumeToken) (*storagemodels.PageResult, error) {
		page := spec.WithResumeToken(token)
		return r.store.Query(ctx, &page)
	}
}

func (r *Runner) scanPages(spec storagemodels.ScanSpec) (pageFunc, error) {
	if spec.Collection == "" {
		return nil, errors.NewValidationError("collection", "must not be empty")
	}
	scanner, ok := r.store.(datastore.Scanner)
	if !ok {
		return nil, errors.NewValidationError("", "store does not support scans")
	}
	return func(ctx context.Context, token storagemodels.ResumeToken) (*storagemodels.PageResult, error) {
		page := spec.WithResumeToken(token)
		return scanner.Scan(ctx, &page)
	}, nil
}

// collect follows tokens from start until a page comes back without one.
func (r *Runner) collect(ctx context.Context, op, collection string, start storagemodels.ResumeToken, fetch pageFunc) ([]storagemodels.Row, error) {
	log := r.logger.WithFields(logrus.Fields{
		"run_id":     uuid.NewString(),
		"op":         op,
		"collection": collection,
	})

	rows := make([]storagemodels.Row, 0)
	token := start

	for pageNumber := 1; ; pageNumber++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewStoreError(op, collection, pageNumber, err)
		}

		out, err := fetch(ctx, token)
		if err != nil {
			log.WithField("page", pageNumber).WithError(err).Debug("page fetch failed")
			return nil, errors.NewStoreError(op, collection, pageNumber, err)
		}
		if out == nil {
			return nil, errors.NewStoreError(op, collection, pageNumber, errNoPage)
		}

		rows = append(rows, out.Rows...)
		log.WithFields(logrus.Fields{
			"page": pageNumber,
			"rows": len(out.Rows),
		}).Debug("page received")

		if out.ResumeToken.Done() {
			log.WithFields(logrus.Fields{
				"pages": pageNumber,
				"rows":  len(rows),
			}).Debug("paging complete")
			return rows, nil
		}
		token = out.ResumeToken
	}
}

func validateQuery(spec *storagemodels.QuerySpec) error {
	if spec.Collection == "" {
		return errors.NewValidationError("collection", "must not be empty")
	}
	if spec.Partition.Name == "" {
		return errors.NewValidationError("partition", "attribute name is required")
	}
	if spec.Partition.Value.IsZero() {
		return errors.NewValidationError("partition", "value is required")
	}
	if spec.Range != nil {
		if spec.Range.Name == "" {
			return errors.NewValidationError("range", "attribute name is required")
		}
		if spec.Range.Operator == storagemodels.RangeBetween && spec.Range.Upper.IsZero() {
			return errors.NewValidationError("range", "BETWEEN needs an upper bound")
		}
	}
	return nil
}
