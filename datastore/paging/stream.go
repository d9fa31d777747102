/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package paging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/suparena/drivelog/errors"
	"github.com/suparena/drivelog/storagemodels"
)

// Stream pages through spec like FetchAll but delivers rows as they arrive. The channel
// is closed when paging completes, fails or ctx is cancelled. A failure or cancellation
// is sent as a final StreamResult with Error set, unless the consumer has stopped reading.
func (r *Runner) Stream(ctx context.Context, spec storagemodels.QuerySpec, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}

	resultCh := make(chan storagemodels.StreamResult, options.BufferSize)
	runID := uuid.NewString()

	if err := validateQuery(&spec); err != nil {
		go func() {
			defer close(resultCh)
			select {
			case <-ctx.Done():
			case resultCh <- storagemodels.StreamResult{Error: err, Meta: storagemodels.StreamMeta{RunID: runID, Timestamp: time.Now()}}:
			}
		}()
		return resultCh
	}

	go r.streamWorker(ctx, runID, spec, options, resultCh)
	return resultCh
}

// streamWorker is the single producer for one Stream call
func (r *Runner) streamWorker(
	ctx context.Context,
	runID string,
	spec storagemodels.QuerySpec,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult,
) {
	defer close(resultCh)

	log := r.logger.WithFields(logrus.Fields{
		"run_id":     runID,
		"op":         "stream",
		"collection": spec.Collection,
	})

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()
	fetch := r.queryPages(spec)
	token := spec.ResumeToken

	reportProgress := func(lastToken storagemodels.ResumeToken) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			RunID:          runID,
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastToken:      lastToken,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	// send delivers a terminal result; once ctx is done it only sends if there is room.
	send := func(result storagemodels.StreamResult) {
		select {
		case resultCh <- result:
			return
		default:
		}
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
		case resultCh <- result:
		}
	}

	fail := func(page int, err error) {
		log.WithField("page", page).WithError(err).Debug("stream stopped")
		send(storagemodels.StreamResult{
			Error: errors.NewStoreError("query", spec.Collection, page, err),
			Meta: storagemodels.StreamMeta{
				RunID:      runID,
				Index:      itemIndex,
				PageNumber: page,
				Timestamp:  time.Now(),
			},
		})
	}

	for {
		if err := ctx.Err(); err != nil {
			fail(pageNumber+1, err)
			return
		}

		out, err := fetch(ctx, token)
		if err != nil {
			fail(pageNumber+1, err)
			return
		}
		if out == nil {
			fail(pageNumber+1, errNoPage)
			return
		}
		pageNumber++

		for _, row := range out.Rows {
			result := storagemodels.StreamResult{
				Row: row,
				Meta: storagemodels.StreamMeta{
					RunID:      runID,
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			select {
			case <-ctx.Done():
				fail(pageNumber, ctx.Err())
				return
			case resultCh <- result:
			}
			itemIndex++
		}

		log.WithFields(logrus.Fields{
			"page": pageNumber,
			"rows": len(out.Rows),
		}).Debug("page streamed")
		reportProgress(out.ResumeToken)

		if out.ResumeToken.Done() {
			return
		}
		token = out.ResumeToken
	}
}
