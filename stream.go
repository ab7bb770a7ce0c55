/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablestore

import (
	"context"
	"fmt"
	"time"

	"github.com/suparena/tablestore/storagemodels"
)

// ExecuteQuery runs a caller-supplied structured query and streams results
// over a channel, paginating through the store internally. The channel is
// closed when the query is exhausted, an error is emitted, or ctx is done.
// Every operation is a synchronous round trip to the store; there is no
// client-side retry.
func (t *Table[T]) ExecuteQuery(ctx context.Context, spec *storagemodels.QuerySpec, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go t.streamWorker(ctx, spec, options, resultCh)
	return resultCh
}

// streamWorker drains the query page by page into resultCh.
func (t *Table[T]) streamWorker(
	ctx context.Context,
	spec *storagemodels.QuerySpec,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	pageNumber := 0
	startTime := time.Now()

	reportProgress := func(lastKey storagemodels.Item) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	var query storagemodels.QuerySpec
	if spec != nil {
		query = *spec
	}
	if query.Limit == nil {
		query.Limit = &options.PageSize
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		page, err := t.handle.Query(ctx, &query)
		if err != nil {
			result := storagemodels.StreamResult[T]{
				Error: fmt.Errorf("query failed: %w", err),
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			select {
			case <-ctx.Done():
			case resultCh <- result:
			}
			return
		}

		pageNumber++
		for _, raw := range page.Items {
			result := t.processItem(raw, itemIndex, pageNumber)
			itemIndex++

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		reportProgress(page.LastKey)

		if len(page.LastKey) == 0 {
			break
		}
		query.ExclusiveStartKey = page.LastKey
	}

	// Final progress report
	reportProgress(nil)
}

// processItem converts a raw item to a typed stream result.
func (t *Table[T]) processItem(raw storagemodels.Item, index int64, pageNumber int) storagemodels.StreamResult[T] {
	meta := storagemodels.StreamMeta{
		Index:      index,
		PageNumber: pageNumber,
		Timestamp:  time.Now(),
	}

	entity, err := t.unmarshalItem(raw)
	if err != nil {
		return storagemodels.StreamResult[T]{Error: err, Raw: raw, Meta: meta}
	}
	return storagemodels.StreamResult[T]{Item: entity, Raw: raw, Meta: meta}
}
