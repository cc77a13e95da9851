package inktex

import (
	"context"

	"github.com/jotspot/inktex/encoding/ink"
	"github.com/jotspot/inktex/log"
	"github.com/pkg/errors"
)

// RecognizeBatch recognizes gestures concurrently, keeping at most
// the configured number in flight. The returned slice is parallel to
// gestures; entries whose recognition failed are nil, with the error
// logged.
func (r *Recognizer) RecognizeBatch(ctx context.Context, gestures []ink.Gesture, opts ...RecognizeOption) ([]*Result, error) {
	results := make([]*Result, len(gestures))

	for i, gesture := range gestures {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			log.Trace.Printf("failed to acquire batch slot: %v", err)
			break
		}
		go func(i int, gesture ink.Gesture) {
			defer r.sem.Release(1)
			res, err := r.Recognize(ctx, gesture, opts...)
			if err != nil {
				log.Trace.Printf("gesture %d failed: %v", i, err)
				return
			}
			results[i] = res
		}(i, gesture)
	}

	// Wait for all goroutines to finish
	if err := r.sem.Acquire(ctx, r.batchSize); err != nil {
		return nil, errors.Wrap(err, "wait for batch")
	}
	r.sem.Release(r.batchSize)

	return results, nil
}
