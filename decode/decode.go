// Package decode drives the autoregressive decoding loop against the model
// executor, producing candidate token sequences by greedy or beam search.
//
// All scoring happens in log space: raw logits go through a numerically
// stable log-softmax, vocabulary masking forces disallowed tokens to -Inf
// afterwards, and hypotheses are ranked by length-normalized cumulative
// log-probability.
package decode

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jotspot/inktex/executor"
	"github.com/jotspot/inktex/vocab"
)

const (
	// RepeatLimit is the degenerate-loop guard: a hypothesis whose trailing
	// token would repeat this many times in a row is frozen instead of
	// extended.
	RepeatLimit = 3

	// DefaultMaxSteps bounds generated tokens when the caller does not say
	// otherwise.
	DefaultMaxSteps = 200
)

// Candidate is one decoded hypothesis: token ids without the sos prefix,
// and the cumulative log-probability of the full sequence.
type Candidate struct {
	IDs     []int
	LogProb float64
}

// Options control a single decode call.
type Options struct {
	// BeamWidth selects beam search when greater than one.
	BeamWidth int

	// MaxSteps bounds the number of generated tokens per hypothesis. Zero
	// means DefaultMaxSteps.
	MaxSteps int

	// Allowed restricts selectable token ids when non-nil: ids with a
	// false (or missing) entry are masked to -Inf after the log-softmax.
	Allowed []bool

	// OnStep, when set, runs after every decode round so a host can keep
	// its event loop responsive. It has no effect on ranking or
	// termination.
	OnStep func(step int)
}

// Engine runs decoding for one session and vocabulary pair. It holds no
// per-request state; one Engine serves concurrent requests if the
// underlying session does.
type Engine struct {
	Session executor.Session
	Vocab   *vocab.Vocab
}

// Decode generates candidates for an encoded input. Beam width <= 1
// decodes greedily and returns a single candidate; larger widths return up
// to BeamWidth candidates, best first.
func (e *Engine) Decode(ctx context.Context, features, encMask executor.Tensor, opts Options) ([]Candidate, error) {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.BeamWidth <= 1 {
		cand, err := e.greedy(ctx, features, encMask, opts)
		if err != nil {
			return nil, err
		}
		return []Candidate{cand}, nil
	}
	return e.beam(ctx, features, encMask, opts)
}

// greedy follows the argmax token until eos, a degenerate repeat, or the
// step bound.
func (e *Engine) greedy(ctx context.Context, features, encMask executor.Tensor, opts Options) (Candidate, error) {
	ids := []int{e.Vocab.Sos()}
	var logProb float64

	for step := 0; step < opts.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return Candidate{}, err
		}

		lp, err := e.step(ctx, features, encMask, ids, opts.Allowed)
		if err != nil {
			return Candidate{}, err
		}

		tok, tokLP := argmax(lp)
		if tok < 0 {
			// every token masked out
			break
		}
		logProb += tokLP

		if tok == e.Vocab.Eos() || runReachesLimit(ids, tok) {
			break
		}
		ids = append(ids, tok)

		if opts.OnStep != nil {
			opts.OnStep(step + 1)
		}
	}

	return Candidate{IDs: stripSos(ids, e.Vocab.Sos()), LogProb: logProb}, nil
}

// step runs one decoder invocation and returns masked log-probabilities for
// the next position.
func (e *Engine) step(ctx context.Context, features, encMask executor.Tensor, ids []int, allowed []bool) ([]float64, error) {
	wire := make([]int64, len(ids))
	for i, id := range ids {
		wire[i] = int64(id)
	}

	logits, err := e.Session.DecodeStep(ctx, features, encMask, wire)
	if err != nil {
		return nil, errors.Wrap(err, "decode step")
	}

	row, err := lastLogits(logits)
	if err != nil {
		return nil, err
	}

	lp := logSoftmax(row)
	applyMask(lp, allowed)
	return lp, nil
}

// runReachesLimit reports whether appending tok would extend the trailing
// run of identical tokens to RepeatLimit.
func runReachesLimit(ids []int, tok int) bool {
	run := 1
	for i := len(ids) - 1; i >= 0 && ids[i] == tok; i-- {
		run++
	}
	return run >= RepeatLimit
}

// stripSos drops the sos prefix and returns a copy.
func stripSos(ids []int, sos int) []int {
	if len(ids) > 0 && ids[0] == sos {
		ids = ids[1:]
	}
	return append([]int(nil), ids...)
}
