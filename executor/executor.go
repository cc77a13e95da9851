// Package executor defines the capability interface to the tensor runtime
// that executes the recognition model. The decoding engine depends only on
// this interface, so native, WASM or remote backends can be swapped without
// touching decode logic.
package executor

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jotspot/inktex/log"
)

// Tensor is a dense row-major float32 tensor with an explicit shape.
// Feature tensors are opaque to callers: Encode produces them and
// DecodeStep consumes them unchanged.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// Elems returns the element count implied by the shape.
func (t Tensor) Elems() int {
	n := 1
	for _, d := range t.Shape {
		n *= int(d)
	}
	return n
}

// Session is one loaded model instance.
//
// Encode runs the encoder once per request over the preprocessed pixels and
// validity mask. DecodeStep runs one decoder step over the current token
// ids and returns logits covering every position; callers read the last
// one. Both block until done or ctx is cancelled. Release frees the model;
// no calls may follow it.
type Session interface {
	Encode(ctx context.Context, pixels, mask Tensor) (features, encMask Tensor, err error)
	DecodeStep(ctx context.Context, features, encMask Tensor, ids []int64) (Tensor, error)
	Release() error
}

// Options selects the execution backend for session creation.
type Options struct {
	// Backend names the execution provider, e.g. "cuda" or "cpu". Empty
	// means the implementation default.
	Backend string
	// Threads caps intra-op parallelism. Zero means the implementation
	// default.
	Threads int
}

// Factory creates sessions from raw model bytes.
type Factory interface {
	NewSession(ctx context.Context, model []byte, opts Options) (Session, error)
}

// NewSessionWithFallback tries the option sets in order and returns the
// first session that comes up. At most one downgrade is attempted: longer
// chains are truncated to two entries. The first error is reported when
// everything fails.
func NewSessionWithFallback(ctx context.Context, f Factory, model []byte, chain []Options) (Session, error) {
	if len(chain) == 0 {
		chain = []Options{{}}
	}
	if len(chain) > 2 {
		chain = chain[:2]
	}

	var firstErr error
	for i, opts := range chain {
		sess, err := f.NewSession(ctx, model, opts)
		if err == nil {
			if i > 0 {
				log.Warning.Printf("backend %q unavailable, running on %q", chain[0].Backend, opts.Backend)
			}
			return sess, nil
		}
		log.Trace.Printf("create session on %q: %v", opts.Backend, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, errors.Wrap(firstErr, "create session")
}
