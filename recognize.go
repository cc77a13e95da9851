package inktex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jotspot/inktex/decode"
	"github.com/jotspot/inktex/encoding/ink"
	"github.com/jotspot/inktex/executor"
	"github.com/jotspot/inktex/latex"
	"github.com/jotspot/inktex/log"
	"github.com/jotspot/inktex/preprocess"
	"github.com/jotspot/inktex/vocab"
	"github.com/pkg/errors"
)

// Recognize runs the full pipeline on one gesture: significance gate,
// preprocessing, encoding, decoding and candidate selection. Gestures
// the gate rejects return a zero Result and no error.
func (r *Recognizer) Recognize(ctx context.Context, strokes []ink.Stroke, opts ...RecognizeOption) (*Result, error) {
	options := recognizeOptions{
		mode:      ModeAuto,
		beamWidth: r.cfg.Decode.BeamWidth,
		maxSteps:  r.cfg.Decode.MaxSteps,
	}
	for _, o := range opts {
		o(&options)
	}

	total := time.Now()
	id := uuid.New().String()[:8]

	if !preprocess.IsMeaningful(strokes) {
		log.Trace.Printf("[%s] gesture rejected as not meaningful", id)
		return &Result{}, nil
	}

	input, err := preprocess.FromStrokes(strokes)
	if err != nil {
		return nil, err
	}
	log.Trace.Printf("[%s] input tensor %dx%d", id, input.Height, input.Width)

	encStart := time.Now()
	features, encMask, err := r.sess.Encode(ctx, pixelsTensor(input), maskTensor(input))
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}
	encodeMs := time.Since(encStart).Milliseconds()

	var allowed []bool
	if options.mode == ModeNumber {
		allowed = r.vocab.NumberMask()
	}

	engine := &decode.Engine{Session: r.sess, Vocab: r.vocab}
	decStart := time.Now()
	candidates, err := engine.Decode(ctx, features, encMask, decode.Options{
		BeamWidth: options.beamWidth,
		MaxSteps:  options.maxSteps,
		Allowed:   allowed,
		OnStep:    options.onStep,
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	decodeMs := time.Since(decStart).Milliseconds()

	res := &Result{
		EncodeMs: encodeMs,
		DecodeMs: decodeMs,
	}
	if len(candidates) > 0 {
		res.TokenIDs = candidates[0].IDs
	}
	res.LaTeX = r.selectCandidate(candidates, options.mode)
	res.TotalMs = time.Since(total).Milliseconds()

	log.Trace.Printf("[%s] recognized %q in %dms", id, res.LaTeX, res.TotalMs)
	return res, nil
}

// Preprocess runs the stroke pipeline up to the model input tensor
// without touching the executor.
func (r *Recognizer) Preprocess(strokes []ink.Stroke) (*preprocess.Result, error) {
	return preprocess.FromStrokes(strokes)
}

// IsMeaningful reports whether a gesture carries enough ink to be
// worth recognizing. Recognize applies the same gate internally.
func (r *Recognizer) IsMeaningful(strokes []ink.Stroke) bool {
	return preprocess.IsMeaningful(strokes)
}

// selectCandidate repairs each hypothesis in score order and returns
// the first one that validates as math. The top candidate is kept as
// a fallback for when every hypothesis fails the structural checks,
// but it still has to validate on its own.
func (r *Recognizer) selectCandidate(candidates []decode.Candidate, mode Mode) string {
	fallback := ""
	for i, cand := range candidates {
		symbols := latex.Repair(r.vocab.IDsToSymbols(cand.IDs))
		expr := vocab.SymbolsToString(symbols)
		if i == 0 {
			fallback = expr
		}
		if expr == "" {
			continue
		}
		if mode == ModeAuto && !latex.IsCompleteExpression(symbols) {
			continue
		}
		if r.validator.IsValidMath(expr) {
			return expr
		}
	}

	if fallback != "" && r.validator.IsValidMath(fallback) {
		return fallback
	}
	return ""
}

func pixelsTensor(in *preprocess.Result) executor.Tensor {
	return executor.Tensor{
		Shape: []int64{1, 1, int64(in.Height), int64(in.Width)},
		Data:  in.Tensor,
	}
}

func maskTensor(in *preprocess.Result) executor.Tensor {
	data := make([]float32, len(in.Mask))
	for i, m := range in.Mask {
		data[i] = float32(m)
	}
	return executor.Tensor{
		Shape: []int64{1, int64(in.MaskHeight), int64(in.MaskWidth)},
		Data:  data,
	}
}
