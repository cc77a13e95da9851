package inktex

// Mode selects the vocabulary available to the decoder.
type Mode string

const (
	// ModeAuto recognizes arbitrary math expressions.
	ModeAuto Mode = "auto"
	// ModeNumber restricts decoding to numbers and basic arithmetic.
	ModeNumber Mode = "number"
)

// Result is the outcome of recognizing a single gesture. A gesture
// rejected by the significance gate yields a zero Result.
type Result struct {
	LaTeX    string `json:"latex"`
	TokenIDs []int  `json:"token_ids,omitempty"`
	EncodeMs int64  `json:"encode_ms"`
	DecodeMs int64  `json:"decode_ms"`
	TotalMs  int64  `json:"total_ms"`
}

type recognizeOptions struct {
	mode      Mode
	beamWidth int
	maxSteps  int
	onStep    func(step int)
}

// RecognizeOption overrides configured defaults for one call.
type RecognizeOption func(*recognizeOptions)

func WithMode(m Mode) RecognizeOption {
	return func(o *recognizeOptions) {
		o.mode = m
	}
}

func WithBeamWidth(width int) RecognizeOption {
	return func(o *recognizeOptions) {
		o.beamWidth = width
	}
}

func WithMaxSteps(steps int) RecognizeOption {
	return func(o *recognizeOptions) {
		o.maxSteps = steps
	}
}

// WithStepHook registers a callback invoked after every decode step,
// for progress reporting on long expressions.
func WithStepHook(fn func(step int)) RecognizeOption {
	return func(o *recognizeOptions) {
		o.onStep = fn
	}
}
