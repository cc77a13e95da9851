// Package inktex turns handwritten math strokes into LaTeX.
//
// A Recognizer owns an inference session and a vocabulary. The usual
// entry point is New, which downloads the model and vocabulary, opens
// a session on the first backend that works, and is then safe for
// concurrent Recognize calls. Hosts that manage their own session use
// NewWithSession instead.
package inktex

import (
	"context"

	"github.com/jotspot/inktex/assets"
	"github.com/jotspot/inktex/config"
	"github.com/jotspot/inktex/executor"
	"github.com/jotspot/inktex/latex"
	"github.com/jotspot/inktex/vocab"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

type Recognizer struct {
	cfg       *config.Config
	sess      executor.Session
	vocab     *vocab.Vocab
	validator latex.Validator
	sem       *semaphore.Weighted
	batchSize int64
}

// Option customizes a Recognizer at construction time.
type Option func(*Recognizer)

// WithValidator replaces the MathML validator used to pick between
// decode candidates.
func WithValidator(v latex.Validator) Option {
	return func(r *Recognizer) {
		r.validator = v
	}
}

// New builds a ready-to-use recognizer: it fetches the model and
// vocabulary named in cfg, then opens a session on the first backend
// of cfg.Executor.Backends that the factory accepts. A nil cfg means
// config.Default().
func New(ctx context.Context, factory executor.Factory, cfg *config.Config, opts ...Option) (*Recognizer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if cfg.Assets.ModelURL == "" {
		return nil, errors.New("model url is required")
	}
	if cfg.Assets.VocabURL == "" {
		return nil, errors.New("vocab url is required")
	}

	source := assets.NewSource(
		assets.WithCacheDir(cfg.Assets.CacheDir),
		assets.WithToken(cfg.Assets.Token),
	)

	model, err := source.Fetch(ctx, cfg.Assets.ModelURL)
	if err != nil {
		return nil, errors.Wrap(err, "fetch model")
	}
	vocabData, err := source.Fetch(ctx, cfg.Assets.VocabURL)
	if err != nil {
		return nil, errors.Wrap(err, "fetch vocabulary")
	}

	v, err := vocab.FromJSON(vocabData)
	if err != nil {
		return nil, err
	}

	chain := make([]executor.Options, 0, len(cfg.Executor.Backends))
	for _, backend := range cfg.Executor.Backends {
		chain = append(chain, executor.Options{Backend: backend, Threads: cfg.Executor.Threads})
	}
	sess, err := executor.NewSessionWithFallback(ctx, factory, model, chain)
	if err != nil {
		return nil, err
	}

	return newRecognizer(sess, v, cfg, opts), nil
}

// NewWithSession wires a recognizer around an already open session and
// parsed vocabulary. No assets are fetched. A nil cfg means
// config.Default().
func NewWithSession(sess executor.Session, v *vocab.Vocab, cfg *config.Config, opts ...Option) (*Recognizer, error) {
	if sess == nil {
		return nil, errors.New("nil session")
	}
	if v == nil {
		return nil, errors.New("nil vocabulary")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return newRecognizer(sess, v, cfg, opts), nil
}

func newRecognizer(sess executor.Session, v *vocab.Vocab, cfg *config.Config, opts []Option) *Recognizer {
	r := &Recognizer{
		cfg:       cfg,
		sess:      sess,
		vocab:     v,
		validator: latex.NewMathMLValidator(),
		sem:       semaphore.NewWeighted(cfg.Batch.MaxConcurrent),
		batchSize: cfg.Batch.MaxConcurrent,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Close releases the underlying session. The recognizer cannot be
// used afterwards.
func (r *Recognizer) Close() error {
	return r.sess.Release()
}

// Vocabulary exposes the loaded vocabulary.
func (r *Recognizer) Vocabulary() *vocab.Vocab {
	return r.vocab
}
