package decode

import (
	"context"
	"sort"

	"github.com/jotspot/inktex/executor"
)

// beamState is one search hypothesis. ids keeps the sos prefix until output
// time. A finished beam is frozen: its ids never grow again, but it keeps
// competing for a slot in every pruning round.
type beamState struct {
	logProb  float64
	ids      []int
	finished bool
}

// normScore is the length-normalized ranking score.
func (b beamState) normScore() float64 {
	n := len(b.ids)
	if n < 1 {
		n = 1
	}
	return b.logProb / float64(n)
}

// beam runs beam search. Each round extends every open beam with its top
// 2*width tokens, carries finished beams unchanged, and keeps the width
// best hypotheses by normalized score. Eos and the repeat guard freeze a
// hypothesis without appending the triggering token, but its
// log-probability still counts.
func (e *Engine) beam(ctx context.Context, features, encMask executor.Tensor, opts Options) ([]Candidate, error) {
	width := opts.BeamWidth
	eos := e.Vocab.Eos()

	beams := []beamState{{ids: []int{e.Vocab.Sos()}}}

	for step := 0; step < opts.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		open := false
		round := make([]beamState, 0, width*(2*width+1))
		for _, b := range beams {
			if b.finished {
				round = append(round, b)
				continue
			}
			open = true

			lp, err := e.step(ctx, features, encMask, b.ids, opts.Allowed)
			if err != nil {
				return nil, err
			}

			for _, tok := range topK(lp, 2*width) {
				nb := beamState{logProb: b.logProb + lp[tok]}
				switch {
				case tok == eos:
					nb.ids = b.ids
					nb.finished = true
				case runReachesLimit(b.ids, tok):
					nb.ids = b.ids
					nb.finished = true
				default:
					nb.ids = appendID(b.ids, tok)
				}
				round = append(round, nb)
			}
		}
		if !open {
			break
		}

		sort.SliceStable(round, func(i, j int) bool {
			return round[i].normScore() > round[j].normScore()
		})
		if len(round) > width {
			round = round[:width]
		}
		beams = round

		if opts.OnStep != nil {
			opts.OnStep(step + 1)
		}
	}

	// Final ranking: finished hypotheses first, then normalized score.
	sort.SliceStable(beams, func(i, j int) bool {
		if beams[i].finished != beams[j].finished {
			return beams[i].finished
		}
		return beams[i].normScore() > beams[j].normScore()
	})
	if len(beams) > width {
		beams = beams[:width]
	}

	out := make([]Candidate, 0, len(beams))
	for _, b := range beams {
		out = append(out, Candidate{IDs: stripSos(b.ids, e.Vocab.Sos()), LogProb: b.logProb})
	}
	return out, nil
}

// appendID copies ids with tok appended. Frozen siblings share the parent
// backing array, so extension always copies.
func appendID(ids []int, tok int) []int {
	out := make([]int, len(ids)+1)
	copy(out, ids)
	out[len(ids)] = tok
	return out
}
