package decode

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jotspot/inktex/executor"
)

// lastLogits returns the final-position row of a logits tensor shaped
// [..., seq, vocab].
func lastLogits(t executor.Tensor) ([]float32, error) {
	if len(t.Data) == 0 {
		return nil, errors.New("empty logits")
	}

	vocabSize := len(t.Data)
	if len(t.Shape) > 0 {
		v := int(t.Shape[len(t.Shape)-1])
		if v <= 0 || len(t.Data)%v != 0 {
			return nil, errors.Errorf("malformed logits: shape %v with %d values", t.Shape, len(t.Data))
		}
		vocabSize = v
	}
	return t.Data[len(t.Data)-vocabSize:], nil
}

// logSoftmax converts raw logits to log-probabilities in float64 using the
// max-subtraction form x - max - log(sum(exp(x - max))).
func logSoftmax(logits []float32) []float64 {
	out := make([]float64, len(logits))
	if len(logits) == 0 {
		return out
	}

	maxV := float64(logits[0])
	for _, v := range logits[1:] {
		if float64(v) > maxV {
			maxV = float64(v)
		}
	}

	var sum float64
	for i, v := range logits {
		d := float64(v) - maxV
		out[i] = d
		sum += math.Exp(d)
	}

	logSum := math.Log(sum)
	for i := range out {
		out[i] -= logSum
	}
	return out
}

// applyMask forces log-probabilities of disallowed ids to -Inf. Ids beyond
// the mask are treated as disallowed. Allowed entries are left untouched.
func applyMask(lp []float64, allowed []bool) {
	if allowed == nil {
		return
	}
	for i := range lp {
		if i >= len(allowed) || !allowed[i] {
			lp[i] = math.Inf(-1)
		}
	}
}

// argmax returns the best index and its value, or -1 when every entry is
// -Inf.
func argmax(lp []float64) (int, float64) {
	best := -1
	bestLP := math.Inf(-1)
	for i, v := range lp {
		if v > bestLP {
			best, bestLP = i, v
		}
	}
	return best, bestLP
}

// topK returns the indices of the k largest values, best first. Entries at
// -Inf are never selected. Ties resolve to the lower index.
func topK(lp []float64, k int) []int {
	if k > len(lp) {
		k = len(lp)
	}

	idx := make([]int, 0, k)
	used := make([]bool, len(lp))
	for n := 0; n < k; n++ {
		best := -1
		bestLP := math.Inf(-1)
		for i, v := range lp {
			if !used[i] && v > bestLP {
				best, bestLP = i, v
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		idx = append(idx, best)
	}
	return idx
}
