package decode

import (
	"math"
	"testing"

	"github.com/jotspot/inktex/executor"
)

func TestLogSoftmax(t *testing.T) {
	lp := logSoftmax([]float32{0, 0})
	want := math.Log(0.5)
	for i, v := range lp {
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("lp[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestLogSoftmaxNormalizes(t *testing.T) {
	lp := logSoftmax([]float32{1.5, -2, 0.25, 7})

	var sum float64
	for _, v := range lp {
		sum += math.Exp(v)
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %f", sum)
	}
}

func TestLogSoftmaxStability(t *testing.T) {
	// naive exp would overflow here
	lp := logSoftmax([]float32{1000, 1000})
	want := math.Log(0.5)
	for i, v := range lp {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("lp[%d] = %f", i, v)
		}
		if math.Abs(v-want) > 1e-6 {
			t.Errorf("lp[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestApplyMask(t *testing.T) {
	lp := []float64{-1, -2, -3}
	orig := lp[1]

	applyMask(lp, []bool{false, true, false})

	if !math.IsInf(lp[0], -1) || !math.IsInf(lp[2], -1) {
		t.Errorf("disallowed entries survived: %v", lp)
	}
	if lp[1] != orig {
		t.Errorf("allowed entry changed: %f", lp[1])
	}
}

func TestApplyMaskNil(t *testing.T) {
	lp := []float64{-1, -2}
	applyMask(lp, nil)
	if lp[0] != -1 || lp[1] != -2 {
		t.Errorf("nil mask changed values: %v", lp)
	}
}

func TestApplyMaskShort(t *testing.T) {
	lp := []float64{-1, -2, -3}
	applyMask(lp, []bool{true})
	if lp[0] != -1 {
		t.Error("in-mask entry changed")
	}
	if !math.IsInf(lp[1], -1) || !math.IsInf(lp[2], -1) {
		t.Error("entries beyond the mask must be disallowed")
	}
}

func TestArgmax(t *testing.T) {
	tok, lp := argmax([]float64{-3, -1, -2})
	if tok != 1 || lp != -1 {
		t.Errorf("argmax = %d/%f", tok, lp)
	}

	if tok, _ := argmax([]float64{math.Inf(-1), math.Inf(-1)}); tok != -1 {
		t.Errorf("fully masked argmax = %d, want -1", tok)
	}
}

func TestTopK(t *testing.T) {
	lp := []float64{-3, -1, math.Inf(-1), -2}

	got := topK(lp, 3)
	want := []int{1, 3, 0}
	if len(got) != len(want) {
		t.Fatalf("topK = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topK = %v, want %v", got, want)
		}
	}
}

func TestTopKSkipsMasked(t *testing.T) {
	lp := []float64{math.Inf(-1), -1, math.Inf(-1)}
	got := topK(lp, 3)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("topK = %v, want [1]", got)
	}
}

func TestLastLogits(t *testing.T) {
	tensor := executor.Tensor{
		Shape: []int64{1, 2, 3},
		Data:  []float32{0, 0, 0, 1, 2, 3},
	}

	row, err := lastLogits(tensor)
	if err != nil {
		t.Fatal(err)
	}
	if len(row) != 3 || row[0] != 1 || row[2] != 3 {
		t.Errorf("row = %v", row)
	}
}

func TestLastLogitsMalformed(t *testing.T) {
	if _, err := lastLogits(executor.Tensor{}); err == nil {
		t.Error("empty tensor should fail")
	}

	bad := executor.Tensor{Shape: []int64{1, 2, 4}, Data: make([]float32, 6)}
	if _, err := lastLogits(bad); err == nil {
		t.Error("shape/data mismatch should fail")
	}
}
