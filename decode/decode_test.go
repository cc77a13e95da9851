package decode

import (
	"context"
	"errors"
	"testing"

	"github.com/jotspot/inktex/executor"
	"github.com/jotspot/inktex/vocab"
)

// Shared test vocabulary: specials plus a handful of math symbols.
func testVocab(t *testing.T) *vocab.Vocab {
	t.Helper()
	v, err := vocab.New(map[string]int{
		"<pad>": 0, "<sos>": 1, "<eos>": 2,
		"x": 3, "2": 4, "^": 5, "{": 6, "}": 7, "+": 8, "1": 9,
	})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

const testVocabSize = 10

// peak returns a logits row that strongly favors tok.
func peak(tok int) []float32 {
	row := make([]float32, testVocabSize)
	row[tok] = 8
	return row
}

// scriptSession serves pinned logits per decoder position. Position is
// len(ids)-1, so every hypothesis at the same depth sees the same row.
type scriptSession struct {
	rowFor func(pos int) []float32
	fail   error
	calls  int
}

func (s *scriptSession) Encode(ctx context.Context, pixels, mask executor.Tensor) (executor.Tensor, executor.Tensor, error) {
	return executor.Tensor{Shape: []int64{1, 1, 4}, Data: make([]float32, 4)}, mask, nil
}

func (s *scriptSession) DecodeStep(ctx context.Context, features, encMask executor.Tensor, ids []int64) (executor.Tensor, error) {
	s.calls++
	if s.fail != nil {
		return executor.Tensor{}, s.fail
	}

	row := s.rowFor(len(ids) - 1)
	data := make([]float32, len(ids)*len(row))
	copy(data[len(data)-len(row):], row)
	return executor.Tensor{
		Shape: []int64{1, int64(len(ids)), int64(len(row))},
		Data:  data,
	}, nil
}

func (s *scriptSession) Release() error { return nil }

// xSquaredScript pins the token path x ^ { 2 } eos.
func xSquaredScript() func(pos int) []float32 {
	seq := []int{3, 5, 6, 4, 7, 2}
	return func(pos int) []float32 {
		if pos >= len(seq) {
			return peak(2)
		}
		return peak(seq[pos])
	}
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGreedyFollowsScript(t *testing.T) {
	sess := &scriptSession{rowFor: xSquaredScript()}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	cands, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 {
		t.Fatalf("got %d candidates", len(cands))
	}

	want := []int{3, 5, 6, 4, 7} // x ^ { 2 }
	if !equalIDs(cands[0].IDs, want) {
		t.Errorf("ids = %v, want %v", cands[0].IDs, want)
	}
	if cands[0].LogProb >= 0 {
		t.Errorf("log prob = %f, want negative", cands[0].LogProb)
	}
}

func TestGreedyRepeatGuard(t *testing.T) {
	sess := &scriptSession{rowFor: func(pos int) []float32 { return peak(3) }}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	cands, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := []int{3, 3} // frozen before the third consecutive x
	if !equalIDs(cands[0].IDs, want) {
		t.Errorf("ids = %v, want %v", cands[0].IDs, want)
	}
}

func TestGreedyMaxSteps(t *testing.T) {
	// alternate tokens so the repeat guard never fires
	sess := &scriptSession{rowFor: func(pos int) []float32 {
		if pos%2 == 0 {
			return peak(3)
		}
		return peak(4)
	}}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	cands, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{MaxSteps: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands[0].IDs) != 4 {
		t.Errorf("generated %d tokens, want 4", len(cands[0].IDs))
	}
	if sess.calls != 4 {
		t.Errorf("decoder ran %d times, want 4", sess.calls)
	}
}

func TestGreedyUniformLogits(t *testing.T) {
	sess := &scriptSession{rowFor: func(pos int) []float32 {
		return make([]float32, testVocabSize)
	}}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	cands, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{MaxSteps: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands[0].IDs) > 50 {
		t.Errorf("generated %d tokens past the step bound", len(cands[0].IDs))
	}
	if sess.calls > 50 {
		t.Errorf("decoder ran %d times, bound is 50", sess.calls)
	}
}

func TestGreedyMaskRestrictsTokens(t *testing.T) {
	v := testVocab(t)

	// the script wants x, but the mask only allows digits and eos
	sess := &scriptSession{rowFor: func(pos int) []float32 {
		if pos == 0 {
			return peak(3)
		}
		return peak(2)
	}}
	eng := &Engine{Session: sess, Vocab: v}

	cands, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{
		Allowed: v.NumberMask(),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range cands[0].IDs {
		if id == 3 || id == 5 {
			t.Fatalf("masked token %d selected: %v", id, cands[0].IDs)
		}
	}
}

func TestGreedyFullyMasked(t *testing.T) {
	v := testVocab(t)
	sess := &scriptSession{rowFor: func(pos int) []float32 { return peak(3) }}
	eng := &Engine{Session: sess, Vocab: v}

	cands, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{
		Allowed: make([]bool, testVocabSize),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands[0].IDs) != 0 {
		t.Errorf("ids = %v, want none", cands[0].IDs)
	}
}

func TestDecodeExecutorFailure(t *testing.T) {
	sess := &scriptSession{fail: errors.New("device lost")}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	if _, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{}); err == nil {
		t.Error("executor failure must propagate")
	}
}

func TestDecodeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := &scriptSession{rowFor: xSquaredScript()}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	if _, err := eng.Decode(ctx, executor.Tensor{}, executor.Tensor{}, Options{}); err == nil {
		t.Error("cancelled context must abort decoding")
	}
}

func TestDecodeStepHook(t *testing.T) {
	sess := &scriptSession{rowFor: xSquaredScript()}
	eng := &Engine{Session: sess, Vocab: testVocab(t)}

	steps := 0
	_, err := eng.Decode(context.Background(), executor.Tensor{}, executor.Tensor{}, Options{
		OnStep: func(int) { steps++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	if steps == 0 {
		t.Error("hook never ran")
	}
}
