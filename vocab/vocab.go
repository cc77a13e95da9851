// Package vocab maps between model token ids and LaTeX symbols. A
// vocabulary is loaded once at startup and shared read-only across
// requests.
package vocab

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Special token names used by the model family.
const (
	PadWord = "<pad>"
	SosWord = "<sos>"
	EosWord = "<eos>"
)

// Conventional special ids, used when a vocabulary does not name its
// specials.
const (
	defaultPad = 0
	defaultSos = 1
	defaultEos = 2
)

// Vocab is an immutable two-way token table.
type Vocab struct {
	word2idx map[string]int
	idx2word map[int]string

	pad, sos, eos int
}

// FromJSON loads a vocabulary from either a bare {"symbol": id} object or
// a {"word2idx": {...}} wrapper.
func FromJSON(data []byte) (*Vocab, error) {
	var wrapper struct {
		Word2Idx map[string]int `json:"word2idx"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Word2Idx) > 0 {
		return New(wrapper.Word2Idx)
	}

	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, errors.Wrap(err, "parse vocabulary")
	}
	return New(flat)
}

// New builds a Vocab from a word-to-id table. Specials resolve by name,
// falling back to the conventional ids 0/1/2 when absent.
func New(word2idx map[string]int) (*Vocab, error) {
	if len(word2idx) == 0 {
		return nil, errors.New("empty vocabulary")
	}

	v := &Vocab{
		word2idx: make(map[string]int, len(word2idx)),
		idx2word: make(map[int]string, len(word2idx)),
	}
	for w, id := range word2idx {
		v.word2idx[w] = id
		v.idx2word[id] = w
	}

	v.pad = v.specialID(PadWord, defaultPad)
	v.sos = v.specialID(SosWord, defaultSos)
	v.eos = v.specialID(EosWord, defaultEos)
	return v, nil
}

func (v *Vocab) specialID(word string, fallback int) int {
	if id, ok := v.word2idx[word]; ok {
		return id
	}
	return fallback
}

// Size returns the number of entries. Ids are assumed dense in [0, Size).
func (v *Vocab) Size() int { return len(v.word2idx) }

// Pad returns the padding token id.
func (v *Vocab) Pad() int { return v.pad }

// Sos returns the start-of-sequence token id.
func (v *Vocab) Sos() int { return v.sos }

// Eos returns the end-of-sequence token id.
func (v *Vocab) Eos() int { return v.eos }

// ID looks up the id of a symbol.
func (v *Vocab) ID(word string) (int, bool) {
	id, ok := v.word2idx[word]
	return id, ok
}

// Word looks up the symbol of an id.
func (v *Vocab) Word(id int) (string, bool) {
	w, ok := v.idx2word[id]
	return w, ok
}

// IDsToSymbols converts ids to symbols, dropping specials and skipping ids
// not present in the table.
func (v *Vocab) IDsToSymbols(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == v.pad || id == v.sos || id == v.eos {
			continue
		}
		w, ok := v.idx2word[id]
		if !ok {
			continue
		}
		out = append(out, w)
	}
	return out
}

// SymbolsToString joins symbols into the canonical space-separated form.
func SymbolsToString(symbols []string) string {
	return strings.Join(symbols, " ")
}
