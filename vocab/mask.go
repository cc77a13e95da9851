package vocab

// numberSymbols is the fixed whitelist for number mode: digits and basic
// arithmetic and structural symbols.
var numberSymbols = []string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	".", "+", "-", "\\times", "\\div", "/", "(", ")", "=",
}

// NumberMask returns the allowed-token table for number mode. The decoder
// forces tokens with a false entry to -Inf. Eos stays allowed so decoding
// can terminate; whitelist symbols missing from the vocabulary are simply
// absent.
func (v *Vocab) NumberMask() []bool {
	allowed := make([]bool, v.Size())

	mark := func(id int) {
		if id >= 0 && id < len(allowed) {
			allowed[id] = true
		}
	}
	for _, w := range numberSymbols {
		if id, ok := v.word2idx[w]; ok {
			mark(id)
		}
	}
	mark(v.eos)
	return allowed
}
