// Package latex repairs and validates the token streams the decoder emits.
// Repair functions are pure and total: any input, however malformed, yields
// a well-formed output.
package latex

import "strings"

// Fixed-arity commands in the recognizer's grammar.
const (
	FracCommand = "\\frac"
	SqrtCommand = "\\sqrt"
)

// arity maps each fixed-arity command to its required argument-group count.
var arity = map[string]int{
	FracCommand: 2,
	SqrtCommand: 1,
}

// Repair normalizes a raw decoded symbol stream into well-formed LaTeX
// tokens: braces are balanced first, then surplus argument groups are
// trimmed for the fixed-arity commands.
func Repair(tokens []string) []string {
	out := BalanceBraces(tokens)
	out = FixArgArity(out, FracCommand, arity[FracCommand])
	out = FixArgArity(out, SqrtCommand, arity[SqrtCommand])
	return out
}

// BalanceBraces returns tokens with braces balanced: closers that would
// take the nesting depth negative are dropped, and missing closers are
// appended at the end.
func BalanceBraces(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	depth := 0
	for _, tok := range tokens {
		switch tok {
		case "{":
			depth++
		case "}":
			if depth == 0 {
				continue
			}
			depth--
		}
		out = append(out, tok)
	}
	for ; depth > 0; depth-- {
		out = append(out, "}")
	}
	return out
}

// FixArgArity trims surplus argument groups after every occurrence of a
// fixed-arity command, at any nesting depth: the first want groups are
// kept, then any extra braced groups that follow immediately are dropped.
func FixArgArity(tokens []string, command string, want int) []string {
	drop := make([]bool, len(tokens))

	for i, tok := range tokens {
		if tok != command {
			continue
		}

		j := i + 1
		complete := true
		for g := 0; g < want; g++ {
			end, ok := argGroupEnd(tokens, j)
			if !ok {
				complete = false
				break
			}
			j = end
		}
		if !complete {
			// not enough arguments; nothing to trim
			continue
		}

		for j < len(tokens) && tokens[j] == "{" {
			end, ok := argGroupEnd(tokens, j)
			if !ok {
				break
			}
			for k := j; k < end; k++ {
				drop[k] = true
			}
			j = end
		}
	}

	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if !drop[i] {
			out = append(out, tok)
		}
	}
	return out
}

// argGroupEnd scans one argument group starting at i and returns the index
// just past it. A group is either a balanced {...} span or a single bare
// token; a closing brace or an unterminated span is not a group.
func argGroupEnd(tokens []string, i int) (int, bool) {
	if i >= len(tokens) {
		return i, false
	}
	if tokens[i] != "{" {
		if tokens[i] == "}" {
			return i, false
		}
		return i + 1, true
	}

	depth := 0
	for j := i; j < len(tokens); j++ {
		switch tokens[j] {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
	}
	return len(tokens), false
}

// IsCompleteExpression reports whether the token stream reads as a finished
// expression: non-empty, not a lone argument-taking command, and every
// fixed-arity command followed by its full complement of argument groups.
func IsCompleteExpression(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) == 1 {
		if _, needsArgs := arity[tokens[0]]; needsArgs {
			return false
		}
	}

	for i, tok := range tokens {
		want, ok := arity[tok]
		if !ok {
			continue
		}
		j := i + 1
		for g := 0; g < want; g++ {
			end, ok := argGroupEnd(tokens, j)
			if !ok {
				return false
			}
			j = end
		}
	}
	return true
}

// IsStructurallyValid checks a space-separated LaTeX string: it rejects
// empty input, brace nesting that goes negative or stays open, and
// fixed-arity commands missing their argument groups.
func IsStructurallyValid(latex string) bool {
	tokens := strings.Fields(latex)
	if len(tokens) == 0 {
		return false
	}

	depth := 0
	for _, tok := range tokens {
		switch tok {
		case "{":
			depth++
		case "}":
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	if depth != 0 {
		return false
	}

	return IsCompleteExpression(tokens)
}
