package latex

import (
	"bytes"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
)

// Validator is the acceptance filter applied to repaired candidates before
// a recognition result is returned.
type Validator interface {
	IsValidMath(latex string) bool
}

// MathMLValidator accepts a LaTeX string when it converts cleanly to
// MathML. Conversion failures and parser error nodes in the output both
// count as rejection. The converter is built per call, keeping the
// validator safe for concurrent requests.
type MathMLValidator struct{}

// NewMathMLValidator returns the MathML-backed validator.
func NewMathMLValidator() *MathMLValidator {
	return &MathMLValidator{}
}

// IsValidMath implements Validator.
func (v *MathMLValidator) IsValidMath(latex string) bool {
	if strings.TrimSpace(latex) == "" {
		return false
	}

	// Wrap in display math delimiters for goldmark processing.
	source := "$$" + latex + "$$"

	md := goldmark.New(
		goldmark.WithExtensions(
			treeblood.MathML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return false
	}

	out := buf.String()
	if !strings.Contains(out, "<math") {
		return false
	}
	return !strings.Contains(out, "merror")
}
