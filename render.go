package exprjson

import (
	"fmt"
	"strings"
)

// Tokens is a run of raw source tokens captured for a sub-tree that is
// not modeled structurally: block bodies, patterns, type annotations,
// macro arguments and attributes.
//
// Rendering re-derives text from the captured token structure, never from
// the original bytes: the same sub-tree renders to byte-identical text on
// every call, and formatting-only differences in the input (whitespace,
// comments) normalize away. The internal structure of rendered fields is
// not recoverable from the output; that loss is deliberate.
type Tokens []string

func (t Tokens) String() string {
	return strings.Join(t, " ")
}

// Opaque is implemented by expression nodes that carry their source as a
// raw token run. The converter's fallback arm uses it to render variants
// outside the modeled set.
type Opaque interface {
	OpaqueTokens() Tokens
}

func (v Verbatim) OpaqueTokens() Tokens { return v.Toks }

func opaqueText(e Expression) string {
	if o, ok := e.(Opaque); ok {
		return o.OpaqueTokens().String()
	}
	return fmt.Sprintf("%v", e)
}
