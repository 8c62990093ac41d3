package ast

import (
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// TokenTreeKind distinguishes leaf tokens from delimited groups.
type TokenTreeKind uint8

const (
	// TTLeaf is a single non-delimiter token.
	TTLeaf TokenTreeKind = iota
	// TTGroup is a delimited sequence of child trees.
	TTGroup
)

// Delim enumerates group delimiters.
type Delim uint8

const (
	DelimParen   Delim = iota // ( )
	DelimBracket              // [ ]
	DelimBrace                // { }
)

// Open returns the opening delimiter character.
func (d Delim) Open() byte {
	switch d {
	case DelimBracket:
		return '['
	case DelimBrace:
		return '{'
	default:
		return '('
	}
}

// Close returns the closing delimiter character.
func (d Delim) Close() byte {
	switch d {
	case DelimBracket:
		return ']'
	case DelimBrace:
		return '}'
	default:
		return ')'
	}
}

// TokenTree is the raw, unparsed content of a macro invocation or an
// attribute argument list. Identifier leaves carry a hygiene tag so wholesale
// retagging can reach into nested invocations.
//
// Trees are plain values rather than arena nodes: they are leaf aggregates
// owned by exactly one expression payload, like CallArg slices.
type TokenTree struct {
	Kind     TokenTreeKind
	Tok      token.Token    // valid for TTLeaf
	Hygiene  source.Hygiene // meaningful for identifier leaves
	Delim    Delim          // valid for TTGroup
	Span     source.Span
	Children []TokenTree // valid for TTGroup
}

// Attr is an `@name(tts)` attribute. Args is nil when no argument list was
// written.
type Attr struct {
	Name source.StringID
	Span source.Span
	Args []TokenTree
}
