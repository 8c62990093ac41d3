package token

import (
	"github.com/JakobDegen/captures/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Assign, PlusAssign, MinusAssign, StarAssign,
		SlashAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign,
		EqEq, Bang, BangEq, Lt, LtEq, Gt, GtEq, Shl, Shr, Amp, Pipe, Caret, AndAnd, OrOr,
		Question, Colon, ColonColon, Semicolon, Comma, Dot, DotDot, DotDotEq, Arrow,
		FatArrow, LParen, RParen, LBrace, RBrace, LBracket, RBracket, At, Underscore:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwRef, KwMut, KwMove, KwAsync, KwStatic, KwLet, KwIf, KwElse, KwWhile,
		KwFor, KwLoop, KwMatch, KwIn, KwReturn, KwBreak, KwContinue, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// OpensGroup reports whether the token opens a bracketed group.
func (t Token) OpensGroup() bool {
	return t.Kind == LParen || t.Kind == LBracket || t.Kind == LBrace
}

// ClosesGroup reports whether the token closes a bracketed group.
func (t Token) ClosesGroup() bool {
	return t.Kind == RParen || t.Kind == RBracket || t.Kind == RBrace
}
