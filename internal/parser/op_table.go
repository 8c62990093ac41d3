package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/token"
)

// Binary operator precedence; larger binds tighter.
const (
	precAssignment     = 1 // = += -= *= /= %= &= |= ^= <<= >>=
	precRange          = 2 // .. ..=
	precLogicalOr      = 3 // ||
	precLogicalAnd     = 4 // &&
	precEquality       = 5 // == !=
	precComparison     = 6 // < <= > >=
	precBitwiseOr      = 7 // |
	precBitwiseXor     = 8 // ^
	precBitwiseAnd     = 9 // &
	precShift          = 10 // << >>
	precAdditive       = 11 // + -
	precMultiplicative = 12 // * / %
)

// getBinaryOperatorPrec returns (precedence, rightAssociative), or (-1, _)
// when the kind is not a binary operator.
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign,
		token.PipeAssign, token.CaretAssign, token.ShlAssign, token.ShrAssign:
		return precAssignment, true

	case token.DotDot, token.DotDotEq:
		return precRange, false

	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false

	case token.EqEq, token.BangEq:
		return precEquality, false

	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false

	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false

	case token.Shl, token.Shr:
		return precShift, false

	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false

	default:
		return -1, false
	}
}

func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.Percent:
		return ast.ExprBinaryMod

	case token.Amp:
		return ast.ExprBinaryBitAnd
	case token.Pipe:
		return ast.ExprBinaryBitOr
	case token.Caret:
		return ast.ExprBinaryBitXor
	case token.Shl:
		return ast.ExprBinaryShiftLeft
	case token.Shr:
		return ast.ExprBinaryShiftRight

	case token.AndAnd:
		return ast.ExprBinaryLogicalAnd
	case token.OrOr:
		return ast.ExprBinaryLogicalOr

	case token.EqEq:
		return ast.ExprBinaryEq
	case token.BangEq:
		return ast.ExprBinaryNotEq
	case token.Lt:
		return ast.ExprBinaryLess
	case token.LtEq:
		return ast.ExprBinaryLessEq
	case token.Gt:
		return ast.ExprBinaryGreater
	case token.GtEq:
		return ast.ExprBinaryGreaterEq

	case token.Assign:
		return ast.ExprBinaryAssign
	case token.PlusAssign:
		return ast.ExprBinaryAddAssign
	case token.MinusAssign:
		return ast.ExprBinarySubAssign
	case token.StarAssign:
		return ast.ExprBinaryMulAssign
	case token.SlashAssign:
		return ast.ExprBinaryDivAssign
	case token.PercentAssign:
		return ast.ExprBinaryModAssign
	case token.AmpAssign:
		return ast.ExprBinaryBitAndAssign
	case token.PipeAssign:
		return ast.ExprBinaryBitOrAssign
	case token.CaretAssign:
		return ast.ExprBinaryBitXorAssign
	case token.ShlAssign:
		return ast.ExprBinaryShlAssign
	case token.ShrAssign:
		return ast.ExprBinaryShrAssign

	default:
		// unreachable while the precedence table and this switch agree
		return ast.ExprBinaryAdd
	}
}

// getUnaryOperator returns the unary operator for the token, excluding `&`
// which needs its own `&mut` lookahead.
func (p *Parser) getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryNeg, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	case token.Star:
		return ast.ExprUnaryDeref, true
	default:
		return ast.ExprUnaryNeg, false
	}
}
