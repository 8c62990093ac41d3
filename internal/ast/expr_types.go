package ast

import (
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents a plain identifier expression.
	ExprIdent ExprKind = iota
	// ExprPath represents a multi-segment `a::b::c` path.
	ExprPath
	// ExprLit represents a literal expression.
	ExprLit
	// ExprUnary represents a unary expression.
	ExprUnary
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprCall represents a call expression.
	ExprCall
	// ExprField represents a field or method access `target.name`.
	ExprField
	// ExprIndex represents `target[index]`.
	ExprIndex
	// ExprGroup represents a parenthesized expression.
	ExprGroup
	ExprTuple
	ExprArray
	ExprRange
	ExprBlock
	ExprIf
	ExprWhile
	ExprFor
	ExprLoop
	ExprMatch
	ExprClosure
	ExprMacroCall
	ExprReturn
	ExprBreak
	ExprContinue
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// ExprBinaryAdd represents the addition operator (+).
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	ExprBinaryAssign
	ExprBinaryAddAssign
	ExprBinarySubAssign
	ExprBinaryMulAssign
	ExprBinaryDivAssign
	ExprBinaryModAssign
	ExprBinaryBitAndAssign
	ExprBinaryBitOrAssign
	ExprBinaryBitXorAssign
	ExprBinaryShlAssign
	ExprBinaryShrAssign
)

// String returns the symbol representation of a binary operator.
func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryBitAnd:
		return "&"
	case ExprBinaryBitOr:
		return "|"
	case ExprBinaryBitXor:
		return "^"
	case ExprBinaryShiftLeft:
		return "<<"
	case ExprBinaryShiftRight:
		return ">>"
	case ExprBinaryLogicalAnd:
		return "&&"
	case ExprBinaryLogicalOr:
		return "||"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNotEq:
		return "!="
	case ExprBinaryLess:
		return "<"
	case ExprBinaryLessEq:
		return "<="
	case ExprBinaryGreater:
		return ">"
	case ExprBinaryGreaterEq:
		return ">="
	case ExprBinaryAssign:
		return "="
	case ExprBinaryAddAssign:
		return "+="
	case ExprBinarySubAssign:
		return "-="
	case ExprBinaryMulAssign:
		return "*="
	case ExprBinaryDivAssign:
		return "/="
	case ExprBinaryModAssign:
		return "%="
	case ExprBinaryBitAndAssign:
		return "&="
	case ExprBinaryBitOrAssign:
		return "|="
	case ExprBinaryBitXorAssign:
		return "^="
	case ExprBinaryShlAssign:
		return "<<="
	case ExprBinaryShrAssign:
		return ">>="
	default:
		return "?"
	}
}

// IsAssign reports whether the operator is `=` or a compound assignment.
func (op ExprBinaryOp) IsAssign() bool {
	return op >= ExprBinaryAssign && op <= ExprBinaryShrAssign
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	// ExprUnaryNeg represents the unary minus operator (-).
	ExprUnaryNeg ExprUnaryOp = iota
	// ExprUnaryNot represents the logical NOT operator (!).
	ExprUnaryNot
	// ExprUnaryDeref represents the dereference operator (*).
	ExprUnaryDeref
	// ExprUnaryRef represents the reference operator (&).
	ExprUnaryRef
	// ExprUnaryRefMut represents the mutable reference operator (&mut).
	ExprUnaryRefMut
)

// String returns the symbol representation of a unary operator.
func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryDeref:
		return "*"
	case ExprUnaryRef:
		return "&"
	case ExprUnaryRefMut:
		return "&mut "
	default:
		return "?"
	}
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
)

// ExprIdentData holds identifier expression details. Hygiene starts as
// source.CallSite and is retagged destructively by the hygiene cleaner.
type ExprIdentData struct {
	Name    source.StringID
	Hygiene source.Hygiene
}

// PathSeg is one `::`-separated segment of a path.
type PathSeg struct {
	Name source.StringID
	Span source.Span
}

// ExprPathData holds path expression details. Multi-segment paths name
// globals, so they never carry a hygiene tag.
type ExprPathData struct {
	Segments []PathSeg
}

// ExprLiteralData holds literal expression details. Value is the raw token
// text.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

// ExprBinaryData holds binary operation expression details.
type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

// ExprUnaryData holds unary operation expression details.
type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

// ExprCallData holds call expression details.
type ExprCallData struct {
	Target           ExprID
	Args             []ExprID
	HasTrailingComma bool
}

// ExprFieldData holds field access expression details.
type ExprFieldData struct {
	Target ExprID
	Field  source.StringID
}

// ExprIndexData holds index expression details.
type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// ExprGroupData holds parenthesized group expression details.
type ExprGroupData struct {
	Inner ExprID
}

// ExprTupleData holds tuple expression details.
type ExprTupleData struct {
	Elements         []ExprID
	HasTrailingComma bool
}

// ExprArrayData holds array literal expression details.
type ExprArrayData struct {
	Elements []ExprID
}

// ExprRangeData holds range expression details. Start and End may each be
// NoExprID for half-open forms.
type ExprRangeData struct {
	Start     ExprID
	End       ExprID
	Inclusive bool
}

// ExprBlockData represents a block expression `{ stmts }`.
type ExprBlockData struct {
	Stmts []StmtID
}

// ExprIfData represents `if [let pat =] cond block [else blockOrIf]`.
// Pat is NoPatID for a plain condition; Else is NoExprID when absent.
type ExprIfData struct {
	Pat  PatID
	Cond ExprID
	Then ExprID
	Else ExprID
}

// ExprWhileData represents `while [let pat =] cond block`.
type ExprWhileData struct {
	Pat  PatID
	Cond ExprID
	Body ExprID
}

// ExprForData represents `for pat in iter block`.
type ExprForData struct {
	Pat  PatID
	Iter ExprID
	Body ExprID
}

// ExprLoopData represents `loop block`.
type ExprLoopData struct {
	Body ExprID
}

// MatchArm is one `pat [if guard] => body` arm.
type MatchArm struct {
	Pat   PatID
	Guard ExprID
	Body  ExprID
	Span  source.Span
}

// ExprMatchData holds match expression details.
type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

// ClosureParam is one closure parameter: a pattern plus an optional raw type
// annotation.
type ClosureParam struct {
	Pat        PatID
	TypeTokens []token.Token
}

// ExprClosureData represents `[async] [static] [move] |params| [-> Type] body`.
type ExprClosureData struct {
	Move     bool
	MoveSpan source.Span
	Async    bool
	Static   bool
	Params   []ClosureParam
	RetType  []token.Token
	Body     ExprID
	Attrs    []Attr
}

// ExprMacroCallData represents `path!(tts)` with any delimiter.
type ExprMacroCallData struct {
	Segments []PathSeg
	Delim    Delim
	Body     []TokenTree
}

// ExprReturnData holds an optional return value.
type ExprReturnData struct {
	Value ExprID
}

// ExprBreakData holds an optional break value.
type ExprBreakData struct {
	Value ExprID
}
