package ast

import (
	"github.com/JakobDegen/captures/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Idents     *Arena[ExprIdentData]
	Paths      *Arena[ExprPathData]
	Literals   *Arena[ExprLiteralData]
	Binaries   *Arena[ExprBinaryData]
	Unaries    *Arena[ExprUnaryData]
	Calls      *Arena[ExprCallData]
	Fields     *Arena[ExprFieldData]
	Indices    *Arena[ExprIndexData]
	Groups     *Arena[ExprGroupData]
	Tuples     *Arena[ExprTupleData]
	Arrays     *Arena[ExprArrayData]
	Ranges     *Arena[ExprRangeData]
	Blocks     *Arena[ExprBlockData]
	Ifs        *Arena[ExprIfData]
	Whiles     *Arena[ExprWhileData]
	Fors       *Arena[ExprForData]
	Loops      *Arena[ExprLoopData]
	Matches    *Arena[ExprMatchData]
	Closures   *Arena[ExprClosureData]
	MacroCalls *Arena[ExprMacroCallData]
	Returns    *Arena[ExprReturnData]
	Breaks     *Arena[ExprBreakData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint
// as the initial capacity; 0 selects a default.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Idents:     NewArena[ExprIdentData](capHint),
		Paths:      NewArena[ExprPathData](capHint),
		Literals:   NewArena[ExprLiteralData](capHint),
		Binaries:   NewArena[ExprBinaryData](capHint),
		Unaries:    NewArena[ExprUnaryData](capHint),
		Calls:      NewArena[ExprCallData](capHint),
		Fields:     NewArena[ExprFieldData](capHint),
		Indices:    NewArena[ExprIndexData](capHint),
		Groups:     NewArena[ExprGroupData](capHint),
		Tuples:     NewArena[ExprTupleData](capHint),
		Arrays:     NewArena[ExprArrayData](capHint),
		Ranges:     NewArena[ExprRangeData](capHint),
		Blocks:     NewArena[ExprBlockData](capHint),
		Ifs:        NewArena[ExprIfData](capHint),
		Whiles:     NewArena[ExprWhileData](capHint),
		Fors:       NewArena[ExprForData](capHint),
		Loops:      NewArena[ExprLoopData](capHint),
		Matches:    NewArena[ExprMatchData](capHint),
		Closures:   NewArena[ExprClosureData](capHint),
		MacroCalls: NewArena[ExprMacroCallData](capHint),
		Returns:    NewArena[ExprReturnData](capHint),
		Breaks:     NewArena[ExprBreakData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates a new identifier expression with call-site hygiene.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.NewIdentHygiene(span, name, source.CallSite)
}

// NewIdentHygiene creates an identifier expression with an explicit tag.
func (e *Exprs) NewIdentHygiene(span source.Span, name source.StringID, hy source.Hygiene) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name, Hygiene: hy})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewPath creates a new path expression.
func (e *Exprs) NewPath(span source.Span, segments []PathSeg) ExprID {
	payload := e.Paths.Allocate(ExprPathData{
		Segments: append([]PathSeg(nil), segments...),
	})
	return e.new(ExprPath, span, PayloadID(payload))
}

// Path returns the path data for the given expression ID.
func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID, trailing bool) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Target:           target,
		Args:             append([]ExprID(nil), args...),
		HasTrailingComma: trailing,
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewField creates a new field access expression.
func (e *Exprs) NewField(span source.Span, target ExprID, field source.StringID) ExprID {
	payload := e.Fields.Allocate(ExprFieldData{Target: target, Field: field})
	return e.new(ExprField, span, PayloadID(payload))
}

// Field returns the field data for the given expression ID.
func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprField {
		return nil, false
	}
	return e.Fields.Get(uint32(expr.Payload)), true
}

// NewIndex creates a new index expression.
func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns the index data for the given expression ID.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewGroup creates a new parenthesized group expression.
func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

// Group returns the group data for the given expression ID.
func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

// NewTuple creates a new tuple literal expression.
func (e *Exprs) NewTuple(span source.Span, elements []ExprID, trailing bool) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{
		Elements:         append([]ExprID(nil), elements...),
		HasTrailingComma: trailing,
	})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// Tuple returns the tuple data for the given expression ID.
func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

// NewArray creates a new array literal expression.
func (e *Exprs) NewArray(span source.Span, elements []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{
		Elements: append([]ExprID(nil), elements...),
	})
	return e.new(ExprArray, span, PayloadID(payload))
}

// Array returns the array data for the given expression ID.
func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}

// NewRange creates a new range expression.
func (e *Exprs) NewRange(span source.Span, start, end ExprID, inclusive bool) ExprID {
	payload := e.Ranges.Allocate(ExprRangeData{
		Start:     start,
		End:       end,
		Inclusive: inclusive,
	})
	return e.new(ExprRange, span, PayloadID(payload))
}

// Range returns the range data for the given expression ID.
func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprRange {
		return nil, false
	}
	return e.Ranges.Get(uint32(expr.Payload)), true
}

// NewBlock creates a new block expression.
func (e *Exprs) NewBlock(span source.Span, stmts []StmtID) ExprID {
	payload := e.Blocks.Allocate(ExprBlockData{
		Stmts: append([]StmtID(nil), stmts...),
	})
	return e.new(ExprBlock, span, PayloadID(payload))
}

// Block returns the block data for the given expression ID.
func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(expr.Payload)), true
}

// NewIf creates a new if expression; pat is NoPatID for a plain condition.
func (e *Exprs) NewIf(span source.Span, pat PatID, cond, then, els ExprID) ExprID {
	payload := e.Ifs.Allocate(ExprIfData{Pat: pat, Cond: cond, Then: then, Else: els})
	return e.new(ExprIf, span, PayloadID(payload))
}

// If returns the if data for the given expression ID.
func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(expr.Payload)), true
}

// NewWhile creates a new while expression.
func (e *Exprs) NewWhile(span source.Span, pat PatID, cond, body ExprID) ExprID {
	payload := e.Whiles.Allocate(ExprWhileData{Pat: pat, Cond: cond, Body: body})
	return e.new(ExprWhile, span, PayloadID(payload))
}

// While returns the while data for the given expression ID.
func (e *Exprs) While(id ExprID) (*ExprWhileData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprWhile {
		return nil, false
	}
	return e.Whiles.Get(uint32(expr.Payload)), true
}

// NewFor creates a new for expression.
func (e *Exprs) NewFor(span source.Span, pat PatID, iter, body ExprID) ExprID {
	payload := e.Fors.Allocate(ExprForData{Pat: pat, Iter: iter, Body: body})
	return e.new(ExprFor, span, PayloadID(payload))
}

// For returns the for data for the given expression ID.
func (e *Exprs) For(id ExprID) (*ExprForData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFor {
		return nil, false
	}
	return e.Fors.Get(uint32(expr.Payload)), true
}

// NewLoop creates a new loop expression.
func (e *Exprs) NewLoop(span source.Span, body ExprID) ExprID {
	payload := e.Loops.Allocate(ExprLoopData{Body: body})
	return e.new(ExprLoop, span, PayloadID(payload))
}

// Loop returns the loop data for the given expression ID.
func (e *Exprs) Loop(id ExprID) (*ExprLoopData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLoop {
		return nil, false
	}
	return e.Loops.Get(uint32(expr.Payload)), true
}

// NewMatch creates a new match expression.
func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	payload := e.Matches.Allocate(ExprMatchData{
		Scrutinee: scrutinee,
		Arms:      append([]MatchArm(nil), arms...),
	})
	return e.new(ExprMatch, span, PayloadID(payload))
}

// Match returns the match data for the given expression ID.
func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(expr.Payload)), true
}

// NewClosure creates a new closure expression.
func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	payload := e.Closures.Allocate(data)
	return e.new(ExprClosure, span, PayloadID(payload))
}

// Closure returns the closure data for the given expression ID.
func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(expr.Payload)), true
}

// NewMacroCall creates a new macro invocation expression.
func (e *Exprs) NewMacroCall(span source.Span, segments []PathSeg, delim Delim, body []TokenTree) ExprID {
	payload := e.MacroCalls.Allocate(ExprMacroCallData{
		Segments: append([]PathSeg(nil), segments...),
		Delim:    delim,
		Body:     body,
	})
	return e.new(ExprMacroCall, span, PayloadID(payload))
}

// MacroCall returns the macro invocation data for the given expression ID.
func (e *Exprs) MacroCall(id ExprID) (*ExprMacroCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMacroCall {
		return nil, false
	}
	return e.MacroCalls.Get(uint32(expr.Payload)), true
}

// NewReturn creates a new return expression; value may be NoExprID.
func (e *Exprs) NewReturn(span source.Span, value ExprID) ExprID {
	payload := e.Returns.Allocate(ExprReturnData{Value: value})
	return e.new(ExprReturn, span, PayloadID(payload))
}

// Return returns the return data for the given expression ID.
func (e *Exprs) Return(id ExprID) (*ExprReturnData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprReturn {
		return nil, false
	}
	return e.Returns.Get(uint32(expr.Payload)), true
}

// NewBreak creates a new break expression; value may be NoExprID.
func (e *Exprs) NewBreak(span source.Span, value ExprID) ExprID {
	payload := e.Breaks.Allocate(ExprBreakData{Value: value})
	return e.new(ExprBreak, span, PayloadID(payload))
}

// Break returns the break data for the given expression ID.
func (e *Exprs) Break(id ExprID) (*ExprBreakData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBreak {
		return nil, false
	}
	return e.Breaks.Get(uint32(expr.Payload)), true
}

// NewContinue creates a new continue expression. It carries no payload.
func (e *Exprs) NewContinue(span source.Span) ExprID {
	return e.new(ExprContinue, span, NoPayloadID)
}
