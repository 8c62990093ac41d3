package ast

import (
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

type StmtKind uint8

const (
	// StmtLet represents `let pat [: Type] [= expr];`.
	StmtLet StmtKind = iota
	// StmtExpr represents an expression statement, with or without `;`.
	StmtExpr
	// StmtEmpty represents a bare `;`.
	StmtEmpty
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtLetData holds a let statement. Init is NoExprID for `let x;`.
type StmtLetData struct {
	Pat        PatID
	TypeTokens []token.Token
	Init       ExprID
}

// StmtExprData holds an expression statement. HasSemi records whether the
// trailing semicolon was written; the last statement of a block omits it to
// yield the block's value.
type StmtExprData struct {
	Expr    ExprID
	HasSemi bool
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[StmtLetData]
	Exprs *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[StmtLetData](capHint),
		Exprs: NewArena[StmtExprData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewLet creates a new let statement.
func (s *Stmts) NewLet(span source.Span, pat PatID, typeTokens []token.Token, init ExprID) StmtID {
	payload := s.Lets.Allocate(StmtLetData{
		Pat:        pat,
		TypeTokens: append([]token.Token(nil), typeTokens...),
		Init:       init,
	})
	return s.new(StmtLet, span, PayloadID(payload))
}

// Let returns the let data for the given statement ID.
func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

// NewExpr creates a new expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID, hasSemi bool) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr, HasSemi: hasSemi})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression data for the given statement ID.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewEmpty creates a bare semicolon statement.
func (s *Stmts) NewEmpty(span source.Span) StmtID {
	return s.new(StmtEmpty, span, NoPayloadID)
}
