package ast

import (
	"github.com/JakobDegen/captures/internal/source"
)

// Hints sizes the per-kind arenas up front.
type Hints struct{ Exprs, Stmts, Pats uint }

// Builder owns the arenas for one parse. Expansion mutates nodes in place
// through the arena pointers, so the planner and cleaner share the builder
// with the parser that produced it.
type Builder struct {
	Exprs   *Exprs
	Stmts   *Stmts
	Pats    *Pats
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Pats == 0 {
		hints.Pats = 1 << 7
	}
	return &Builder{
		Exprs:   NewExprs(hints.Exprs),
		Stmts:   NewStmts(hints.Stmts),
		Pats:    NewPats(hints.Pats),
		Strings: source.NewInterner(),
	}
}
