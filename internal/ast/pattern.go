package ast

import (
	"github.com/JakobDegen/captures/internal/source"
)

// PatKind enumerates pattern kinds.
type PatKind uint8

const (
	// PatIdent represents `[ref] [mut] name`, the only binding-introduction
	// site in the language.
	PatIdent PatKind = iota
	// PatWildcard represents `_`.
	PatWildcard
	// PatLit represents a literal pattern.
	PatLit
	// PatTuple represents `(p, q, ...)`.
	PatTuple
	// PatRef represents `&[mut] pat`.
	PatRef
	// PatPath represents a multi-segment path pattern like `Color::Red`.
	PatPath
	// PatTupleStruct represents `Path(p, q, ...)`.
	PatTupleStruct
)

type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

// PatIdentData holds an identifier pattern. The hygiene cleaner retags
// Hygiene destructively.
type PatIdentData struct {
	Name    source.StringID
	Ref     bool
	Mut     bool
	Hygiene source.Hygiene
}

// PatLitData holds a literal pattern; the literal is stored as an expression.
type PatLitData struct {
	Value ExprID
}

// PatTupleData holds tuple pattern elements.
type PatTupleData struct {
	Elements []PatID
}

// PatRefData holds `&[mut] pat`.
type PatRefData struct {
	Mut   bool
	Inner PatID
}

// PatPathData holds a path pattern.
type PatPathData struct {
	Segments []PathSeg
}

// PatTupleStructData holds `Path(elements)`.
type PatTupleStructData struct {
	Segments []PathSeg
	Elements []PatID
}

// Pats manages allocation of patterns.
type Pats struct {
	Arena        *Arena[Pat]
	Idents       *Arena[PatIdentData]
	Lits         *Arena[PatLitData]
	Tuples       *Arena[PatTupleData]
	Refs         *Arena[PatRefData]
	Paths        *Arena[PatPathData]
	TupleStructs *Arena[PatTupleStructData]
}

func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Pats{
		Arena:        NewArena[Pat](capHint),
		Idents:       NewArena[PatIdentData](capHint),
		Lits:         NewArena[PatLitData](capHint),
		Tuples:       NewArena[PatTupleData](capHint),
		Refs:         NewArena[PatRefData](capHint),
		Paths:        NewArena[PatPathData](capHint),
		TupleStructs: NewArena[PatTupleStructData](capHint),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload PayloadID) PatID {
	return PatID(p.Arena.Allocate(Pat{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

// NewIdent creates an identifier pattern with call-site hygiene.
func (p *Pats) NewIdent(span source.Span, name source.StringID, ref, mut bool) PatID {
	payload := p.Idents.Allocate(PatIdentData{
		Name:    name,
		Ref:     ref,
		Mut:     mut,
		Hygiene: source.CallSite,
	})
	return p.new(PatIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given pattern ID.
func (p *Pats) Ident(id PatID) (*PatIdentData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(pat.Payload)), true
}

// NewWildcard creates a `_` pattern.
func (p *Pats) NewWildcard(span source.Span) PatID {
	return p.new(PatWildcard, span, NoPayloadID)
}

// NewLit creates a literal pattern.
func (p *Pats) NewLit(span source.Span, value ExprID) PatID {
	payload := p.Lits.Allocate(PatLitData{Value: value})
	return p.new(PatLit, span, PayloadID(payload))
}

// Lit returns the literal data for the given pattern ID.
func (p *Pats) Lit(id PatID) (*PatLitData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatLit {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

// NewTuple creates a tuple pattern.
func (p *Pats) NewTuple(span source.Span, elements []PatID) PatID {
	payload := p.Tuples.Allocate(PatTupleData{
		Elements: append([]PatID(nil), elements...),
	})
	return p.new(PatTuple, span, PayloadID(payload))
}

// Tuple returns the tuple data for the given pattern ID.
func (p *Pats) Tuple(id PatID) (*PatTupleData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatTuple {
		return nil, false
	}
	return p.Tuples.Get(uint32(pat.Payload)), true
}

// NewRef creates a `&[mut] pat` pattern.
func (p *Pats) NewRef(span source.Span, mut bool, inner PatID) PatID {
	payload := p.Refs.Allocate(PatRefData{Mut: mut, Inner: inner})
	return p.new(PatRef, span, PayloadID(payload))
}

// Ref returns the reference data for the given pattern ID.
func (p *Pats) Ref(id PatID) (*PatRefData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRef {
		return nil, false
	}
	return p.Refs.Get(uint32(pat.Payload)), true
}

// NewPath creates a path pattern.
func (p *Pats) NewPath(span source.Span, segments []PathSeg) PatID {
	payload := p.Paths.Allocate(PatPathData{
		Segments: append([]PathSeg(nil), segments...),
	})
	return p.new(PatPath, span, PayloadID(payload))
}

// Path returns the path data for the given pattern ID.
func (p *Pats) Path(id PatID) (*PatPathData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatPath {
		return nil, false
	}
	return p.Paths.Get(uint32(pat.Payload)), true
}

// NewTupleStruct creates a `Path(elements)` pattern.
func (p *Pats) NewTupleStruct(span source.Span, segments []PathSeg, elements []PatID) PatID {
	payload := p.TupleStructs.Allocate(PatTupleStructData{
		Segments: append([]PathSeg(nil), segments...),
		Elements: append([]PatID(nil), elements...),
	})
	return p.new(PatTupleStruct, span, PayloadID(payload))
}

// TupleStruct returns the tuple-struct data for the given pattern ID.
func (p *Pats) TupleStruct(id PatID) (*PatTupleStructData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatTupleStruct {
		return nil, false
	}
	return p.TupleStructs.Get(uint32(pat.Payload)), true
}
