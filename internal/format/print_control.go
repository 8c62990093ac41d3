package format

import (
	"github.com/JakobDegen/captures/internal/ast"
)

func (p *printer) printBlockExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Block(id)
	if !ok {
		return
	}
	if len(data.Stmts) == 0 {
		p.writer.WriteString("{}")
		return
	}
	p.writer.WriteString("{")
	p.writer.Newline()
	p.writer.IndentPush()
	for _, stmt := range data.Stmts {
		p.printStmt(stmt)
		p.writer.Newline()
	}
	p.writer.IndentPop()
	p.writer.WriteString("}")
}

// printBlockLike prints an expression expected to be a block; anything else
// is wrapped in braces so control-flow bodies always have block form.
func (p *printer) printBlockLike(id ast.ExprID) {
	if expr := p.builder.Exprs.Get(id); expr != nil && expr.Kind == ast.ExprBlock {
		p.printBlockExpr(id)
		return
	}
	p.writer.WriteString("{")
	p.writer.Newline()
	p.writer.IndentPush()
	p.printExpr(id)
	p.writer.Newline()
	p.writer.IndentPop()
	p.writer.WriteString("}")
}

func (p *printer) printIfExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.If(id)
	if !ok {
		return
	}
	p.writer.WriteString("if ")
	if data.Pat.IsValid() {
		p.writer.WriteString("let ")
		p.printPat(data.Pat)
		p.writer.WriteString(" = ")
	}
	p.printExpr(data.Cond)
	p.writer.Space()
	p.printBlockLike(data.Then)
	if data.Else.IsValid() {
		p.writer.WriteString(" else ")
		if els := p.builder.Exprs.Get(data.Else); els != nil && els.Kind == ast.ExprIf {
			p.printIfExpr(data.Else)
		} else {
			p.printBlockLike(data.Else)
		}
	}
}

func (p *printer) printWhileExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.While(id)
	if !ok {
		return
	}
	p.writer.WriteString("while ")
	if data.Pat.IsValid() {
		p.writer.WriteString("let ")
		p.printPat(data.Pat)
		p.writer.WriteString(" = ")
	}
	p.printExpr(data.Cond)
	p.writer.Space()
	p.printBlockLike(data.Body)
}

func (p *printer) printForExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.For(id)
	if !ok {
		return
	}
	p.writer.WriteString("for ")
	p.printPat(data.Pat)
	p.writer.WriteString(" in ")
	p.printExpr(data.Iter)
	p.writer.Space()
	p.printBlockLike(data.Body)
}

func (p *printer) printMatchExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Match(id)
	if !ok {
		return
	}
	p.writer.WriteString("match ")
	p.printExpr(data.Scrutinee)
	p.writer.WriteString(" {")
	p.writer.Newline()
	p.writer.IndentPush()
	for _, arm := range data.Arms {
		p.printPat(arm.Pat)
		if arm.Guard.IsValid() {
			p.writer.WriteString(" if ")
			p.printExpr(arm.Guard)
		}
		p.writer.WriteString(" => ")
		p.printExpr(arm.Body)
		p.writer.WriteString(",")
		p.writer.Newline()
	}
	p.writer.IndentPop()
	p.writer.WriteString("}")
}
