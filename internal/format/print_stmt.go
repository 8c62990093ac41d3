package format

import (
	"github.com/JakobDegen/captures/internal/ast"
)

func (p *printer) printStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	stmt := p.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}

	switch stmt.Kind {
	case ast.StmtLet:
		if data, ok := p.builder.Stmts.Let(id); ok {
			p.printLetStmt(data)
		}
	case ast.StmtExpr:
		if data, ok := p.builder.Stmts.Expr(id); ok {
			p.printExpr(data.Expr)
			if data.HasSemi {
				p.writer.WriteString(";")
			}
		}
	case ast.StmtEmpty:
		p.writer.WriteString(";")
	}
}

func (p *printer) printLetStmt(data *ast.StmtLetData) {
	p.writer.WriteString("let ")
	p.printPat(data.Pat)
	if len(data.TypeTokens) > 0 {
		p.writer.WriteString(": ")
		p.printTokens(data.TypeTokens)
	}
	if data.Init.IsValid() {
		p.writer.WriteString(" = ")
		p.printExpr(data.Init)
	}
	p.writer.WriteString(";")
}
