package format

import (
	"github.com/JakobDegen/captures/internal/ast"
)

func (p *printer) printClosureExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Closure(id)
	if !ok {
		return
	}
	for i := range data.Attrs {
		p.printAttr(&data.Attrs[i])
		p.writer.Space()
	}
	if data.Async {
		p.writer.WriteString("async ")
	}
	if data.Static {
		p.writer.WriteString("static ")
	}
	if data.Move {
		p.writer.WriteString("move ")
	}
	p.writer.WriteString("|")
	for i := range data.Params {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printPat(data.Params[i].Pat)
		if len(data.Params[i].TypeTokens) > 0 {
			p.writer.WriteString(": ")
			p.printTokens(data.Params[i].TypeTokens)
		}
	}
	p.writer.WriteString("|")
	if len(data.RetType) > 0 {
		p.writer.WriteString(" -> ")
		p.printTokens(data.RetType)
	}
	p.writer.Space()
	p.printBlockLike(data.Body)
}

func (p *printer) printAttr(attr *ast.Attr) {
	p.writer.WriteString("@")
	p.writer.WriteString(p.string(attr.Name))
	if attr.Args != nil {
		p.writer.WriteString("(")
		p.printTokenTrees(attr.Args)
		p.writer.WriteString(")")
	}
}

func (p *printer) printMacroCallExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.MacroCall(id)
	if !ok {
		return
	}
	p.printPathSegs(data.Segments)
	p.writer.WriteString("!")
	if err := p.writer.WriteByte(data.Delim.Open()); err != nil {
		panic(err)
	}
	p.printTokenTrees(data.Body)
	if err := p.writer.WriteByte(data.Delim.Close()); err != nil {
		panic(err)
	}
}
