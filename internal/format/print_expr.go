package format

import (
	"github.com/JakobDegen/captures/internal/ast"
)

func (p *printer) printExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	expr := p.builder.Exprs.Get(id)
	if expr == nil {
		return
	}

	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := p.builder.Exprs.Ident(id); ok {
			p.writer.WriteString(p.ident(data.Name, data.Hygiene))
		}
	case ast.ExprPath:
		if data, ok := p.builder.Exprs.Path(id); ok {
			p.printPathSegs(data.Segments)
		}
	case ast.ExprLit:
		if data, ok := p.builder.Exprs.Literal(id); ok {
			p.writer.WriteString(p.string(data.Value))
		}
	case ast.ExprUnary:
		p.printUnaryExpr(id)
	case ast.ExprBinary:
		p.printBinaryExpr(id)
	case ast.ExprCall:
		p.printCallExpr(id)
	case ast.ExprField:
		if data, ok := p.builder.Exprs.Field(id); ok {
			p.printExpr(data.Target)
			p.writer.WriteString(".")
			p.writer.WriteString(p.string(data.Field))
		}
	case ast.ExprIndex:
		if data, ok := p.builder.Exprs.Index(id); ok {
			p.printExpr(data.Target)
			p.writer.WriteString("[")
			p.printExpr(data.Index)
			p.writer.WriteString("]")
		}
	case ast.ExprGroup:
		if data, ok := p.builder.Exprs.Group(id); ok {
			p.writer.WriteString("(")
			p.printExpr(data.Inner)
			p.writer.WriteString(")")
		}
	case ast.ExprTuple:
		p.printTupleExpr(id)
	case ast.ExprArray:
		if data, ok := p.builder.Exprs.Array(id); ok {
			p.writer.WriteString("[")
			for i, el := range data.Elements {
				if i > 0 {
					p.writer.WriteString(", ")
				}
				p.printExpr(el)
			}
			p.writer.WriteString("]")
		}
	case ast.ExprRange:
		if data, ok := p.builder.Exprs.Range(id); ok {
			p.printExpr(data.Start)
			if data.Inclusive {
				p.writer.WriteString("..=")
			} else {
				p.writer.WriteString("..")
			}
			p.printExpr(data.End)
		}
	case ast.ExprBlock:
		p.printBlockExpr(id)
	case ast.ExprIf:
		p.printIfExpr(id)
	case ast.ExprWhile:
		p.printWhileExpr(id)
	case ast.ExprFor:
		p.printForExpr(id)
	case ast.ExprLoop:
		if data, ok := p.builder.Exprs.Loop(id); ok {
			p.writer.WriteString("loop ")
			p.printBlockLike(data.Body)
		}
	case ast.ExprMatch:
		p.printMatchExpr(id)
	case ast.ExprClosure:
		p.printClosureExpr(id)
	case ast.ExprMacroCall:
		p.printMacroCallExpr(id)
	case ast.ExprReturn:
		if data, ok := p.builder.Exprs.Return(id); ok {
			p.writer.WriteString("return")
			if data.Value.IsValid() {
				p.writer.Space()
				p.printExpr(data.Value)
			}
		}
	case ast.ExprBreak:
		if data, ok := p.builder.Exprs.Break(id); ok {
			p.writer.WriteString("break")
			if data.Value.IsValid() {
				p.writer.Space()
				p.printExpr(data.Value)
			}
		}
	case ast.ExprContinue:
		p.writer.WriteString("continue")
	}
}

func (p *printer) printUnaryExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Unary(id)
	if !ok {
		return
	}
	p.writer.WriteString(data.Op.String())
	p.printExpr(data.Operand)
}

func (p *printer) printBinaryExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Binary(id)
	if !ok {
		return
	}
	p.printExpr(data.Left)
	p.writer.Space()
	p.writer.WriteString(data.Op.String())
	p.writer.Space()
	p.printExpr(data.Right)
}

func (p *printer) printCallExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Call(id)
	if !ok {
		return
	}
	p.printExpr(data.Target)
	p.writer.WriteString("(")
	for i, arg := range data.Args {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(arg)
	}
	if data.HasTrailingComma && len(data.Args) > 0 {
		p.writer.WriteString(",")
	}
	p.writer.WriteString(")")
}

func (p *printer) printTupleExpr(id ast.ExprID) {
	data, ok := p.builder.Exprs.Tuple(id)
	if !ok {
		return
	}
	p.writer.WriteString("(")
	for i, el := range data.Elements {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(el)
	}
	// A one-element tuple keeps its comma so it re-parses as a tuple.
	if len(data.Elements) == 1 || (data.HasTrailingComma && len(data.Elements) > 0) {
		p.writer.WriteString(",")
	}
	p.writer.WriteString(")")
}

func (p *printer) printPathSegs(segments []ast.PathSeg) {
	for i, seg := range segments {
		if i > 0 {
			p.writer.WriteString("::")
		}
		p.writer.WriteString(p.string(seg.Name))
	}
}
