package format

import (
	"github.com/JakobDegen/captures/internal/ast"
)

func (p *printer) printPat(id ast.PatID) {
	if !id.IsValid() {
		return
	}
	pat := p.builder.Pats.Get(id)
	if pat == nil {
		return
	}

	switch pat.Kind {
	case ast.PatIdent:
		if data, ok := p.builder.Pats.Ident(id); ok {
			if data.Ref {
				p.writer.WriteString("ref ")
			}
			if data.Mut {
				p.writer.WriteString("mut ")
			}
			p.writer.WriteString(p.ident(data.Name, data.Hygiene))
		}
	case ast.PatWildcard:
		p.writer.WriteString("_")
	case ast.PatLit:
		if data, ok := p.builder.Pats.Lit(id); ok {
			p.printExpr(data.Value)
		}
	case ast.PatTuple:
		if data, ok := p.builder.Pats.Tuple(id); ok {
			p.writer.WriteString("(")
			for i, el := range data.Elements {
				if i > 0 {
					p.writer.WriteString(", ")
				}
				p.printPat(el)
			}
			if len(data.Elements) == 1 {
				p.writer.WriteString(",")
			}
			p.writer.WriteString(")")
		}
	case ast.PatRef:
		if data, ok := p.builder.Pats.Ref(id); ok {
			if data.Mut {
				p.writer.WriteString("&mut ")
			} else {
				p.writer.WriteString("&")
			}
			p.printPat(data.Inner)
		}
	case ast.PatPath:
		if data, ok := p.builder.Pats.Path(id); ok {
			p.printPathSegs(data.Segments)
		}
	case ast.PatTupleStruct:
		if data, ok := p.builder.Pats.TupleStruct(id); ok {
			p.printPathSegs(data.Segments)
			p.writer.WriteString("(")
			for i, el := range data.Elements {
				if i > 0 {
					p.writer.WriteString(", ")
				}
				p.printPat(el)
			}
			p.writer.WriteString(")")
		}
	}
}
