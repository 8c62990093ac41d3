package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/token"
)

// parsePattern parses one pattern. Identifier patterns are the only
// binding-introduction sites in the language.
func (p *Parser) parsePattern() (ast.PatID, bool) {
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.Underscore:
		t := p.advance()
		return p.arenas.Pats.NewWildcard(t.Span), true

	case token.KwRef:
		refTok := p.advance()
		mut := false
		if _, ok := p.eat(token.KwMut); ok {
			mut = true
		}
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewIdent(refTok.Span.Cover(nameSpan), name, true, mut), true

	case token.KwMut:
		mutTok := p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewIdent(mutTok.Span.Cover(nameSpan), name, false, true), true

	case token.Amp:
		ampTok := p.advance()
		mut := false
		if _, ok := p.eat(token.KwMut); ok {
			mut = true
		}
		inner, ok := p.parsePattern()
		if !ok {
			return ast.NoPatID, false
		}
		span := ampTok.Span.Cover(p.arenas.Pats.Get(inner).Span)
		return p.arenas.Pats.NewRef(span, mut, inner), true

	case token.LParen:
		return p.parseTuplePattern()

	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.Minus:
		return p.parseLiteralPattern()

	case token.Ident:
		return p.parsePathPattern()

	default:
		p.err(diag.SynExpectPattern, "expected pattern, got \""+tok.Text+"\"")
		return ast.NoPatID, false
	}
}

func (p *Parser) parseTuplePattern() (ast.PatID, bool) {
	lparen := p.advance()

	var elements []ast.PatID
	for !p.at(token.RParen) {
		el, ok := p.parsePattern()
		if !ok {
			return ast.NoPatID, false
		}
		elements = append(elements, el)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after tuple pattern")
	if !ok {
		return ast.NoPatID, false
	}
	return p.arenas.Pats.NewTuple(lparen.Span.Cover(rparen.Span), elements), true
}

func (p *Parser) parseLiteralPattern() (ast.PatID, bool) {
	neg, negOk := p.eat(token.Minus)

	t := p.advance()
	var kind ast.ExprLitKind
	switch t.Kind {
	case token.IntLit:
		kind = ast.ExprLitInt
	case token.FloatLit:
		kind = ast.ExprLitFloat
	case token.StringLit:
		kind = ast.ExprLitString
	case token.KwTrue:
		kind = ast.ExprLitTrue
	case token.KwFalse:
		kind = ast.ExprLitFalse
	default:
		p.errAt(diag.SynExpectPattern, t.Span, "expected literal pattern")
		return ast.NoPatID, false
	}

	lit := p.arenas.Exprs.NewLiteral(t.Span, kind, p.arenas.Strings.Intern(t.Text))
	value := lit
	span := t.Span
	if negOk {
		span = neg.Span.Cover(t.Span)
		value = p.arenas.Exprs.NewUnary(span, ast.ExprUnaryNeg, lit)
	}
	return p.arenas.Pats.NewLit(span, value), true
}

// parsePathPattern parses an identifier binding, a path pattern, or a
// tuple-struct pattern `Path(p, q)`.
func (p *Parser) parsePathPattern() (ast.PatID, bool) {
	first := p.advance()
	segs := []ast.PathSeg{{
		Name: p.arenas.Strings.Intern(first.Text),
		Span: first.Span,
	}}
	span := first.Span

	for p.at(token.ColonColon) {
		p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoPatID, false
		}
		segs = append(segs, ast.PathSeg{Name: name, Span: nameSpan})
		span = span.Cover(nameSpan)
	}

	if p.at(token.LParen) {
		p.advance()
		var elements []ast.PatID
		for !p.at(token.RParen) {
			el, ok := p.parsePattern()
			if !ok {
				return ast.NoPatID, false
			}
			elements = append(elements, el)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		rparen, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after tuple struct pattern")
		if !ok {
			return ast.NoPatID, false
		}
		return p.arenas.Pats.NewTupleStruct(span.Cover(rparen.Span), segs, elements), true
	}

	if len(segs) == 1 {
		return p.arenas.Pats.NewIdent(span, segs[0].Name, false, false), true
	}
	return p.arenas.Pats.NewPath(span, segs), true
}
