package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/token"
)

// parsePrimaryExpr dispatches on the first token of an atom.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.IntLit:
		t := p.advance()
		return p.arenas.Exprs.NewLiteral(t.Span, ast.ExprLitInt, p.arenas.Strings.Intern(t.Text)), true
	case token.FloatLit:
		t := p.advance()
		return p.arenas.Exprs.NewLiteral(t.Span, ast.ExprLitFloat, p.arenas.Strings.Intern(t.Text)), true
	case token.StringLit:
		t := p.advance()
		return p.arenas.Exprs.NewLiteral(t.Span, ast.ExprLitString, p.arenas.Strings.Intern(t.Text)), true
	case token.KwTrue:
		t := p.advance()
		return p.arenas.Exprs.NewLiteral(t.Span, ast.ExprLitTrue, p.arenas.Strings.Intern(t.Text)), true
	case token.KwFalse:
		t := p.advance()
		return p.arenas.Exprs.NewLiteral(t.Span, ast.ExprLitFalse, p.arenas.Strings.Intern(t.Text)), true

	case token.Ident:
		return p.parsePathOrMacroExpr()

	case token.LParen:
		return p.parseParenExpr()

	case token.LBracket:
		return p.parseArrayExpr()

	case token.LBrace:
		return p.parseBlockExpr()

	case token.KwIf:
		return p.parseIfExpr()
	case token.KwWhile:
		return p.parseWhileExpr()
	case token.KwFor:
		return p.parseForExpr()
	case token.KwLoop:
		return p.parseLoopExpr()
	case token.KwMatch:
		return p.parseMatchExpr()

	case token.KwReturn:
		t := p.advance()
		value := ast.NoExprID
		span := t.Span
		if p.canStartExpr() {
			v, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			value = v
			span = span.Cover(p.arenas.Exprs.Get(v).Span)
		}
		return p.arenas.Exprs.NewReturn(span, value), true

	case token.KwBreak:
		t := p.advance()
		value := ast.NoExprID
		span := t.Span
		if p.canStartExpr() {
			v, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			value = v
			span = span.Cover(p.arenas.Exprs.Get(v).Span)
		}
		return p.arenas.Exprs.NewBreak(span, value), true

	case token.KwContinue:
		t := p.advance()
		return p.arenas.Exprs.NewContinue(t.Span), true

	case token.DotDot, token.DotDotEq:
		// Prefix range `..x`, `..=x` or a bare `..`.
		t := p.advance()
		inclusive := t.Kind == token.DotDotEq
		end := ast.NoExprID
		span := t.Span
		if p.canStartExpr() {
			v, ok := p.parseBinaryExpr(precRange + 1)
			if !ok {
				return ast.NoExprID, false
			}
			end = v
			span = span.Cover(p.arenas.Exprs.Get(v).Span)
		}
		return p.arenas.Exprs.NewRange(span, ast.NoExprID, end, inclusive), true

	case token.At, token.Pipe, token.OrOr, token.KwMove, token.KwAsync, token.KwStatic:
		return p.parseClosureExpr()

	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
}

// parsePathOrMacroExpr parses an identifier, a `::` path, or a macro
// invocation `path!(...)`.
func (p *Parser) parsePathOrMacroExpr() (ast.ExprID, bool) {
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
			return ast.NoExprID, false
		}
		segs = append(segs, ast.PathSeg{Name: name, Span: nameSpan})
		span = span.Cover(nameSpan)
	}

	if p.at(token.Bang) {
		return p.parseMacroCallExpr(segs, span)
	}

	if len(segs) == 1 {
		return p.arenas.Exprs.NewIdent(span, segs[0].Name), true
	}
	return p.arenas.Exprs.NewPath(span, segs), true
}

// parseParenExpr parses `(expr)`, `()` and tuples `(a, b)`.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	lparen := p.advance()

	if rparen, ok := p.eat(token.RParen); ok {
		return p.arenas.Exprs.NewTuple(lparen.Span.Cover(rparen.Span), nil, false), true
	}

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	if !p.at(token.Comma) {
		rparen, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(lparen.Span.Cover(rparen.Span), first), true
	}

	elements := []ast.ExprID{first}
	trailing := false
	for {
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		if p.at(token.RParen) {
			trailing = true
			break
		}
		el, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elements = append(elements, el)
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after tuple elements")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewTuple(lparen.Span.Cover(rparen.Span), elements, trailing), true
}

// parseArrayExpr parses `[a, b, c]`.
func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	lbracket := p.advance()

	var elements []ast.ExprID
	for !p.at(token.RBracket) {
		el, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elements = append(elements, el)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	rbracket, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after array elements")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(lbracket.Span.Cover(rbracket.Span), elements), true
}
