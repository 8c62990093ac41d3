package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/token"
)

// parseIfExpr parses `if [let pat =] cond block [else (block|if)]`.
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	ifTok := p.advance()

	pat := ast.NoPatID
	if _, ok := p.eat(token.KwLet); ok {
		pt, ok := p.parsePattern()
		if !ok {
			return ast.NoExprID, false
		}
		pat = pt
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after let pattern"); !ok {
			return ast.NoExprID, false
		}
	}

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	then, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}

	els := ast.NoExprID
	span := ifTok.Span.Cover(p.arenas.Exprs.Get(then).Span)
	if _, ok := p.eat(token.KwElse); ok {
		var e ast.ExprID
		var eok bool
		if p.at(token.KwIf) {
			e, eok = p.parseIfExpr()
		} else {
			e, eok = p.parseBlockExpr()
		}
		if !eok {
			return ast.NoExprID, false
		}
		els = e
		span = span.Cover(p.arenas.Exprs.Get(e).Span)
	}

	return p.arenas.Exprs.NewIf(span, pat, cond, then, els), true
}

// parseWhileExpr parses `while [let pat =] cond block`.
func (p *Parser) parseWhileExpr() (ast.ExprID, bool) {
	whileTok := p.advance()

	pat := ast.NoPatID
	if _, ok := p.eat(token.KwLet); ok {
		pt, ok := p.parsePattern()
		if !ok {
			return ast.NoExprID, false
		}
		pat = pt
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after let pattern"); !ok {
			return ast.NoExprID, false
		}
	}

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := whileTok.Span.Cover(p.arenas.Exprs.Get(body).Span)
	return p.arenas.Exprs.NewWhile(span, pat, cond, body), true
}

// parseForExpr parses `for pat in iter block`.
func (p *Parser) parseForExpr() (ast.ExprID, bool) {
	forTok := p.advance()

	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after for pattern"); !ok {
		return ast.NoExprID, false
	}
	iter, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := forTok.Span.Cover(p.arenas.Exprs.Get(body).Span)
	return p.arenas.Exprs.NewFor(span, pat, iter, body), true
}

// parseLoopExpr parses `loop block`.
func (p *Parser) parseLoopExpr() (ast.ExprID, bool) {
	loopTok := p.advance()
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := loopTok.Span.Cover(p.arenas.Exprs.Get(body).Span)
	return p.arenas.Exprs.NewLoop(span, body), true
}

// parseMatchExpr parses `match scrutinee { arms }`.
func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	matchTok := p.advance()

	scrutinee, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after match scrutinee"); !ok {
		return ast.NoExprID, false
	}

	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		arm, ok := p.parseMatchArm()
		if !ok {
			return ast.NoExprID, false
		}
		arms = append(arms, arm)
		// A comma is required between arms unless the body was a block.
		if _, ok := p.eat(token.Comma); !ok {
			if !p.at(token.RBrace) && !p.isBlockish(arm.Body) {
				p.err(diag.SynExpectComma, "expected ',' between match arms")
				return ast.NoExprID, false
			}
		}
	}
	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after match arms")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMatch(matchTok.Span.Cover(rbrace.Span), scrutinee, arms), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	pat, ok := p.parsePattern()
	if !ok {
		return ast.MatchArm{}, false
	}
	guard := ast.NoExprID
	if _, ok := p.eat(token.KwIf); ok {
		g, gok := p.parseExpr()
		if !gok {
			return ast.MatchArm{}, false
		}
		guard = g
	}
	if _, ok := p.expect(token.FatArrow, diag.SynExpectMatchArm, "expected '=>' after match pattern"); !ok {
		return ast.MatchArm{}, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.MatchArm{}, false
	}
	span := p.arenas.Pats.Get(pat).Span.Cover(p.arenas.Exprs.Get(body).Span)
	return ast.MatchArm{Pat: pat, Guard: guard, Body: body, Span: span}, true
}

// isBlockish reports whether the expression ends with a brace and can stand
// as a statement without a semicolon.
func (p *Parser) isBlockish(id ast.ExprID) bool {
	expr := p.arenas.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprBlock, ast.ExprIf, ast.ExprWhile, ast.ExprFor, ast.ExprLoop, ast.ExprMatch:
		return true
	default:
		return false
	}
}
