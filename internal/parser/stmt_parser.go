package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/token"
)

// parseBlockExpr parses `{ stmt* [tail-expr] }` into a block expression.
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	lbrace, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return ast.NoExprID, false
	}

	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoExprID, false
		}
		stmts = append(stmts, stmt)
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBlock(lbrace.Span.Cover(rbrace.Span), stmts), true
}

// parseStmt parses one statement inside a block.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.Semicolon:
		t := p.advance()
		return p.arenas.Stmts.NewEmpty(t.Span), true

	case token.KwLet:
		return p.parseLetStmt()

	default:
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		span := p.arenas.Exprs.Get(expr).Span
		if semi, ok := p.eat(token.Semicolon); ok {
			return p.arenas.Stmts.NewExpr(span.Cover(semi.Span), expr, true), true
		}
		// Without a semicolon the expression must either end with a brace
		// or be the block's tail.
		if !p.at(token.RBrace) && !p.isBlockish(expr) {
			p.err(diag.SynExpectSemicolon, "expected ';' after expression statement")
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExpr(span, expr, false), true
	}
}

// parseLetStmt parses `let pat [: Type] [= expr] ;`.
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance()

	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoStmtID, false
	}

	var typeTokens []token.Token
	if _, ok := p.eat(token.Colon); ok {
		typeTokens, ok = p.collectTypeTokens(token.Assign, token.Semicolon)
		if !ok {
			return ast.NoStmtID, false
		}
	}

	init := ast.NoExprID
	if _, ok := p.eat(token.Assign); ok {
		v, vok := p.parseExpr()
		if !vok {
			return ast.NoStmtID, false
		}
		init = v
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLet(letTok.Span.Cover(semi.Span), pat, typeTokens, init), true
}

// collectTypeTokens consumes raw type annotation tokens until one of the
// stop kinds at bracket depth zero. Types are never inspected beyond this.
func (p *Parser) collectTypeTokens(stop ...token.Kind) ([]token.Token, bool) {
	var out []token.Token
	depth := 0
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			p.err(diag.SynUnexpectedToken, "unexpected end of input in type annotation")
			return nil, false
		}
		if depth == 0 {
			for _, k := range stop {
				if tok.Kind == k {
					if len(out) == 0 {
						p.err(diag.SynUnexpectedToken, "expected type after ':'")
						return nil, false
					}
					return out, true
				}
			}
		}
		if tok.OpensGroup() {
			depth++
		}
		if tok.ClosesGroup() {
			if depth == 0 {
				if len(out) == 0 {
					p.err(diag.SynUnexpectedToken, "expected type after ':'")
					return nil, false
				}
				return out, true
			}
			depth--
		}
		out = append(out, p.advance())
	}
}
