package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// parseExpr is the main entry point for expressions.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr implements Pratt parsing for binary operators.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break
		}

		opTok := p.advance()

		// Ranges allow an absent right side: `a..` .
		if opTok.Kind == token.DotDot || opTok.Kind == token.DotDotEq {
			inclusive := opTok.Kind == token.DotDotEq
			leftSpan := p.arenas.Exprs.Get(left).Span
			if !p.canStartExpr() {
				left = p.arenas.Exprs.NewRange(leftSpan.Cover(opTok.Span), left, ast.NoExprID, inclusive)
				continue
			}
			right, ok := p.parseBinaryExpr(prec + 1)
			if !ok {
				return ast.NoExprID, false
			}
			rightSpan := p.arenas.Exprs.Get(right).Span
			left = p.arenas.Exprs.NewRange(leftSpan.Cover(rightSpan), left, right, inclusive)
			continue
		}

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			p.err(diag.SynExpectExpression, "expected expression after binary operator")
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		leftSpan := p.arenas.Exprs.Get(left).Span
		rightSpan := p.arenas.Exprs.Get(right).Span
		left = p.arenas.Exprs.NewBinary(leftSpan.Cover(rightSpan), op, left, right)
	}

	return left, true
}

// canStartExpr reports whether the current token can begin an expression.
// Used where an operand is optional (range ends, return/break values).
func (p *Parser) canStartExpr() bool {
	switch p.lx.Peek().Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwIf, token.KwWhile, token.KwFor,
		token.KwLoop, token.KwMatch, token.KwReturn, token.KwBreak,
		token.KwContinue, token.KwMove, token.KwAsync, token.KwStatic,
		token.LParen, token.LBracket, token.LBrace, token.Pipe, token.OrOr,
		token.Minus, token.Bang, token.Star, token.Amp, token.DotDot, token.At:
		return true
	default:
		return false
	}
}

// parseUnaryExpr handles prefix operators.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp

	for {
		tok := p.lx.Peek()

		// `&` may be `&mut`.
		if tok.Kind == token.Amp {
			ampTok := p.advance()
			if p.at(token.KwMut) {
				mutTok := p.advance()
				prefixes = append(prefixes, prefixOp{
					op:   ast.ExprUnaryRefMut,
					span: ampTok.Span.Cover(mutTok.Span),
				})
			} else {
				prefixes = append(prefixes, prefixOp{
					op:   ast.ExprUnaryRef,
					span: ampTok.Span,
				})
			}
			continue
		}

		if op, ok := p.getUnaryOperator(tok.Kind); ok {
			opTok := p.advance()
			prefixes = append(prefixes, prefixOp{
				op:   op,
				span: opTok.Span,
			})
		} else {
			break
		}
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Apply prefixes right to left.
	for i := len(prefixes) - 1; i >= 0; i-- {
		exprSpan := p.arenas.Exprs.Get(expr).Span
		expr = p.arenas.Exprs.NewUnary(prefixes[i].span.Cover(exprSpan), prefixes[i].op, expr)
	}

	return expr, true
}

// parsePostfixExpr handles call, index and field postfixes.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			newExpr, ok := p.parseCallExpr(expr)
			if !ok {
				return ast.NoExprID, false
			}
			expr = newExpr

		case token.LBracket:
			newExpr, ok := p.parseIndexExpr(expr)
			if !ok {
				return ast.NoExprID, false
			}
			expr = newExpr

		case token.Dot:
			newExpr, ok := p.parseFieldExpr(expr)
			if !ok {
				return ast.NoExprID, false
			}
			expr = newExpr

		default:
			return expr, true
		}
	}
}

// parseCallExpr parses `target(args...)`.
func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // (

	var args []ast.ExprID
	trailing := false
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		trailing = p.at(token.RParen)
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after call arguments")
	if !ok {
		return ast.NoExprID, false
	}

	targetSpan := p.arenas.Exprs.Get(target).Span
	return p.arenas.Exprs.NewCall(targetSpan.Cover(rparen.Span), target, args, trailing), true
}

// parseIndexExpr parses `target[index]`.
func (p *Parser) parseIndexExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // [
	index, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	rbracket, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index expression")
	if !ok {
		return ast.NoExprID, false
	}
	targetSpan := p.arenas.Exprs.Get(target).Span
	return p.arenas.Exprs.NewIndex(targetSpan.Cover(rbracket.Span), target, index), true
}

// parseFieldExpr parses `target.name`.
func (p *Parser) parseFieldExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // .
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	targetSpan := p.arenas.Exprs.Get(target).Span
	return p.arenas.Exprs.NewField(targetSpan.Cover(nameSpan), target, name), true
}
