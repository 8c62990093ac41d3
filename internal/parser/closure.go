package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// atClosureStart reports whether the current position begins a closure:
// `@` (attribute), `async`, `static`, `|`, `||`, or `move` immediately
// followed by `|`/`||`.
func (p *Parser) atClosureStart() bool {
	switch p.lx.Peek().Kind {
	case token.At, token.KwAsync, token.KwStatic, token.Pipe, token.OrOr:
		return true
	case token.KwMove:
		k2 := p.lx.Peek2().Kind
		return k2 == token.Pipe || k2 == token.OrOr
	default:
		return false
	}
}

// parseClosureExpr parses `[@attrs] [async] [static] [move] |params| [-> Type] body`.
func (p *Parser) parseClosureExpr() (ast.ExprID, bool) {
	startSpan := p.lx.Peek().Span

	attrs, ok := p.parseAttrs()
	if !ok {
		return ast.NoExprID, false
	}

	data := ast.ExprClosureData{Attrs: attrs}
	for {
		switch p.lx.Peek().Kind {
		case token.KwAsync:
			p.advance()
			data.Async = true
			continue
		case token.KwStatic:
			p.advance()
			data.Static = true
			continue
		case token.KwMove:
			t := p.advance()
			data.Move = true
			data.MoveSpan = t.Span
			continue
		}
		break
	}

	params, ok := p.parseClosureParams()
	if !ok {
		return ast.NoExprID, false
	}
	data.Params = params

	if _, ok := p.eat(token.Arrow); ok {
		retType, rok := p.collectTypeTokens(token.LBrace)
		if !rok {
			return ast.NoExprID, false
		}
		data.RetType = retType
		// An annotated return type requires a block body.
		body, bok := p.parseBlockExpr()
		if !bok {
			return ast.NoExprID, false
		}
		data.Body = body
	} else {
		body, bok := p.parseExpr()
		if !bok {
			return ast.NoExprID, false
		}
		data.Body = body
	}

	span := startSpan.Cover(p.arenas.Exprs.Get(data.Body).Span)
	return p.arenas.Exprs.NewClosure(span, data), true
}

// parseClosureParams parses `||` or `|pat [: Type], ...|`.
func (p *Parser) parseClosureParams() ([]ast.ClosureParam, bool) {
	if _, ok := p.eat(token.OrOr); ok {
		return nil, true
	}
	if _, ok := p.expect(token.Pipe, diag.SynExpectClosure, "expected '|' to begin closure parameters"); !ok {
		return nil, false
	}

	var params []ast.ClosureParam
	for !p.at(token.Pipe) {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		param := ast.ClosureParam{Pat: pat}
		if _, ok := p.eat(token.Colon); ok {
			tt, tok := p.collectTypeTokens(token.Comma, token.Pipe)
			if !tok {
				return nil, false
			}
			param.TypeTokens = tt
		}
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.Pipe, diag.SynExpectClosure, "expected '|' to close closure parameters"); !ok {
		return nil, false
	}
	return params, true
}

// parseAttrs parses a run of `@name` / `@name(tts)` attributes.
func (p *Parser) parseAttrs() ([]ast.Attr, bool) {
	var attrs []ast.Attr
	for p.at(token.At) {
		atTok := p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		attr := ast.Attr{Name: name, Span: atTok.Span.Cover(nameSpan)}
		if p.at(token.LParen) {
			p.advance()
			args, argSpan, aok := p.parseTokenTreesUntil(token.RParen)
			if !aok {
				return nil, false
			}
			attr.Args = args
			attr.Span = attr.Span.Cover(argSpan)
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// parseMacroCallExpr parses the `!(...)` tail of a macro invocation. The
// leading path and its span are supplied by the caller.
func (p *Parser) parseMacroCallExpr(segs []ast.PathSeg, pathSpan source.Span) (ast.ExprID, bool) {
	p.advance() // !

	var delim ast.Delim
	var closer token.Kind
	switch p.lx.Peek().Kind {
	case token.LParen:
		delim, closer = ast.DelimParen, token.RParen
	case token.LBracket:
		delim, closer = ast.DelimBracket, token.RBracket
	case token.LBrace:
		delim, closer = ast.DelimBrace, token.RBrace
	default:
		p.err(diag.SynUnexpectedToken, "expected '(', '[' or '{' after macro name")
		return ast.NoExprID, false
	}
	p.advance()

	body, bodySpan, ok := p.parseTokenTreesUntil(closer)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMacroCall(pathSpan.Cover(bodySpan), segs, delim, body), true
}

// parseTokenTreesUntil collects raw token trees up to and including the
// closing delimiter. The returned span covers through the closer.
func (p *Parser) parseTokenTreesUntil(closer token.Kind) ([]ast.TokenTree, source.Span, bool) {
	var trees []ast.TokenTree
	span := p.getDiagnosticSpan()
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			p.err(diag.SynUnclosedDelimiter, "unclosed delimiter in macro input")
			return nil, span, false
		}
		if tok.Kind == closer {
			t := p.advance()
			return trees, span.Cover(t.Span), true
		}
		tree, ok := p.parseTokenTree()
		if !ok {
			return nil, span, false
		}
		trees = append(trees, tree)
		span = span.Cover(tree.Span)
	}
}

func (p *Parser) parseTokenTree() (ast.TokenTree, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LParen, token.LBracket, token.LBrace:
		open := p.advance()
		var delim ast.Delim
		var closer token.Kind
		switch open.Kind {
		case token.LBracket:
			delim, closer = ast.DelimBracket, token.RBracket
		case token.LBrace:
			delim, closer = ast.DelimBrace, token.RBrace
		default:
			delim, closer = ast.DelimParen, token.RParen
		}
		children, childSpan, ok := p.parseTokenTreesUntil(closer)
		if !ok {
			return ast.TokenTree{}, false
		}
		return ast.TokenTree{
			Kind:     ast.TTGroup,
			Delim:    delim,
			Span:     open.Span.Cover(childSpan),
			Children: children,
		}, true

	case token.RParen, token.RBracket, token.RBrace:
		p.err(diag.SynUnexpectedToken, "unexpected closing delimiter")
		return ast.TokenTree{}, false

	default:
		t := p.advance()
		return ast.TokenTree{
			Kind:    ast.TTLeaf,
			Tok:     t,
			Hygiene: source.CallSite,
			Span:    t.Span,
		}, true
	}
}
