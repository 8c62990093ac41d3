package parser

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

// DirectiveKind enumerates the capture directive forms.
type DirectiveKind uint8

const (
	// DirectiveRef is `ref [mut] x`; the mutability applies to the reference.
	DirectiveRef DirectiveKind = iota
	// DirectiveClone is `clone [mut] x`; the mutability applies to the new
	// binding.
	DirectiveClone
	// DirectiveWith is `with [mut] x = expr`.
	DirectiveWith
	// DirectiveAll is `all x`; no mutability allowed.
	DirectiveAll
)

// String returns the directive's keyword.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveRef:
		return "ref"
	case DirectiveClone:
		return "clone"
	case DirectiveWith:
		return "with"
	case DirectiveAll:
		return "all"
	default:
		return "directive(?)"
	}
}

// Directive is one parsed capture directive.
type Directive struct {
	Kind        DirectiveKind
	Mut         bool
	Name        source.StringID
	NameSpan    source.Span
	KeywordSpan source.Span
	Expr        ast.ExprID // DirectiveWith only
}

// CaptureInput is the whole parsed input of a capture invocation:
// `(directive ',')* closure`.
type CaptureInput struct {
	Assigned []Directive // ref/clone/with, in source order
	All      []Directive // all directives, in source order
	Closure  ast.ExprID
}

const expectedDirectiveMsg = "expected `ref`, `clone`, `with`, or `all`"

// ParseCaptureInput parses directives followed by a closure. All problems are
// reported through the reporter; parsing continues past malformed directives
// so a single invocation lists every one of them. ok is false when any error
// was recorded.
func ParseCaptureInput(file *source.File, lx *lexer.Lexer, arenas *ast.Builder, opts Options) (CaptureInput, *Parser, bool) {
	p := New(file, lx, arenas, opts)
	in, ok := p.parseCaptureInput()
	return in, p, ok
}

func (p *Parser) parseCaptureInput() (CaptureInput, bool) {
	startErrors := p.opts.CurrentErrors

	var in CaptureInput
	found := make(map[source.StringID]source.Span)
	needsMove := false

	for !p.at(token.EOF) && !p.atClosureStart() {
		dir, ok := p.parseDirective()
		if !ok {
			// Recover at the next top-level comma and keep collecting
			// errors from the remaining directives.
			p.skipPastComma()
			continue
		}

		switch dir.Kind {
		case DirectiveAll:
			in.All = append(in.All, dir)
		default:
			if dir.Kind == DirectiveClone || dir.Kind == DirectiveWith {
				needsMove = true
			}
			in.Assigned = append(in.Assigned, dir)
		}

		if prev, dup := found[dir.Name]; dup {
			name := p.arenas.Strings.MustLookup(dir.Name)
			p.reportNotes(diag.CapDuplicateDirective, diag.SevError, dir.NameSpan,
				"cannot supply multiple directives for `"+name+"`",
				[]diag.Note{{Span: prev, Msg: "first directive for `" + name + "` here"}})
		} else {
			found[dir.Name] = dir.NameSpan
		}

		if _, ok := p.eat(token.Comma); !ok {
			p.err(diag.SynExpectComma, "expected ','")
		}
	}

	closure, ok := p.parseClosureExpr()
	if !ok {
		return in, false
	}
	in.Closure = closure
	data, isClosure := p.arenas.Exprs.Closure(closure)
	if !isClosure {
		p.err(diag.SynExpectClosure, "expected closure expression")
		return in, false
	}

	if needsMove && !data.Move {
		data.Move = true
	}
	if !data.Move {
		for _, dir := range in.Assigned {
			if dir.Kind == DirectiveRef {
				p.errAt(diag.CapRefRequiresMove, dir.KeywordSpan,
					"`ref` directives only allowed on `move` closures")
			}
		}
	}

	if len(data.Attrs) != 0 {
		p.errAt(diag.CapClosureAttrs, data.Attrs[0].Span,
			"attributes are not allowed on the closure inside a capture expansion")
	}
	if !p.at(token.EOF) {
		p.err(diag.CapExpectInputEnd, "expected macro input to end")
	}

	return in, p.opts.CurrentErrors == startErrors
}

// parseDirective parses one directive. `clone`, `with` and `all` are matched
// as plain identifiers; only `ref` is a real keyword.
func (p *Parser) parseDirective() (Directive, bool) {
	switch p.lx.Peek().Kind {
	case token.KwRef:
		refTok := p.advance()
		mut := false
		if _, ok := p.eat(token.KwMut); ok {
			mut = true
		}
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return Directive{}, false
		}
		return Directive{
			Kind:        DirectiveRef,
			Mut:         mut,
			Name:        name,
			NameSpan:    nameSpan,
			KeywordSpan: refTok.Span,
		}, true

	case token.Ident:
		word := p.advance()
		var mutSpan source.Span
		mut := false
		if mutTok, ok := p.eat(token.KwMut); ok {
			mut = true
			mutSpan = mutTok.Span
		}

		switch word.Text {
		case "clone":
			name, nameSpan, ok := p.parseIdent()
			if !ok {
				return Directive{}, false
			}
			return Directive{
				Kind:        DirectiveClone,
				Mut:         mut,
				Name:        name,
				NameSpan:    nameSpan,
				KeywordSpan: word.Span,
			}, true

		case "with":
			name, nameSpan, ok := p.parseIdent()
			if !ok {
				return Directive{}, false
			}
			if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after `with` variable"); !ok {
				return Directive{}, false
			}
			expr, ok := p.parseExpr()
			if !ok {
				return Directive{}, false
			}
			return Directive{
				Kind:        DirectiveWith,
				Mut:         mut,
				Name:        name,
				NameSpan:    nameSpan,
				KeywordSpan: word.Span,
				Expr:        expr,
			}, true

		case "all":
			if mut {
				p.errAt(diag.CapMutWithAll, mutSpan,
					"may not use mutability specifier with `all` directive")
				return Directive{}, false
			}
			name, nameSpan, ok := p.parseIdent()
			if !ok {
				return Directive{}, false
			}
			return Directive{
				Kind:        DirectiveAll,
				Name:        name,
				NameSpan:    nameSpan,
				KeywordSpan: word.Span,
			}, true

		default:
			p.errAt(diag.CapExpectDirective, word.Span, expectedDirectiveMsg)
			return Directive{}, false
		}

	default:
		p.err(diag.CapExpectDirective, expectedDirectiveMsg)
		return Directive{}, false
	}
}

// skipPastComma consumes raw tokens up to and including the next comma at
// bracket depth zero. Commas inside nested groups do not terminate the skip.
func (p *Parser) skipPastComma() {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF:
			return
		case tok.OpensGroup():
			depth++
		case tok.ClosesGroup():
			if depth > 0 {
				depth--
			}
		case tok.Kind == token.Comma && depth == 0:
			p.advance()
			return
		}
		p.advance()
	}
}
