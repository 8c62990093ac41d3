package format

import (
	"strconv"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/token"
)

func (p *printer) string(id source.StringID) string {
	if id == source.NoStringID || p.builder.Strings == nil {
		return ""
	}
	return p.builder.Strings.MustLookup(id)
}

// ident renders an identifier, realizing a non-call-site hygiene tag as a
// __hyg<N> suffix so the output re-lexes as a plain name.
func (p *printer) ident(name source.StringID, hy source.Hygiene) string {
	s := p.string(name)
	if hy.IsCallSite() {
		return s
	}
	return s + "__hyg" + strconv.FormatUint(uint64(hy), 10)
}

// printTokens writes a raw token slice with minimal spacing: tokens re-lex to
// the same sequence, so only word-word adjacency needs a separator.
func (p *printer) printTokens(toks []token.Token) {
	var prev *token.Token
	for i := range toks {
		tok := &toks[i]
		if prev != nil && needSpace(prev, tok) {
			p.writer.Space()
		}
		p.writer.WriteString(tok.Text)
		prev = tok
	}
}

func (p *printer) printTokenTrees(trees []ast.TokenTree) {
	var prevLast *token.Token
	for i := range trees {
		tt := &trees[i]
		switch tt.Kind {
		case ast.TTLeaf:
			if prevLast != nil && needSpace(prevLast, &tt.Tok) {
				p.writer.Space()
			}
			if tt.Tok.IsIdent() {
				p.writer.WriteString(p.identText(tt.Tok.Text, tt.Hygiene))
			} else {
				p.writer.WriteString(tt.Tok.Text)
			}
			prevLast = &tt.Tok
		case ast.TTGroup:
			if err := p.writer.WriteByte(tt.Delim.Open()); err != nil {
				panic(err)
			}
			p.printTokenTrees(tt.Children)
			if err := p.writer.WriteByte(tt.Delim.Close()); err != nil {
				panic(err)
			}
			prevLast = nil
		}
	}
}

func (p *printer) identText(text string, hy source.Hygiene) string {
	if hy.IsCallSite() {
		return text
	}
	return text + "__hyg" + strconv.FormatUint(uint64(hy), 10)
}

// needSpace reports whether two adjacent tokens would fuse without a
// separator: word next to word, or punctuation runs that re-lex as a longer
// operator.
func needSpace(prev, cur *token.Token) bool {
	if isWordToken(prev) && isWordToken(cur) {
		return true
	}
	if prev.Kind == token.Comma {
		return true
	}
	if prev.IsPunctOrOp() && cur.IsPunctOrOp() && !prev.OpensGroup() && !cur.ClosesGroup() {
		return true
	}
	return false
}

func isWordToken(t *token.Token) bool {
	return t.IsIdent() || t.IsKeyword() || t.Kind == token.IntLit ||
		t.Kind == token.FloatLit || t.Kind == token.Underscore
}
