package token

var keywords = map[string]Kind{
	"ref":      KwRef,
	"mut":      KwMut,
	"move":     KwMove,
	"async":    KwAsync,
	"static":   KwStatic,
	"let":      KwLet,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"loop":     KwLoop,
	"match":    KwMatch,
	"in":       KwIn,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
}

// Note: the directive heads `clone`, `with`, and `all` are deliberately NOT
// keywords. They are matched as plain identifiers by the capture parser, so
// user code may still use them as variable names.

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
