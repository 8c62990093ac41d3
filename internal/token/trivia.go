package token

import "github.com/JakobDegen/captures/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is non-semantic text (whitespace, comments) attached to the
// following significant token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
