package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for unclassified errors.
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// General syntax (expressions, statements, patterns, closures)
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectPattern     Code = 2004
	SynUnclosedDelimiter Code = 2005
	SynExpectSemicolon   Code = 2006
	SynExpectBlock       Code = 2007
	SynExpectClosure     Code = 2008
	SynExpectMatchArm    Code = 2009
	SynExpectComma       Code = 2010

	// Capture directives
	CapInfo               Code = 2100
	CapExpectDirective    Code = 2101
	CapMutWithAll         Code = 2102
	CapDuplicateDirective Code = 2103
	CapRefRequiresMove    Code = 2104
	CapClosureAttrs       Code = 2105
	CapExpectInputEnd     Code = 2106

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectExpression:         "Expect expression",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectPattern:            "Expect pattern",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectBlock:              "Expect block",
	SynExpectClosure:            "Expect closure expression",
	SynExpectMatchArm:           "Expect match arm",
	SynExpectComma:              "Expect comma",
	CapInfo:                     "Capture directive information",
	CapExpectDirective:          "Expect capture directive",
	CapMutWithAll:               "Mutability specifier not allowed with all directive",
	CapDuplicateDirective:       "Multiple directives for one variable",
	CapRefRequiresMove:          "Ref directive requires a move closure",
	CapClosureAttrs:             "Attributes not allowed on the closure",
	CapExpectInputEnd:           "Expect input to end after the closure",
	IOLoadFileError:             "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2100 && ic < 2200:
		return fmt.Sprintf("CAP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
