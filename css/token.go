// Package css provides the tokenizer boundary used by the transmutation
// engine: a position-addressable token stream over CSS text with verbatim
// source slicing and block-level skipping.
package css

import "strconv"

// Kind identifies the kind of a token surfaced by a Stream.
type Kind int

const (
	// EOF marks the end of input. It is a token, not an error.
	EOF Kind = iota
	Ident
	AtKeyword
	Delim
	Colon
	Semicolon
	Comma
	// Function is a block token: the stream is positioned just past the
	// opening parenthesis when it is returned.
	Function
	// SquareBlock, CurlyBlock and ParenBlock are block tokens: the stream is
	// positioned just past the opening bracket when they are returned. The
	// block contents are skipped automatically before the next token unless
	// the consumer calls SkipBlock itself.
	SquareBlock
	CurlyBlock
	ParenBlock
	// Other covers token kinds the engine has no use for (numbers, strings,
	// hashes, stray closers and so on).
	Other
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case AtKeyword:
		return "AtKeyword"
	case Delim:
		return "Delim"
	case Colon:
		return "Colon"
	case Semicolon:
		return "Semicolon"
	case Comma:
		return "Comma"
	case Function:
		return "Function"
	case SquareBlock:
		return "SquareBlock"
	case CurlyBlock:
		return "CurlyBlock"
	case ParenBlock:
		return "ParenBlock"
	case Other:
		return "Other"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical unit of a CSS source.
type Token struct {
	Kind Kind
	// Text carries the identifier text, the at-keyword name (without the
	// leading '@'), the delimiter character or the function name (without
	// the opening parenthesis). Empty for the remaining kinds.
	Text string
}
