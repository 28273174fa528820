package css

import (
	"errors"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrUnterminatedBlock is reported when the input ends inside a bracketed
// block.
var ErrUnterminatedBlock = errors.New("unterminated block")

// Stream lexes CSS text into Tokens. It keeps the convention of the upstream
// grammar: block openers are surfaced as single block tokens, and a block the
// consumer did not explicitly skip is consumed silently before the next
// token. Offsets returned by Position are byte offsets into the source text
// passed to NewStream and always point just past the most recently returned
// token.
type Stream struct {
	src     string
	input   *parse.Input
	lexer   *css.Lexer
	pending Kind // block opener awaiting consumption, EOF when none
}

// NewStream returns a Stream over the given CSS text. Re-tokenizing a
// substring obtained via Slice is done by constructing a new Stream over it.
func NewStream(src string) *Stream {
	input := parse.NewInputString(src)
	return &Stream{
		src:   src,
		input: input,
		lexer: css.NewLexer(input),
	}
}

// Position returns the byte offset just past the most recently returned
// token.
func (s *Stream) Position() int {
	return s.input.Offset()
}

// Slice returns the verbatim source text between two offsets.
func (s *Stream) Slice(from, to int) string {
	return s.src[from:to]
}

// SliceFrom returns the verbatim source text from the given offset up to the
// current position.
func (s *Stream) SliceFrom(from int) string {
	return s.src[from:s.input.Offset()]
}

// Next returns the next significant token. Whitespace and comments are
// skipped. A pending unskipped block is consumed first.
func (s *Stream) Next() (Token, error) {
	if s.pending != EOF {
		if err := s.SkipBlock(); err != nil {
			return Token{}, err
		}
	}
	for {
		tt, data := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && err != io.EOF {
				return Token{}, fmt.Errorf("lexing failed at offset %d: %w", s.input.Offset(), err)
			}
			return Token{Kind: EOF}, nil
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.IdentToken:
			return Token{Kind: Ident, Text: string(data)}, nil
		case css.AtKeywordToken:
			return Token{Kind: AtKeyword, Text: string(data[1:])}, nil
		case css.DelimToken:
			return Token{Kind: Delim, Text: string(data)}, nil
		case css.ColonToken:
			return Token{Kind: Colon}, nil
		case css.SemicolonToken:
			return Token{Kind: Semicolon}, nil
		case css.CommaToken:
			return Token{Kind: Comma}, nil
		case css.FunctionToken:
			s.pending = ParenBlock
			return Token{Kind: Function, Text: string(data[:len(data)-1])}, nil
		case css.LeftBracketToken:
			s.pending = SquareBlock
			return Token{Kind: SquareBlock}, nil
		case css.LeftBraceToken:
			s.pending = CurlyBlock
			return Token{Kind: CurlyBlock}, nil
		case css.LeftParenthesisToken:
			s.pending = ParenBlock
			return Token{Kind: ParenBlock}, nil
		default:
			return Token{Kind: Other}, nil
		}
	}
}

// SkipBlock consumes tokens up to and including the closer matching the most
// recently returned block token. It is a no-op when no block is pending and
// returns ErrUnterminatedBlock when the input ends first.
func (s *Stream) SkipBlock() error {
	if s.pending == EOF {
		return nil
	}
	closers := []css.TokenType{closerFor(s.pending)}
	s.pending = EOF

	for len(closers) > 0 {
		tt, _ := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && err != io.EOF {
				return fmt.Errorf("lexing failed at offset %d: %w", s.input.Offset(), err)
			}
			return fmt.Errorf("%w (offset %d)", ErrUnterminatedBlock, s.input.Offset())
		case css.LeftBraceToken:
			closers = append(closers, css.RightBraceToken)
		case css.LeftBracketToken:
			closers = append(closers, css.RightBracketToken)
		case css.LeftParenthesisToken, css.FunctionToken:
			closers = append(closers, css.RightParenthesisToken)
		case closers[len(closers)-1]:
			closers = closers[:len(closers)-1]
		}
	}
	return nil
}

func closerFor(k Kind) css.TokenType {
	switch k {
	case SquareBlock:
		return css.RightBracketToken
	case CurlyBlock:
		return css.RightBraceToken
	default:
		return css.RightParenthesisToken
	}
}
