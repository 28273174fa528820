// Package transmute converts ordinary CSS into spell notation. The engine is
// a single-pass, token-driven state machine that reconstructs selector
// semantics from a flat token stream and combinatorially expands each rule's
// declarations into deduplicated spell strings keyed by selector name.
// Nested @media blocks are handled by re-tokenizing the block text and
// recursing over the whole pipeline with a fresh state.
package transmute

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"gcsst/css"
)

// ErrNothingToTransmute is returned when no selector produced any spell.
var ErrNothingToTransmute = errors.New("there is nothing to transmute")

// Transmute runs the engine over prepared CSS text (comments stripped,
// double quotes normalized) and returns the result map together with the
// elapsed wall-clock duration. An input producing no named selectors with
// declarations fails with ErrNothingToTransmute.
func Transmute(content string, rec Recognizer, log *zap.Logger) (ResultMap, time.Duration, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	res, err := processCSS(content, newScanState(""), rec, log)
	if err != nil {
		return nil, 0, err
	}

	named := false
	for name := range res {
		if name != "" {
			named = true
			break
		}
	}
	if !named {
		return nil, 0, ErrNothingToTransmute
	}
	return res, time.Since(start), nil
}

// processCSS is one recursion level of the engine: it scans the token stream
// of src, folding every completed rule body into the returned map and
// recursing for every @media block.
func processCSS(src string, st *scanState, rec Recognizer, log *zap.Logger) (ResultMap, error) {
	result := make(ResultMap)
	stream := css.NewStream(src)

	for {
		tok, err := stream.Next()
		if err != nil {
			return nil, err
		}

		// between "@media" and its block everything is condition text,
		// captured verbatim by offset once the block opens; it must not
		// reach the selector accumulator
		if st.mediaStart >= 0 && tok.Kind != css.CurlyBlock && tok.Kind != css.EOF {
			continue
		}

		switch tok.Kind {
		case css.EOF:
			return result, nil

		case css.Ident:
			st.acceptIdent(tok.Text)

		case css.AtKeyword:
			if tok.Text == "media" {
				st.mediaStart = stream.Position()
			}

		case css.Delim:
			switch tok.Text {
			case ".":
				st.flushClassStart()
			case ":", "::", ">", "+", "~":
				st.combinator = tok.Text
			case "*":
				// leading universal selector is its own focus fragment and
				// doubles as the selector name fallback
				if len(st.focus) == 0 {
					st.focus = append(st.focus, "*")
					if st.className == "" {
						st.className = "*"
					}
				} else {
					st.combinator = "*"
				}
			}

		case css.Colon:
			st.pseudoPending = true
			st.colonRun++

		case css.Comma:
			st.flushAlternative()

		case css.SquareBlock:
			// attribute selectors are carried verbatim, brackets included
			start := stream.Position()
			if err := stream.SkipBlock(); err != nil {
				return nil, err
			}
			st.focus = append(st.focus, "["+stream.SliceFrom(start))

		case css.Function:
			if !st.pseudoPending {
				break // block contents are skipped by the stream
			}
			st.capColons()
			start := stream.Position()
			if err := stream.SkipBlock(); err != nil {
				return nil, err
			}
			st.focus = append(st.focus, strings.Repeat(":", st.colonRun)+tok.Text+"("+stream.SliceFrom(start))
			st.effects = append(st.effects, tok.Text)
			st.pseudoPending = false
			st.colonRun = 0

		case css.CurlyBlock:
			if st.mediaStart >= 0 {
				if err := enterMedia(stream, st, rec, log, result); err != nil {
					return nil, err
				}
			} else if err := finishRule(stream, st, rec, log, result); err != nil {
				return nil, err
			}
		}
	}
}

// enterMedia handles a curly block preceded by a @media prelude: the
// condition text becomes the area label of a fresh state and the whole
// engine recurses over the block's inner text. The area does not survive
// past the recursive call.
func enterMedia(stream *css.Stream, st *scanState, rec Recognizer, log *zap.Logger, result ResultMap) error {
	prelude := stream.Slice(st.mediaStart, stream.Position())
	area := strings.ReplaceAll(strings.TrimSpace(removeLastChar(prelude)), " ", "_")
	st.mediaStart = -1

	innerStart := stream.Position()
	if err := stream.SkipBlock(); err != nil {
		return err
	}
	inner := stream.Slice(innerStart, stream.Position()-1)

	log.Debug("Entering @media block", zap.String("area", area), zap.Int("bytes", len(inner)))

	st.area = area
	nested, err := processCSS(inner, newScanState(area), rec, log)
	if err != nil {
		return err
	}
	result.Merge(nested)
	st.area = ""
	return nil
}

// finishRule handles a curly block that ends a plain rule: the recognizer
// oracle is consulted first, then the last selector alternative is flushed,
// declarations are extracted from the body and the cartesian product of
// prefixes and declarations is merged into the result. All per-rule state is
// reset afterwards.
func finishRule(stream *css.Stream, st *scanState, rec Recognizer, log *zap.Logger, result ResultMap) error {
	if rec != nil && rec.IsSpell(st.className) {
		// migrated selectors are never re-expanded; the body is skipped by
		// the stream before the next token
		log.Debug("Selector already is a spell, skipping rule", zap.String("class", st.className))
		st.resetRule()
		return nil
	}

	prefix := st.qualifier()
	if st.area != "" {
		prefix = st.area + "__" + prefix
	}
	st.rawPrefixes[st.className] = append(st.rawPrefixes[st.className], prefix)

	bodyStart := stream.Position()
	if err := stream.SkipBlock(); err != nil {
		return err
	}
	body := stream.Slice(bodyStart, stream.Position()-1)

	if err := extractDeclarations(body, st); err != nil {
		return err
	}

	result.Merge(generateSpells(st))
	st.resetRule()
	return nil
}

// extractDeclarations re-tokenizes a rule body and splits it into canonical
// "component=target" strings: text before a colon is the component, text
// between that colon and the following semicolon is the target, both trimmed
// with the stray slicing character removed and internal spaces replaced by
// underscores. A declaration without a terminating semicolon is dropped.
func extractDeclarations(body string, st *scanState) error {
	ds := css.NewStream(body)

	declStart, colonEnd := 0, 0
	for {
		tok, err := ds.Next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case css.EOF:
			return nil
		case css.Colon:
			colonEnd = ds.Position()
		case css.Semicolon:
			if colonEnd < declStart {
				// semicolon without a colon, nothing to record
				declStart = ds.Position()
				continue
			}
			component := strings.TrimSpace(removeLastChar(ds.Slice(declStart, colonEnd)))
			target := strings.TrimSpace(removeLastChar(ds.Slice(colonEnd, ds.Position())))
			st.declarations[strings.ReplaceAll(component+"="+target, " ", "_")] = struct{}{}
			declStart = ds.Position()
		}
	}
}
