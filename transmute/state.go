package transmute

import (
	"strings"
	"unicode/utf8"
)

// scanState carries the accumulator state for one recursion level of the
// engine. A fresh instance is created for the top-level document and for each
// nested @media body; it is never shared between levels.
type scanState struct {
	// rawPrefixes keeps, per selector name, one raw spell prefix per
	// comma-separated selector alternative seen before the rule body. It is a
	// list, not a set: multiplicities are preserved.
	rawPrefixes map[string][]string
	// className identifies the selector currently being parsed.
	className string
	// mediaStart is the source offset of an in-progress @media condition,
	// -1 when none is pending.
	mediaStart int
	// focus collects string fragments qualifying className (combinators,
	// pseudo markers, attribute blocks, function calls) in encounter order.
	focus []string
	// declarations is the set of canonical "component=target" strings
	// collected from the current rule body.
	declarations map[string]struct{}
	// effects records pseudo-class/element/function names seen for the
	// current selector alternative.
	effects []string
	// classStart is true right after a '.' delimiter, expecting the class
	// name identifier next.
	classStart bool
	// combinator is the most recently seen combinator delimiter awaiting the
	// identifier that completes it.
	combinator string
	// pseudoPending is true right after one or more colons, expecting the
	// pseudo-class/element identifier or function next.
	pseudoPending bool
	// colonRun counts consecutive colons; three or more are treated as
	// exactly two.
	colonRun int
	// area is the label inherited from an enclosing @media condition, empty
	// at the top level.
	area string
}

func newScanState(area string) *scanState {
	return &scanState{
		rawPrefixes:  make(map[string][]string),
		declarations: make(map[string]struct{}),
		mediaStart:   -1,
		area:         area,
	}
}

// qualifier renders the accumulated focus fragments for the current selector
// alternative: joined, trimmed, spaces replaced with underscores and wrapped
// in braces. Empty focus renders as an empty string.
func (st *scanState) qualifier() string {
	q := strings.ReplaceAll(strings.TrimSpace(strings.Join(st.focus, "")), " ", "_")
	if q == "" {
		return ""
	}
	return "{" + q + "}"
}

// capColons collapses a run of three or more colons to exactly two.
func (st *scanState) capColons() {
	if st.colonRun > 2 {
		st.colonRun = 2
	}
}

// acceptIdent dispatches an identifier according to the accumulator
// precedence: class name completion, combinator completion, pseudo marker
// completion (which doubles as a selector name fallback), descendant
// qualifier, or bare tag selector.
func (st *scanState) acceptIdent(ident string) {
	switch {
	case st.classStart && st.className == "":
		st.className = ident
		st.classStart = false
	case st.combinator != "":
		sep := ""
		if len(st.focus) > 0 {
			sep = "_"
		}
		st.focus = append(st.focus, sep+st.combinator+"_"+ident)
		st.combinator = ""
	case st.pseudoPending:
		st.capColons()
		st.focus = append(st.focus, strings.Repeat(":", st.colonRun)+ident)
		st.effects = append(st.effects, ident)
		st.pseudoPending = false
		st.colonRun = 0
		if st.className == "" {
			st.className = ident
		}
	case st.className != "":
		st.focus = append(st.focus, "_"+ident)
	default:
		st.className = ident
	}
}

// flushClassStart handles a '.' delimiter: when a selector name is already
// accumulated and no combinator is pending, the current focus becomes a raw
// prefix for that name and the per-alternative state resets. The next
// identifier starts a new class name either way.
func (st *scanState) flushClassStart() {
	if st.className != "" && st.combinator == "" {
		st.rawPrefixes[st.className] = append(st.rawPrefixes[st.className], st.qualifier())
		st.focus = nil
		st.effects = nil
		st.className = ""
	}
	st.classStart = true
}

// flushAlternative handles a comma: the current focus becomes a raw prefix
// for the current selector name and the whole per-alternative state resets,
// since each alternative may target a different selector.
func (st *scanState) flushAlternative() {
	st.rawPrefixes[st.className] = append(st.rawPrefixes[st.className], st.qualifier())
	st.focus = nil
	st.effects = nil
	st.className = ""
	st.classStart = false
	st.combinator = ""
}

// resetRule clears all per-rule state after a rule body has been folded into
// the result. The inherited area and any pending media prelude survive.
func (st *scanState) resetRule() {
	st.rawPrefixes = make(map[string][]string)
	st.className = ""
	st.declarations = make(map[string]struct{})
	st.effects = nil
	st.focus = nil
	st.classStart = false
	st.combinator = ""
}

// removeLastChar drops the last rune of a string. Used to strip the stray
// character position slicing leaves behind ('{', ':' or ';').
func removeLastChar(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
