package transmute

// Recognizer reports whether a selector name already is a spell in the
// target styling system. The engine consults it once per rule body and skips
// bodies of recognized selectors, which keeps reruns over mixed
// legacy/migrated files idempotent. The real lookup lives with the target
// system; a nil Recognizer recognizes nothing.
type Recognizer interface {
	IsSpell(name string) bool
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(name string) bool

func (f RecognizerFunc) IsSpell(name string) bool {
	return f(name)
}
