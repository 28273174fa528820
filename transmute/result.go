package transmute

import (
	"encoding/json"
	"sort"
	"strings"
)

// StringSet is a deduplicated set of spell strings.
type StringSet map[string]struct{}

// ResultMap maps selector names to their spell sets. It is the engine's
// output before serialization.
type ResultMap map[string]StringSet

// Merge unions other into m: value sets of shared keys are combined, new
// keys are inserted. The operation is associative, commutative and
// idempotent.
func (m ResultMap) Merge(other ResultMap) {
	for name, spells := range other {
		if existing, ok := m[name]; ok {
			for s := range spells {
				existing[s] = struct{}{}
			}
		} else {
			m[name] = spells
		}
	}
}

// generateSpells cross-multiplies the accumulated raw prefixes against the
// rule's declarations. Selector names whose product is empty (no
// declarations) are left out.
func generateSpells(st *scanState) ResultMap {
	res := make(ResultMap, len(st.rawPrefixes))
	for name, prefixes := range st.rawPrefixes {
		spells := make(StringSet)
		for _, prefix := range prefixes {
			for decl := range st.declarations {
				spells[prefix+decl] = struct{}{}
			}
		}
		if len(spells) == 0 {
			continue
		}
		res[name] = spells
	}
	return res
}

// Transmuted is the public serialized shape of a transmutation run.
type Transmuted struct {
	Classes []TransmutedClass `json:"classes"`
}

// TransmutedClass is a single selector with its generated spells.
type TransmutedClass struct {
	Name     string   `json:"name"`
	Spells   []string `json:"spells"`
	Oneliner string   `json:"oneliner,omitempty"`
}

// Assemble renders a result map into the public output shape. Entries with
// empty names are dropped. Spells are sorted for deterministic output; the
// contract only promises set semantics, so any order would do. When requested
// the oneliner joins all spells with a single space.
func Assemble(res ResultMap, withOneliner bool) Transmuted {
	names := make([]string, 0, len(res))
	for name := range res {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := Transmuted{Classes: make([]TransmutedClass, 0, len(names))}
	for _, name := range names {
		spells := make([]string, 0, len(res[name]))
		for s := range res[name] {
			spells = append(spells, s)
		}
		sort.Strings(spells)

		tc := TransmutedClass{Name: name, Spells: spells}
		if withOneliner {
			tc.Oneliner = strings.Join(spells, " ")
		}
		out.Classes = append(out.Classes, tc)
	}
	return out
}

// JSON renders the output shape as indented JSON.
func (t Transmuted) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
