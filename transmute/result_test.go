package transmute_test

import (
	"reflect"
	"strings"
	"testing"

	"gcsst/transmute"
)

func set(spells ...string) transmute.StringSet {
	s := make(transmute.StringSet, len(spells))
	for _, spell := range spells {
		s[spell] = struct{}{}
	}
	return s
}

func TestResultMap_Merge(t *testing.T) {
	t.Run("union of shared keys", func(t *testing.T) {
		m := transmute.ResultMap{"a": set("x"), "b": set("y")}
		m.Merge(transmute.ResultMap{"a": set("z"), "c": set("w")})

		want := transmute.ResultMap{"a": set("x", "z"), "b": set("y"), "c": set("w")}
		if !reflect.DeepEqual(m, want) {
			t.Errorf("Merge() = %v, want %v", m, want)
		}
	})

	t.Run("commutative", func(t *testing.T) {
		left := transmute.ResultMap{"a": set("x"), "b": set("y")}
		left.Merge(transmute.ResultMap{"a": set("z")})

		right := transmute.ResultMap{"a": set("z")}
		right.Merge(transmute.ResultMap{"a": set("x"), "b": set("y")})

		if !reflect.DeepEqual(left, right) {
			t.Errorf("merge order changed result: %v vs %v", left, right)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		m := transmute.ResultMap{"a": set("x", "y")}
		m.Merge(transmute.ResultMap{"a": set("x", "y")})

		if !reflect.DeepEqual(m, transmute.ResultMap{"a": set("x", "y")}) {
			t.Errorf("self-merge changed result: %v", m)
		}
	})
}

func TestAssemble(t *testing.T) {
	res := transmute.ResultMap{
		"b": set("color=red", "margin=0"),
		"a": set("width=10px"),
		"":  set("dropped=yes"),
	}

	out := transmute.Assemble(res, false)
	if len(out.Classes) != 2 {
		t.Fatalf("Assemble() produced %d classes, want 2", len(out.Classes))
	}
	if out.Classes[0].Name != "a" || out.Classes[1].Name != "b" {
		t.Errorf("class order = %q, %q; want sorted names", out.Classes[0].Name, out.Classes[1].Name)
	}
	if got := out.Classes[1].Spells; !reflect.DeepEqual(got, []string{"color=red", "margin=0"}) {
		t.Errorf("spells = %v, want sorted", got)
	}
	if out.Classes[0].Oneliner != "" {
		t.Errorf("unexpected oneliner %q", out.Classes[0].Oneliner)
	}
}

func TestAssemble_WithOneliner(t *testing.T) {
	out := transmute.Assemble(transmute.ResultMap{"a": set("color=red", "margin=0")}, true)

	if len(out.Classes) != 1 {
		t.Fatalf("Assemble() produced %d classes, want 1", len(out.Classes))
	}
	if got := out.Classes[0].Oneliner; got != "color=red margin=0" {
		t.Errorf("oneliner = %q, want %q", got, "color=red margin=0")
	}
}

func TestTransmuted_JSON(t *testing.T) {
	out := transmute.Assemble(transmute.ResultMap{"a": set("color=red")}, false)

	data, err := out.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{`"classes"`, `"name": "a"`, `"spells"`, `"color=red"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON output missing %s:\n%s", want, s)
		}
	}
	if strings.Contains(s, "oneliner") {
		t.Errorf("oneliner must be omitted when not requested:\n%s", s)
	}
}
