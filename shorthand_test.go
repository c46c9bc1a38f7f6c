package lispp

import "testing"

func TestLookupShorthand(t *testing.T) {
	got, ok := lookupShorthand("&")
	if !ok || got != "and" {
		t.Errorf("lookupShorthand(\"&\") = (%q, %v), want (\"and\", true)", got, ok)
	}

	if _, ok := lookupShorthand("not-a-shorthand"); ok {
		t.Error("expected lookupShorthand to miss on an unregistered token")
	}
}

func TestBoolAliasesCoverSpecTable(t *testing.T) {
	want := map[string]string{
		"True": "Yes", "False": "No", "On": "Yes", "Off": "No", "Nothing": "Nil",
	}
	for k, v := range want {
		if boolAliases[k] != v {
			t.Errorf("boolAliases[%q] = %q, want %q", k, boolAliases[k], v)
		}
	}
}
