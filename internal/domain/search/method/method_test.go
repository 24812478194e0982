package method

import "testing"

func TestCompose(t *testing.T) {
	tests := []struct {
		name                            string
		text, synonyms, fuzzy, fuzzyRan bool
		want                            Method
	}{
		{"primary only", true, false, false, false, Text},
		{"primary with synonyms", true, true, false, false, TextSynonyms},
		{"primary plus fuzzy", true, false, true, true, TextFuzzy},
		{"all stages", true, true, true, true, TextSynonymsFuzzy},
		{"fuzzy only", false, false, true, true, Fuzzy},
		{"synonyms and fuzzy", false, true, true, true, SynonymsFuzzy},
		{"nothing found after fuzzy", false, false, false, true, Fuzzy},
		{"nothing found with synonyms after fuzzy", false, true, false, true, SynonymsFuzzy},
		{"nothing ran", false, false, false, false, Text},
		{"primary ran fuzzy empty", true, false, false, true, Text},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Compose(tc.text, tc.synonyms, tc.fuzzy, tc.fuzzyRan)
			if got != tc.want {
				t.Errorf("Compose = %q, want %q", got, tc.want)
			}
			if !got.IsValid() {
				t.Errorf("%q is not a valid method", got)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if Method("semantic").IsValid() {
		t.Error("semantic is not a search method")
	}
}
