package match

import "testing"

func TestSuggest_NearMisses(t *testing.T) {
	known := []string{"hammer", "claw hammer", "wrench", "screwdriver", "hammock"}
	got := DefaultSuggester().Suggest("hamer", known, 3)
	if len(got) == 0 {
		t.Fatal("expected suggestions")
	}
	if got[0].Term != "hammer" {
		t.Errorf("expected hammer first, got %q", got[0].Term)
	}
	if got[0].Distance != 1 {
		t.Errorf("expected distance 1, got %d", got[0].Distance)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Errorf("suggestions not sorted: %+v", got)
		}
	}
}

func TestSuggest_ExcludesExactAndFarTerms(t *testing.T) {
	known := []string{"Wrench", "wrench", "socket set", "w"}
	got := DefaultSuggester().Suggest("wrench", known, 3)
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %+v", got)
	}
}

func TestSuggest_RespectsMax(t *testing.T) {
	known := []string{"saws", "sawn", "sow", "raw", "paw"}
	got := DefaultSuggester().Suggest("saw", known, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
}

func TestSuggest_DefaultMax(t *testing.T) {
	known := []string{"saws", "sawn", "sow", "raw", "paw"}
	got := DefaultSuggester().Suggest("saw", known, 0)
	if len(got) != DefaultMaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", DefaultMaxSuggestions, len(got))
	}
}

func TestSuggest_EmptyQuery(t *testing.T) {
	got := DefaultSuggester().Suggest("  ", []string{"hammer"}, 3)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestKnownTerms(t *testing.T) {
	rs := records(
		named("1", "Claw Hammer"),
		&testRecord{id: "2", fields: map[string][]string{
			"name":  {"Crescent Wrench 10in"},
			"brand": {"Crescent"},
		}},
	)
	got := KnownTerms(rs, []string{"name", "brand"})
	want := []string{"claw hammer", "claw", "hammer", "crescent wrench 10in", "crescent", "wrench", "10in"}
	if len(got) != len(want) {
		t.Fatalf("KnownTerms() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KnownTerms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
