package synonym

import (
	"reflect"
	"sort"
	"testing"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

func mustGroup(t *testing.T, canonical string, synonyms []string, category string) domsyn.Group {
	t.Helper()
	g, err := domsyn.New(canonical, synonyms, category, true)
	if err != nil {
		t.Fatalf("new group %q: %v", canonical, err)
	}
	return g
}

func seeded(t *testing.T) []domsyn.Group {
	t.Helper()
	return []domsyn.Group{
		mustGroup(t, "wrench", []string{"spanner", "adjustable wrench", "crescent wrench", "pipe wrench"}, "tools"),
		mustGroup(t, "tape measure", []string{"measuring tape", "tape rule"}, "tools"),
		mustGroup(t, "tape", []string{"duct tape", "masking tape"}, "hardware"),
		mustGroup(t, "tape", []string{"cassette"}, "media"),
	}
}

func contains(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}

func TestExpand_Wrench(t *testing.T) {
	idx := Build(seeded(t))
	q := idx.Expand("wrench")

	for _, want := range []string{"wrench", "spanner", "adjustable wrench", "crescent wrench", "pipe wrench"} {
		if !contains(q.Terms(), want) {
			t.Errorf("expected %q in %v", want, q.Terms())
		}
	}
	if !q.SynonymsFound() {
		t.Error("expected synonymsFound")
	}
}

func TestExpand_FromSynonym(t *testing.T) {
	idx := Build(seeded(t))
	q := idx.Expand("  Spanner ")

	if !contains(q.Terms(), "wrench") {
		t.Errorf("expected canonical name in %v", q.Terms())
	}
	if q.Terms()[0] != "spanner" {
		t.Errorf("literal word must come first, got %v", q.Terms())
	}
}

func TestExpand_Unknown(t *testing.T) {
	idx := Build(seeded(t))
	q := idx.Expand("xyzzy")

	if !reflect.DeepEqual(q.Terms(), []string{"xyzzy"}) {
		t.Errorf("Terms() = %v, want [xyzzy]", q.Terms())
	}
	if q.SynonymsFound() {
		t.Error("expected no synonyms")
	}
}

func TestExpand_WholePhrase(t *testing.T) {
	idx := Build(seeded(t))
	q := idx.Expand("Tape Measure")

	if !contains(q.Terms(), "measuring tape") {
		t.Errorf("expected phrase synonyms in %v", q.Terms())
	}
	// "tape" alone also hits both tape groups
	if !contains(q.Terms(), "duct tape") || !contains(q.Terms(), "cassette") {
		t.Errorf("expected word-level synonyms in %v", q.Terms())
	}
}

func TestExpand_DuplicateCanonicalUnion(t *testing.T) {
	idx := Build(seeded(t))
	groups := idx.GroupsContaining("tape")
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestExpand_Empty(t *testing.T) {
	idx := Build(seeded(t))
	for _, q := range []string{"", "   ", "\t\n"} {
		e := idx.Expand(q)
		if len(e.Terms()) != 0 || e.SynonymsFound() {
			t.Errorf("Expand(%q) = %v, want empty", q, e.Terms())
		}
	}
}

func TestExpand_NoDuplicates(t *testing.T) {
	idx := Build(seeded(t))
	q := idx.Expand("wrench spanner")

	seen := map[string]bool{}
	for _, term := range q.Terms() {
		if seen[term] {
			t.Errorf("duplicate term %q", term)
		}
		seen[term] = true
	}
}

func TestBuild_SkipsInactive(t *testing.T) {
	g := mustGroup(t, "hammer", []string{"mallet"}, "tools")
	idx := Build([]domsyn.Group{g.Deactivated()})

	if len(idx.GroupsContaining("mallet")) != 0 {
		t.Error("inactive group must not be indexed")
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestVocabulary(t *testing.T) {
	idx := Build(seeded(t)[:1])
	got := idx.Vocabulary()
	want := []string{"adjustable wrench", "crescent wrench", "pipe wrench", "spanner", "wrench"}
	if !sort.StringsAreSorted(got) {
		t.Errorf("vocabulary not sorted: %v", got)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary() = %v, want %v", got, want)
	}
}
