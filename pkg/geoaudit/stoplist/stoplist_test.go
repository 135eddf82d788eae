package stoplist

import (
	"testing"
)

func TestManagerBasic(t *testing.T) {
	stops := []string{"the", "a", "and"}
	mgr := NewManager(stops)

	if !mgr.IsStop("the") {
		t.Error("'the' should be a stopword")
	}

	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
}

func TestManagerNormalizesInput(t *testing.T) {
	mgr := NewManager([]string{"  The ", "", "AND"})

	if !mgr.IsStop("the") || !mgr.IsStop("and") {
		t.Error("input words should be trimmed and lower-cased")
	}
	if mgr.Len() != 2 {
		t.Errorf("Expected 2 stopwords, got %d", mgr.Len())
	}
}

func TestManagerWithIsCopy(t *testing.T) {
	base := NewManager([]string{"the"})
	extended := base.With("seo")

	if !extended.IsStop("seo") || !extended.IsStop("the") {
		t.Error("extended stoplist should hold base and extra words")
	}
	if base.IsStop("seo") {
		t.Error("base stoplist must not change")
	}
}

func TestManagerAll(t *testing.T) {
	stops := []string{"the", "a", "and"}
	mgr := NewManager(stops)

	all := mgr.All()

	if len(all) != 3 {
		t.Fatalf("Expected 3 stopwords, got %d", len(all))
	}

	expected := []string{"a", "and", "the"}
	for i, s := range expected {
		if all[i] != s {
			t.Errorf("All()[%d] = %q, want %q", i, all[i], s)
		}
	}
}

func TestDefaultEnglish(t *testing.T) {
	mgr := Default()

	for _, w := range []string{"the", "what", "how", "yourselves"} {
		if !mgr.IsStop(w) {
			t.Errorf("%q should be in the default stoplist", w)
		}
	}
	for _, w := range []string{"seo", "content", "keyword"} {
		if mgr.IsStop(w) {
			t.Errorf("%q should not be in the default stoplist", w)
		}
	}
	if mgr.Len() < 100 {
		t.Errorf("default stoplist unexpectedly small: %d", mgr.Len())
	}
}
