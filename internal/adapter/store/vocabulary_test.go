package store

import (
	"path/filepath"
	"testing"
)

func TestVocabularyStore_ObserveAndFrequencies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.db")

	st, err := NewVocabularyStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	stats, err := st.Frequencies([]string{"go"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Documents != 0 || len(stats.Frequencies) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	err = st.Observe([][]string{
		{"go", "rust"},
		{"go", "zig"},
	})
	if err != nil {
		t.Fatal(err)
	}

	stats, err = st.Frequencies([]string{"go", "rust", "zig", "python"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Documents != 2 {
		t.Errorf("expected 2 documents, got %d", stats.Documents)
	}
	if stats.Frequencies["go"] != 2 {
		t.Errorf("expected df(go)=2, got %d", stats.Frequencies["go"])
	}
	if stats.Frequencies["rust"] != 1 || stats.Frequencies["zig"] != 1 {
		t.Errorf("unexpected frequencies: %v", stats.Frequencies)
	}
	if _, ok := stats.Frequencies["python"]; ok {
		t.Error("unknown term should be omitted")
	}
}

func TestVocabularyStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.db")

	st, err := NewVocabularyStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Observe([][]string{{"persisted"}}); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = NewVocabularyStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	stats, err := st.Frequencies([]string{"persisted"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Documents != 1 || stats.Frequencies["persisted"] != 1 {
		t.Errorf("expected counts to survive reopen, got %+v", stats)
	}
}
