package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenizer_Tokenize_WithStemming(t *testing.T) {
	tok := NewTokenizer(true, true)

	tokens := tok.Tokenize("running dogs are playing")
	if len(tokens) != 3 {
		t.Errorf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}

	hasRun := false
	for _, token := range tokens {
		if token == "run" {
			hasRun = true
		}
	}
	if !hasRun {
		t.Errorf("expected 'running' to be stemmed to 'run', got %v", tokens)
	}
}

func TestTokenizer_Tokenize_Defaults(t *testing.T) {
	tok := NewTokenizer(false, false)

	tokens := tok.Tokenize("Running dogs are playing")
	want := []string{"running", "dogs", "are", "playing"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize() = %v, want %v", tokens, want)
	}
}

func TestTokenizer_StopwordRemoval(t *testing.T) {
	tok := NewTokenizer(false, true)

	tokens := tok.Tokenize("the quick brown fox")
	for _, token := range tokens {
		if token == "the" {
			t.Errorf("stopword 'the' should be removed, got %v", tokens)
		}
	}

	tok = NewTokenizer(false, false)
	tokens = tok.Tokenize("the quick brown fox")
	if len(tokens) != 4 {
		t.Errorf("expected stopwords to be kept by default, got %v", tokens)
	}
}

func TestTokenizer_ShortWordRemoval(t *testing.T) {
	tok := NewTokenizer(false, false)

	tokens := tok.Tokenize("a I go to")
	want := []string{"go", "to"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize() = %v, want %v", tokens, want)
	}
}

func TestTokenizer_MultibyteRunes(t *testing.T) {
	tok := NewTokenizer(false, false)

	// A single multibyte letter is still one character.
	tokens := tok.Tokenize("é café")
	want := []string{"café"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize() = %v, want %v", tokens, want)
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer(true, true)

	tokens := tok.Tokenize("")
	if len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", len(tokens))
	}
}

func TestTokenizer_TermSet(t *testing.T) {
	tok := NewTokenizer(false, false)

	got := tok.TermSet("go Go rust go zig")
	want := []string{"go", "rust", "zig"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TermSet() = %v, want %v", got, want)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 1},
		{"hello-world", 2},
		{"func(x, y)", 3},
		{"CamelCase", 1},
		{"snake_case_name", 1},
		{"123numbers456", 1},
	}

	for _, tt := range tests {
		words := splitWords(tt.input)
		if len(words) != tt.expected {
			t.Errorf("splitWords(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}

func TestTokenizer_NumericRunes(t *testing.T) {
	tok := NewTokenizer(false, false)

	got := tok.Tokenize("x² area Ⅻ")
	want := []string{"x²", "area"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
