package port

type Tokenizer interface {
	Tokenize(text string) []string
	// TermSet returns the distinct tokens of text.
	TermSet(text string) []string
}
