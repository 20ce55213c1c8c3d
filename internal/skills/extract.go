package skills

import (
	"strings"
	"unicode"
)

// Extract returns every vocabulary term found in text as a unigram or as a
// bigram of adjacent tokens. Matching is case-insensitive.
func Extract(text string, vocab *Vocabulary) Set {
	found := Set{}
	if vocab == nil {
		return found
	}
	toks := Tokenize(text)
	for i, tok := range toks {
		if vocab.Contains(tok) {
			found[tok] = struct{}{}
		}
		if i < len(toks)-1 {
			bigram := tok + " " + toks[i+1]
			if vocab.Contains(bigram) {
				found[bigram] = struct{}{}
			}
		}
	}
	return found
}

// Tokenize lowercases text and splits it into word tokens. Letters, digits
// and + # . - are word characters so terms like "c++" and "node.js" stay
// whole; trailing dots are dropped.
func Tokenize(text string) []string {
	var toks []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		w = strings.TrimLeft(w, ".-")
		word.Reset()
		if w != "" {
			toks = append(toks, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '-' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return toks
}
