package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type Normalizer interface {
	Normalize(text string) (string, error)
}

// UnicodeNormalizer prepares texts for language detection.
// It performs the following normalization steps:
// 1. Unicode NFKC normalization (full-width forms, ligatures, etc.)
// 2. Optional collapsing of all whitespace runs into single spaces
// Letter case is left untouched since casing carries detection signal.
type UnicodeNormalizer struct {
	collapseWhitespace bool
}

func NewUnicodeNormalizer(collapseWhitespace bool) Normalizer {
	return &UnicodeNormalizer{collapseWhitespace: collapseWhitespace}
}

func (n *UnicodeNormalizer) Normalize(text string) (string, error) {
	s := norm.NFKC.String(text)
	if n.collapseWhitespace {
		s = strings.Join(strings.Fields(s), " ")
	}
	return s, nil
}
