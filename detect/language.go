package detect

import (
	"slices"

	"github.com/pemistahl/lingua-go"
	"github.com/samber/lo"
)

// Languages whose sole script is used by no other supported language.
// Chinese does not qualify (Han is shared with Japanese) and neither does
// Japanese (it mixes Hiragana, Katakana and Han).
var singleUniqueScriptLanguages = []lingua.Language{
	lingua.Armenian,
	lingua.Bengali,
	lingua.Georgian,
	lingua.Greek,
	lingua.Gujarati,
	lingua.Hebrew,
	lingua.Korean,
	lingua.Punjabi,
	lingua.Tamil,
	lingua.Telugu,
	lingua.Thai,
}

func sortedNames(languages []lingua.Language) []string {
	names := lo.Map(languages, func(language lingua.Language, _ int) string {
		return language.String()
	})
	slices.Sort(names)
	return names
}

// Languages returns the canonical names of every supported language,
// sorted lexicographically.
func Languages() []string {
	return sortedNames(lingua.AllLanguages())
}

// SpokenLanguages returns the sorted names of all spoken languages,
// excluding constructed and liturgical ones.
func SpokenLanguages() []string {
	return sortedNames(lingua.AllSpokenLanguages())
}

// LanguagesWithArabicScript returns the sorted names of all languages
// written in Arabic script.
func LanguagesWithArabicScript() []string {
	return sortedNames(lingua.AllLanguagesWithArabicScript())
}

// LanguagesWithCyrillicScript returns the sorted names of all languages
// written in Cyrillic script.
func LanguagesWithCyrillicScript() []string {
	return sortedNames(lingua.AllLanguagesWithCyrillicScript())
}

// LanguagesWithDevanagariScript returns the sorted names of all languages
// written in Devanagari script.
func LanguagesWithDevanagariScript() []string {
	return sortedNames(lingua.AllLanguagesWithDevanagariScript())
}

// LanguagesWithLatinScript returns the sorted names of all languages
// written in Latin script.
func LanguagesWithLatinScript() []string {
	return sortedNames(lingua.AllLanguagesWithLatinScript())
}

// LanguagesWithSingleUniqueScript returns the sorted names of all
// languages with a script of their own.
func LanguagesWithSingleUniqueScript() []string {
	return sortedNames(singleUniqueScriptLanguages)
}
