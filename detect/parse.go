package detect

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Lookup tables built once from the engine's closed language set. Keys are
// case-folded so "english", "English" and "ENGLISH" all resolve to the same
// value; matching is still exact-token, never fuzzy.
var (
	languageByName map[string]lingua.Language
	languageByIso1 map[string]lingua.Language
	languageByIso3 map[string]lingua.Language
)

func init() {
	all := lingua.AllLanguages()
	languageByName = make(map[string]lingua.Language, len(all))
	languageByIso1 = make(map[string]lingua.Language, len(all))
	languageByIso3 = make(map[string]lingua.Language, len(all))
	for _, language := range all {
		languageByName[strings.ToLower(language.String())] = language
		languageByIso1[strings.ToLower(language.IsoCode639_1().String())] = language
		languageByIso3[strings.ToLower(language.IsoCode639_3().String())] = language
	}
}

// ParseLanguage converts a canonical language name to its Language value.
func ParseLanguage(name string) (lingua.Language, error) {
	language, ok := languageByName[strings.ToLower(name)]
	if !ok {
		return lingua.Unknown, fmt.Errorf("%w: unknown language: %q", ErrInvalidArgument, name)
	}
	return language, nil
}

// ParseLanguages converts a list of canonical language names, preserving
// input order without deduplication. The list must not be empty.
func ParseLanguages(names []string) ([]lingua.Language, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: languages list must not be empty", ErrInvalidArgument)
	}
	languages := make([]lingua.Language, 0, len(names))
	for _, name := range names {
		language, err := ParseLanguage(name)
		if err != nil {
			return nil, err
		}
		languages = append(languages, language)
	}
	return languages, nil
}

// ParseIsoCode6391 converts a two-letter ISO 639-1 code to its typed value.
func ParseIsoCode6391(code string) (lingua.IsoCode639_1, error) {
	language, ok := languageByIso1[strings.ToLower(code)]
	if !ok {
		return lingua.UnknownIsoCode639_1, fmt.Errorf("%w: unknown ISO 639-1 code: %q", ErrInvalidArgument, code)
	}
	return language.IsoCode639_1(), nil
}

// ParseIsoCodes6391 converts a list of ISO 639-1 codes, preserving input
// order. The list must not be empty.
func ParseIsoCodes6391(codes []string) ([]lingua.IsoCode639_1, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: ISO 639-1 codes list must not be empty", ErrInvalidArgument)
	}
	isoCodes := make([]lingua.IsoCode639_1, 0, len(codes))
	for _, code := range codes {
		isoCode, err := ParseIsoCode6391(code)
		if err != nil {
			return nil, err
		}
		isoCodes = append(isoCodes, isoCode)
	}
	return isoCodes, nil
}

// ParseIsoCode6393 converts a three-letter ISO 639-3 code to its typed value.
func ParseIsoCode6393(code string) (lingua.IsoCode639_3, error) {
	language, ok := languageByIso3[strings.ToLower(code)]
	if !ok {
		return lingua.UnknownIsoCode639_3, fmt.Errorf("%w: unknown ISO 639-3 code: %q", ErrInvalidArgument, code)
	}
	return language.IsoCode639_3(), nil
}

// ParseIsoCodes6393 converts a list of ISO 639-3 codes, preserving input
// order. The list must not be empty.
func ParseIsoCodes6393(codes []string) ([]lingua.IsoCode639_3, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: ISO 639-3 codes list must not be empty", ErrInvalidArgument)
	}
	isoCodes := make([]lingua.IsoCode639_3, 0, len(codes))
	for _, code := range codes {
		isoCode, err := ParseIsoCode6393(code)
		if err != nil {
			return nil, err
		}
		isoCodes = append(isoCodes, isoCode)
	}
	return isoCodes, nil
}

func languagesFromIso1(codes []string) ([]lingua.Language, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: ISO 639-1 codes list must not be empty", ErrInvalidArgument)
	}
	languages := make([]lingua.Language, 0, len(codes))
	for _, code := range codes {
		language, ok := languageByIso1[strings.ToLower(code)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown ISO 639-1 code: %q", ErrInvalidArgument, code)
		}
		languages = append(languages, language)
	}
	return languages, nil
}

func languagesFromIso3(codes []string) ([]lingua.Language, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: ISO 639-3 codes list must not be empty", ErrInvalidArgument)
	}
	languages := make([]lingua.Language, 0, len(codes))
	for _, code := range codes {
		language, ok := languageByIso3[strings.ToLower(code)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown ISO 639-3 code: %q", ErrInvalidArgument, code)
		}
		languages = append(languages, language)
	}
	return languages, nil
}
