package detect

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagesSortedAndComplete(t *testing.T) {
	names := Languages()
	assert.Len(t, names, 75)
	assert.True(t, slices.IsSorted(names))
	assert.Contains(t, names, "English")
	assert.NotContains(t, names, "Unknown")
}

func TestSpokenLanguagesExcludeLatin(t *testing.T) {
	names := SpokenLanguages()
	assert.True(t, slices.IsSorted(names))
	assert.NotContains(t, names, "Latin")
	assert.Less(t, len(names), len(Languages()))
}

func TestScriptFilteredLanguageLists(t *testing.T) {
	all := Languages()
	tests := []struct {
		name     string
		list     []string
		contains string
	}{
		{"arabic", LanguagesWithArabicScript(), "Arabic"},
		{"cyrillic", LanguagesWithCyrillicScript(), "Russian"},
		{"devanagari", LanguagesWithDevanagariScript(), "Hindi"},
		{"latin", LanguagesWithLatinScript(), "English"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEmpty(t, tt.list)
			assert.True(t, slices.IsSorted(tt.list))
			assert.Contains(t, tt.list, tt.contains)
			for _, name := range tt.list {
				assert.Contains(t, all, name)
			}
		})
	}
}

func TestLanguagesWithSingleUniqueScript(t *testing.T) {
	unique := LanguagesWithSingleUniqueScript()
	require.NotEmpty(t, unique)
	assert.True(t, slices.IsSorted(unique))
	assert.Contains(t, unique, "Korean")
	assert.Contains(t, unique, "Greek")
	// Han is shared between Chinese and Japanese, so neither qualifies.
	assert.NotContains(t, unique, "Chinese")
	assert.NotContains(t, unique, "Japanese")

	// A language with a script of its own cannot appear in any of the
	// shared-script lists.
	shared := slices.Concat(
		LanguagesWithArabicScript(),
		LanguagesWithCyrillicScript(),
		LanguagesWithDevanagariScript(),
		LanguagesWithLatinScript(),
	)
	for _, name := range unique {
		assert.NotContains(t, shared, name)
	}
}
