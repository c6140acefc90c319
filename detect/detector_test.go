package detect

import (
	"slices"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T, names ...string) *Detector {
	t.Helper()
	builder, err := FromLanguages(names...)
	require.NoError(t, err)
	detector, err := builder.Build()
	require.NoError(t, err)
	return detector
}

func TestDetectLanguage(t *testing.T) {
	detector := newTestDetector(t, "English", "French", "German")

	tests := []struct {
		name   string
		text   string
		want   lingua.Language
		wantOk bool
	}{
		{"empty string", "", lingua.Unknown, false},
		{"whitespace only", "   \t\n", lingua.Unknown, false},
		{"digits only", "12345", lingua.Unknown, false},
		{"english", "languages are awesome and easy to learn", lingua.English, true},
		{"french", "le français est une très belle langue", lingua.French, true},
		{"german", "Sprachen sind wunderbar und machen Spaß", lingua.German, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detector.DetectLanguage(tt.text)
			require.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMinimumRelativeDistanceForcesUnknown(t *testing.T) {
	builder, err := FromLanguages("English", "French", "German")
	require.NoError(t, err)
	_, err = builder.WithMinimumRelativeDistance(0.9)
	require.NoError(t, err)
	detector, err := builder.Build()
	require.NoError(t, err)

	// With such a strict distance the closely-scored Latin-script
	// languages cannot be told apart.
	_, ok := detector.DetectLanguage("languages")
	assert.False(t, ok)
}

func TestDetectLanguagesInParallelMatchesSequential(t *testing.T) {
	detector := newTestDetector(t, "English", "French", "German")
	texts := []string{
		"languages are awesome and easy to learn",
		"le français est une très belle langue",
		"",
		"Sprachen sind wunderbar und machen Spaß",
		"12345",
	}

	got := detector.DetectLanguagesInParallel(texts)
	require.Len(t, got, len(texts))
	for i, text := range texts {
		want, ok := detector.DetectLanguage(text)
		if !ok {
			want = lingua.Unknown
		}
		assert.Equal(t, want, got[i], "result order must match input order for text %d", i)
	}
}

func TestDetectLanguagesInParallelEmptyBatch(t *testing.T) {
	detector := newTestDetector(t, "English", "French")
	assert.Empty(t, detector.DetectLanguagesInParallel(nil))
}

func TestDetectMultipleLanguages(t *testing.T) {
	detector := newTestDetector(t, "French", "German")
	text := "Parlez-vous français? Ich spreche Französisch nur ein bisschen."

	spans := detector.DetectMultipleLanguages(text)
	require.NotEmpty(t, spans)

	runeCount := utf8.RuneCountInString(text)
	previousEnd := 0
	languages := make([]lingua.Language, 0, len(spans))
	for _, span := range spans {
		// Spans are ordered by start offset, non-overlapping, and use
		// character offsets into the original text.
		assert.GreaterOrEqual(t, span.Start, previousEnd)
		assert.Greater(t, span.End, span.Start)
		assert.LessOrEqual(t, span.End, runeCount)
		previousEnd = span.End
		languages = append(languages, span.Language)
	}
	assert.Contains(t, languages, lingua.French)
	assert.Contains(t, languages, lingua.German)
}

func TestDetectMultipleLanguagesInParallel(t *testing.T) {
	detector := newTestDetector(t, "English", "French")
	texts := []string{
		"I am just a plain English sentence without any surprises.",
		"Bonjour tout le monde, comment allez-vous aujourd'hui?",
	}

	results := detector.DetectMultipleLanguagesInParallel(texts)
	require.Len(t, results, len(texts))
	for i, text := range texts {
		assert.Equal(t, detector.DetectMultipleLanguages(text), results[i])
	}
}

func TestComputeLanguageConfidenceValues(t *testing.T) {
	detector := newTestDetector(t, "English", "French", "German")
	values := detector.ComputeLanguageConfidenceValues("languages are awesome and easy to learn")

	// One entry per configured language, ranked by descending confidence.
	require.Len(t, values, 3)
	assert.Equal(t, lingua.English, values[0].Language)
	for i, value := range values {
		assert.GreaterOrEqual(t, value.Confidence, 0.0)
		assert.LessOrEqual(t, value.Confidence, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, value.Confidence, values[i-1].Confidence)
		}
	}
}

func TestComputeLanguageConfidenceValuesInParallel(t *testing.T) {
	detector := newTestDetector(t, "English", "French", "German")
	texts := []string{
		"languages are awesome and easy to learn",
		"le français est une très belle langue",
	}

	results := detector.ComputeLanguageConfidenceValuesInParallel(texts)
	require.Len(t, results, len(texts))
	for i, text := range texts {
		assert.Equal(t, detector.ComputeLanguageConfidenceValues(text), results[i])
	}
}

func TestComputeLanguageConfidence(t *testing.T) {
	detector := newTestDetector(t, "English", "French", "German")

	confidence, err := detector.ComputeLanguageConfidence("languages are awesome", "English")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, confidence, 0.0)
	assert.LessOrEqual(t, confidence, 1.0)

	_, err = detector.ComputeLanguageConfidence("Hello world", "unknown-lang-xyz")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "unknown-lang-xyz")
}

func TestComputeLanguageConfidenceInParallel(t *testing.T) {
	detector := newTestDetector(t, "English", "French", "German")
	texts := []string{
		"languages are awesome and easy to learn",
		"le français est une très belle langue",
		"",
	}

	confidences, err := detector.ComputeLanguageConfidenceInParallel(texts, "French")
	require.NoError(t, err)
	require.Len(t, confidences, len(texts))
	for i, text := range texts {
		want, err := detector.ComputeLanguageConfidence(text, "French")
		require.NoError(t, err)
		assert.Equal(t, want, confidences[i])
	}

	_, err = detector.ComputeLanguageConfidenceInParallel(texts, "Klingon")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUnloadLanguageModels(t *testing.T) {
	detector := newTestDetector(t, "English", "French")

	language, ok := detector.DetectLanguage("languages are awesome and easy to learn")
	require.True(t, ok)
	require.Equal(t, lingua.English, language)

	// Unloading is idempotent and detection transparently reloads.
	detector.UnloadLanguageModels()
	detector.UnloadLanguageModels()

	language, ok = detector.DetectLanguage("languages are awesome and easy to learn")
	require.True(t, ok)
	assert.Equal(t, lingua.English, language)
}

func TestUnloadDuringConcurrentDetection(t *testing.T) {
	detector := newTestDetector(t, "English", "French")
	texts := []string{
		"languages are awesome and easy to learn",
		"le français est une très belle langue",
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				results := detector.DetectLanguagesInParallel(texts)
				assert.Len(t, results, len(texts))
				assert.Equal(t, lingua.English, results[0])
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 20 {
			detector.UnloadLanguageModels()
		}
	}()
	wg.Wait()
}

func TestLanguagesReturnsCopy(t *testing.T) {
	detector := newTestDetector(t, "English", "French")
	languages := detector.Languages()
	require.Len(t, languages, 2)
	languages[0] = lingua.German

	assert.True(t, slices.Contains(detector.Languages(), lingua.English))
}

func BenchmarkDetectLanguage(b *testing.B) {
	builder, err := FromLanguages("English", "French", "German")
	if err != nil {
		b.Fatal(err)
	}
	detector, err := builder.Build()
	if err != nil {
		b.Fatal(err)
	}
	text := "this is a reasonably long English sentence used to benchmark single text detection"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detector.DetectLanguage(text)
	}
}

func BenchmarkDetectLanguagesInParallel(b *testing.B) {
	builder, err := FromLanguages("English", "French", "German")
	if err != nil {
		b.Fatal(err)
	}
	detector, err := builder.Build()
	if err != nil {
		b.Fatal(err)
	}
	texts := []string{
		"this is a reasonably long English sentence used for benchmarking",
		"le français est une très belle langue que j'aime beaucoup",
		"Sprachen sind wunderbar und machen wirklich viel Spaß",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detector.DetectLanguagesInParallel(texts)
	}
}
