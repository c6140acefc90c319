package detect

import (
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"github.com/samber/lo"
	"github.com/samber/lo/parallel"
)

// Span is a contiguous stretch of a text attributed to one language by
// multi-language detection. Start and End are rune offsets into the
// original text, not byte offsets, so they stay valid across encodings.
type Span struct {
	Language lingua.Language
	Start    int
	End      int
}

// ConfidenceValue pairs a candidate language with the engine's normalized
// confidence for a given text, in [0.0, 1.0].
type ConfidenceValue struct {
	Language   lingua.Language
	Confidence float64
}

// Detector is an immutable language detector built from a Builder. All
// detection operations are safe for concurrent use; UnloadLanguageModels
// is the only operation touching shared mutable state and may run
// concurrently with in-flight detections.
type Detector struct {
	settings settings

	mu     sync.Mutex
	engine lingua.LanguageDetector
}

// engineRef hands out the current engine, rebuilding it from the retained
// settings after an unload. Callers keep their own reference, so a
// concurrent unload never disturbs an in-flight detection.
func (d *Detector) engineRef() lingua.LanguageDetector {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.engine == nil {
		d.engine = d.settings.newEngine()
	}
	return d.engine
}

// UnloadLanguageModels releases the detector's engine handle so its model
// data becomes reclaimable. Safe to call repeatedly; the next detection
// call transparently reloads.
func (d *Detector) UnloadLanguageModels() {
	d.mu.Lock()
	d.engine = nil
	d.mu.Unlock()
}

// Languages returns a copy of the detector's configured language set.
func (d *Detector) Languages() []lingua.Language {
	return slices.Clone(d.settings.languages)
}

// DetectLanguage returns the most likely language for the whole text. The
// second return value is false when no language can be determined with
// enough confidence, e.g. for empty input, unsupported scripts, or scores
// closer than the configured minimum relative distance.
func (d *Detector) DetectLanguage(text string) (lingua.Language, bool) {
	return d.engineRef().DetectLanguageOf(text)
}

// DetectLanguagesInParallel applies DetectLanguage to each text
// concurrently. The result slice matches the input order and holds
// lingua.Unknown where no language could be determined.
func (d *Detector) DetectLanguagesInParallel(texts []string) []lingua.Language {
	engine := d.engineRef()
	return parallel.Map(texts, func(text string, _ int) lingua.Language {
		language, ok := engine.DetectLanguageOf(text)
		if !ok {
			return lingua.Unknown
		}
		return language
	})
}

// DetectMultipleLanguages splits a mixed-language text into contiguous
// spans per language, ordered by start offset and non-overlapping.
func (d *Detector) DetectMultipleLanguages(text string) []Span {
	return spansOf(d.engineRef(), text)
}

// DetectMultipleLanguagesInParallel is the batch form of
// DetectMultipleLanguages; the outer slice matches the input order.
func (d *Detector) DetectMultipleLanguagesInParallel(texts []string) [][]Span {
	engine := d.engineRef()
	return parallel.Map(texts, func(text string, _ int) []Span {
		return spansOf(engine, text)
	})
}

func spansOf(engine lingua.LanguageDetector, text string) []Span {
	results := engine.DetectMultipleLanguagesOf(text)
	return lo.Map(results, func(result lingua.DetectionResult, _ int) Span {
		// The engine reports byte indices into the UTF-8 text.
		return Span{
			Language: result.Language(),
			Start:    utf8.RuneCountInString(text[:result.StartIndex()]),
			End:      utf8.RuneCountInString(text[:result.EndIndex()]),
		}
	})
}

// ComputeLanguageConfidenceValues returns one confidence value per
// configured language, sorted by descending confidence with ties broken by
// the engine's canonical language order.
func (d *Detector) ComputeLanguageConfidenceValues(text string) []ConfidenceValue {
	return confidenceValuesOf(d.engineRef(), text)
}

// ComputeLanguageConfidenceValuesInParallel is the batch form of
// ComputeLanguageConfidenceValues; the outer slice matches the input order.
func (d *Detector) ComputeLanguageConfidenceValuesInParallel(texts []string) [][]ConfidenceValue {
	engine := d.engineRef()
	return parallel.Map(texts, func(text string, _ int) []ConfidenceValue {
		return confidenceValuesOf(engine, text)
	})
}

func confidenceValuesOf(engine lingua.LanguageDetector, text string) []ConfidenceValue {
	values := engine.ComputeLanguageConfidenceValues(text)
	return lo.Map(values, func(value lingua.ConfidenceValue, _ int) ConfidenceValue {
		return ConfidenceValue{Language: value.Language(), Confidence: value.Value()}
	})
}

// ComputeLanguageConfidence returns the confidence in [0.0, 1.0] that the
// text is written in the named language. The name must parse to a known
// language.
func (d *Detector) ComputeLanguageConfidence(text string, language string) (float64, error) {
	parsed, err := ParseLanguage(language)
	if err != nil {
		return 0, err
	}
	return d.engineRef().ComputeLanguageConfidence(text, parsed), nil
}

// ComputeLanguageConfidenceInParallel scores every text against one fixed
// language concurrently, preserving input order.
func (d *Detector) ComputeLanguageConfidenceInParallel(texts []string, language string) ([]float64, error) {
	parsed, err := ParseLanguage(language)
	if err != nil {
		return nil, err
	}
	engine := d.engineRef()
	return parallel.Map(texts, func(text string, _ int) float64 {
		return engine.ComputeLanguageConfidence(text, parsed)
	}), nil
}
