// Package detect wraps the lingua language detection engine behind a
// consume-once builder and an immutable detector facade.
package detect

import (
	"fmt"
	"slices"
	"sync"

	"github.com/pemistahl/lingua-go"
	"github.com/samber/lo"
)

// settings is the configuration accumulated by a Builder. Build moves it
// into the Detector, which keeps a copy so models can be reloaded after an
// unload.
type settings struct {
	languages               []lingua.Language
	minimumRelativeDistance float64
	preloadModels           bool
	lowAccuracyMode         bool
}

func (s *settings) newEngine() lingua.LanguageDetector {
	builder := lingua.NewLanguageDetectorBuilder().FromLanguages(s.languages...)
	if s.minimumRelativeDistance > 0 {
		builder = builder.WithMinimumRelativeDistance(s.minimumRelativeDistance)
	}
	if s.preloadModels {
		builder = builder.WithPreloadedLanguageModels()
	}
	if s.lowAccuracyMode {
		builder = builder.WithLowAccuracyMode()
	}
	return builder.Build()
}

// Builder accumulates detector configuration and is consumed exactly once
// by Build. The settings slot is nil after consumption; every operation on
// a consumed builder fails with ErrBuilderConsumed. The mutex makes the
// check-and-take in Build atomic for multi-goroutine callers.
type Builder struct {
	mu       sync.Mutex
	settings *settings
}

func newBuilder(languages []lingua.Language) *Builder {
	return &Builder{settings: &settings{languages: languages}}
}

// FromLanguages returns a builder for the given set of language names.
// The list must not be empty and every name must be a known language.
func FromLanguages(names ...string) (*Builder, error) {
	languages, err := ParseLanguages(names)
	if err != nil {
		return nil, err
	}
	return newBuilder(languages), nil
}

// FromAllLanguages returns a builder covering every supported language.
func FromAllLanguages() *Builder {
	return newBuilder(lingua.AllLanguages())
}

// FromAllSpokenLanguages returns a builder covering all spoken languages.
func FromAllSpokenLanguages() *Builder {
	return newBuilder(lingua.AllSpokenLanguages())
}

// FromAllLanguagesWithArabicScript returns a builder covering all
// languages written in Arabic script.
func FromAllLanguagesWithArabicScript() *Builder {
	return newBuilder(lingua.AllLanguagesWithArabicScript())
}

// FromAllLanguagesWithCyrillicScript returns a builder covering all
// languages written in Cyrillic script.
func FromAllLanguagesWithCyrillicScript() *Builder {
	return newBuilder(lingua.AllLanguagesWithCyrillicScript())
}

// FromAllLanguagesWithDevanagariScript returns a builder covering all
// languages written in Devanagari script.
func FromAllLanguagesWithDevanagariScript() *Builder {
	return newBuilder(lingua.AllLanguagesWithDevanagariScript())
}

// FromAllLanguagesWithLatinScript returns a builder covering all languages
// written in Latin script.
func FromAllLanguagesWithLatinScript() *Builder {
	return newBuilder(lingua.AllLanguagesWithLatinScript())
}

// FromAllLanguagesWithSingleUniqueScript returns a builder covering all
// languages with a script of their own.
func FromAllLanguagesWithSingleUniqueScript() *Builder {
	return newBuilder(slices.Clone(singleUniqueScriptLanguages))
}

// FromAllLanguagesWithout returns a builder covering every supported
// language except the given ones. The exclusion list must not be empty and
// must leave at least one language.
func FromAllLanguagesWithout(names ...string) (*Builder, error) {
	excluded, err := ParseLanguages(names)
	if err != nil {
		return nil, err
	}
	kept := lo.Filter(lingua.AllLanguages(), func(language lingua.Language, _ int) bool {
		return !slices.Contains(excluded, language)
	})
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: cannot exclude every supported language", ErrInvalidArgument)
	}
	return newBuilder(kept), nil
}

// FromIsoCodes6391 returns a builder for the languages identified by the
// given ISO 639-1 codes.
func FromIsoCodes6391(codes ...string) (*Builder, error) {
	languages, err := languagesFromIso1(codes)
	if err != nil {
		return nil, err
	}
	return newBuilder(languages), nil
}

// FromIsoCodes6393 returns a builder for the languages identified by the
// given ISO 639-3 codes.
func FromIsoCodes6393(codes ...string) (*Builder, error) {
	languages, err := languagesFromIso3(codes)
	if err != nil {
		return nil, err
	}
	return newBuilder(languages), nil
}

// FromPreset maps a configuration preset name to the matching factory.
// The languages argument is the explicit set for "custom" and the
// exclusion set for "all-without"; other presets ignore it.
func FromPreset(preset string, languages ...string) (*Builder, error) {
	switch preset {
	case "", "custom":
		return FromLanguages(languages...)
	case "all":
		return FromAllLanguages(), nil
	case "spoken":
		return FromAllSpokenLanguages(), nil
	case "arabic-script":
		return FromAllLanguagesWithArabicScript(), nil
	case "cyrillic-script":
		return FromAllLanguagesWithCyrillicScript(), nil
	case "devanagari-script":
		return FromAllLanguagesWithDevanagariScript(), nil
	case "latin-script":
		return FromAllLanguagesWithLatinScript(), nil
	case "unique-script":
		return FromAllLanguagesWithSingleUniqueScript(), nil
	case "all-without":
		return FromAllLanguagesWithout(languages...)
	default:
		return nil, fmt.Errorf("%w: unknown detector preset: %q", ErrInvalidArgument, preset)
	}
}

// WithMinimumRelativeDistance sets how much more likely the top-scoring
// language must be versus the runner-up before the detector commits to an
// answer. The distance must lie in [0.0, 1.0].
func (b *Builder) WithMinimumRelativeDistance(distance float64) (*Builder, error) {
	if distance < 0.0 || distance > 1.0 {
		return nil, fmt.Errorf("%w: minimum relative distance must be between 0.0 and 1.0", ErrInvalidArgument)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.settings == nil {
		return nil, ErrBuilderConsumed
	}
	b.settings.minimumRelativeDistance = distance
	return b, nil
}

// WithPreloadedLanguageModels makes Build load all model data eagerly
// instead of lazily on first use of each language.
func (b *Builder) WithPreloadedLanguageModels() (*Builder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.settings == nil {
		return nil, ErrBuilderConsumed
	}
	b.settings.preloadModels = true
	return b, nil
}

// WithLowAccuracyMode trades detection accuracy for reduced memory use and
// faster startup.
func (b *Builder) WithLowAccuracyMode() (*Builder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.settings == nil {
		return nil, ErrBuilderConsumed
	}
	b.settings.lowAccuracyMode = true
	return b, nil
}

// Build moves the accumulated configuration into a new immutable Detector.
// A second Build on the same builder fails with ErrBuilderConsumed instead
// of silently rebuilding from stale state.
func (b *Builder) Build() (*Detector, error) {
	b.mu.Lock()
	s := b.settings
	b.settings = nil
	b.mu.Unlock()
	if s == nil {
		return nil, ErrBuilderConsumed
	}
	return &Detector{settings: *s, engine: s.newEngine()}, nil
}
