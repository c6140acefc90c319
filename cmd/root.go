package cmd

import (
	"github.com/polyglotkit/polyglot/config"
	"github.com/polyglotkit/polyglot/detect"
	"github.com/polyglotkit/polyglot/utils"
)

var logger = utils.Logger

// buildDetector turns a detector configuration section into a built
// Detector, shared by the server and one-shot CLI commands.
func buildDetector(cfg config.Detector) (*detect.Detector, error) {
	builder, err := detect.FromPreset(cfg.Preset, cfg.Languages...)
	if err != nil {
		return nil, err
	}
	if cfg.MinimumRelativeDistance != 0 {
		if _, err := builder.WithMinimumRelativeDistance(cfg.MinimumRelativeDistance); err != nil {
			return nil, err
		}
	}
	if cfg.PreloadModels {
		if _, err := builder.WithPreloadedLanguageModels(); err != nil {
			return nil, err
		}
	}
	if cfg.LowAccuracyMode {
		if _, err := builder.WithLowAccuracyMode(); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}
