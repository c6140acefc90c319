package cmd

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyglotkit/polyglot/config"
)

type detectionLine struct {
	Text       string           `json:"text"`
	Language   *string          `json:"language"`
	Spans      []spanLine       `json:"spans,omitempty"`
	Confidence []confidenceLine `json:"confidence,omitempty"`
}

type spanLine struct {
	Language string `json:"language"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

type confidenceLine struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// NewDetectCommand detects languages of the given texts (arguments, or
// stdin lines when no arguments are given) and prints one JSON object per
// input text.
func NewDetectCommand() *cobra.Command {
	var (
		languages   []string
		preset      string
		minDistance float64
		preload     bool
		lowAccuracy bool
		mixed       bool
		confidence  bool
	)

	detectCommand := &cobra.Command{
		Use:   "detect [text ...]",
		Short: "Detect the language of one or more texts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset == "" && len(languages) == 0 {
				preset = "all"
			}
			detector, err := buildDetector(config.Detector{
				Preset:                  preset,
				Languages:               languages,
				MinimumRelativeDistance: minDistance,
				PreloadModels:           preload,
				LowAccuracyMode:         lowAccuracy,
			})
			if err != nil {
				return err
			}

			texts := args
			if len(texts) == 0 {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					texts = append(texts, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}

			detected := detector.DetectLanguagesInParallel(texts)
			encoder := json.NewEncoder(os.Stdout)
			for i, input := range texts {
				line := detectionLine{Text: input}
				if name := detected[i].String(); name != "Unknown" {
					line.Language = &name
				}
				if mixed {
					for _, span := range detector.DetectMultipleLanguages(input) {
						line.Spans = append(line.Spans, spanLine{
							Language: span.Language.String(),
							Start:    span.Start,
							End:      span.End,
						})
					}
				}
				if confidence {
					for _, value := range detector.ComputeLanguageConfidenceValues(input) {
						line.Confidence = append(line.Confidence, confidenceLine{
							Language:   value.Language.String(),
							Confidence: value.Confidence,
						})
					}
				}
				if err := encoder.Encode(line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	detectCommand.Flags().StringSliceVarP(&languages, "languages", "l", nil, "Language names to choose from (default: all)")
	detectCommand.Flags().StringVarP(&preset, "preset", "p", "", "Language set preset: all, spoken, latin-script, cyrillic-script, arabic-script, devanagari-script, unique-script, all-without")
	detectCommand.Flags().Float64Var(&minDistance, "min-distance", 0, "Minimum relative distance between 0.0 and 1.0")
	detectCommand.Flags().BoolVar(&preload, "preload", false, "Preload all language models")
	detectCommand.Flags().BoolVar(&lowAccuracy, "low-accuracy", false, "Trade accuracy for lower memory use")
	detectCommand.Flags().BoolVar(&mixed, "mixed", false, "Also report per-language spans of mixed-language texts")
	detectCommand.Flags().BoolVar(&confidence, "confidence", false, "Also report ranked confidence values")
	return detectCommand
}
