package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Envelope struct {
	Server   Server   `yaml:"server"`
	Detector Detector `yaml:"detector"`
}

type Server struct {
	Address        string   `yaml:"address"`
	Tokens         []string `yaml:"tokens"`
	NormalizeInput bool     `yaml:"normalize_input"`
}

// Detector mirrors the builder surface: a preset selects the factory,
// languages holds the explicit set for "custom" and the exclusions for
// "all-without".
type Detector struct {
	Preset                  string   `yaml:"preset"`
	Languages               []string `yaml:"languages"`
	MinimumRelativeDistance float64  `yaml:"minimum_relative_distance"`
	PreloadModels           bool     `yaml:"preload_models"`
	LowAccuracyMode         bool     `yaml:"low_accuracy_mode"`
}

func LoadConfigFromFile(path string) (*Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	envelope := &Envelope{}
	if err := yaml.Unmarshal(data, envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}
