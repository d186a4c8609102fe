package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/gcctaxlaws/seogen/pkg/seo"
)

// GeneratorConfig holds the settings of the generation run itself,
// as opposed to the site settings in seo.Config.
type GeneratorConfig struct {
	LogLevel      string `json:"log_level"`
	TemplateDir   string `json:"template_dir"`
	InventoryPath string `json:"inventory_path"`
	// CleanOutput removes the output directory before generating, so
	// pages deleted from the input data do not linger on disk.
	CleanOutput bool `json:"clean_output"`
}

// DefaultGeneratorConfig creates a generator configuration with
// default values.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		LogLevel:      "info",
		TemplateDir:   "./data/templates",
		InventoryPath: "./data/seogen_inventory.db",
		CleanOutput:   false,
	}
}

// Config is the top-level configuration struct that aggregates all
// other configs.
type Config struct {
	Site      *seo.Config         `json:"site_config"`
	Files     *seo.FileListConfig `json:"file_config"`
	Generator *GeneratorConfig    `json:"generator_config"`
}

// LoadConfig reads the configuration from a JSON file at the given
// path. If the file doesn't exist, it creates one with default
// values. The site section is validated after loading, so a config
// file with a bad override fails here rather than mid-run.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Site:      seo.DefaultConfig(),
		Files:     seo.DefaultFileListConfig(),
		Generator: DefaultGeneratorConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as the generator can still run with defaults.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err = config.Site.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
