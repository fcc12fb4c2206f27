package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/capacity-planner/capacity-planner/planner"
)

// Define struct for YAML
type DatasetsConfig struct {
	Datasets map[string]planner.CatalogPaths `yaml:"datasets"`
}

// GetCatalogPaths loads a named dataset preset from a YAML config file.
// Returns nil when the preset name is absent so the caller can fall back.
func GetCatalogPaths(configFilePath string, dataset string) *planner.CatalogPaths {
	// Read YAML file
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		logrus.Fatalf("unable to read datasets config %s: %v", configFilePath, err)
	}

	// Parse YAML
	var cfg DatasetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Fatalf("unable to parse datasets config %s: %v", configFilePath, err)
	}

	if preset, exists := cfg.Datasets[dataset]; exists {
		logrus.Infof("Using preset dataset %v", dataset)
		return &preset
	}
	return nil
}
