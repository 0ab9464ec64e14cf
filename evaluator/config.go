package evaluator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NetworkConfig defines the value-network architecture and where to find
// its trained weights.
type NetworkConfig struct {
	Name         string  `yaml:"name"`
	HiddenLayers []int   `yaml:"hidden_layers"`
	Temperature  float64 `yaml:"temperature"`
	WeightsFile  string  `yaml:"weights_file"`
}

// DefaultNetworkConfig returns a small untrained network configuration.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Name:         "default",
		HiddenLayers: []int{128, 64},
		Temperature:  1.0,
	}
}

// LoadNetworkConfig reads a NetworkConfig from a YAML file.
func LoadNetworkConfig(path string) (NetworkConfig, error) {
	config := DefaultNetworkConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read network config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse network config: %w", err)
	}
	return config, nil
}

// FromConfig builds a Neural evaluator from a config, loading weights when
// a weights file is configured.
func FromConfig(config NetworkConfig) (*Neural, error) {
	e := NewNeural(config)
	if config.WeightsFile != "" {
		if err := e.LoadWeights(config.WeightsFile); err != nil {
			return nil, err
		}
	}
	return e, nil
}
