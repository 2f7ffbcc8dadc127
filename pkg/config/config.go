package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Chart   ChartConfig   `yaml:"chart"`
	Palette PaletteConfig `yaml:"palette"`
	Mock    MockConfig    `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// ChartConfig contains chart display and reduction parameters.
type ChartConfig struct {
	EpsilonThreshold         float64 `yaml:"epsilon_threshold"`          // Delta filter threshold (0 disables)
	SampleRateKHz            float64 `yaml:"sample_rate_khz"`            // Capture sample rate in kHz
	StartTimeMs              float64 `yaml:"start_time_ms"`              // Full record start (ms)
	EndTimeMs                float64 `yaml:"end_time_ms"`                // Full record end (ms)
	AnalysisTimeEdgeMs       float64 `yaml:"analysis_time_edge_ms"`      // Analysis window half-width about zero (ms)
	TrackerResolutionDivisor float64 `yaml:"tracker_resolution_divisor"` // Peak snap tolerance divisor
	DelayMs                  float64 `yaml:"delay_ms"`                   // Propagation delay compensation (ms)
	LimitFrequencyRange      bool    `yaml:"limit_frequency_range"`      // Clamp spectra to audible band
	LowestFrequency          float64 `yaml:"lowest_frequency"`           // Lower clamp (Hz)
	HighestFrequency         float64 `yaml:"highest_frequency"`          // Upper clamp (Hz)
}

// PaletteConfig contains palette legend configuration.
type PaletteConfig struct {
	Colors             int     `yaml:"colors"`
	DynamicRange       float64 `yaml:"dynamic_range"`
	NormalizeMaxToZero bool    `yaml:"normalize_max_to_zero"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	NoiseLevel   float64       `yaml:"noise_level"`   // Noise floor (normalized amplitude)
	PeakTimeMs   float64       `yaml:"peak_time_ms"`  // Impulse arrival time (ms)
	DecayMs      float64       `yaml:"decay_ms"`      // Exponential decay constant (ms)
	SweepPeriod  time.Duration `yaml:"sweep_period"`  // Time between synthesized captures
	FrameSamples int           `yaml:"frame_samples"` // Samples per synthesized frame
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		Chart: ChartConfig{
			EpsilonThreshold:         0, // Keep every sample unless the user opts in
			SampleRateKHz:            48,
			StartTimeMs:              -1120,
			EndTimeMs:                1120,
			AnalysisTimeEdgeMs:       320,
			TrackerResolutionDivisor: 15000,
			DelayMs:                  0,
			LimitFrequencyRange:      true,
			LowestFrequency:          15,
			HighestFrequency:         20000,
		},
		Palette: PaletteConfig{
			Colors:             256,
			DynamicRange:       42,
			NormalizeMaxToZero: true,
		},
		Mock: MockConfig{
			NoiseLevel:   0.002,
			PeakTimeMs:   12.0,
			DecayMs:      60.0,
			SweepPeriod:  5 * time.Second,
			FrameSamples: 4096,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Chart.SampleRateKHz == 0 {
		c.Chart.SampleRateKHz = def.Chart.SampleRateKHz
	}
	if c.Chart.StartTimeMs == 0 && c.Chart.EndTimeMs == 0 {
		c.Chart.StartTimeMs = def.Chart.StartTimeMs
		c.Chart.EndTimeMs = def.Chart.EndTimeMs
	}
	if c.Chart.AnalysisTimeEdgeMs == 0 {
		c.Chart.AnalysisTimeEdgeMs = def.Chart.AnalysisTimeEdgeMs
	}
	if c.Chart.TrackerResolutionDivisor == 0 {
		c.Chart.TrackerResolutionDivisor = def.Chart.TrackerResolutionDivisor
	}
	if c.Chart.LowestFrequency == 0 {
		c.Chart.LowestFrequency = def.Chart.LowestFrequency
	}
	if c.Chart.HighestFrequency == 0 {
		c.Chart.HighestFrequency = def.Chart.HighestFrequency
	}

	if c.Palette.Colors == 0 {
		c.Palette.Colors = def.Palette.Colors
	}
	if c.Palette.DynamicRange == 0 {
		c.Palette.DynamicRange = def.Palette.DynamicRange
	}

	if c.Mock.SweepPeriod == 0 {
		c.Mock.SweepPeriod = def.Mock.SweepPeriod
	}
	if c.Mock.FrameSamples == 0 {
		c.Mock.FrameSamples = def.Mock.FrameSamples
	}
	if c.Mock.DecayMs == 0 {
		c.Mock.DecayMs = def.Mock.DecayMs
	}
}
