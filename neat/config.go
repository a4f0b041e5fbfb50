package neat

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config stores the configuration parameters for a NEAT run.
type Config struct {
	Neat         NeatConfig
	Genome       GenomeConfig
	Reproduction ReproductionConfig
	SpeciesSet   SpeciesSetConfig
}

// NeatConfig holds parameters of the overall evolutionary run.
type NeatConfig struct {
	PopSize              int     `ini:"pop_size"`
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	MaxGenerations       int     `ini:"max_generations"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
}

// GenomeConfig holds the compatibility-distance coefficients and the phenotype
// activation. The structural encoding itself (3 inputs, 1 output, fixed node
// ids) is not configurable; it is a constant of the genome representation.
type GenomeConfig struct {
	ExcessCoefficient      float64 `ini:"compatibility_excess_coefficient"`
	DisjointCoefficient    float64 `ini:"compatibility_disjoint_coefficient"`
	WeightCoefficient      float64 `ini:"compatibility_weight_coefficient"`
	NormalizationThreshold int     `ini:"compatibility_normalization_threshold"`
	Activation             string  `ini:"activation"`
}

// ReproductionConfig holds parameters related to reproduction.
type ReproductionConfig struct {
	Elitism           int     `ini:"elitism"`
	SurvivalThreshold float64 `ini:"survival_threshold"`
}

// SpeciesSetConfig holds parameters related to speciation.
type SpeciesSetConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold"`
}

// defaultGenomeConfig returns the fixed constants of the encoding: c1=1.0,
// c2=1.0, c3=0.4, with small-genome normalization disabled below 20 genes.
func defaultGenomeConfig() *GenomeConfig {
	return &GenomeConfig{
		ExcessCoefficient:      1.0,
		DisjointCoefficient:    1.0,
		WeightCoefficient:      0.4,
		NormalizationThreshold: 20,
		Activation:             "sigmoid",
	}
}

// DefaultConfig returns a configuration carrying the encoding's standard
// constants, usable without a config file.
func DefaultConfig() *Config {
	return &Config{
		Neat: NeatConfig{
			PopSize:          150,
			FitnessThreshold: 3.9,
			MaxGenerations:   300,
		},
		Genome: *defaultGenomeConfig(),
		Reproduction: ReproductionConfig{
			Elitism:           2,
			SurvivalThreshold: 0.2,
		},
		SpeciesSet: SpeciesSetConfig{
			CompatibilityThreshold: 3.0,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file. Keys absent from
// the file keep the defaults of DefaultConfig.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()

	if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
		return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
	}
	if err := cfg.Section("DefaultGenome").MapTo(&config.Genome); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultGenome] section: %w", err)
	}
	if err := cfg.Section("DefaultReproduction").MapTo(&config.Reproduction); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultReproduction] section: %w", err)
	}
	if err := cfg.Section("DefaultSpeciesSet").MapTo(&config.SpeciesSet); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultSpeciesSet] section: %w", err)
	}

	config.Genome.Activation = cleanIniString(config.Genome.Activation)
	if config.Genome.Activation == "" {
		config.Genome.Activation = "sigmoid"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the algorithm cannot run with.
func (c *Config) Validate() error {
	if c.Neat.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if c.Neat.MaxGenerations <= 0 {
		return fmt.Errorf("config error: max_generations must be positive")
	}
	if c.Genome.ExcessCoefficient < 0 {
		return fmt.Errorf("config error: compatibility_excess_coefficient cannot be negative")
	}
	if c.Genome.DisjointCoefficient < 0 {
		return fmt.Errorf("config error: compatibility_disjoint_coefficient cannot be negative")
	}
	if c.Genome.WeightCoefficient < 0 {
		return fmt.Errorf("config error: compatibility_weight_coefficient cannot be negative")
	}
	if c.Genome.NormalizationThreshold < 1 {
		return fmt.Errorf("config error: compatibility_normalization_threshold must be positive")
	}
	if _, err := GetActivation(c.Genome.Activation); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Reproduction.Elitism < 0 {
		return fmt.Errorf("config error: elitism cannot be negative")
	}
	if c.Reproduction.SurvivalThreshold < 0 || c.Reproduction.SurvivalThreshold > 1 {
		return fmt.Errorf("config error: survival_threshold must be between 0 and 1")
	}
	if c.SpeciesSet.CompatibilityThreshold < 0 {
		return fmt.Errorf("config error: compatibility_threshold cannot be negative")
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string
// read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
