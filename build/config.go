package build

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the external toolchain driven by the pipeline. All
// fields are optional in cover.yaml; absent fields keep their defaults.
type Config struct {
	Engine      string   `yaml:"engine"`
	EngineArgs  []string `yaml:"engine-args"`
	Cleanup     string   `yaml:"cleanup"`
	CleanupArgs []string `yaml:"cleanup-args"`
	Passes      int      `yaml:"passes"`
}

// DefaultConfig returns the stock toolchain configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine:      "pdflatex",
		EngineArgs:  []string{"-synctex=1", "-interaction=nonstopmode"},
		Cleanup:     "latexmk",
		CleanupArgs: []string{"-c"},
		Passes:      2,
	}
}

// LoadConfig reads fn if it exists, overlaying its fields onto the
// defaults. A missing file is not an error.
func LoadConfig(fn string) (*Config, error) {
	cfg := DefaultConfig()

	buf, err := os.ReadFile(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	err = yaml.Unmarshal(buf, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", fn, err)
	}

	if cfg.Engine == "" {
		cfg.Engine = DefaultConfig().Engine
	}
	if cfg.Cleanup == "" {
		cfg.Cleanup = DefaultConfig().Cleanup
	}
	if cfg.Passes < 1 {
		cfg.Passes = 1
	}
	return cfg, nil
}

// compileStep builds the engine invocation for one source document.
func (c *Config) compileStep(doc string) *Step {
	args := append([]string{}, c.EngineArgs...)
	args = append(args, doc)
	return &Step{Tool: c.Engine, Args: args, Capture: CaptureStdout}
}

// cleanupStep builds the intermediate-file cleanup invocation. Cleanup
// failures never abort the run.
func (c *Config) cleanupStep() *Step {
	args := append([]string{}, c.CleanupArgs...)
	return &Step{Tool: c.Cleanup, Args: args, Capture: CaptureStdout, BestEffort: true}
}
