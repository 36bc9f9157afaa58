// Package generator provides a simple, public API to generate enum response
// code from a Go package directory, matching the usage shown in README.
package generator

import (
	"fmt"

	"github.com/ehabterra/enumresp/internal/engine"
)

// Config re-exports the engine configuration for library callers.
type Config = engine.Config

// Result re-exports a finished generation.
type Result = engine.Result

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config { return engine.DefaultConfig() }

// LoadConfig loads a YAML configuration file.
func LoadConfig(path string) (*Config, error) { return engine.LoadConfig(path) }

// Generator encapsulates configuration for generation.
type Generator struct {
	config *Config
}

// NewGenerator creates a new Generator. A nil cfg uses defaults, with the
// target framework detected from the package's imports.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{config: cfg}
}

func (g *Generator) effectiveConfig(dir string) *Config {
	cfg := engine.DefaultConfig()
	if g.config != nil {
		copied := *g.config
		cfg = &copied
		if cfg.OutputFile == "" {
			cfg.OutputFile = engine.DefaultOutputFile
		}
		if cfg.Framework == "" {
			cfg.Framework = engine.FrameworkAuto
		}
	}
	cfg.InputDir = dir
	return cfg
}

// GenerateFromDirectory scans the package in dir and returns the rendered
// generated file without writing it.
func (g *Generator) GenerateFromDirectory(dir string) (*Result, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory path is required")
	}
	return engine.NewEngine(g.effectiveConfig(dir)).Generate()
}

// WriteFromDirectory generates and writes the file into dir.
func (g *Generator) WriteFromDirectory(dir string) (*Result, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory path is required")
	}
	eng := engine.NewEngine(g.effectiveConfig(dir))
	res, err := eng.Generate()
	if err != nil {
		return nil, err
	}
	if err := eng.Write(res); err != nil {
		return nil, err
	}
	return res, nil
}
