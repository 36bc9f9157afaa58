// Package engine provides the core generation engine used by both the CLI
// and the generator package: it loads the target package, collects its
// annotated enums, picks the framework adapter and renders the output file.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ehabterra/enumresp/internal/codegen"
	"github.com/ehabterra/enumresp/internal/core"
	"github.com/ehabterra/enumresp/internal/parser"
)

const (
	DefaultInputDir   = "."
	DefaultOutputFile = "enumresp_gen.go"

	// FrameworkAuto asks the engine to detect the target framework from the
	// package's imports.
	FrameworkAuto = "auto"

	CopyrightNotice = "enumresp - Copyright 2025 Ehab Terra"
	LicenseNotice   = "Licensed under the Apache License 2.0. See LICENSE and NOTICE."
)

// Config holds the generation settings. The yaml tags are the config-file
// surface; InputDir and DryRun are CLI-only.
type Config struct {
	InputDir string `yaml:"-"`
	DryRun   bool   `yaml:"-"`

	// OutputFile is the generated file's name, created inside InputDir.
	OutputFile string `yaml:"output,omitempty"`

	// Framework is one of echo, gin, fiber, http, or auto.
	Framework string `yaml:"framework,omitempty"`

	// IncludeTypes restricts generation to the named enums; empty means all.
	IncludeTypes []string `yaml:"includeTypes,omitempty"`

	// ExcludeTypes drops the named enums from generation.
	ExcludeTypes []string `yaml:"excludeTypes,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		InputDir:   DefaultInputDir,
		OutputFile: DefaultOutputFile,
		Framework:  FrameworkAuto,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.Framework == "" {
		cfg.Framework = FrameworkAuto
	}
	return cfg, nil
}

// WriteConfig writes the effective configuration as YAML.
func (c *Config) WriteConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the engine cannot act on.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.Framework != FrameworkAuto && !core.Known(c.Framework) {
		return fmt.Errorf("unknown framework %q (want echo, gin, fiber, http or auto)", c.Framework)
	}
	return nil
}

// Result is one finished generation: the rendered source plus what it was
// rendered from.
type Result struct {
	Package   string
	Framework string
	Enums     []parser.Enum
	Source    []byte
	Path      string
}

// Engine drives one generation run.
type Engine struct {
	config *Config
}

// NewEngine creates an engine; a nil config means defaults.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{config: cfg}
}

// Generate loads the configured package and renders its generated file.
func (e *Engine) Generate() (*Result, error) {
	cfg := e.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pkg, err := parser.LoadPackage(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	enums, err := pkg.Enums()
	if err != nil {
		return nil, err
	}
	enums = filterEnums(enums, cfg.IncludeTypes, cfg.ExcludeTypes)
	if len(enums) == 0 {
		return nil, fmt.Errorf("no annotated enum variants found in %s", cfg.InputDir)
	}

	framework := cfg.Framework
	if framework == FrameworkAuto {
		framework = core.DetectFromImports(pkg.Imports)
	}

	src, err := codegen.File(codegen.Options{Package: pkg.Name, Framework: framework}, enums)
	if err != nil {
		return nil, err
	}

	return &Result{
		Package:   pkg.Name,
		Framework: framework,
		Enums:     enums,
		Source:    src,
		Path:      filepath.Join(cfg.InputDir, cfg.OutputFile),
	}, nil
}

// Write puts the rendered source on disk, or on stdout for dry runs.
func (e *Engine) Write(res *Result) error {
	if e.config.DryRun {
		_, err := os.Stdout.Write(res.Source)
		return err
	}
	if err := os.WriteFile(res.Path, res.Source, 0644); err != nil {
		return fmt.Errorf("failed to write generated file: %w", err)
	}
	return nil
}

func filterEnums(enums []parser.Enum, include, exclude []string) []parser.Enum {
	var kept []parser.Enum
	for _, e := range enums {
		if len(include) > 0 && !slices.Contains(include, e.Name) {
			continue
		}
		if slices.Contains(exclude, e.Name) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
