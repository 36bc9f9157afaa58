// Copyright 2025 Ehab Terra
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/ehabterra/enumresp/internal/engine"
)

// stringSliceFlag implements flag.Value for string slices
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Version info - can be injected at build time via -ldflags or detected at runtime
var (
	Version   = "0.0.1" // Default version, overridden by -ldflags or runtime detection
	Commit    = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// detectVersionInfo attempts to detect version information at runtime
func detectVersionInfo() {
	// If version info was already injected via -ldflags, don't override it
	if Version != "0.0.1" {
		return
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.GoVersion != "" {
			GoVersion = info.GoVersion
		}

		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}

		hasVCSInfo := false
		isModified := false
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				hasVCSInfo = true
				if len(setting.Value) >= 7 {
					Commit = setting.Value[:7] // Short commit hash
				} else {
					Commit = setting.Value
				}
			case "vcs.time":
				hasVCSInfo = true
				BuildDate = setting.Value
			case "vcs.modified":
				if setting.Value == "true" {
					isModified = true
				}
			}
		}

		if isModified && !strings.Contains(Version, "+dirty") {
			Version += "+dirty"
		}

		if hasVCSInfo && (Version == "0.0.1" || Version == "(devel)") {
			Version = "dev"
		}
	}

	if Version == "0.0.1" || Version == "(devel)" {
		// Installed via go install without VCS info
		Version = "unknown (go install)"
	}
}

func printVersion() {
	detectVersionInfo()

	fmt.Printf("enumresp version: %s\n", Version)
	fmt.Printf("Commit: %s\n", Commit)
	fmt.Printf("Build date: %s\n", BuildDate)
	fmt.Printf("Go version: %s\n", GoVersion)
	fmt.Println(engine.CopyrightNotice)
	fmt.Println(engine.LicenseNotice)
}

// CLIConfig holds the configuration parsed from command line arguments
type CLIConfig struct {
	InputDir     string
	OutputFile   string
	Framework    string
	ConfigFile   string
	OutputConfig string
	DryRun       bool
	ShowVersion  bool
	IncludeTypes []string
	ExcludeTypes []string
}

// parseFlags parses command line arguments and returns a CLIConfig
func parseFlags(args []string) (*CLIConfig, error) {
	// Create a new flag set to avoid global state
	fs := flag.NewFlagSet("enumresp", flag.ContinueOnError)

	config := &CLIConfig{}

	fs.BoolVar(&config.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&config.ShowVersion, "V", false, "Shorthand for --version")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n%s\n\nUsage: %s [flags] [dir]\n\nFlags:\n",
			engine.CopyrightNotice, engine.LicenseNotice, os.Args[0])
		fs.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s -d ./api\n", os.Args[0])
		fmt.Printf("  %s -d ./api -f echo -o responses_gen.go\n", os.Args[0])
		fmt.Printf("  %s -d ./api --dry-run\n", os.Args[0])
	}

	fs.StringVar(&config.InputDir, "dir", engine.DefaultInputDir, "Input directory containing the annotated package")
	fs.StringVar(&config.InputDir, "d", engine.DefaultInputDir, "Shorthand for --dir")

	fs.StringVar(&config.OutputFile, "output", engine.DefaultOutputFile, "Generated file name, created inside the input directory")
	fs.StringVar(&config.OutputFile, "o", engine.DefaultOutputFile, "Shorthand for --output")

	fs.StringVar(&config.Framework, "framework", engine.FrameworkAuto, "Target framework: echo, gin, fiber, http or auto")
	fs.StringVar(&config.Framework, "f", engine.FrameworkAuto, "Shorthand for --framework")

	fs.StringVar(&config.ConfigFile, "config", "", "Configuration file path")
	fs.StringVar(&config.ConfigFile, "c", "", "Shorthand for --config")

	fs.StringVar(&config.OutputConfig, "output-config", "", "Output effective configuration to file")
	fs.StringVar(&config.OutputConfig, "oc", "", "Shorthand for --output-config")

	fs.BoolVar(&config.DryRun, "dry-run", false, "Print the generated file to stdout instead of writing it")
	fs.BoolVar(&config.DryRun, "n", false, "Shorthand for --dry-run")

	fs.Var((*stringSliceFlag)(&config.IncludeTypes), "include-type", "Generate only the named enum (can be specified multiple times)")
	fs.Var((*stringSliceFlag)(&config.ExcludeTypes), "exclude-type", "Skip the named enum (can be specified multiple times)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Handle positional arguments (override --dir flag)
	if len(fs.Args()) > 0 {
		config.InputDir = fs.Args()[0]
	}

	return config, nil
}

// buildEngineConfig merges the config file, if any, with CLI flags; flags win.
func buildEngineConfig(config *CLIConfig) (*engine.Config, error) {
	cfg := engine.DefaultConfig()
	if config.ConfigFile != "" {
		loaded, err := engine.LoadConfig(config.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.InputDir = config.InputDir
	cfg.DryRun = config.DryRun
	if config.OutputFile != engine.DefaultOutputFile {
		cfg.OutputFile = config.OutputFile
	}
	if config.Framework != engine.FrameworkAuto {
		cfg.Framework = config.Framework
	}
	if len(config.IncludeTypes) > 0 {
		cfg.IncludeTypes = config.IncludeTypes
	}
	if len(config.ExcludeTypes) > 0 {
		cfg.ExcludeTypes = config.ExcludeTypes
	}
	return cfg, nil
}

func run(config *CLIConfig) error {
	cfg, err := buildEngineConfig(config)
	if err != nil {
		return err
	}

	if config.OutputConfig != "" {
		if err := cfg.WriteConfig(config.OutputConfig); err != nil {
			return err
		}
	}

	eng := engine.NewEngine(cfg)
	res, err := eng.Generate()
	if err != nil {
		return err
	}
	if err := eng.Write(res); err != nil {
		return err
	}

	if !cfg.DryRun {
		fmt.Printf("Successfully generated: %s (%s, %d enums)\n", res.Path, res.Framework, len(res.Enums))
	}
	return nil
}

func main() {
	config, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("Failed to parse flags: %v", err)
	}

	if config.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(config); err != nil {
		log.Fatalf("%v", err)
	}
}
