package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagPipeline  = flag.String("pipeline", "", "Path to pipeline document")
	flagSeed      = flag.String("seed", "", "Seed to build with (-1 draws a fresh one)")
	flagUpTo      = flag.Int("upto", 0, "Build only up to this 1-based stage")
	flagRetrieve  = flag.Bool("retrieve", false, "Write the used seed back to the pipeline document")
	flagOut       = flag.String("out", "", "Output directory")
	flagMode      = flag.String("mode", "", "Preview mode: wireframe, flat or smooth")
	flagFormat    = flag.String("format", "", "Preview format: png, webp or tga")
	flagNoPreview = flag.Bool("no-preview", false, "Skip the preview image")
	flagAddr      = flag.String("addr", "", "Server listen address")
	flagGlobal    = flag.Bool("global", false, "With init, write the config to the user config directory")
)

// ParseFlags parses a subcommand's arguments. Call this early in main().
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left after the flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Global reports whether -global was given.
func Global() bool {
	return *flagGlobal
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPipeline != "" {
		cfg.Pipeline.Path = *flagPipeline
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", *flagSeed, err)
		}
		cfg.Build.Seed = &seed
	}
	if *flagUpTo > 0 {
		cfg.Build.UpTo = *flagUpTo
	}
	if *flagRetrieve {
		cfg.Build.RetrieveSeed = true
	}
	if *flagOut != "" {
		cfg.Export.Dir = *flagOut
	}
	if *flagMode != "" {
		cfg.Preview.Mode = *flagMode
	}
	if *flagFormat != "" {
		cfg.Preview.Format = *flagFormat
	}
	if *flagNoPreview {
		cfg.Preview.Enabled = false
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	return nil
}
