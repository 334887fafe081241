package config

import "flag"

var (
	flagConfig         = flag.String("config", "", "Path to config file")
	flagSrc            = flag.String("src", "", "Directory holding .babylon scenes")
	flagExcludedMeshes = flag.String("excludedMeshes", "", "Comma-separated regexps of mesh names to keep inline")
	flagMinMeshSize    = flag.Int("minMeshSize", 0, "Only extract records whose payload is larger than this many bytes")
	flagRecursive      = flag.Bool("recursive", false, "Also process scenes in subdirectories")
	flagWorkers        = flag.Int("workers", 0, "Parallel sidecar writes per scene")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile        = flag.String("log-file", "", "Also write logs to this file")
	flagWriteConfig    = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config target, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// visitedFlags returns the names of flags given on the command line.
func visitedFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies CLI flag overrides to the config. String flags override
// when non-empty. Flags whose zero value is meaningful override only when
// named in set.
func applyFlags(cfg *Config, set map[string]bool) {
	if *flagSrc != "" {
		cfg.Source.Dir = *flagSrc
	}
	if set["recursive"] {
		cfg.Source.Recursive = *flagRecursive
	}
	if *flagExcludedMeshes != "" {
		cfg.Extract.ExcludedMeshes = splitList(*flagExcludedMeshes)
	}
	if set["minMeshSize"] {
		cfg.Extract.MinMeshSize = *flagMinMeshSize
	}
	if *flagWorkers > 0 {
		cfg.Extract.Workers = *flagWorkers
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
