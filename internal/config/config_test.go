package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Source.Dir != "" {
		t.Errorf("expected empty source dir, got %s", cfg.Source.Dir)
	}
	if cfg.Source.Recursive {
		t.Error("expected recursive to be false by default")
	}
	if len(cfg.Extract.ExcludedMeshes) != 0 {
		t.Errorf("expected no excluded meshes, got %v", cfg.Extract.ExcludedMeshes)
	}
	if cfg.Extract.MinMeshSize != 0 {
		t.Errorf("expected min mesh size 0, got %d", cfg.Extract.MinMeshSize)
	}
	if cfg.Extract.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Extract.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "makeincremental.yaml")

	yamlContent := `
source:
  dir: "/scenes"
  recursive: true

extract:
  excluded_meshes:
    - "^Collider"
    - "Sky.*"
  min_mesh_size: 2048
  workers: 4

logging:
  level: "debug"
  log_file: "incremental.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Source.Dir != "/scenes" {
		t.Errorf("expected dir /scenes, got %s", cfg.Source.Dir)
	}
	if !cfg.Source.Recursive {
		t.Error("expected recursive to be true")
	}
	if len(cfg.Extract.ExcludedMeshes) != 2 || cfg.Extract.ExcludedMeshes[1] != "Sky.*" {
		t.Errorf("unexpected excluded meshes %v", cfg.Extract.ExcludedMeshes)
	}
	if cfg.Extract.MinMeshSize != 2048 {
		t.Errorf("expected min mesh size 2048, got %d", cfg.Extract.MinMeshSize)
	}
	if cfg.Extract.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Extract.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "incremental.log" {
		t.Errorf("expected log file 'incremental.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
extract:
  min_mesh_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BABYLON_INCREMENTAL_SRC", "/from/env")
	t.Setenv("BABYLON_INCREMENTAL_EXCLUDED_MESHES", "Ground,Skybox")
	t.Setenv("BABYLON_INCREMENTAL_MIN_MESH_SIZE", "512")

	cfg := Default()
	cfg.Logging.Level = "warn"
	if err := loadFromEnv(cfg); err != nil {
		t.Fatalf("failed to load env: %v", err)
	}

	if cfg.Source.Dir != "/from/env" {
		t.Errorf("expected dir /from/env, got %s", cfg.Source.Dir)
	}
	if len(cfg.Extract.ExcludedMeshes) != 2 || cfg.Extract.ExcludedMeshes[0] != "Ground" {
		t.Errorf("unexpected excluded meshes %v", cfg.Extract.ExcludedMeshes)
	}
	if cfg.Extract.MinMeshSize != 512 {
		t.Errorf("expected min mesh size 512, got %d", cfg.Extract.MinMeshSize)
	}
	// Unset variables leave existing values alone.
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn' to survive, got %s", cfg.Logging.Level)
	}
	if cfg.Extract.Workers != 1 {
		t.Errorf("expected workers 1 to survive, got %d", cfg.Extract.Workers)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("BABYLON_INCREMENTAL_WORKERS", "many")

	if err := loadFromEnv(Default()); err == nil {
		t.Error("expected error for non-numeric workers, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "makeincremental.yaml")
	if err := os.WriteFile(configPath, []byte("source:\n  dir: scenes\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find makeincremental.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		set      map[string]bool
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "src flag",
			setup: func() {
				*flagSrc = "/tmp/scenes"
			},
			verify: func(cfg *Config) {
				if cfg.Source.Dir != "/tmp/scenes" {
					t.Errorf("expected dir /tmp/scenes, got %s", cfg.Source.Dir)
				}
			},
			teardown: func() {
				*flagSrc = ""
			},
		},
		{
			name: "excluded meshes flag",
			setup: func() {
				*flagExcludedMeshes = " Ground , Sky.* ,"
			},
			verify: func(cfg *Config) {
				want := []string{"Ground", "Sky.*"}
				if len(cfg.Extract.ExcludedMeshes) != len(want) {
					t.Fatalf("expected %v, got %v", want, cfg.Extract.ExcludedMeshes)
				}
				for i := range want {
					if cfg.Extract.ExcludedMeshes[i] != want[i] {
						t.Errorf("pattern %d: expected %q, got %q", i, want[i], cfg.Extract.ExcludedMeshes[i])
					}
				}
			},
			teardown: func() {
				*flagExcludedMeshes = ""
			},
		},
		{
			name: "min mesh size flag",
			set:  map[string]bool{"minMeshSize": true},
			setup: func() {
				*flagMinMeshSize = 4096
			},
			verify: func(cfg *Config) {
				if cfg.Extract.MinMeshSize != 4096 {
					t.Errorf("expected min mesh size 4096, got %d", cfg.Extract.MinMeshSize)
				}
			},
			teardown: func() {
				*flagMinMeshSize = 0
			},
		},
		{
			name: "recursive and workers flags",
			set:  map[string]bool{"recursive": true, "workers": true},
			setup: func() {
				*flagRecursive = true
				*flagWorkers = 8
			},
			verify: func(cfg *Config) {
				if !cfg.Source.Recursive {
					t.Error("expected recursive to be true")
				}
				if cfg.Extract.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.Extract.Workers)
				}
			},
			teardown: func() {
				*flagRecursive = false
				*flagWorkers = 0
			},
		},
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg, tt.set)

			tt.verify(cfg)
		})
	}
}

func TestApplyFlagsExplicitZero(t *testing.T) {
	cfg := Default()
	cfg.Extract.MinMeshSize = 4096
	cfg.Source.Recursive = true

	applyFlags(cfg, map[string]bool{"minMeshSize": true, "recursive": true})

	if cfg.Extract.MinMeshSize != 0 {
		t.Errorf("expected --minMeshSize 0 to clear the threshold, got %d", cfg.Extract.MinMeshSize)
	}
	if cfg.Source.Recursive {
		t.Error("expected --recursive=false to clear recursive")
	}

	cfg = Default()
	cfg.Extract.MinMeshSize = 4096
	applyFlags(cfg, nil)
	if cfg.Extract.MinMeshSize != 4096 {
		t.Errorf("expected unset flag to keep 4096, got %d", cfg.Extract.MinMeshSize)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "makeincremental.yaml")

	yamlContent := `
source:
  dir: "/from/file"
extract:
  min_mesh_size: 100
  workers: 2
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("BABYLON_INCREMENTAL_MIN_MESH_SIZE", "200")
	t.Setenv("BABYLON_INCREMENTAL_SRC", "/from/env")

	*flagConfig = configPath
	*flagSrc = "/from/flag"
	defer func() {
		*flagConfig = ""
		*flagSrc = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Source.Dir != "/from/flag" {
		t.Errorf("expected dir from flag, got %s", cfg.Source.Dir)
	}
	if cfg.Extract.MinMeshSize != 200 {
		t.Errorf("expected min mesh size 200 from env, got %d", cfg.Extract.MinMeshSize)
	}
	if cfg.Extract.Workers != 2 {
		t.Errorf("expected 2 workers from file, got %d", cfg.Extract.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) { c.Source.Dir = "/scenes" },
			wantErr: nil,
		},
		{
			name:    "missing source",
			mutate:  func(c *Config) {},
			wantErr: ErrMissingSource,
		},
		{
			name: "negative size",
			mutate: func(c *Config) {
				c.Source.Dir = "/scenes"
				c.Extract.MinMeshSize = -1
			},
			wantErr: ErrNegativeSize,
		},
		{
			name: "negative workers",
			mutate: func(c *Config) {
				c.Source.Dir = "/scenes"
				c.Extract.Workers = -2
			},
			wantErr: ErrNegativeWorkers,
		},
		{
			name: "bad pattern",
			mutate: func(c *Config) {
				c.Source.Dir = "/scenes"
				c.Extract.ExcludedMeshes = []string{"Cube(", "ok"}
			},
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExcludePatterns(t *testing.T) {
	cfg := Default()
	cfg.Extract.ExcludedMeshes = []string{" ^Collider ", "", "Sky"}

	patterns, err := cfg.ExcludePatterns()
	if err != nil {
		t.Fatalf("ExcludePatterns() error = %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	if !patterns[0].MatchString("Collider01") {
		t.Error("expected ^Collider to match Collider01")
	}
	if patterns[0].MatchString("BoxCollider") {
		t.Error("expected ^Collider not to match BoxCollider")
	}
	if !patterns[1].MatchString("Skybox") {
		t.Error("expected Sky to match Skybox")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.yaml")

	cfg := Default()
	cfg.Source.Dir = "/scenes"
	cfg.Extract.ExcludedMeshes = []string{"Ground"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Source.Dir != "/scenes" {
		t.Errorf("expected dir /scenes, got %s", loaded.Source.Dir)
	}
	if len(loaded.Extract.ExcludedMeshes) != 1 || loaded.Extract.ExcludedMeshes[0] != "Ground" {
		t.Errorf("unexpected excluded meshes %v", loaded.Extract.ExcludedMeshes)
	}
}
