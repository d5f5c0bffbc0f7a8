package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inscope/internal/core/config"
	"inscope/internal/engine/symbols"
)

func TestApplyModeOptions_RejectsCombinedModes(t *testing.T) {
	opts := &cliOptions{resolve: "Foo", resolveIn: "a.groovy", unused: true}
	cfg := &config.Config{}

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "cannot be combined") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_ResolveRequiresIn(t *testing.T) {
	opts := &cliOptions{resolve: "Foo"}
	cfg := &config.Config{}

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "requires --in") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_KindsRequiresResolve(t *testing.T) {
	opts := &cliOptions{resolveKinds: "class"}
	cfg := &config.Config{}

	err := applyModeOptions(opts, cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "requires --resolve") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyModeOptions_OverridesProjectRootWithPositionalArg(t *testing.T) {
	opts := &cliOptions{args: []string{"./override"}}
	cfg := &config.Config{ProjectRoot: "./original"}

	if err := applyModeOptions(opts, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectRoot != "./override" {
		t.Fatalf("unexpected project root: %v", cfg.ProjectRoot)
	}
}

func TestParseKinds(t *testing.T) {
	cases := []struct {
		raw     string
		want    symbols.KindSet
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: "class", want: symbols.Kinds(symbols.KindClass)},
		{raw: "class,method", want: symbols.Kinds(symbols.KindClass, symbols.KindMethod)},
		{raw: " field , enum_const ", want: symbols.Kinds(symbols.KindField, symbols.KindEnumConst)},
		{raw: "interface", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseKinds(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseKinds(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseKinds(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("parseKinds(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil)
	if err != nil {
		t.Fatalf("parse options: %v", err)
	}
	if opts.configPath != defaultConfigPath {
		t.Fatalf("unexpected config path: %s", opts.configPath)
	}
	if opts.once || opts.ui || opts.unused || opts.unresolved {
		t.Fatalf("unexpected mode flags set: %+v", opts)
	}
}

func TestLoadConfig_DefaultDiscoveryOrder(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "data", "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(tmpDir, "data", "config", "inscope.toml")
	payload := fmt.Sprintf("project_root = %q\nsource_dirs = [\"src\"]\n", tmpDir)
	if err := os.WriteFile(cfgPath, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(defaultConfigPath, tmpDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.SourceDirs) != 1 || cfg.SourceDirs[0] != "src" {
		t.Fatalf("unexpected config payload: %+v", cfg)
	}
}

func TestLoadConfig_DefaultsWhenNoFileFound(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := loadConfig(defaultConfigPath, tmpDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ProjectRoot != tmpDir {
		t.Fatalf("expected default root %s, got %s", tmpDir, cfg.ProjectRoot)
	}
}

func TestLoadConfig_CustomPathNoFallback(t *testing.T) {
	tmpDir := t.TempDir()
	custom := filepath.Join(tmpDir, "custom.toml")

	_, err := loadConfig(custom, tmpDir)
	if err == nil {
		t.Fatal("expected missing custom config error")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestInitializeAnalysis_RequiresFactory(t *testing.T) {
	if _, err := initializeAnalysis(&config.Config{}, nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
}
