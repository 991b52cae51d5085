package app

import (
	"bytes"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spiral-gen/internal/galaxy"
)

func parseConfig(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("galaxy", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestParametersDefaults(t *testing.T) {
	p, err := parseConfig(t).Parameters()
	if err != nil {
		t.Fatal(err)
	}
	if p != galaxy.DefaultParameters() {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestParametersSourcePrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "galaxy.env")
	content := "GALAXY_COUNT=500\nGALAXY_BRANCHES=4\nGALAXY_INSIDE_COLOR=\"#000000\"\nOTHER=1\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GALAXY_BRANCHES", "5")
	t.Setenv("GALAXY_SPIN", "-2")

	cfg := parseConfig(t, "-env", envFile, "-set", "branches=6", "-set", "radius=7.5")
	p, err := cfg.Parameters()
	if err != nil {
		t.Fatal(err)
	}
	if p.Count != 500 {
		t.Fatalf("count from env file: %d", p.Count)
	}
	if p.Spin != -2 {
		t.Fatalf("spin from environment: %f", p.Spin)
	}
	if p.Branches != 6 || p.Radius != 7.5 {
		t.Fatalf("overrides must win: branches %d radius %f", p.Branches, p.Radius)
	}
	if p.InsideColor != (galaxy.Color{}) {
		t.Fatalf("inside color %+v", p.InsideColor)
	}
}

func TestParametersRejectsInvalid(t *testing.T) {
	_, err := parseConfig(t, "-set", "branches=1").Parameters()
	var verr *galaxy.ValidationError
	if !errors.As(err, &verr) || verr.Field != "branches" {
		t.Fatalf("expected branches ValidationError, got %v", err)
	}

	if _, err := parseConfig(t, "-set", "branches").Parameters(); err == nil {
		t.Fatal("malformed override must fail")
	}
	if _, err := parseConfig(t, "-env", filepath.Join(t.TempDir(), "missing.env")).Parameters(); err == nil {
		t.Fatal("missing env file must fail")
	}
}

func TestParametersRejectsUnknownOverrideKey(t *testing.T) {
	_, err := parseConfig(t, "-set", "brnches=7").Parameters()
	var verr *galaxy.ValidationError
	if !errors.As(err, &verr) || verr.Field != "brnches" {
		t.Fatalf("expected brnches ValidationError, got %v", err)
	}

	envFile := filepath.Join(t.TempDir(), "galaxy.env")
	if err := os.WriteFile(envFile, []byte("GALAXY_RADIOS=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := parseConfig(t, "-env", envFile).Parameters(); !errors.As(err, &verr) || verr.Field != "radios" {
		t.Fatalf("expected radios ValidationError from env file, got %v", err)
	}
}

func TestParametersIgnoresStrayEnvironment(t *testing.T) {
	t.Setenv("GALAXY_HOME", "/srv/galaxy")
	t.Setenv("GALAXY_RADIUS", "4")
	p, err := parseConfig(t).Parameters()
	if err != nil {
		t.Fatal(err)
	}
	if p.Radius != 4 {
		t.Fatalf("radius from environment: %f", p.Radius)
	}
}

func TestBindParametersOmitsWindowFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("galaxy-stats", flag.ContinueOnError)
	cfg.BindParameters(fs)
	for _, name := range []string{"width", "height", "panel", "tps"} {
		if fs.Lookup(name) != nil {
			t.Fatalf("window flag -%s bound for a headless command", name)
		}
	}
	for _, name := range []string{"seed", "env", "log-level", "log-json", "set"} {
		if fs.Lookup(name) == nil {
			t.Fatalf("missing flag -%s", name)
		}
	}
	if err := fs.Parse([]string{"-seed", "9", "-set", "count=10"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 9 || len(cfg.Overrides) != 1 {
		t.Fatalf("flags not bound: %+v", cfg)
	}

	full := flag.NewFlagSet("galaxy", flag.ContinueOnError)
	NewConfig().Bind(full)
	if full.Lookup("width") == nil || full.Lookup("seed") == nil {
		t.Fatal("Bind must keep window and parameter flags")
	}
}

func TestNewLoggerHonoursLevelAndFormat(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	cfg := parseConfig(t, "-log-level", "warn", "-log-json")
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("expected JSON warn entry, got %s", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	} {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
