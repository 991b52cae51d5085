package app

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"spiral-gen/internal/galaxy"

	"github.com/joho/godotenv"
)

// EnvPrefix marks environment keys that map onto galaxy parameters, e.g.
// GALAXY_BRANCH_DENSITY=3.
const EnvPrefix = "GALAXY_"

// Config represents the command-line parameters for the application.
type Config struct {
	Width      int
	Height     int
	PanelWidth int
	TPS        int
	Seed       int64
	EnvFile    string
	LogLevel   string
	LogJSON    bool
	Overrides  kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 960, Height: 720, PanelWidth: 300, TPS: 60, LogLevel: "info"}
}

// Bind attaches the whole configuration, window flags included, to the
// provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "galaxy view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.PanelWidth, "panel", c.PanelWidth, "parameter panel width in pixels (0 hides it)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	c.BindParameters(fs)
}

// BindParameters attaches only the seed, parameter source and logging
// flags, for commands without a window.
func (c *Config) BindParameters(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for particle placement (0 picks one at random)")
	fs.StringVar(&c.EnvFile, "env", c.EnvFile, "dotenv file with GALAXY_* parameter overrides")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "emit JSON logs")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// Parameters resolves the startup parameter set. Sources are applied in
// order: defaults, the dotenv file, GALAXY_* process environment, then
// -set overrides. The result is validated.
func (c *Config) Parameters() (galaxy.ParameterSet, error) {
	p := galaxy.DefaultParameters()
	if c.EnvFile != "" {
		fileEnv, err := godotenv.Read(c.EnvFile)
		if err != nil {
			return p, fmt.Errorf("read env file %s: %w", c.EnvFile, err)
		}
		if p, err = galaxy.Overlay(p, prefixed(fileEnv)); err != nil {
			return p, fmt.Errorf("env file %s: %w", c.EnvFile, err)
		}
	}

	procEnv := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			procEnv[k] = v
		}
	}
	p, err := galaxy.Overlay(p, known(prefixed(procEnv)))
	if err != nil {
		return p, fmt.Errorf("environment: %w", err)
	}

	overrides := map[string]string{}
	for _, kv := range c.Overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return p, fmt.Errorf("override %q: want key=value", kv)
		}
		overrides[k] = v
	}
	if p, err = galaxy.Overlay(p, overrides); err != nil {
		return p, fmt.Errorf("override: %w", err)
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// prefixed keeps the GALAXY_* entries of env with the prefix removed.
func prefixed(env map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range env {
		if name, ok := strings.CutPrefix(strings.ToUpper(k), EnvPrefix); ok {
			out[strings.ToLower(name)] = v
		}
	}
	return out
}

// known drops keys that name no parameter. Stray GALAXY_* variables in the
// process environment are not errors; the env file and -set are strict.
func known(env map[string]string) map[string]string {
	for k := range env {
		if !galaxy.IsKey(k) {
			delete(env, k)
		}
	}
	return env
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
