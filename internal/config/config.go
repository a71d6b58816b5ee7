// Package config defines a Config struct for the CLI-configurable knobs:
// library search paths, top-level arguments, stack limits and output
// mode. Neither cmd/hollow nor pkg/hollow imports it: the eval
// subcommand binds its cobra flags to package-level variables and
// passes them to pkg/hollow as functional options.
package config

import (
	"os"
	"strings"
)

// OutputFormat selects a manifest.* rendering mode.
type OutputFormat string

const (
	OutputJSON   OutputFormat = "json"
	OutputYAML   OutputFormat = "yaml"
	OutputStream OutputFormat = "stream"
	OutputMulti  OutputFormat = "multi"
)

// Config is the fully resolved set of evaluation options for one run.
type Config struct {
	SearchPath    []string
	TLAStr        map[string]string
	TLACode       map[string]string
	ExtStr        map[string]string
	ExtCode       map[string]string
	MaxStackDepth int
	IndentWidth   int
	Output        OutputFormat
	OutputPath    string
}

// Default returns a Config with the same defaults cmd/hollow's flags
// start from.
func Default() *Config {
	return &Config{
		TLAStr:        map[string]string{},
		TLACode:       map[string]string{},
		ExtStr:        map[string]string{},
		ExtCode:       map[string]string{},
		MaxStackDepth: 500,
		IndentWidth:   3,
		Output:        OutputJSON,
	}
}

// SearchPathFromEnv appends directories from the HOLLOW_PATH
// environment variable (a PATH-style, OS-list-separator-joined list),
// mirroring jsonnet's JSONNET_PATH.
func (c *Config) SearchPathFromEnv() {
	env := os.Getenv("HOLLOW_PATH")
	if env == "" {
		return
	}
	for _, p := range strings.Split(env, string(os.PathListSeparator)) {
		if p != "" {
			c.SearchPath = append(c.SearchPath, p)
		}
	}
}
