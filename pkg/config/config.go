// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultManifest    = "./install_manifest.txt"
	DefaultPrefix      = "/usr/local/"
	DefaultDestination = "./install"
)

// 📚 Config describes which manifest entries get staged and where
type Config struct {
	// Manifest is the manifest file to read
	Manifest string `json:"manifest" yaml:"manifest" toml:"manifest"`
	// Prefix is the install prefix entries are filtered on and relativized against
	Prefix string `json:"prefix" yaml:"prefix" toml:"prefix"`
	// Destination is the staging root
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
	// Exclude holds globs matched against the path below the prefix
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude"`
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Manifest:    DefaultManifest,
		Prefix:      DefaultPrefix,
		Destination: DefaultDestination,
	}
}

// 🔍 Validate checks if the configuration is usable
func (cfg *Config) Validate() error {
	if cfg.Manifest == "" {
		return errors.Errorf("manifest is required")
	}
	if cfg.Prefix == "" {
		return errors.Errorf("prefix is required")
	}
	if cfg.Destination == "" {
		return errors.Errorf("destination is required")
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s[%s] -> %s", cfg.Manifest, cfg.Prefix, cfg.Destination)
}

// 🔌 Parser decodes one config file format
type Parser interface {
	// 📝 Parse decodes data over the defaults
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Stringer("config", cfg).Msg("loaded configuration")
	return cfg, nil
}
