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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "./install_manifest.txt", cfg.Manifest, "manifest should default to the install step output")
	assert.Equal(t, "/usr/local/", cfg.Prefix, "prefix should default to /usr/local/")
	assert.Equal(t, "./install", cfg.Destination, "destination should default to ./install")
	assert.Empty(t, cfg.Exclude, "nothing should be excluded by default")
	require.NoError(t, cfg.Validate(), "defaults should validate")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: ".stagerc.yaml",
			config: `
manifest: build/install_manifest.txt
prefix: /opt/app/
destination: /tmp/stage
exclude:
  - "**/*.a"
  - "share/doc/**"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "build/install_manifest.txt", cfg.Manifest, "manifest should match")
				assert.Equal(t, "/opt/app/", cfg.Prefix, "prefix should match")
				assert.Equal(t, "/tmp/stage", cfg.Destination, "destination should match")
				assert.Equal(t, []string{"**/*.a", "share/doc/**"}, cfg.Exclude, "exclude should match")
			},
		},
		{
			name:   "yaml_partial_keeps_defaults",
			file:   ".stagerc.yml",
			config: "destination: out\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultManifest, cfg.Manifest, "manifest should keep its default")
				assert.Equal(t, DefaultPrefix, cfg.Prefix, "prefix should keep its default")
				assert.Equal(t, "out", cfg.Destination, "destination should match")
			},
		},
		{
			name:   "yaml_empty",
			file:   ".stagerc.yaml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg, "empty file should yield defaults")
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        ".stagerc.yaml",
			config:      "destinaton: out\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "yaml_empty_prefix",
			file:        ".stagerc.yaml",
			config:      "prefix: \"\"\n",
			wantErr:     true,
			errContains: "prefix is required",
		},
		{
			name:        "yaml_bad_exclude",
			file:        ".stagerc.yaml",
			config:      "exclude: [\"lib/[\"]\n",
			wantErr:     true,
			errContains: "invalid exclude pattern",
		},
		{
			name: "json",
			file: "stagerc.json",
			config: `{
				"prefix": "/opt/app/",
				"exclude": ["*.la"]
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/opt/app/", cfg.Prefix, "prefix should match")
				assert.Equal(t, DefaultDestination, cfg.Destination, "destination should keep its default")
				assert.Equal(t, []string{"*.la"}, cfg.Exclude, "exclude should match")
			},
		},
		{
			name:        "json_unknown_field",
			file:        "stagerc.json",
			config:      `{"clean": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name: "hcl",
			file: "stagerc.hcl",
			config: `
manifest    = "build/install_manifest.txt"
destination = "${default_destination}-debug"
exclude     = ["include/**"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "build/install_manifest.txt", cfg.Manifest, "manifest should match")
				assert.Equal(t, DefaultPrefix, cfg.Prefix, "prefix should keep its default")
				assert.Equal(t, "./install-debug", cfg.Destination, "destination should be interpolated")
				assert.Equal(t, []string{"include/**"}, cfg.Exclude, "exclude should match")
			},
		},
		{
			name:        "hcl_unknown_attribute",
			file:        "stagerc.hcl",
			config:      `async = true`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name: "toml",
			file: "stagerc.toml",
			config: `
prefix = "/opt/app/"
exclude = ["share/man/**"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultManifest, cfg.Manifest, "manifest should keep its default")
				assert.Equal(t, "/opt/app/", cfg.Prefix, "prefix should match")
				assert.Equal(t, []string{"share/man/**"}, cfg.Exclude, "exclude should match")
			},
		},
		{
			name:        "toml_unknown_key",
			file:        "stagerc.toml",
			config:      `force = true`,
			wantErr:     true,
			errContains: "unknown keys force",
		},
		{
			name:        "unsupported_extension",
			file:        "stagerc.ini",
			config:      "prefix=/opt/",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	_, err := Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "Load should fail for a missing file")
	assert.Contains(t, err.Error(), "reading config file")
}
