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

// Package manifest reads install manifests and maps their entries under a
// staging root.
//
// A manifest is the plain text file produced by an install step: one absolute
// path per line. Only lines starting with the configured prefix are staged;
// the remainder of each such line is the path relative to the staging root.
package manifest

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// 📖 Read loads the manifest at path and returns its trimmed lines in order.
func Read(ctx context.Context, path string) ([]string, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("reading manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(KindManifestUnreadable, path, err)
	}

	lines := Lines(data)
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("lines", len(lines)).Msg("read manifest")
	return lines, nil
}

// Lines splits manifest content into lines and trims surrounding whitespace
// from each. A trailing newline does not produce an extra line.
func Lines(data []byte) []string {
	text := string(data)
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

// 🔍 Select keeps the lines that start with prefix, byte for byte.
func Select(lines []string, prefix string) []string {
	var out []string
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			out = append(out, line)
		}
	}
	return out
}
