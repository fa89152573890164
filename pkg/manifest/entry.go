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

package manifest

import (
	"path"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📦 Entry is one manifest line mapped under a staging root.
type Entry struct {
	Source         string // absolute path as listed in the manifest
	Relative       string // Source with the prefix removed
	Filename       string // text after the last separator
	RelativeDir    string // text between the prefix and Filename, may be empty
	DestinationDir string // root joined with RelativeDir
	Destination    string // DestinationDir joined with Filename
}

// Resolve maps line, which must start with prefix, under root.
//
// Paths are joined textually with "/" and never cleaned, so a root of
// "./install" yields "./install/bin/app" for "/usr/local/bin/app". A line
// that is exactly the prefix, names a directory, or climbs out of the root
// with ".." is a KindMalformedEntry error.
func Resolve(line, prefix, root string) (Entry, error) {
	if !strings.HasPrefix(line, prefix) {
		return Entry{}, NewError(KindMalformedEntry, line, errors.Errorf("entry does not start with prefix %q", prefix))
	}

	rel := line[len(prefix):]
	if rel == "" {
		return Entry{}, NewError(KindMalformedEntry, line, errors.New("entry has no path after the prefix"))
	}

	filename := rel[strings.LastIndex(rel, "/")+1:]
	switch filename {
	case "":
		return Entry{}, NewError(KindMalformedEntry, line, errors.New("entry names a directory"))
	case ".", "..":
		return Entry{}, NewError(KindMalformedEntry, line, errors.Errorf("entry has invalid file name %q", filename))
	}

	if cleaned := path.Clean(rel); cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return Entry{}, NewError(KindMalformedEntry, line, errors.New("entry escapes the destination root"))
	}

	relDir := rel[:len(rel)-len(filename)]
	base := strings.TrimRight(root, "/")

	destDir := root
	if relDir != "" {
		destDir = base + "/" + strings.TrimSuffix(relDir, "/")
	}

	return Entry{
		Source:         line,
		Relative:       rel,
		Filename:       filename,
		RelativeDir:    relDir,
		DestinationDir: destDir,
		Destination:    base + "/" + rel,
	}, nil
}
