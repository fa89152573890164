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

package status

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus says what a copy did to its destination
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusNew                    // destination did not exist
	StatusOverwritten            // destination existed and was replaced
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusOverwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// 📄 FileInfo describes one staged file
type FileInfo struct {
	Source      string      // path listed in the manifest
	Destination string      // path written below the staging root
	Status      FileStatus  // what the copy did
	Size        int64       // bytes copied
	Mode        os.FileMode // permission bits applied
}

// 📈 Summary totals a run
type Summary struct {
	Destination string
	Files       int
	New         int
	Overwritten int
	Bytes       int64
}

// 🔧 Tracker records staged files in the order they were copied
type Tracker struct {
	destination string

	mu    sync.RWMutex
	files []FileInfo
}

// 🏭 NewTracker creates a tracker for a staging root
func NewTracker(destination string) *Tracker {
	return &Tracker{destination: destination}
}

// 🔍 Observe reports whether path already exists, as a status for a copy about to happen
func Observe(path string) (FileStatus, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return StatusOverwritten, nil
	}
	if os.IsNotExist(err) {
		return StatusNew, nil
	}
	return StatusUnknown, errors.Errorf("checking destination: %w", err)
}

// TrackFile records a copy. A destination copied twice appears twice.
func (t *Tracker) TrackFile(ctx context.Context, info FileInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.files = append(t.files, info)

	zerolog.Ctx(ctx).Trace().
		Str("destination", info.Destination).
		Stringer("status", info.Status).
		Msg("tracked file")
}

// ListFiles returns the tracked files in copy order
func (t *Tracker) ListFiles(ctx context.Context) []FileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	files := make([]FileInfo, len(t.files))
	copy(files, t.files)
	return files
}

// Summary totals the tracked files
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Summary{Destination: t.destination, Files: len(t.files)}
	for _, f := range t.files {
		switch f.Status {
		case StatusNew:
			s.New++
		case StatusOverwritten:
			s.Overwritten++
		}
		s.Bytes += f.Size
	}
	return s
}
