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

package installer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/walteh/stagerc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// sourceReader remembers the last read error so copy failures can be
// attributed to the source or the destination.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

// copyFile copies src over dst and applies the source permission bits.
//
// The content is written to a temp file next to dst and renamed into place,
// so an existing dst is replaced even when it is read-only.
func copyFile(src, dst string) (int64, os.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, 0, manifest.NewError(manifest.KindSourceMissing, src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, 0, manifest.NewError(manifest.KindSourceMissing, src, err)
	}
	if !info.Mode().IsRegular() {
		return 0, 0, manifest.NewError(manifest.KindSourceMissing, src,
			errors.Errorf("not a regular file (%s)", info.Mode().Type()))
	}
	mode := info.Mode().Perm()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, 0, manifest.NewError(manifest.KindDestinationWrite, dst, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	reader := &sourceReader{r: in}
	n, err := io.Copy(tmp, reader)
	if err != nil {
		if reader.err != nil {
			return 0, 0, manifest.NewError(manifest.KindSourceMissing, src, err)
		}
		return 0, 0, manifest.NewError(manifest.KindDestinationWrite, dst, err)
	}

	if err := tmp.Chmod(mode); err != nil {
		return 0, 0, manifest.NewError(manifest.KindDestinationWrite, dst, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, 0, manifest.NewError(manifest.KindDestinationWrite, dst, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return 0, 0, manifest.NewError(manifest.KindDestinationWrite, dst, err)
	}
	committed = true

	return n, mode, nil
}
