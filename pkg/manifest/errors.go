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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Kind classifies why staging a manifest stopped.
type Kind int

const (
	KindUnknown            Kind = iota
	KindManifestUnreadable      // manifest missing or unreadable
	KindMalformedEntry          // entry cannot be mapped under the destination root
	KindSourceMissing           // listed source missing, unreadable or not a regular file
	KindDestinationWrite        // destination directory or file could not be written
)

func (k Kind) String() string {
	switch k {
	case KindManifestUnreadable:
		return "manifest unreadable"
	case KindMalformedEntry:
		return "malformed entry"
	case KindSourceMissing:
		return "source missing"
	case KindDestinationWrite:
		return "destination write error"
	default:
		return "unknown error"
	}
}

// Error is a classified failure tied to a single path. It unwraps to the
// underlying cause, so fs sentinels like fs.ErrNotExist still match.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrManifestUnreadable = &Error{Kind: KindManifestUnreadable}
	ErrMalformedEntry     = &Error{Kind: KindMalformedEntry}
	ErrSourceMissing      = &Error{Kind: KindSourceMissing}
	ErrDestinationWrite   = &Error{Kind: KindDestinationWrite}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

// 🏷️ NewError classifies err for path
func NewError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// KindOf returns the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
