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

// Package installer stages the files of an install manifest into a local tree.
//
// A run reads the manifest, keeps the entries under the install prefix and
// copies each one, in manifest order, to the same path below the staging
// root. The first failure stops the run; files already copied stay in place.
package installer

import (
	"context"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/stagerc/pkg/config"
	"github.com/walteh/stagerc/pkg/log"
	"github.com/walteh/stagerc/pkg/manifest"
	"github.com/walteh/stagerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the installer
type Options struct {
	// Config says which manifest to read and where to stage it
	Config *config.Config
	// Logger reports copies and results, defaults to stdout/stderr
	Logger *log.Logger
	// Tracker records staged files, defaults to a fresh tracker
	Tracker *status.Tracker
	// Formatter formats the run summary
	Formatter status.Formatter
}

// 📦 Installer stages manifest entries
type Installer struct {
	cfg       *config.Config
	log       *log.Logger
	tracker   *status.Tracker
	formatter status.Formatter
}

// 🏭 New creates an installer with the given options
func New(opts Options) (*Installer, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	in := &Installer{
		cfg:       opts.Config,
		log:       opts.Logger,
		tracker:   opts.Tracker,
		formatter: opts.Formatter,
	}
	if in.log == nil {
		in.log = log.New(os.Stdout, os.Stderr, zerolog.InfoLevel)
	}
	if in.tracker == nil {
		in.tracker = status.NewTracker(opts.Config.Destination)
	}
	if in.formatter == nil {
		in.formatter = status.NewDefaultFormatter()
	}
	return in, nil
}

// Tracker returns the tracker the installer records copies in
func (in *Installer) Tracker() *status.Tracker {
	return in.tracker
}

// 🏃 Run stages every selected manifest entry.
func (in *Installer) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	lines, err := in.selectLines(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		in.log.Warning("no manifest entries start with " + in.cfg.Prefix)
	}

	if err := os.MkdirAll(in.cfg.Destination, 0o755); err != nil {
		return errors.Errorf("creating destination root: %w",
			manifest.NewError(manifest.KindDestinationWrite, in.cfg.Destination, err))
	}

	in.log.StartRunOperation(ctx, log.RunOperation{
		Manifest:    in.cfg.Manifest,
		Prefix:      in.cfg.Prefix,
		Destination: in.cfg.Destination,
	})
	defer in.log.EndRunOperation(ctx)

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("staging interrupted: %w", err)
		}

		entry, pattern, err := in.resolve(line)
		if err != nil {
			return err
		}
		if pattern != "" {
			in.log.LogExcluded(ctx, line, pattern)
			continue
		}

		if err := in.stage(ctx, entry); err != nil {
			return err
		}
	}

	summary := in.tracker.Summary()
	logger.Debug().Int("files", summary.Files).Int64("bytes", summary.Bytes).Msg("staging complete")
	in.log.Success(in.formatter.FormatSummary(summary))
	return nil
}

// 📋 Plan resolves the entries a run would copy without touching the filesystem.
func (in *Installer) Plan(ctx context.Context) ([]manifest.Entry, error) {
	lines, err := in.selectLines(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]manifest.Entry, 0, len(lines))
	for _, line := range lines {
		entry, pattern, err := in.resolve(line)
		if err != nil {
			return nil, err
		}
		if pattern != "" {
			in.log.LogExcluded(ctx, line, pattern)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (in *Installer) selectLines(ctx context.Context) ([]string, error) {
	lines, err := manifest.Read(ctx, in.cfg.Manifest)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	selected := manifest.Select(lines, in.cfg.Prefix)
	zerolog.Ctx(ctx).Debug().
		Int("lines", len(lines)).
		Int("selected", len(selected)).
		Str("prefix", in.cfg.Prefix).
		Msg("selected manifest entries")
	return selected, nil
}

// 🔍 resolve maps line under the staging root. A non-empty pattern means the
// entry is excluded.
func (in *Installer) resolve(line string) (manifest.Entry, string, error) {
	entry, err := manifest.Resolve(line, in.cfg.Prefix, in.cfg.Destination)
	if err != nil {
		return manifest.Entry{}, "", errors.Errorf("resolving manifest entry: %w", err)
	}

	for _, pattern := range in.cfg.Exclude {
		matched, err := doublestar.Match(pattern, entry.Relative)
		if err != nil {
			return manifest.Entry{}, "", errors.Errorf("matching exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return entry, pattern, nil
		}
	}
	return entry, "", nil
}

// 📄 stage copies a single entry and reports it
func (in *Installer) stage(ctx context.Context, entry manifest.Entry) error {
	if err := os.MkdirAll(entry.DestinationDir, 0o755); err != nil {
		return errors.Errorf("creating destination directory: %w",
			manifest.NewError(manifest.KindDestinationWrite, entry.DestinationDir, err))
	}

	fileStatus, err := status.Observe(entry.Destination)
	if err != nil {
		return errors.Errorf("copying file: %w",
			manifest.NewError(manifest.KindDestinationWrite, entry.Destination, err))
	}

	size, mode, err := copyFile(entry.Source, entry.Destination)
	if err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	in.tracker.TrackFile(ctx, status.FileInfo{
		Source:      entry.Source,
		Destination: entry.Destination,
		Status:      fileStatus,
		Size:        size,
		Mode:        mode,
	})

	in.log.LogFileOperation(ctx, log.FileOperation{
		Source:      entry.Source,
		Destination: entry.Destination,
		Mode:        mode,
		Size:        size,
		IsNew:       fileStatus == status.StatusNew,
	})
	return nil
}
