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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/stagerc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for destination path
	modeWidth   = 12 // Width for file mode
	statusWidth = 12 // Width for status text
)

// 🎯 FileOperation is one staged file
type FileOperation struct {
	Source      string      // path as listed in the manifest
	Destination string      // path written below the staging root
	Mode        os.FileMode // permission bits applied to the copy
	Size        int64       // bytes copied
	IsNew       bool        // destination did not exist before the copy
}

// 📦 RunOperation describes one pass over a manifest
type RunOperation struct {
	Manifest    string
	Prefix      string
	Destination string
}

// 🎯 Logger writes the copy report and user feedback.
//
// The copy report goes to out and holds nothing but one line per copied file.
// Everything else, including zerolog output, goes to console.
type Logger struct {
	zlog      zerolog.Logger
	out       io.Writer
	console   io.Writer
	verbose   bool
	mu        sync.Mutex
	currentOp *RunOperation
	copied    int
}

// 🏭 New creates a new logger
func New(out, console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: console, NoColor: color.NoColor}).
		With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		out:     out,
		console: console,
		mu:      sync.Mutex{},
	}
}

// SetVerbose enables a per-file detail line on the console
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose
}

// Zerolog returns the structured logger that writes to the console
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for the console
func (l *Logger) formatFileOperation(op FileOperation) string {
	symbol := color.New(color.FgBlue).Sprint("⟳")
	status := "overwritten"
	if op.IsNew {
		symbol = color.New(color.FgGreen).Sprint("✓")
		status = "new"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		symbol,
		fmt.Sprintf("%-*s", nameWidth, op.Destination),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", modeWidth, op.Mode.Perm().String())),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogFileOperation reports a copied file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.copied++

	fmt.Fprintf(l.out, "copy '%s' to '%s'\n", op.Source, op.Destination)

	if l.verbose {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Debug().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Stringer("mode", op.Mode).
		Int64("size", op.Size).
		Bool("is_new", op.IsNew).
		Msg("file copied")
}

// 📝 LogExcluded records an entry skipped by an exclude pattern
func (l *Logger) LogExcluded(ctx context.Context, source, pattern string) {
	l.zlog.Debug().
		Str("source", source).
		Str("pattern", pattern).
		Msg("entry excluded")
}

// 📝 StartRunOperation starts a pass over a manifest
func (l *Logger) StartRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.copied = 0

	if l.verbose {
		fmt.Fprintf(l.console, "[staging %s]\n",
			color.New(color.FgCyan).Sprint(op.Destination))

		fmt.Fprintf(l.console, "%s %s %s %s\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint(op.Manifest),
			color.New(color.Faint).Sprint("•"),
			color.New(color.FgYellow).Sprint(op.Prefix))
	}

	l.zlog.Debug().
		Str("manifest", op.Manifest).
		Str("prefix", op.Prefix).
		Str("destination", op.Destination).
		Msg("starting manifest run")
}

// 📝 EndRunOperation ends the current pass
func (l *Logger) EndRunOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Debug().
		Str("manifest", l.currentOp.Manifest).
		Int("files", l.copied).
		Msg("manifest run complete")

	l.currentOp = nil
	l.copied = 0
}

// 📋 LogPlan writes the planned copies as a table to out
func (l *Logger) LogPlan(ctx context.Context, entries []manifest.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{"SOURCE", "DESTINATION"}}
	for _, entry := range entries {
		data = append(data, []string{entry.Source, entry.Destination})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering plan: %w", err)
	}

	fmt.Fprintln(l.out, table)
	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.Bold, color.FgCyan).Sprint("stagerc"),
		color.New(color.Faint).Sprintf("• %d file(s) would be staged", len(entries)))
	return nil
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}
