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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// buildVersion describes how the running binary was built
type buildVersion struct {
	Version  string
	Revision string
	Dirty    bool
	Built    string
	Go       string
	Platform string
}

func currentVersion() buildVersion {
	v := buildVersion{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	v.Revision = settings["vcs.revision"]
	v.Built = settings["vcs.time"]
	v.Dirty = settings["vcs.modified"] == "true"

	return v
}

// short is the version plus an abbreviated revision, e.g. v1.2.0+0a1b2c3d4e5f-dirty
func (v buildVersion) short() string {
	if v.Revision == "" {
		return v.Version
	}
	rev := v.Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	s := v.Version + "+" + rev
	if v.Dirty {
		s += "-dirty"
	}
	return s
}

func (v buildVersion) render() (string, error) {
	built := v.Built
	if built == "" {
		built = "unknown"
	}

	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"version", v.short()},
		{"built", built},
		{"go", v.Go},
		{"platform", v.Platform},
	}).Srender()
	if err != nil {
		return "", errors.Errorf("rendering version: %w", err)
	}
	return "🚀 stagerc version info:\n" + table + "\n", nil
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := currentVersion()
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), v.short())
				return err
			}

			out, err := v.render()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
