package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/stagerc/cmd/stagerc/opts"
	"github.com/walteh/stagerc/pkg/installer"
	"github.com/walteh/stagerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewInstallCmd creates a new install command
func NewInstallCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Copy manifest entries into the staging root",
		Long: `Install stages the files listed in the install manifest.
It will:
1. Read the manifest and keep the entries under the prefix
2. Create the staging root
3. Copy each entry, in manifest order, to the same path below the root
4. Stop at the first error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Install(cmd.Context(), opts)
		},
	}

	return cmd
}

// Install runs the installer with the resolved root options
func Install(ctx context.Context, opts *opts.RootOpts) error {
	in, err := installer.New(installer.Options{
		Config: opts.Config,
		Logger: log.FromContext(ctx),
	})
	if err != nil {
		return errors.Errorf("creating installer: %w", err)
	}

	if err := in.Run(ctx); err != nil {
		return errors.Errorf("staging manifest: %w", err)
	}

	return nil
}
