package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/stagerc/cmd/stagerc/opts"
	"github.com/walteh/stagerc/pkg/installer"
	"github.com/walteh/stagerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what install would copy",
		Long: `Plan reads the manifest and prints every source and destination
install would copy. Nothing is created or copied, and sources are not checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logger := log.FromContext(ctx)

			in, err := installer.New(installer.Options{
				Config: opts.Config,
				Logger: logger,
			})
			if err != nil {
				return errors.Errorf("creating installer: %w", err)
			}

			entries, err := in.Plan(ctx)
			if err != nil {
				return errors.Errorf("planning manifest: %w", err)
			}

			return logger.LogPlan(ctx, entries)
		},
	}

	return cmd
}
