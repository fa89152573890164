package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/stagerc/cmd/stagerc/commands"
	"github.com/walteh/stagerc/cmd/stagerc/opts"
	"github.com/walteh/stagerc/pkg/config"
	"github.com/walteh/stagerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the flags shared by every command
type rootFlags struct {
	configFile  string
	manifest    string
	prefix      string
	destination string
	exclude     []string
	debug       bool
	verbose     bool
}

// newRootCmd builds the command tree. Copy lines go to stdout, everything else to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "stagerc",
		Short: "Stage the files of an install manifest into a local tree",
		Long: `stagerc copies the files listed in an install manifest from the install
prefix into a staging directory, keeping their layout below the prefix.

With no flags it reads ./install_manifest.txt, keeps the entries under
/usr/local/ and copies them into ./install.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRootOpts(cmd, flags, rootOpts, stdout, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Install(cmd.Context(), rootOpts)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewInstallCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (.yaml, .hcl, .json or .toml)")
	cmd.PersistentFlags().StringVarP(&flags.manifest, "manifest", "m", config.DefaultManifest, "install manifest to read")
	cmd.PersistentFlags().StringVarP(&flags.prefix, "prefix", "p", config.DefaultPrefix, "install prefix to select and strip")
	cmd.PersistentFlags().StringVarP(&flags.destination, "destination", "o", config.DefaultDestination, "staging root")
	cmd.PersistentFlags().StringArrayVarP(&flags.exclude, "exclude", "x", nil, "glob of paths below the prefix to skip (repeatable)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a detail line per staged file")
}

// setupRootOpts configures logging and resolves the config: defaults, then
// the config file, then explicitly set flags
func setupRootOpts(cmd *cobra.Command, flags *rootFlags, rootOpts *opts.RootOpts, stdout, stderr io.Writer) error {
	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	logger := log.New(stdout, stderr, level)
	logger.SetVerbose(flags.verbose)

	ctx := logger.Zerolog().WithContext(cmd.Context())
	ctx = log.NewContext(ctx, logger)
	cmd.SetContext(ctx)

	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(ctx, flags.configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("manifest") {
		cfg.Manifest = flags.manifest
	}
	if changed("prefix") {
		cfg.Prefix = flags.prefix
	}
	if changed("destination") {
		cfg.Destination = flags.destination
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	}

	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	rootOpts.Config = cfg
	return nil
}
