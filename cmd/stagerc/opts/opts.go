package opts

import (
	"github.com/walteh/stagerc/pkg/config"
)

// RootOpts contains shared options used by all commands.
// It is filled in once flags are parsed, before any command runs.
// The console logger travels in the command context.
type RootOpts struct {
	Config *config.Config
}
