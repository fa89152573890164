package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stagerc/cmd/stagerc/opts"
	"github.com/walteh/stagerc/pkg/config"
	"github.com/walteh/stagerc/pkg/log"
	"github.com/walteh/stagerc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

func setup(t *testing.T) (context.Context, *opts.RootOpts, *bytes.Buffer, string) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	dir := t.TempDir()
	src := filepath.Join(dir, "prefix", "bin", "app")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("app"), 0o755))

	manifestPath := filepath.Join(dir, "install_manifest.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte(filepath.ToSlash(src)+"\n"), 0o644))

	cfg := config.Default()
	cfg.Manifest = manifestPath
	cfg.Prefix = filepath.ToSlash(filepath.Join(dir, "prefix")) + "/"
	cfg.Destination = filepath.ToSlash(filepath.Join(dir, "stage"))

	out := &bytes.Buffer{}
	logger := log.New(out, &bytes.Buffer{}, zerolog.InfoLevel)
	ctx := log.NewContext(logger.Zerolog().WithContext(context.Background()), logger)

	return ctx, &opts.RootOpts{Config: cfg}, out, filepath.ToSlash(src)
}

func TestInstall(t *testing.T) {
	ctx, rootOpts, out, src := setup(t)

	require.NoError(t, Install(ctx, rootOpts))
	assert.Equal(t, "copy '"+src+"' to '"+rootOpts.Config.Destination+"/bin/app'\n", out.String())
	assert.FileExists(t, filepath.Join(filepath.FromSlash(rootOpts.Config.Destination), "bin", "app"))
}

func TestInstallErrorIsClassified(t *testing.T) {
	ctx, rootOpts, _, _ := setup(t)
	rootOpts.Config.Manifest = filepath.Join(t.TempDir(), "missing.txt")

	err := Install(ctx, rootOpts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, manifest.ErrManifestUnreadable))
	assert.Contains(t, err.Error(), "staging manifest")
}

func TestPlanCmd(t *testing.T) {
	ctx, rootOpts, out, src := setup(t)

	cmd := NewPlanCmd(rootOpts)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), src)
	assert.NoDirExists(t, filepath.FromSlash(rootOpts.Config.Destination))
}
