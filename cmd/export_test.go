package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Defaults:    entity.DefaultConfiguration(),
		Preset:      entity.DefaultPresetID,
		ShareTarget: "none",
		Export: config.Export{
			OutputDir: t.TempDir(),
			Settings:  service.DefaultExportSettings(),
		},
	}
}

func TestRunExportWritesFile(t *testing.T) {
	cfg := testConfig(t)
	cmd := exportCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--action", "svg", "--text", "hello", "--preset", "ocean", "--size", "300"}))

	var opts exportOptions
	opts.action, _ = cmd.Flags().GetString("action")
	opts.text, _ = cmd.Flags().GetString("text")
	opts.preset, _ = cmd.Flags().GetString("preset")
	opts.size, _ = cmd.Flags().GetInt("size")

	require.NoError(t, runExport(context.Background(), cmd, cfg, opts))

	files, err := os.ReadDir(cfg.Export.OutputDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Name(), ".svg"))

	data, err := os.ReadFile(filepath.Join(cfg.Export.OutputDir, files[0].Name()))
	require.NoError(t, err)
	ocean, _ := entity.PresetByID("ocean")
	assert.Contains(t, string(data), ocean.Foreground)
	assert.Contains(t, string(data), `width="300"`)
}

func TestRunExportRejectsInvalidFlags(t *testing.T) {
	cfg := testConfig(t)
	cmd := exportCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--size", "20"}))

	err := runExport(context.Background(), cmd, cfg, exportOptions{action: "png", size: 20})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)
}

func TestRunExportChecksContentAgainstLevel(t *testing.T) {
	long := strings.Repeat("a", 2000)

	cfg := testConfig(t)
	cmd := exportCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--text", long, "--ec", "H"}))
	err := runExport(context.Background(), cmd, cfg, exportOptions{action: "svg", text: long, ec: "H"})
	assert.ErrorIs(t, err, errorz.ErrInvalidInput)

	cfg = testConfig(t)
	cmd = exportCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--text", long, "--ec", "L"}))
	require.NoError(t, runExport(context.Background(), cmd, cfg, exportOptions{action: "svg", text: long, ec: "L"}))

	files, err := os.ReadDir(cfg.Export.OutputDir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestRunExportPrintsDataURI(t *testing.T) {
	cfg := testConfig(t)
	cmd := exportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.ParseFlags([]string{"--action", "uri", "--text", "hello"}))

	require.NoError(t, runExport(context.Background(), cmd, cfg, exportOptions{action: "uri", text: "hello"}))

	assert.True(t, strings.HasPrefix(out.String(), "data:image/png;base64,"))
	files, err := os.ReadDir(cfg.Export.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRunExportUnknownAction(t *testing.T) {
	cfg := testConfig(t)
	err := runExport(context.Background(), exportCmd(), cfg, exportOptions{action: "fax"})
	assert.Error(t, err)
}

func TestPresetsCommand(t *testing.T) {
	cmd := presetsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(entity.Presets())+1)
	assert.True(t, strings.HasPrefix(lines[1], "warm"))
	assert.Contains(t, lines[1], "Sunset")
}
