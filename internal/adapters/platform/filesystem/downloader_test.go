package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger"
)

func TestDownloadCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "exports", "nested")
	d := NewDownloader(dir, logger.Nop())

	err := d.Download(context.Background(), entity.File{Name: "qr-code-1.png", MIME: entity.MIMEPNG, Data: []byte("png")})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "qr-code-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestDownloadStripsDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	d := NewDownloader(dir, logger.Nop())

	require.NoError(t, d.Download(context.Background(), entity.File{Name: "../../escape.svg", Data: []byte("<svg/>")}))
	assert.FileExists(t, filepath.Join(dir, "escape.svg"))
}

func TestDownloadCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDownloader(t.TempDir(), logger.Nop())
	assert.ErrorIs(t, d.Download(ctx, entity.File{Name: "a.png"}), context.Canceled)
}
