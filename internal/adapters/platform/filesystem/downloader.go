package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// Downloader saves exported files into a local directory.
type Downloader struct {
	OutputDir string
	logger    *types.Logger
}

func NewDownloader(outputDir string, logger *types.Logger) *Downloader {
	return &Downloader{
		OutputDir: outputDir,
		logger:    logger,
	}
}

func (d *Downloader) Download(ctx context.Context, file entity.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.ensureOutputDir(); err != nil {
		return err
	}

	path := filepath.Join(d.OutputDir, filepath.Base(file.Name))
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	d.logger.Infof("saved %s", path)
	return nil
}

func (d *Downloader) ensureOutputDir() error {
	if _, err := os.Stat(d.OutputDir); os.IsNotExist(err) {
		err = os.MkdirAll(d.OutputDir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}
