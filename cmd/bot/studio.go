package bot

import (
	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/adapters/platform"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// Platform carries the capabilities a studio exports through. Clipboard and
// Sharer may be nil.
type Platform struct {
	Downloader platform.Downloader
	Clipboard  platform.Clipboard
	Sharer     platform.Sharer
}

// NewStudio assembles a studio session from the configuration.
func NewStudio(cfg *config.Config, p Platform, presenters ...service.Presenter) (*service.StudioService, error) {
	renderer, err := service.NewQrService(cfg.Render.LogoPath, cfg.Render.LogoScale)
	if err != nil {
		return nil, err
	}

	notify := service.NewNotifyService(cfg.NotifyDuration, Named("notify"))
	for _, presenter := range presenters {
		notify.Subscribe(presenter)
	}

	editor := service.NewEditorService(cfg.Defaults, cfg.Preset)
	dispatcher := service.NewDispatcherService(
		editor,
		renderer,
		notify,
		p.Downloader,
		p.Clipboard,
		p.Sharer,
		cfg.Export.Settings,
		Named("dispatcher"),
	)

	return service.NewStudioService(editor, service.NewHistoryService(nil), notify, renderer, dispatcher, Named("studio")), nil
}

// Named is logger.Named that falls back to a no-op logger before Init.
func Named(name string) *types.Logger {
	l, err := logger.Named(name)
	if err != nil {
		return logger.Nop()
	}
	return l
}
