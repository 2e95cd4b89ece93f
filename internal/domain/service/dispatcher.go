package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/Badsnus/qr-studio/pkg/snapshot"
)

// CopyFallbackName is the file saved when the clipboard cannot take the image.
const CopyFallbackName = "qr-code-copy.png"

const shareTitle = "QR Code"

// fallbackTimeout bounds a fallback download that outlives the action's context.
const fallbackTimeout = 30 * time.Second

type configSource interface {
	Snapshot() entity.Configuration
	ViewMode() entity.ViewMode
}

type exportRenderer interface {
	SVG(cfg entity.Configuration) ([]byte, error)
	Snapshot(cfg entity.Configuration, opts snapshot.Options) ([]byte, error)
}

type notifier interface {
	Show(kind entity.NotificationKind, text string) entity.Notification
}

type downloader interface {
	Download(ctx context.Context, file entity.File) error
}

type clipboard interface {
	Available() bool
	WriteImage(ctx context.Context, png []byte) error
}

type sharer interface {
	Available() bool
	CanShareFiles() bool
	Share(ctx context.Context, payload entity.SharePayload) error
}

// ExportSettings tunes the raster snapshots taken for each action.
type ExportSettings struct {
	PNGScale         float64
	CopyScale        float64
	ShareScale       float64
	TransparentShare bool
}

func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		PNGScale:   1,
		CopyScale:  2,
		ShareScale: 3,
	}
}

// DispatcherService runs export and share actions. Only one action runs at a
// time: a call made while another is in flight returns errorz.ErrBusy without
// any effect. Every action that does run ends with exactly one notification.
type DispatcherService struct {
	busy atomic.Bool

	source     configSource
	renderer   exportRenderer
	notify     notifier
	downloader downloader
	clipboard  clipboard
	sharer     sharer

	settings ExportSettings
	logger   *types.Logger
	now      func() time.Time
}

// NewDispatcherService wires the platform capabilities. clipboard and sharer
// may be nil when the platform has none.
func NewDispatcherService(
	source configSource,
	renderer exportRenderer,
	notify notifier,
	downloader downloader,
	clipboard clipboard,
	sharer sharer,
	settings ExportSettings,
	logger *types.Logger,
) *DispatcherService {
	return &DispatcherService{
		source:     source,
		renderer:   renderer,
		notify:     notify,
		downloader: downloader,
		clipboard:  clipboard,
		sharer:     sharer,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
	}
}

// Busy reports whether an action is in flight.
func (s *DispatcherService) Busy() bool {
	return s.busy.Load()
}

func (s *DispatcherService) run(action func()) error {
	if !s.busy.CompareAndSwap(false, true) {
		return errorz.ErrBusy
	}
	defer s.busy.Store(false)

	action()
	return nil
}

func (s *DispatcherService) fileName(ext string) string {
	return fmt.Sprintf("qr-code-%d.%s", s.now().UnixMilli(), ext)
}

func (s *DispatcherService) download(ctx context.Context, name, mime string, data []byte) error {
	err := s.downloader.Download(ctx, entity.File{Name: name, MIME: mime, Data: data})
	if err != nil {
		return err
	}
	s.logger.Infof("downloaded %s (%s)", name, content.FormatFileSize(len(data)))
	return nil
}

// fallbackDownload saves the file even when ctx is already done: a cancelled
// copy or share still has to leave the image in the downloads.
func (s *DispatcherService) fallbackDownload(ctx context.Context, name, mime string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fallbackTimeout)
	defer cancel()
	return s.download(ctx, name, mime, data)
}

// DownloadPNG saves a full-size raster snapshot.
func (s *DispatcherService) DownloadPNG(ctx context.Context) error {
	return s.run(func() {
		cfg := s.source.Snapshot()

		data, err := s.renderer.Snapshot(cfg, snapshot.Options{Scale: s.settings.PNGScale})
		if err == nil {
			err = s.download(ctx, s.fileName("png"), entity.MIMEPNG, data)
		}
		if err != nil {
			s.logger.Errorf("failed to download PNG: %v", err)
			s.notify.Show(entity.NotificationError, "Failed to download PNG")
			return
		}
		s.notify.Show(entity.NotificationSuccess, "PNG downloaded")
	})
}

// DownloadSVG saves the vector code. It does nothing while the raster view is
// shown, since there is no vector code to serialize then.
func (s *DispatcherService) DownloadSVG(ctx context.Context) error {
	if s.source.ViewMode() != entity.ViewModeVector {
		return errorz.ErrNoVectorCode
	}

	return s.run(func() {
		cfg := s.source.Snapshot()

		data, err := s.renderer.SVG(cfg)
		if err == nil {
			err = s.download(ctx, s.fileName("svg"), entity.MIMESVG, data)
		}
		if err != nil {
			s.logger.Errorf("failed to download SVG: %v", err)
			s.notify.Show(entity.NotificationError, "Failed to download SVG")
			return
		}
		s.notify.Show(entity.NotificationSuccess, "SVG downloaded")
	})
}

// CopyToClipboard writes a snapshot to the clipboard, downloading it as
// qr-code-copy.png when the clipboard is missing or refuses the write.
func (s *DispatcherService) CopyToClipboard(ctx context.Context) error {
	return s.run(func() {
		s.copyToClipboard(ctx, s.source.Snapshot())
	})
}

func (s *DispatcherService) copyToClipboard(ctx context.Context, cfg entity.Configuration) {
	data, err := s.renderer.Snapshot(cfg, snapshot.Options{
		Scale:       s.settings.CopyScale,
		Transparent: s.settings.TransparentShare,
	})
	if err != nil {
		s.logger.Errorf("failed to capture snapshot for clipboard: %v", err)
		s.notify.Show(entity.NotificationError, "Failed to copy QR code")
		return
	}

	if s.clipboard != nil && s.clipboard.Available() {
		err = s.clipboard.WriteImage(ctx, data)
		if err == nil {
			s.notify.Show(entity.NotificationSuccess, "Copied to clipboard")
			return
		}
		s.logger.Warnf("clipboard write failed, falling back to download: %v", err)
	}

	if err = s.fallbackDownload(ctx, CopyFallbackName, entity.MIMEPNG, data); err != nil {
		s.logger.Errorf("failed to download clipboard fallback: %v", err)
		s.notify.Show(entity.NotificationError, "Failed to copy QR code")
		return
	}
	s.notify.Show(entity.NotificationInfo, "Clipboard unavailable. Image downloaded, paste it from your downloads")
}

// Share hands a high-resolution snapshot to the platform share sheet.
//
// Without any share capability the image goes to the clipboard instead. When
// files cannot be shared the image is downloaded and only text is shared. A
// rejected or cancelled share falls back to a plain download.
func (s *DispatcherService) Share(ctx context.Context) error {
	return s.run(func() {
		cfg := s.source.Snapshot()

		if s.sharer == nil || !s.sharer.Available() {
			s.logger.Infof("share is not available, copying to clipboard instead")
			s.copyToClipboard(ctx, cfg)
			return
		}

		data, err := s.renderer.Snapshot(cfg, snapshot.Options{
			Scale:       s.settings.ShareScale,
			Transparent: s.settings.TransparentShare,
		})
		if err != nil {
			s.logger.Errorf("failed to capture snapshot for sharing: %v", err)
			s.notify.Show(entity.NotificationError, "Failed to share QR code")
			return
		}
		name := s.fileName("png")

		if !s.sharer.CanShareFiles() {
			s.shareText(ctx, cfg, name, data)
			return
		}

		err = s.sharer.Share(ctx, entity.SharePayload{
			Title: shareTitle,
			Text:  "Scan this QR code: " + cfg.Content,
			Files: []entity.File{{Name: name, MIME: entity.MIMEPNG, Data: data}},
		})
		if err == nil {
			s.notify.Show(entity.NotificationSuccess, "QR code shared")
			return
		}

		cancelled := errors.Is(err, errorz.ErrShareCancelled)
		if cancelled {
			s.logger.Infof("share cancelled, downloading instead")
		} else {
			s.logger.Warnf("share failed, downloading instead: %v", err)
		}

		if err = s.fallbackDownload(ctx, name, entity.MIMEPNG, data); err != nil {
			s.logger.Errorf("failed to download share fallback: %v", err)
			s.notify.Show(entity.NotificationError, "Failed to share QR code")
			return
		}
		if cancelled {
			s.notify.Show(entity.NotificationInfo, "Share cancelled. QR code downloaded instead")
			return
		}
		s.notify.Show(entity.NotificationInfo, "Sharing failed. QR code downloaded instead")
	})
}

// shareText downloads the image and shares a text-only message about it.
func (s *DispatcherService) shareText(ctx context.Context, cfg entity.Configuration, name string, data []byte) {
	if err := s.download(ctx, name, entity.MIMEPNG, data); err != nil {
		s.logger.Errorf("failed to download image before text share: %v", err)
		s.notify.Show(entity.NotificationError, "Failed to share QR code")
		return
	}

	err := s.sharer.Share(ctx, entity.SharePayload{
		Title: shareTitle,
		Text:  "QR code image saved to downloads: " + cfg.Content,
	})
	if err != nil {
		s.logger.Infof("text share rejected: %v", err)
		s.notify.Show(entity.NotificationInfo, "QR code downloaded")
		return
	}
	s.notify.Show(entity.NotificationSuccess, "QR code downloaded and shared")
}
