package service_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger"
)

var pngName = regexp.MustCompile(`^qr-code-\d+\.png$`)

type dispatcherFixture struct {
	editor     *service.EditorService
	renderer   *fakeRenderer
	notify     *recordingNotifier
	downloader *fakeDownloader
	clipboard  *fakeClipboard
	sharer     *fakeSharer
}

func (f *dispatcherFixture) build() *service.DispatcherService {
	// nil pointers must reach the dispatcher as nil interfaces
	var (
		cb interface {
			Available() bool
			WriteImage(context.Context, []byte) error
		}
		sh interface {
			Available() bool
			CanShareFiles() bool
			Share(context.Context, entity.SharePayload) error
		}
	)
	if f.clipboard != nil {
		cb = f.clipboard
	}
	if f.sharer != nil {
		sh = f.sharer
	}
	return service.NewDispatcherService(
		f.editor, f.renderer, f.notify, f.downloader, cb, sh,
		service.DefaultExportSettings(), logger.Nop(),
	)
}

func newFixture() *dispatcherFixture {
	return &dispatcherFixture{
		editor:     newEditor(),
		renderer:   &fakeRenderer{},
		notify:     &recordingNotifier{},
		downloader: &fakeDownloader{},
	}
}

func TestDownloadPNG(t *testing.T) {
	t.Parallel()

	t.Run("downloads a timestamped file", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		d := f.build()

		require.NoError(t, d.DownloadPNG(context.Background()))

		files := f.downloader.Files()
		require.Len(t, files, 1)
		assert.Regexp(t, pngName, files[0].Name)
		assert.Equal(t, entity.MIMEPNG, files[0].MIME)
		assert.Equal(t, float64(1), f.renderer.opts[0].Scale)
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationSuccess, Text: "PNG downloaded"}}, f.notify.All())
	})

	t.Run("snapshot failure is reported", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.renderer.snapErr = errors.New("tainted canvas")
		d := f.build()

		require.NoError(t, d.DownloadPNG(context.Background()))

		assert.Empty(t, f.downloader.Files())
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationError, Text: "Failed to download PNG"}}, f.notify.All())
		assert.False(t, d.Busy())
	})
}

func TestDownloadSVG(t *testing.T) {
	t.Parallel()

	t.Run("downloads the vector code", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		d := f.build()

		require.NoError(t, d.DownloadSVG(context.Background()))

		files := f.downloader.Files()
		require.Len(t, files, 1)
		assert.Regexp(t, `^qr-code-\d+\.svg$`, files[0].Name)
		assert.Equal(t, entity.MIMESVG, files[0].MIME)
		assert.Equal(t, "<svg/>", string(files[0].Data))
		assert.Equal(t, "SVG downloaded", f.notify.All()[0].Text)
	})

	t.Run("raster view is a silent no-op", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		_, rev := f.editor.Current()
		require.True(t, f.editor.SetRaster([]byte("raster"), rev))
		d := f.build()

		err := d.DownloadSVG(context.Background())

		assert.ErrorIs(t, err, errorz.ErrNoVectorCode)
		assert.Empty(t, f.downloader.Files())
		assert.Empty(t, f.notify.All())
	})
}

func TestBusyFlagIgnoresOverlappingActions(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.renderer.block = make(chan struct{})
	f.renderer.started = make(chan struct{}, 1)
	f.clipboard = &fakeClipboard{available: true}
	f.sharer = &fakeSharer{available: true, files: true}
	d := f.build()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, d.DownloadPNG(context.Background()))
	}()

	<-f.renderer.started
	require.True(t, d.Busy())

	ctx := context.Background()
	assert.ErrorIs(t, d.DownloadPNG(ctx), errorz.ErrBusy)
	assert.ErrorIs(t, d.DownloadSVG(ctx), errorz.ErrBusy)
	assert.ErrorIs(t, d.CopyToClipboard(ctx), errorz.ErrBusy)
	assert.ErrorIs(t, d.Share(ctx), errorz.ErrBusy)

	close(f.renderer.block)
	wg.Wait()

	assert.False(t, d.Busy())
	assert.Len(t, f.downloader.Files(), 1)
	assert.Len(t, f.notify.All(), 1)
	assert.Empty(t, f.clipboard.writes)
	assert.Empty(t, f.sharer.payloads)
}

func TestExportCapturesConfigurationAtStart(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.renderer.block = make(chan struct{})
	f.renderer.started = make(chan struct{}, 1)
	f.editor.SetContent("before")
	d := f.build()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.DownloadPNG(context.Background())
	}()

	<-f.renderer.started
	f.editor.SetContent("after")
	close(f.renderer.block)
	<-done

	assert.Equal(t, "png:before", string(f.downloader.Files()[0].Data))
}

func TestCopyToClipboard(t *testing.T) {
	t.Parallel()

	t.Run("writes the image", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.clipboard = &fakeClipboard{available: true}
		d := f.build()

		require.NoError(t, d.CopyToClipboard(context.Background()))

		assert.Len(t, f.clipboard.writes, 1)
		assert.Empty(t, f.downloader.Files())
		assert.Equal(t, float64(2), f.renderer.opts[0].Scale)
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationSuccess, Text: "Copied to clipboard"}}, f.notify.All())
	})

	fallbacks := map[string]*fakeClipboard{
		"write denied":  {available: true, err: errors.New("permission denied")},
		"not supported": {available: false},
		"missing":       nil,
	}
	for name, cb := range fallbacks {
		cb := cb
		t.Run(name+" falls back to download", func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			f.clipboard = cb
			d := f.build()

			require.NoError(t, d.CopyToClipboard(context.Background()))

			files := f.downloader.Files()
			require.Len(t, files, 1)
			assert.Equal(t, service.CopyFallbackName, files[0].Name)
			assert.Equal(t, "qr-code-copy.png", files[0].Name)

			shown := f.notify.All()
			require.Len(t, shown, 1)
			assert.Equal(t, entity.NotificationInfo, shown[0].Kind)
			assert.Contains(t, shown[0].Text, "paste it from your downloads")
		})
	}

	t.Run("fallback download failure is an error", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.downloader.err = errors.New("disk full")
		d := f.build()

		require.NoError(t, d.CopyToClipboard(context.Background()))
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationError, Text: "Failed to copy QR code"}}, f.notify.All())
	})
}

func TestShare(t *testing.T) {
	t.Parallel()

	t.Run("shares the image file", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: true, files: true}
		f.editor.SetContent("https://example.com")
		d := f.build()

		require.NoError(t, d.Share(context.Background()))

		require.Len(t, f.sharer.payloads, 1)
		p := f.sharer.payloads[0]
		assert.Equal(t, "QR Code", p.Title)
		assert.Contains(t, p.Text, "https://example.com")
		require.Len(t, p.Files, 1)
		assert.Regexp(t, pngName, p.Files[0].Name)
		assert.Equal(t, float64(3), f.renderer.opts[0].Scale)
		assert.Empty(t, f.downloader.Files())
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationSuccess, Text: "QR code shared"}}, f.notify.All())
	})

	t.Run("cancellation downloads instead without an error", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: true, files: true, err: errorz.ErrShareCancelled}
		d := f.build()

		assert.NotPanics(t, func() {
			require.NoError(t, d.Share(context.Background()))
		})

		files := f.downloader.Files()
		require.Len(t, files, 1)
		assert.Regexp(t, pngName, files[0].Name)
		shown := f.notify.All()
		require.Len(t, shown, 1)
		assert.Equal(t, entity.NotificationInfo, shown[0].Kind)
		assert.Equal(t, "Share cancelled. QR code downloaded instead", shown[0].Text)
	})

	t.Run("rejection downloads instead", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: true, files: true, err: errors.New("chat not found")}
		d := f.build()

		require.NoError(t, d.Share(context.Background()))

		assert.Len(t, f.downloader.Files(), 1)
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationInfo, Text: "Sharing failed. QR code downloaded instead"}}, f.notify.All())
	})

	t.Run("no file sharing downloads then shares text", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: true, files: false}
		f.editor.SetContent("hello")
		d := f.build()

		require.NoError(t, d.Share(context.Background()))

		assert.Len(t, f.downloader.Files(), 1)
		require.Len(t, f.sharer.payloads, 1)
		assert.Empty(t, f.sharer.payloads[0].Files)
		assert.Contains(t, f.sharer.payloads[0].Text, "saved")
		assert.Contains(t, f.sharer.payloads[0].Text, "hello")
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationSuccess, Text: "QR code downloaded and shared"}}, f.notify.All())
	})

	t.Run("text share rejection still reports the download", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: true, files: false, err: errorz.ErrShareCancelled}
		d := f.build()

		require.NoError(t, d.Share(context.Background()))

		assert.Len(t, f.downloader.Files(), 1)
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationInfo, Text: "QR code downloaded"}}, f.notify.All())
	})

	t.Run("no share capability redirects to clipboard", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: false}
		f.clipboard = &fakeClipboard{available: true}
		d := f.build()

		require.NoError(t, d.Share(context.Background()))

		assert.Empty(t, f.sharer.payloads)
		assert.Len(t, f.clipboard.writes, 1)
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationSuccess, Text: "Copied to clipboard"}}, f.notify.All())
	})

	t.Run("snapshot failure is reported", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		f.sharer = &fakeSharer{available: true, files: true}
		f.renderer.snapErr = errors.New("timeout")
		d := f.build()

		require.NoError(t, d.Share(context.Background()))

		assert.Empty(t, f.sharer.payloads)
		assert.Equal(t, []entity.Notification{{Kind: entity.NotificationError, Text: "Failed to share QR code"}}, f.notify.All())
	})
}

func TestEveryActionEndsWithOneNotification(t *testing.T) {
	t.Parallel()

	actions := map[string]func(d *service.DispatcherService) error{
		"png":   func(d *service.DispatcherService) error { return d.DownloadPNG(context.Background()) },
		"svg":   func(d *service.DispatcherService) error { return d.DownloadSVG(context.Background()) },
		"copy":  func(d *service.DispatcherService) error { return d.CopyToClipboard(context.Background()) },
		"share": func(d *service.DispatcherService) error { return d.Share(context.Background()) },
	}
	for name, action := range actions {
		action := action
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			f.downloader.err = errors.New("offline")
			f.sharer = &fakeSharer{available: true, files: true, err: errors.New("nope")}
			d := f.build()

			start := time.Now()
			require.NoError(t, action(d))
			assert.Less(t, time.Since(start), time.Second)
			assert.Len(t, f.notify.All(), 1)
		})
	}
}
