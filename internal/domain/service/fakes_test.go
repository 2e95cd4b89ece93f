package service_test

import (
	"context"
	"sync"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/snapshot"
)

type fakeRenderer struct {
	mu      sync.Mutex
	svgErr  error
	snapErr error
	opts    []snapshot.Options
	configs []entity.Configuration
	block   chan struct{}
	started chan struct{}
}

func (r *fakeRenderer) SVG(cfg entity.Configuration) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, cfg)
	if r.svgErr != nil {
		return nil, r.svgErr
	}
	return []byte("<svg/>"), nil
}

func (r *fakeRenderer) Snapshot(cfg entity.Configuration, opts snapshot.Options) ([]byte, error) {
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = append(r.opts, opts)
	r.configs = append(r.configs, cfg)
	if r.snapErr != nil {
		return nil, r.snapErr
	}
	return []byte("png:" + cfg.Content), nil
}

func (r *fakeRenderer) Preview(cfg entity.Configuration) ([]byte, error) {
	return []byte("preview:" + cfg.Content), nil
}

type fakeDownloader struct {
	mu    sync.Mutex
	files []entity.File
	err   error
}

func (d *fakeDownloader) Download(ctx context.Context, file entity.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.files = append(d.files, file)
	return nil
}

func (d *fakeDownloader) Files() []entity.File {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]entity.File(nil), d.files...)
}

type fakeClipboard struct {
	available bool
	err       error
	writes    [][]byte
}

func (c *fakeClipboard) Available() bool { return c.available }

func (c *fakeClipboard) WriteImage(ctx context.Context, png []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, png)
	return nil
}

type fakeSharer struct {
	available bool
	files     bool
	err       error
	payloads  []entity.SharePayload
}

func (s *fakeSharer) Available() bool     { return s.available }
func (s *fakeSharer) CanShareFiles() bool { return s.files }

func (s *fakeSharer) Share(_ context.Context, payload entity.SharePayload) error {
	s.payloads = append(s.payloads, payload)
	return s.err
}

type recordingNotifier struct {
	mu    sync.Mutex
	shown []entity.Notification
}

func (n *recordingNotifier) Show(kind entity.NotificationKind, text string) entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	note := entity.Notification{Kind: kind, Text: text}
	n.shown = append(n.shown, note)
	return note
}

func (n *recordingNotifier) All() []entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.Notification(nil), n.shown...)
}

type recordingPresenter struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPresenter) Show(n entity.Notification) { p.add("show:" + n.Text) }
func (p *recordingPresenter) Hide(n entity.Notification) { p.add("hide:" + n.Text) }

func (p *recordingPresenter) add(e string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPresenter) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}
