package service

import (
	"sync"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

// EditorService owns the studio configuration.
//
// Every mutation goes through update, which bumps the revision. A cached
// raster preview remembers the revision it was rendered at and is only
// served while that revision is still current, so any change reverts the
// view to vector without listeners.
type EditorService struct {
	mu sync.Mutex

	defaults      entity.Configuration
	defaultPreset string

	cfg            entity.Configuration
	selectedPreset string
	revision       uint64

	raster         []byte
	rasterRevision uint64
}

func NewEditorService(defaults entity.Configuration, defaultPreset string) *EditorService {
	return &EditorService{
		defaults:       defaults,
		defaultPreset:  defaultPreset,
		cfg:            defaults,
		selectedPreset: defaultPreset,
		revision:       1,
	}
}

func (s *EditorService) update(fn func(cfg *entity.Configuration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
	s.revision++
}

// Snapshot returns a copy of the current configuration.
func (s *EditorService) Snapshot() entity.Configuration {
	cfg, _ := s.Current()
	return cfg
}

// Current returns the configuration together with its revision.
func (s *EditorService) Current() (entity.Configuration, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.revision
}

func (s *EditorService) SelectedPreset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedPreset
}

func (s *EditorService) SetContent(content string) {
	s.update(func(cfg *entity.Configuration) { cfg.Content = content })
}

func (s *EditorService) SetSize(size int) {
	s.update(func(cfg *entity.Configuration) { cfg.Size = size })
}

func (s *EditorService) SetForeground(hex string) {
	s.update(func(cfg *entity.Configuration) { cfg.Foreground = hex })
}

func (s *EditorService) SetBackground(hex string) {
	s.update(func(cfg *entity.Configuration) { cfg.Background = hex })
}

func (s *EditorService) SetErrorCorrection(level entity.ErrorCorrection) {
	s.update(func(cfg *entity.Configuration) { cfg.ErrorCorrection = level })
}

func (s *EditorService) SetMargin(margin bool) {
	s.update(func(cfg *entity.Configuration) { cfg.Margin = margin })
}

func (s *EditorService) SetStyle(style entity.ModuleStyle) {
	s.update(func(cfg *entity.Configuration) { cfg.Style = style })
}

func (s *EditorService) SetBorder(enabled bool) {
	s.update(func(cfg *entity.Configuration) { cfg.Border.Enabled = enabled })
}

func (s *EditorService) SetBorderColor(hex string) {
	s.update(func(cfg *entity.Configuration) { cfg.Border.Color = hex })
}

func (s *EditorService) SetBorderWidth(width int) {
	s.update(func(cfg *entity.Configuration) { cfg.Border.Width = width })
}

func (s *EditorService) SetCaption(text string) {
	s.update(func(cfg *entity.Configuration) { cfg.Caption.Text = text })
}

func (s *EditorService) SetCaptionColor(hex string) {
	s.update(func(cfg *entity.Configuration) { cfg.Caption.Color = hex })
}

func (s *EditorService) SetCaptionBackground(hex string) {
	s.update(func(cfg *entity.Configuration) { cfg.Caption.Background = hex })
}

func (s *EditorService) SetCaptionBorder(enabled bool) {
	s.update(func(cfg *entity.Configuration) { cfg.Caption.Border = enabled })
}

func (s *EditorService) SetCaptionBorderColor(hex string) {
	s.update(func(cfg *entity.Configuration) { cfg.Caption.BorderColor = hex })
}

func (s *EditorService) SetCaptionFontSize(size int) {
	s.update(func(cfg *entity.Configuration) { cfg.Caption.FontSize = size })
}

// ApplyPreset overwrites the foreground, background and border colors and
// marks the preset as selected. Later manual color edits keep the mark.
func (s *EditorService) ApplyPreset(id string) (entity.Preset, error) {
	preset, ok := entity.PresetByID(id)
	if !ok {
		return entity.Preset{}, errorz.ErrUnknownPreset
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Foreground = preset.Foreground
	s.cfg.Background = preset.Background
	s.cfg.Border.Color = preset.BorderColor
	s.selectedPreset = preset.ID
	s.revision++

	return preset, nil
}

// LoadEntry overwrites the fields a history entry captured. Everything else
// is left as it is.
func (s *EditorService) LoadEntry(entry entity.HistoryEntry) {
	s.update(func(cfg *entity.Configuration) {
		cfg.Content = entry.Content
		cfg.Size = entry.Size
		cfg.Foreground = entry.Foreground
		cfg.Background = entry.Background
	})
}

// Reset restores the defaults, the default preset selection and the vector view.
func (s *EditorService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = s.defaults
	s.selectedPreset = s.defaultPreset
	s.raster = nil
	s.rasterRevision = 0
	s.revision++
}

// SetRaster caches a raster preview rendered at revision. It is dropped when
// the configuration changed in the meantime.
func (s *EditorService) SetRaster(png []byte, revision uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if revision != s.revision {
		return false
	}
	s.raster = png
	s.rasterRevision = revision
	return true
}

// Raster returns the cached raster preview if it is still fresh.
func (s *EditorService) Raster() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.raster == nil || s.rasterRevision != s.revision {
		return nil, false
	}
	return s.raster, true
}

// ShowVector drops the cached raster preview.
func (s *EditorService) ShowVector() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raster = nil
	s.rasterRevision = 0
}

func (s *EditorService) ViewMode() entity.ViewMode {
	if _, ok := s.Raster(); ok {
		return entity.ViewModeRaster
	}
	return entity.ViewModeVector
}
