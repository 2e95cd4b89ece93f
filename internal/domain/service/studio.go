package service

import (
	"fmt"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/Badsnus/qr-studio/pkg/snapshot"
)

type previewRenderer interface {
	exportRenderer
	Preview(cfg entity.Configuration) ([]byte, error)
}

// StudioService is the single studio view: the configuration editor, the
// history, the notification channel and the export dispatcher.
type StudioService struct {
	*EditorService
	*DispatcherService

	history  *HistoryService
	notify   *NotifyService
	renderer previewRenderer
	logger   *types.Logger
}

func NewStudioService(
	editor *EditorService,
	history *HistoryService,
	notify *NotifyService,
	renderer previewRenderer,
	dispatcher *DispatcherService,
	logger *types.Logger,
) *StudioService {
	return &StudioService{
		EditorService:     editor,
		DispatcherService: dispatcher,
		history:           history,
		notify:            notify,
		renderer:          renderer,
		logger:            logger,
	}
}

func (s *StudioService) Notifications() *NotifyService {
	return s.notify
}

// Preview returns the current preview: the cached raster while the raster
// view is active, a fresh render otherwise.
func (s *StudioService) Preview() ([]byte, error) {
	if raster, ok := s.Raster(); ok {
		return raster, nil
	}
	return s.renderer.Preview(s.Snapshot())
}

// ToggleView switches between the live vector preview and a raster snapshot
// of it.
func (s *StudioService) ToggleView(mode entity.ViewMode) error {
	if mode == entity.ViewModeVector {
		s.ShowVector()
		return nil
	}

	cfg, revision := s.Current()
	raster, err := s.renderer.Preview(cfg)
	if err != nil {
		s.logger.Errorf("failed to render raster preview: %v", err)
		s.notify.Error("Failed to render raster preview")
		return err
	}
	if !s.SetRaster(raster, revision) {
		s.logger.Debugf("raster preview for revision %d is already stale", revision)
	}
	return nil
}

// Reset restores the defaults and tells the user about it.
func (s *StudioService) Reset() {
	s.EditorService.Reset()
	s.notify.Info("Settings reset to defaults")
}

// Generate records the current configuration in the history.
func (s *StudioService) Generate() entity.HistoryEntry {
	entry := s.history.Record(s.Snapshot())
	s.logger.Infof("generated QR code (history_id=%s, type=%s)", entry.ID, content.DetectDataType(entry.Content))
	s.notify.Success("QR code generated")
	return entry
}

func (s *StudioService) History() []entity.HistoryEntry {
	return s.history.List()
}

// LoadHistory restores content, size and colors from a history entry.
func (s *StudioService) LoadHistory(id string) error {
	entry, err := s.history.Get(id)
	if err != nil {
		return err
	}
	s.LoadEntry(entry)
	s.notify.Info(fmt.Sprintf("Loaded QR code from %s", entry.Label()))
	return nil
}

func (s *StudioService) ClearHistory() {
	s.history.Clear()
	s.notify.Info("History cleared")
}

// DataURI renders a snapshot of the current configuration as a
// data:image/png URI for embedding.
func (s *StudioService) DataURI(scale float64) (string, error) {
	data, err := s.renderer.Snapshot(s.Snapshot(), snapshot.Options{Scale: scale})
	if err != nil {
		return "", err
	}
	return snapshot.DataURI(data), nil
}

// DataType classifies the current content.
func (s *StudioService) DataType() content.DataType {
	return content.DetectDataType(s.Snapshot().Content)
}
