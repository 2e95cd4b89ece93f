package service

import (
	"sync"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
)

// HistoryLimit is the maximum number of kept entries.
const HistoryLimit = 10

// HistoryService keeps recently generated configurations, most recent first.
// Entries live only as long as the process.
type HistoryService struct {
	mu      sync.Mutex
	entries []entity.HistoryEntry
	now     func() time.Time
}

func NewHistoryService(now func() time.Time) *HistoryService {
	if now == nil {
		now = time.Now
	}
	return &HistoryService{now: now}
}

// Record prepends a snapshot of cfg, dropping the oldest entries past the limit.
func (s *HistoryService) Record(cfg entity.Configuration) entity.HistoryEntry {
	createdAt := s.now()
	entry := entity.HistoryEntry{
		ID:         content.GenerateID(createdAt),
		Content:    cfg.Content,
		Size:       cfg.Size,
		Foreground: cfg.Foreground,
		Background: cfg.Background,
		CreatedAt:  createdAt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]entity.HistoryEntry{entry}, s.entries...)
	if len(s.entries) > HistoryLimit {
		s.entries = s.entries[:HistoryLimit]
	}
	return entry
}

func (s *HistoryService) List() []entity.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *HistoryService) Get(id string) (entity.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return entity.HistoryEntry{}, errorz.ErrHistoryEntryNotFound
}

func (s *HistoryService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
