package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// DefaultNotificationDuration is how long a notification stays visible.
const DefaultNotificationDuration = 3 * time.Second

// Presenter displays notifications. Calls are made with the service lock
// held, so a presenter must not call back into the NotifyService.
type Presenter interface {
	Show(n entity.Notification)
	Hide(n entity.Notification)
}

// NotifyService is a single-slot notification channel. Showing a message
// replaces the visible one and restarts the hide timer; nothing is queued.
type NotifyService struct {
	mu         sync.Mutex
	current    *entity.Notification
	timer      *time.Timer
	duration   time.Duration
	presenters []Presenter

	logger *types.Logger
	now    func() time.Time
}

func NewNotifyService(duration time.Duration, logger *types.Logger) *NotifyService {
	if duration <= 0 {
		duration = DefaultNotificationDuration
	}
	return &NotifyService{
		duration: duration,
		logger:   logger,
		now:      time.Now,
	}
}

// Subscribe registers a presenter for every following notification.
func (s *NotifyService) Subscribe(p Presenter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presenters = append(s.presenters, p)
}

// Show replaces the current notification with a new one.
func (s *NotifyService) Show(kind entity.NotificationKind, text string) entity.Notification {
	n := entity.Notification{
		ID:      uuid.New().String(),
		Kind:    kind,
		Text:    text,
		ShownAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.current != nil {
		for _, p := range s.presenters {
			p.Hide(*s.current)
		}
	}

	s.current = &n
	for _, p := range s.presenters {
		p.Show(n)
	}
	s.timer = time.AfterFunc(s.duration, func() { s.hide(n.ID) })

	s.logger.Debugf("notification %s (kind=%s): %s", n.ID, n.Kind, n.Text)
	return n
}

func (s *NotifyService) Info(text string) entity.Notification {
	return s.Show(entity.NotificationInfo, text)
}

func (s *NotifyService) Success(text string) entity.Notification {
	return s.Show(entity.NotificationSuccess, text)
}

func (s *NotifyService) Error(text string) entity.Notification {
	return s.Show(entity.NotificationError, text)
}

// Current returns the visible notification, if any.
func (s *NotifyService) Current() (entity.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return entity.Notification{}, false
	}
	return *s.current, true
}

// hide clears the slot unless a newer notification took it over.
func (s *NotifyService) hide(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != id {
		return
	}
	for _, p := range s.presenters {
		p.Hide(*s.current)
	}
	s.current = nil
	s.timer = nil
}
