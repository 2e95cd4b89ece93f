package telegram

import (
	"context"
	"fmt"
	"html"
	"sync"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

const presenterQueue = 32

var kindIcons = map[entity.NotificationKind]string{
	entity.NotificationInfo:    "ℹ️",
	entity.NotificationSuccess: "✅",
	entity.NotificationError:   "❌",
}

type presenterEvent struct {
	show bool
	n    entity.Notification
}

// Presenter shows notifications as chat messages and deletes them once they
// hide. Show and Hide only enqueue, Run talks to Telegram.
type Presenter struct {
	bot    deleter
	chat   tele.Recipient
	events chan presenterEvent
	logger *types.Logger

	mu   sync.Mutex
	sent map[string]*tele.Message
}

func NewPresenter(bot deleter, chatID int64, logger *types.Logger) *Presenter {
	return &Presenter{
		bot:    bot,
		chat:   tele.ChatID(chatID),
		events: make(chan presenterEvent, presenterQueue),
		logger: logger,
		sent:   make(map[string]*tele.Message),
	}
}

func (p *Presenter) Show(n entity.Notification) { p.enqueue(presenterEvent{show: true, n: n}) }
func (p *Presenter) Hide(n entity.Notification) { p.enqueue(presenterEvent{show: false, n: n}) }

func (p *Presenter) enqueue(e presenterEvent) {
	select {
	case p.events <- e:
	default:
		p.logger.Warnf("notification queue is full, dropping %s", e.n.ID)
	}
}

// Run delivers queued notifications until ctx is done.
func (p *Presenter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-p.events:
			if e.show {
				p.show(e.n)
			} else {
				p.hide(e.n)
			}
		}
	}
}

func (p *Presenter) show(n entity.Notification) {
	msg, err := p.bot.Send(p.chat, fmt.Sprintf("%s %s", kindIcons[n.Kind], html.EscapeString(n.Text)), tele.Silent)
	if err != nil {
		p.logger.Errorf("failed to show notification %s: %v", n.ID, err)
		return
	}

	p.mu.Lock()
	p.sent[n.ID] = msg
	p.mu.Unlock()
}

func (p *Presenter) hide(n entity.Notification) {
	p.mu.Lock()
	msg, ok := p.sent[n.ID]
	delete(p.sent, n.ID)
	p.mu.Unlock()

	if !ok {
		return
	}
	if err := p.bot.Delete(msg); err != nil {
		p.logger.Debugf("failed to delete notification %s: %v", n.ID, err)
	}
}
