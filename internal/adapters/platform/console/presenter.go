// Package console presents studio notifications on the terminal.
package console

import (
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// Presenter writes every shown notification as a log line. Hiding is silent.
type Presenter struct {
	logger *types.Logger
}

func NewPresenter(logger *types.Logger) *Presenter {
	return &Presenter{logger: logger}
}

func (p *Presenter) Show(n entity.Notification) {
	switch n.Kind {
	case entity.NotificationError:
		p.logger.Error(n.Text)
	case entity.NotificationSuccess:
		p.logger.Infof("✔ %s", n.Text)
	default:
		p.logger.Info(n.Text)
	}
}

func (p *Presenter) Hide(entity.Notification) {}
