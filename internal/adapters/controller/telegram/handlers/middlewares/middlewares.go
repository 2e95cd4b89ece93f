package middlewares

import (
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type Handler struct {
	ownerID int64
	logger  *types.Logger
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		ownerID: b.Config.Bot.OwnerID,
		logger:  b.Logger,
	}
}

// OwnerOnly drops updates from anyone but the studio owner.
func (h Handler) OwnerOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || c.Sender().ID != h.ownerID {
			if c.Sender() != nil {
				h.logger.Warnf("(user: %d) access denied", c.Sender().ID)
			}
			return nil
		}
		return next(c)
	}
}

// PrivateOnly ignores updates that do not come from a private chat, so the
// share chat never drives the studio.
func (h Handler) PrivateOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Chat() != nil && c.Chat().Type != tele.ChatPrivate {
			return nil
		}
		return next(c)
	}
}
