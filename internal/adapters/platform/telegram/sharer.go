package telegram

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// Sharer posts QR codes to a share chat (a channel or a group).
type Sharer struct {
	bot    sender
	chatID int64
	logger *types.Logger
}

// NewSharer returns a Sharer. A zero chatID disables sharing.
func NewSharer(bot sender, chatID int64, logger *types.Logger) *Sharer {
	return &Sharer{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

func (s *Sharer) Available() bool {
	return s.chatID != 0
}

func (s *Sharer) CanShareFiles() bool {
	return true
}

// Share posts the first image with the payload text as caption, or the text
// alone when there is no file.
func (s *Sharer) Share(ctx context.Context, payload entity.SharePayload) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", errorz.ErrShareCancelled, err)
	}
	chat := tele.ChatID(s.chatID)

	var what interface{} = payload.Text
	if len(payload.Files) > 0 {
		what = &tele.Photo{
			File:    fromFile(payload.Files[0]),
			Caption: payload.Text,
		}
	}

	if _, err := s.bot.Send(chat, what); err != nil {
		return fmt.Errorf("failed to share to chat %d: %w", s.chatID, err)
	}
	s.logger.Infof("shared %q to chat %d", payload.Title, s.chatID)
	return nil
}
