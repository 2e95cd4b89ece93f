// Package platform selects the capability adapters a studio runs with.
package platform

import (
	"context"

	"gopkg.in/gomail.v2"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/email"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/telegram"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
	"github.com/Badsnus/qr-studio/pkg/smtp"
)

const (
	ShareTelegram = "telegram"
	ShareEmail    = "email"
	ShareNone     = "none"
)

type Downloader interface {
	Download(ctx context.Context, file entity.File) error
}

type Clipboard interface {
	Available() bool
	WriteImage(ctx context.Context, png []byte) error
}

type Sharer interface {
	Available() bool
	CanShareFiles() bool
	Share(ctx context.Context, payload entity.SharePayload) error
}

// NewSharer builds the share target named by share.target. It returns nil
// when sharing is off or the target cannot be reached, so that the studio
// falls back to the clipboard.
func NewSharer(cfg *config.Config, bot *tele.Bot, logger *types.Logger) Sharer {
	switch cfg.ShareTarget {
	case ShareTelegram:
		if bot == nil || cfg.Bot.ShareChatID == 0 {
			logger.Debugf("telegram sharing is not configured")
			return nil
		}
		return telegram.NewSharer(bot, cfg.Bot.ShareChatID, logger)
	case ShareEmail:
		if cfg.SMTP.Host == "" {
			logger.Warnf("share.target is email but smtp.host is not set")
			return nil
		}
		dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
		client := smtp.NewClient(dialer, cfg.SMTP.From, cfg.SMTP.To, cfg.SMTP.Domain)
		return email.NewSharer(client, logger)
	default:
		return nil
	}
}
