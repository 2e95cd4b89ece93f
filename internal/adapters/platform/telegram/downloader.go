package telegram

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

// Downloader delivers exported files as documents to a chat.
type Downloader struct {
	bot    sender
	chat   tele.Recipient
	logger *types.Logger
}

func NewDownloader(bot sender, chatID int64, logger *types.Logger) *Downloader {
	return &Downloader{
		bot:    bot,
		chat:   tele.ChatID(chatID),
		logger: logger,
	}
}

func (d *Downloader) Download(ctx context.Context, file entity.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := &tele.Document{
		File:     fromFile(file),
		FileName: file.Name,
		MIME:     file.MIME,
		Caption:  fmt.Sprintf("%s (%s)", file.Name, content.FormatFileSize(len(file.Data))),
	}
	if _, err := d.bot.Send(d.chat, doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}
