// Package telegram implements the studio platform capabilities on top of a
// Telegram bot: downloads go to the owner chat, shares to a share chat, and
// notifications appear as short-lived messages.
package telegram

import (
	"bytes"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type deleter interface {
	sender
	Delete(msg tele.Editable) error
}

func fromFile(f entity.File) tele.File {
	return tele.FromReader(bytes.NewReader(f.Data))
}
