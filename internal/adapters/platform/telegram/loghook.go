package telegram

import (
	"html"
	"strings"

	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

const logHookFailure = "failed to send log to chat"

// LogHook forwards log entries at or above level to a chat.
func LogHook(bot sender, chatID int64, level zapcore.Level, logger *types.Logger) types.LogHook {
	chat := tele.ChatID(chatID)
	return func(log types.Log) {
		if log.Level < level || strings.Contains(log.Message, logHookFailure) {
			return
		}
		if _, err := bot.Send(chat, "<code>"+html.EscapeString(log.String())+"</code>", tele.Silent); err != nil {
			logger.Errorf("%s %d: %v", logHookFailure, chatID, err)
		}
	}
}
