package utils

import (
	tele "gopkg.in/telebot.v3"
)

func GetMessageText(msg *tele.Message) string {
	switch {
	case msg.Text != "":
		return msg.Text
	case msg.Caption != "":
		return msg.Caption
	default:
		return ""
	}
}

// ChunkButtons lays buttons out in rows of at most perRow.
func ChunkButtons(markup *tele.ReplyMarkup, btns []tele.Btn, perRow int) []tele.Row {
	var rows []tele.Row
	for len(btns) > 0 {
		n := min(perRow, len(btns))
		rows = append(rows, markup.Row(btns[:n]...))
		btns = btns[n:]
	}
	return rows
}
