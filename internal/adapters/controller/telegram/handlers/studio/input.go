package studio

import (
	"context"
	"strings"

	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"
)

const cancelHint = "\n\n/cancel keeps the current value"

// ask sends prompt and feeds every answer to accept until one is taken or
// the input is cancelled. A rejected answer repeats retry.
func (h *Handler) ask(c tele.Context, prompt, retry string, accept func(answer string) (bool, error)) error {
	userID := c.Sender().ID
	token := new(int)
	h.waiting.Store(userID, token)
	defer h.waiting.CompareAndDelete(userID, token)

	inputCollector := collector.New()
	inputCollector.Collect(c.Message())
	_ = inputCollector.Send(c, prompt+cancelHint)

	for {
		message, canceled, err := h.input.Get(context.Background(), userID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			return nil
		case err != nil:
			h.logger.Errorf("(user: %d) error while waiting for input: %v", userID, err)
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			return c.Send(retry)
		}

		ok, err := accept(strings.TrimSpace(message.Text))
		if !ok && err == nil {
			_ = inputCollector.Send(c, retry+cancelHint)
			continue
		}
		_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
		return err
	}
}

// awaiting reports whether a prompt is waiting for the user's answer.
func (h *Handler) awaiting(userID int64) bool {
	_, ok := h.waiting.Load(userID)
	return ok
}

// Cancel drops the pending prompt.
func (h *Handler) Cancel(c tele.Context) error {
	if !h.awaiting(c.Sender().ID) {
		return c.Send("Nothing to cancel")
	}
	h.input.Cancel(c.Sender().ID)
	return nil
}

// ResetInput cancels a pending prompt when another command or a button
// arrives instead of the answer.
func (h *Handler) ResetInput(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Sender() == nil || !h.awaiting(c.Sender().ID) {
			return next(c)
		}
		if c.Callback() != nil || (c.Message() != nil && strings.HasPrefix(c.Message().Text, "/") && c.Message().Text != "/cancel") {
			h.input.Cancel(c.Sender().ID)
		}
		return next(c)
	}
}
