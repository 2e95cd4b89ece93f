package studio

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/validator"
)

// clearValue is the answer that removes an optional value.
const clearValue = "-"

// setting is a single-argument command that edits one configuration field.
// Sent without an argument, the command asks for the value.
type setting struct {
	prompt    string
	usage     string
	validate  func(string, map[string]interface{}) bool
	params    map[string]interface{}
	clearable bool
	apply     func(arg string)
}

func (h *Handler) settings() map[string]setting {
	s := h.studio
	colorUsage := func(cmd string) string { return fmt.Sprintf("Usage: %s <#rrggbb>", cmd) }

	return map[string]setting{
		"/text": {
			prompt:   "Send the text or link to encode",
			usage:    "Usage: /text <content>. Long content needs a lower error correction level, see /ec",
			validate: validator.Content,
			apply:    s.SetContent,
		},
		"/size": {
			prompt:   fmt.Sprintf("Send the size in pixels (%d-%d)", validator.MinSize, validator.MaxSize),
			usage:    fmt.Sprintf("Usage: /size <%d-%d>", validator.MinSize, validator.MaxSize),
			validate: validator.Size,
			apply:    func(arg string) { s.SetSize(atoi(arg)) },
		},
		"/fg": {
			prompt:   "Send the foreground color as #rrggbb",
			usage:    colorUsage("/fg"),
			validate: validator.HexColor,
			apply:    func(arg string) { s.SetForeground(strings.ToLower(arg)) },
		},
		"/bg": {
			prompt:   "Send the background color as #rrggbb",
			usage:    colorUsage("/bg"),
			validate: validator.HexColor,
			apply:    func(arg string) { s.SetBackground(strings.ToLower(arg)) },
		},
		"/ec": {
			prompt:   "Send the error correction level: L, M, Q or H",
			usage:    "Usage: /ec L|M|Q|H. Higher levels hold less content",
			validate: validator.ErrorCorrection,
			apply:    func(arg string) { s.SetErrorCorrection(entity.ErrorCorrection(strings.ToUpper(arg))) },
		},
		"/margin": {
			prompt:   "Quiet zone margin: on or off?",
			usage:    "Usage: /margin on|off",
			validate: validator.Switch,
			apply:    func(arg string) { s.SetMargin(on(arg)) },
		},
		"/style": {
			prompt:   "Send the module style: square or dots",
			usage:    "Usage: /style square|dots",
			validate: validator.Style,
			apply:    func(arg string) { s.SetStyle(entity.ModuleStyle(strings.ToLower(arg))) },
		},
		"/border": {
			prompt:   "Border: on or off?",
			usage:    "Usage: /border on|off",
			validate: validator.Switch,
			apply:    func(arg string) { s.SetBorder(on(arg)) },
		},
		"/bordercolor": {
			prompt:   "Send the border color as #rrggbb",
			usage:    colorUsage("/bordercolor"),
			validate: validator.HexColor,
			apply:    func(arg string) { s.SetBorderColor(strings.ToLower(arg)) },
		},
		"/borderwidth": {
			prompt:   fmt.Sprintf("Send the border width (%d-%d)", validator.MinBorderWidth, validator.MaxBorderWidth),
			usage:    fmt.Sprintf("Usage: /borderwidth <%d-%d>", validator.MinBorderWidth, validator.MaxBorderWidth),
			validate: validator.BorderWidth,
			apply:    func(arg string) { s.SetBorderWidth(atoi(arg)) },
		},
		"/caption": {
			prompt:    "Send the caption text, or - to remove it",
			usage:     fmt.Sprintf("Usage: /caption <text up to %d characters>, /caption - removes the caption", validator.MaxCaption),
			validate:  validator.Caption,
			clearable: true,
			apply:     s.SetCaption,
		},
		"/captioncolor": {
			prompt:   "Send the caption color as #rrggbb",
			usage:    colorUsage("/captioncolor"),
			validate: validator.HexColor,
			apply:    func(arg string) { s.SetCaptionColor(strings.ToLower(arg)) },
		},
		"/captionbg": {
			prompt:    "Send the caption background as #rrggbb, or - to remove it",
			usage:     "Usage: /captionbg <#rrggbb>, /captionbg - removes the background",
			validate:  validator.HexColor,
			params:    map[string]interface{}{"allowEmpty": true},
			clearable: true,
			apply:     func(arg string) { s.SetCaptionBackground(strings.ToLower(arg)) },
		},
		"/captionborder": {
			prompt:   "Caption border: on or off?",
			usage:    "Usage: /captionborder on|off",
			validate: validator.Switch,
			apply:    func(arg string) { s.SetCaptionBorder(on(arg)) },
		},
		"/captionsize": {
			prompt:   fmt.Sprintf("Send the caption font size (%d-%d)", validator.MinFontSize, validator.MaxFontSize),
			usage:    fmt.Sprintf("Usage: /captionsize <%d-%d>", validator.MinFontSize, validator.MaxFontSize),
			validate: validator.FontSize,
			apply:    func(arg string) { s.SetCaptionFontSize(atoi(arg)) },
		},
	}
}

func (h *Handler) set(s setting) tele.HandlerFunc {
	return func(c tele.Context) error {
		arg := strings.TrimSpace(c.Message().Payload)
		if arg == "" {
			return h.ask(c, s.prompt, s.usage, func(answer string) (bool, error) {
				if !h.accept(s, answer) {
					return false, nil
				}
				h.logger.Debugf("(user: %d) %s", c.Sender().ID, c.Text())
				return true, h.touch(c)
			})
		}

		if !h.accept(s, arg) {
			return c.Send(s.usage)
		}
		h.logger.Debugf("(user: %d) %s", c.Sender().ID, c.Text())
		return h.touch(c)
	}
}

// accept validates arg against the current configuration and applies it.
func (h *Handler) accept(s setting, arg string) bool {
	if s.clearable && arg == clearValue {
		arg = ""
	}
	if !s.validate(arg, h.params(s)) {
		return false
	}
	s.apply(arg)
	return true
}

// params adds the current content and level to the setting's own params:
// the content limit depends on the level and the other way round.
func (h *Handler) params(s setting) map[string]interface{} {
	cfg := h.studio.Snapshot()
	params := map[string]interface{}{
		"level":   cfg.ErrorCorrection,
		"content": cfg.Content,
	}
	for k, v := range s.params {
		params[k] = v
	}
	return params
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func on(s string) bool {
	v, _ := validator.ParseSwitch(s)
	return v
}
