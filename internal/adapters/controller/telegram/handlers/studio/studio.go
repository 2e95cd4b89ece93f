package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/internal/domain/utils"
	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
	"github.com/Badsnus/qr-studio/internal/domain/utils/validator"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

const (
	previewDebounce = 400 * time.Millisecond
	exportTimeout   = time.Minute
)

const helpText = `<b>QR Studio</b>

Send any text to encode it, or use the commands:
/text, /size, /fg, /bg, /ec, /margin, /style
/border, /bordercolor, /borderwidth
/caption, /captioncolor, /captionbg, /captionborder, /captionsize
/preset, /view, /reset, /preview
/generate, /history, /load, /clear
/png, /svg, /copy, /share

A setting command without a value asks for it, /cancel stops asking.`

type Handler struct {
	bot    *tele.Bot
	studio *service.StudioService
	input  *intele.InputManager
	answer tele.HandlerFunc
	logger *types.Logger

	// waiting maps a user ID to the token of the prompt waiting for them
	waiting sync.Map

	mu      sync.Mutex
	preview *tele.Message
	refresh func()
}

func New(b *bot.Bot) *Handler {
	h := &Handler{
		bot:    b.Bot,
		studio: b.Studio,
		input:  b.Input,
		answer: b.Input.Handler(),
		logger: b.Logger,
	}
	h.refresh = content.Debounce(h.updatePreview, previewDebounce)
	return h
}

func (h *Handler) Setup(group *tele.Group) {
	group.Use(h.ResetInput)

	group.Handle("/start", h.Start)
	group.Handle("/cancel", h.Cancel)
	group.Handle("/help", h.Help)
	group.Handle("/preview", h.SendPreview)

	for command, s := range h.settings() {
		group.Handle(command, h.set(s))
	}

	group.Handle("/preset", h.Preset)
	group.Handle("/view", h.View)
	group.Handle("/reset", h.Reset)
	group.Handle("/generate", h.Generate)
	group.Handle("/history", h.History)
	group.Handle("/load", h.Load)
	group.Handle("/clear", h.Clear)

	group.Handle("/png", h.exportHandler(actionPNG))
	group.Handle("/svg", h.exportHandler(actionSVG))
	group.Handle("/copy", h.exportHandler(actionCopy))
	group.Handle("/share", h.exportHandler(actionShare))

	group.Handle(&tele.Btn{Unique: "preset"}, h.presetCallback)
	group.Handle(&tele.Btn{Unique: "export"}, h.exportCallback)
	group.Handle(&tele.Btn{Unique: "view"}, h.viewCallback)
	group.Handle(&tele.Btn{Unique: "generate"}, h.Generate)
	group.Handle(&tele.Btn{Unique: "reset"}, h.Reset)
	group.Handle(&tele.Btn{Unique: "load"}, h.loadCallback)

	group.Handle(tele.OnText, h.Text)
}

func (h *Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) press start button", c.Sender().ID)
	if err := c.Send(helpText); err != nil {
		return err
	}
	return h.SendPreview(c)
}

func (h *Handler) Help(c tele.Context) error {
	return c.Send(helpText)
}

// Text sets the encoded content from a plain message.
func (h *Handler) Text(c tele.Context) error {
	if h.awaiting(c.Sender().ID) {
		return h.answer(c)
	}

	text := utils.GetMessageText(c.Message())
	if strings.HasPrefix(text, "/") {
		return c.Send("Unknown command. See /help")
	}
	cfg := h.studio.Snapshot()
	if !validator.Content(text, map[string]interface{}{"level": cfg.ErrorCorrection}) {
		return c.Send(fmt.Sprintf("Content is too long, the limit at level %s is %d bytes", cfg.ErrorCorrection, validator.ContentCapacity(cfg.ErrorCorrection)))
	}

	h.studio.SetContent(text)
	h.logger.Infof("(user: %d) set content (%s)", c.Sender().ID, content.DetectDataType(text))
	return h.touch(c)
}

func (h *Handler) Preset(c tele.Context) error {
	id := strings.ToLower(strings.TrimSpace(c.Message().Payload))
	if id == "" {
		return c.Send("Pick a preset:", h.presetMarkup())
	}
	return h.applyPreset(c, id)
}

func (h *Handler) presetCallback(c tele.Context) error {
	return h.applyPreset(c, c.Data())
}

func (h *Handler) applyPreset(c tele.Context, id string) error {
	preset, err := h.studio.ApplyPreset(id)
	if errors.Is(err, errorz.ErrUnknownPreset) {
		ids := make([]string, 0, len(entity.Presets()))
		for _, p := range entity.Presets() {
			ids = append(ids, p.ID)
		}
		return c.Send("Unknown preset. Available: " + strings.Join(ids, ", "))
	}
	if err != nil {
		return err
	}

	h.logger.Infof("(user: %d) apply preset %s", c.Sender().ID, preset.ID)
	return h.touch(c)
}

func (h *Handler) View(c tele.Context) error {
	mode := strings.ToLower(strings.TrimSpace(c.Message().Payload))
	if !validator.ViewMode(mode, nil) {
		return c.Send("Usage: /view vector|raster")
	}
	return h.toggleView(c, entity.ViewMode(mode))
}

func (h *Handler) viewCallback(c tele.Context) error {
	return h.toggleView(c, entity.ViewMode(c.Data()))
}

func (h *Handler) toggleView(c tele.Context, mode entity.ViewMode) error {
	if err := h.studio.ToggleView(mode); err != nil {
		return err
	}
	return h.touch(c)
}

func (h *Handler) Reset(c tele.Context) error {
	h.logger.Infof("(user: %d) reset settings", c.Sender().ID)
	h.studio.Reset()
	return h.touch(c)
}

func (h *Handler) Generate(c tele.Context) error {
	entry := h.studio.Generate()
	h.logger.Infof("(user: %d) generated %s", c.Sender().ID, entry.ID)
	return nil
}

func (h *Handler) History(c tele.Context) error {
	entries := h.studio.History()
	if len(entries) == 0 {
		return c.Send("History is empty. Use /generate to save the current QR code")
	}
	text, markup := historyMessage(entries)
	return c.Send(text, markup)
}

func (h *Handler) Load(c tele.Context) error {
	id := strings.TrimSpace(c.Message().Payload)
	if id == "" {
		return h.ask(c, "Send the ID of a history entry, see /history", "History entry not found. See /history", func(answer string) (bool, error) {
			err := h.studio.LoadHistory(answer)
			if errors.Is(err, errorz.ErrHistoryEntryNotFound) {
				return false, nil
			}
			if err != nil {
				return true, err
			}
			return true, h.touch(c)
		})
	}
	return h.load(c, id)
}

func (h *Handler) loadCallback(c tele.Context) error {
	return h.load(c, c.Data())
}

func (h *Handler) load(c tele.Context, id string) error {
	err := h.studio.LoadHistory(id)
	if errors.Is(err, errorz.ErrHistoryEntryNotFound) {
		return c.Send("History entry not found. See /history")
	}
	if err != nil {
		return err
	}
	return h.touch(c)
}

func (h *Handler) Clear(c tele.Context) error {
	h.studio.ClearHistory()
	return nil
}

type action string

const (
	actionPNG   action = "png"
	actionSVG   action = "svg"
	actionCopy  action = "copy"
	actionShare action = "share"
)

func (h *Handler) exportHandler(a action) tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.export(c, a)
	}
}

func (h *Handler) exportCallback(c tele.Context) error {
	return h.export(c, action(c.Data()))
}

func (h *Handler) export(c tele.Context, a action) error {
	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	h.logger.Infof("(user: %d) export %s", c.Sender().ID, a)

	var err error
	switch a {
	case actionPNG:
		err = h.studio.DownloadPNG(ctx)
	case actionSVG:
		err = h.studio.DownloadSVG(ctx)
	case actionCopy:
		err = h.studio.CopyToClipboard(ctx)
	case actionShare:
		err = h.studio.Share(ctx)
	default:
		return fmt.Errorf("unknown export action %q", a)
	}

	switch {
	case errors.Is(err, errorz.ErrBusy):
		h.logger.Debugf("(user: %d) %s ignored, another export is running", c.Sender().ID, a)
		return nil
	case errors.Is(err, errorz.ErrNoVectorCode):
		h.logger.Debugf("(user: %d) %s ignored in raster view", c.Sender().ID, a)
		return nil
	}
	return err
}
