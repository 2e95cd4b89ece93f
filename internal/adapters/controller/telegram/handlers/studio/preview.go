package studio

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils"
	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
)

const captionContentLimit = 120

// touch refreshes the preview after an edit, sending a new one if none is
// shown yet.
func (h *Handler) touch(c tele.Context) error {
	h.mu.Lock()
	shown := h.preview != nil
	h.mu.Unlock()

	if !shown {
		return h.SendPreview(c)
	}
	h.refresh()
	return nil
}

// SendPreview sends a fresh preview message, which becomes the one later
// edits update.
func (h *Handler) SendPreview(c tele.Context) error {
	photo, err := h.previewPhoto()
	if err != nil {
		h.logger.Errorf("(user: %d) failed to render preview: %v", c.Sender().ID, err)
		return c.Send("Failed to render preview: " + html.EscapeString(err.Error()))
	}

	msg, err := h.bot.Send(c.Recipient(), photo, h.previewMarkup())
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.preview = msg
	h.mu.Unlock()
	return nil
}

func (h *Handler) updatePreview() {
	h.mu.Lock()
	msg := h.preview
	h.mu.Unlock()
	if msg == nil {
		return
	}

	photo, err := h.previewPhoto()
	if err != nil {
		h.logger.Errorf("failed to render preview: %v", err)
		h.studio.Notifications().Error("Failed to render preview")
		return
	}

	_, err = h.bot.Edit(msg, photo, h.previewMarkup())
	if err != nil && !strings.Contains(err.Error(), "message is not modified") {
		h.logger.Errorf("failed to update preview: %v", err)
	}
}

func (h *Handler) previewPhoto() (*tele.Photo, error) {
	data, err := h.studio.Preview()
	if err != nil {
		return nil, err
	}
	return &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(data)),
		Caption: previewCaption(h.studio.Snapshot(), h.studio.SelectedPreset(), h.studio.ViewMode()),
	}, nil
}

func previewCaption(cfg entity.Configuration, presetID string, mode entity.ViewMode) string {
	var sb strings.Builder

	text := cfg.Content
	if utf8.RuneCountInString(text) > captionContentLimit {
		text = string([]rune(text)[:captionContentLimit]) + "…"
	}
	if text == "" {
		sb.WriteString("<i>empty content</i>\n")
	} else {
		fmt.Fprintf(&sb, "<code>%s</code> (%s)\n", html.EscapeString(text), content.DetectDataType(cfg.Content))
	}

	margin := "on"
	if !cfg.Margin {
		margin = "off"
	}
	fmt.Fprintf(&sb, "Size %dpx, EC %s, margin %s, %s\n", cfg.Size, cfg.ErrorCorrection, margin, cfg.Style)
	fmt.Fprintf(&sb, "Colors %s on %s\n", cfg.Foreground, cfg.Background)

	if cfg.Border.Enabled {
		fmt.Fprintf(&sb, "Border %dpx %s\n", cfg.Border.Width, cfg.Border.Color)
	}
	if cfg.Caption.Text != "" {
		fmt.Fprintf(&sb, "Caption \"%s\" %dpx\n", html.EscapeString(cfg.Caption.Text), cfg.Caption.FontSize)
	}
	if preset, ok := entity.PresetByID(presetID); ok {
		fmt.Fprintf(&sb, "Preset %s\n", preset.Name)
	}
	fmt.Fprintf(&sb, "View %s", mode)

	return sb.String()
}

func (h *Handler) presetMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(presetRows(markup)...)
	return markup
}

func presetRows(markup *tele.ReplyMarkup) []tele.Row {
	presets := entity.Presets()
	btns := make([]tele.Btn, 0, len(presets))
	for _, p := range presets {
		btns = append(btns, markup.Data(p.Name, "preset", p.ID))
	}
	return utils.ChunkButtons(markup, btns, 4)
}

func (h *Handler) previewMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	toggle := markup.Data("🖼 Raster", "view", string(entity.ViewModeRaster))
	if h.studio.ViewMode() == entity.ViewModeRaster {
		toggle = markup.Data("✏️ Vector", "view", string(entity.ViewModeVector))
	}

	rows := presetRows(markup)
	rows = append(rows,
		markup.Row(
			markup.Data("PNG", "export", string(actionPNG)),
			markup.Data("SVG", "export", string(actionSVG)),
			markup.Data("Copy", "export", string(actionCopy)),
			markup.Data("Share", "export", string(actionShare)),
		),
		markup.Row(
			toggle,
			markup.Data("💾 Generate", "generate"),
			markup.Data("↺ Reset", "reset"),
		),
	)
	markup.Inline(rows...)
	return markup
}

func historyMessage(entries []entity.HistoryEntry) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}

	var sb strings.Builder
	sb.WriteString("<b>History</b>\n")
	btns := make([]tele.Btn, 0, len(entries))
	for i, e := range entries {
		text := e.Content
		if utf8.RuneCountInString(text) > 40 {
			text = string([]rune(text)[:40]) + "…"
		}
		fmt.Fprintf(&sb, "%d. %s <code>%s</code> %dpx\n   /load %s\n", i+1, e.Label(), html.EscapeString(text), e.Size, e.ID)
		btns = append(btns, markup.Data(fmt.Sprintf("%d", i+1), "load", e.ID))
	}
	markup.Inline(utils.ChunkButtons(markup, btns, 5)...)
	return sb.String(), markup
}
