package validator

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/qrcode"
)

const (
	MinSize        = 100
	MaxSize        = 500
	MinBorderWidth = 1
	MaxBorderWidth = 30
	MinFontSize    = 8
	MaxFontSize    = 48

	// MaxContentBytes is the byte-mode capacity of a version 40 symbol at level L.
	MaxContentBytes = 2953
	MaxCaption      = 200
)

// capacity is the byte-mode capacity of a version 40 symbol per level.
var capacity = map[entity.ErrorCorrection]int{
	entity.ErrorCorrectionLow:      MaxContentBytes,
	entity.ErrorCorrectionMedium:   2331,
	entity.ErrorCorrectionQuartile: 1663,
	entity.ErrorCorrectionHigh:     1273,
}

// ContentCapacity returns how many bytes fit at the given level. Unknown
// levels get the level L limit.
func ContentCapacity(level entity.ErrorCorrection) int {
	if n, ok := capacity[level]; ok {
		return n
	}
	return MaxContentBytes
}

// Content checks the byte length against params["level"] (an
// entity.ErrorCorrection), or against level L when no level is given.
func Content(content string, params map[string]interface{}) bool {
	level, _ := params["level"].(entity.ErrorCorrection)
	return len(content) <= ContentCapacity(level)
}

func Caption(caption string, _ map[string]interface{}) bool {
	return utf8.RuneCountInString(caption) <= MaxCaption
}

func Size(size string, _ map[string]interface{}) bool {
	return intInRange(size, MinSize, MaxSize)
}

func BorderWidth(width string, _ map[string]interface{}) bool {
	return intInRange(width, MinBorderWidth, MaxBorderWidth)
}

func FontSize(size string, _ map[string]interface{}) bool {
	return intInRange(size, MinFontSize, MaxFontSize)
}

// HexColor accepts #rgb and #rrggbb. With params["allowEmpty"] set, an empty
// string (no color) passes too.
func HexColor(hex string, params map[string]interface{}) bool {
	if hex == "" {
		allow, _ := params["allowEmpty"].(bool)
		return allow
	}
	if !strings.HasPrefix(hex, "#") {
		return false
	}
	_, err := qrcode.ParseHexColor(hex)
	return err == nil
}

// ErrorCorrection accepts L, M, Q and H. With params["content"] set, the
// level must also hold that content.
func ErrorCorrection(level string, params map[string]interface{}) bool {
	ec := entity.ErrorCorrection(strings.ToUpper(level))
	if !ec.Valid() {
		return false
	}
	text, _ := params["content"].(string)
	return len(text) <= ContentCapacity(ec)
}

func Style(style string, _ map[string]interface{}) bool {
	switch entity.ModuleStyle(strings.ToLower(style)) {
	case entity.ModuleStyleSquare, entity.ModuleStyleDots:
		return true
	}
	return false
}

func ViewMode(mode string, _ map[string]interface{}) bool {
	switch entity.ViewMode(strings.ToLower(mode)) {
	case entity.ViewModeVector, entity.ViewModeRaster:
		return true
	}
	return false
}

func Switch(value string, _ map[string]interface{}) bool {
	_, ok := ParseSwitch(value)
	return ok
}

// ParseSwitch reads on/off style toggles.
func ParseSwitch(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, true
	case "off", "false", "no", "0":
		return false, true
	}
	return false, false
}

func intInRange(s string, lo, hi int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= lo && n <= hi
}
