package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	skipqrcode "github.com/skip2/go-qrcode"
)

var ErrEncode = errors.New("failed to encode QR code")

const (
	// PreviewBudget is the largest edge the preview viewport can show.
	PreviewBudget = 410
	// BorderPadding is the gap between a border frame and the code.
	BorderPadding = 20
)

type Level = skipqrcode.RecoveryLevel

const (
	LevelLow      = skipqrcode.Low
	LevelMedium   = skipqrcode.Medium
	LevelQuartile = skipqrcode.High
	LevelHigh     = skipqrcode.Highest
)

// ParseLevel maps the L/M/Q/H letters onto encoder levels.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(s) {
	case "L":
		return LevelLow, true
	case "M":
		return LevelMedium, true
	case "Q":
		return LevelQuartile, true
	case "H":
		return LevelHigh, true
	}
	return LevelMedium, false
}

type Style int

const (
	StyleSquare Style = iota
	StyleDots
)

type Options struct {
	Content    string
	Level      Level
	Margin     bool // quiet zone of four modules
	Foreground color.Color
	Background color.Color // nil or zero alpha leaves the background transparent
	Style      Style

	Logo      image.Image
	LogoScale float64 // share of the code edge covered by the logo
}

// Code is an encoded symbol ready to be drawn at any size.
type Code struct {
	modules [][]bool
	opts    Options
}

// New encodes opts.Content. Empty content produces a Code without modules.
func New(opts Options) (*Code, error) {
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if opts.Content == "" {
		return &Code{opts: opts}, nil
	}

	qr, err := skipqrcode.New(opts.Content, opts.Level)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	qr.DisableBorder = !opts.Margin

	return &Code{modules: qr.Bitmap(), opts: opts}, nil
}

// PreviewSize clamps size to what fits into the preview viewport, taking the
// border frame and its padding into account.
func PreviewSize(size int, border bool, borderWidth int) int {
	budget := PreviewBudget
	if border {
		budget -= 2*borderWidth + 2*BorderPadding
	}
	return min(size, budget)
}

// Empty reports whether the code has no modules.
func (c *Code) Empty() bool {
	return len(c.modules) == 0
}

// Modules returns the number of modules along one edge, quiet zone included.
func (c *Code) Modules() int {
	return len(c.modules)
}

// Image draws the code into a size×size image.
func (c *Code) Image(size int) image.Image {
	if size < 1 {
		size = 1
	}
	dc := gg.NewContext(size, size)

	if !transparent(c.opts.Background) {
		dc.SetColor(c.opts.Background)
		dc.Clear()
	}

	n := len(c.modules)
	if n == 0 {
		return dc.Image()
	}

	cell := float64(size) / float64(n)
	center := float64(size) / 2

	logoSize := 0
	if c.opts.Logo != nil && c.opts.LogoScale > 0 {
		logoSize = int(float64(size) * c.opts.LogoScale)
	}
	// modules whose center falls inside this radius are left blank for the logo
	clearRadius := float64(logoSize)/2 + cell/2

	dc.SetColor(c.opts.Foreground)
	for y, row := range c.modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := float64(x) * cell
			py := float64(y) * cell
			if logoSize > 0 && math.Hypot(px+cell/2-center, py+cell/2-center) < clearRadius {
				continue
			}
			switch c.opts.Style {
			case StyleDots:
				dc.DrawCircle(px+cell/2, py+cell/2, cell*0.45)
			default:
				dc.DrawRectangle(px, py, cell, cell)
			}
		}
	}
	dc.Fill()

	if logoSize > 0 {
		dc.DrawImageAnchored(c.logo(logoSize), size/2, size/2, 0.5, 0.5)
	}

	return dc.Image()
}

// logo returns the logo resized and cut to a circle on the code background.
func (c *Code) logo(logoSize int) image.Image {
	resized := resize.Resize(uint(logoSize), uint(logoSize), c.opts.Logo, resize.Lanczos3)
	r := float64(logoSize) / 2

	logoCtx := gg.NewContext(logoSize, logoSize)
	logoCtx.DrawCircle(r, r, r)
	logoCtx.Clip()
	if !transparent(c.opts.Background) {
		logoCtx.SetColor(c.opts.Background)
		logoCtx.DrawRectangle(0, 0, float64(logoSize), float64(logoSize))
		logoCtx.Fill()
	}
	logoCtx.DrawImage(resized, 0, 0)

	return logoCtx.Image()
}

// PNG draws the code and encodes it as PNG.
func (c *Code) PNG(size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SVG serializes the code as a standalone SVG document of the given size.
// Dark modules are merged into a single path.
func (c *Code) SVG(size int) []byte {
	n := len(c.modules)
	viewBox := n
	if viewBox == 0 {
		viewBox = 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" shape-rendering="crispEdges">`,
		viewBox, viewBox, size, size,
	)
	if !transparent(c.opts.Background) {
		fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="%s"/>`, viewBox, viewBox, HexColor(c.opts.Background))
	}

	if n > 0 {
		fmt.Fprintf(&sb, `<path fill="%s" d="`, HexColor(c.opts.Foreground))
		for y, row := range c.modules {
			for x, dark := range row {
				if dark {
					fmt.Fprintf(&sb, "M%d %dh1v1h-1z", x, y)
				}
			}
		}
		sb.WriteString(`"/>`)
	}

	sb.WriteString(`</svg>`)
	return []byte(sb.String())
}

// WithBackground returns a copy of the code drawn on bg instead. A nil bg
// leaves the background transparent.
func (c *Code) WithBackground(bg color.Color) *Code {
	opts := c.opts
	opts.Background = bg
	return &Code{modules: c.modules, opts: opts}
}
