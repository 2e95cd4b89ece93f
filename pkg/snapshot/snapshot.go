// Package snapshot composes a rendered preview region (code, border frame and
// caption) into a single raster image.
package snapshot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Badsnus/qr-studio/pkg/qrcode"
)

var ErrCapture = errors.New("failed to capture snapshot")

const (
	captionGap     = 10
	captionPadding = 8
	lineHeight     = 1.4
	defaultFont    = 16
)

type Border struct {
	Enabled bool
	Color   color.Color
	Width   int
}

type Caption struct {
	Text        string
	Color       color.Color
	Background  color.Color
	Border      bool
	BorderColor color.Color
	FontSize    int
}

// Region describes what the preview shows.
type Region struct {
	Code       *qrcode.Code
	CodeSize   int
	Background color.Color
	Border     Border
	Caption    Caption
}

type Options struct {
	// Scale multiplies every dimension. Values <= 0 mean 1.
	Scale float64
	// Transparent skips painting the region background.
	Transparent bool
}

var (
	fontOnce sync.Once
	fontErr  error
	regular  *truetype.Font
)

func fontFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		regular, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return truetype.NewFace(regular, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

// Capture draws the region into a new image.
func Capture(r Region, opts Options) (img image.Image, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("%w: %v", ErrCapture, rec)
		}
	}()

	if r.Code == nil || r.CodeSize <= 0 {
		return nil, fmt.Errorf("%w: nothing rendered", ErrCapture)
	}

	s := opts.Scale
	if s <= 0 {
		s = 1
	}

	frame := 0
	if r.Border.Enabled {
		frame = r.Border.Width + qrcode.BorderPadding
	}

	var (
		lines    []string
		face     font.Face
		captionH float64
	)
	if r.Caption.Text != "" {
		fontSize := r.Caption.FontSize
		if fontSize <= 0 {
			fontSize = defaultFont
		}
		face, err = fontFace(float64(fontSize) * s)
		if err != nil {
			return nil, errors.Join(ErrCapture, err)
		}
		measure := gg.NewContext(1, 1)
		measure.SetFontFace(face)
		lines = measure.WordWrap(r.Caption.Text, float64(r.CodeSize-2*captionPadding)*s)
		captionH = float64(len(lines))*float64(fontSize)*lineHeight + 2*captionPadding
	}

	width := float64(r.CodeSize + 2*frame)
	height := float64(r.CodeSize + 2*frame)
	if captionH > 0 {
		height += captionGap + captionH
	}

	dc := gg.NewContext(int(math.Ceil(width*s)), int(math.Ceil(height*s)))

	if !opts.Transparent && r.Background != nil {
		dc.SetColor(r.Background)
		dc.Clear()
	}

	if r.Border.Enabled && r.Border.Width > 0 {
		bw := float64(r.Border.Width) * s
		dc.SetColor(r.Border.Color)
		dc.SetLineWidth(bw)
		dc.DrawRectangle(bw/2, bw/2, width*s-bw, height*s-bw)
		dc.Stroke()
	}

	offset := float64(frame) * s
	codeEdge := int(math.Round(float64(r.CodeSize) * s))
	dc.DrawImage(r.Code.WithBackground(nil).Image(codeEdge), int(offset), int(offset))

	if captionH > 0 {
		drawCaption(dc, r.Caption, face, lines, offset, offset+(float64(r.CodeSize)+captionGap)*s, float64(r.CodeSize)*s, captionH*s, s)
	}

	return dc.Image(), nil
}

func drawCaption(dc *gg.Context, c Caption, face font.Face, lines []string, x, y, w, h, s float64) {
	if c.Background != nil {
		dc.SetColor(c.Background)
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}
	if c.Border && c.BorderColor != nil {
		dc.SetColor(c.BorderColor)
		dc.SetLineWidth(s)
		dc.DrawRectangle(x+s/2, y+s/2, w-s, h-s)
		dc.Stroke()
	}

	textColor := c.Color
	if textColor == nil {
		textColor = color.Black
	}
	dc.SetColor(textColor)
	dc.SetFontFace(face)

	lineH := (h - 2*captionPadding*s) / float64(len(lines))
	for i, line := range lines {
		dc.DrawStringAnchored(line, x+w/2, y+captionPadding*s+lineH*(float64(i)+0.5), 0.5, 0.35)
	}
}

// PNG captures the region and encodes it as PNG.
func PNG(r Region, opts Options) ([]byte, error) {
	img, err := Capture(r, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, errors.Join(ErrCapture, err)
	}
	return buf.Bytes(), nil
}

// DataURI wraps PNG data into a data URI usable as an image source.
func DataURI(pngData []byte) string {
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(pngData))
}
