package qrcode_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-studio/pkg/qrcode"
)

var (
	fg = color.RGBA{R: 0x5d, G: 0x40, B: 0x37, A: 255}
	bg = color.RGBA{R: 0xff, G: 0xf3, B: 0xe0, A: 255}
)

func newCode(t *testing.T, content string, margin bool) *qrcode.Code {
	t.Helper()
	code, err := qrcode.New(qrcode.Options{
		Content:    content,
		Level:      qrcode.LevelMedium,
		Margin:     margin,
		Foreground: fg,
		Background: bg,
	})
	require.NoError(t, err)
	return code
}

func TestPreviewSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{100, 256, 370, 410, 411, 500} {
		for _, width := range []int{1, 10, 30} {
			assert.Equal(t, min(size, 410), qrcode.PreviewSize(size, false, width))
			assert.Equal(t, min(size, 410-(2*width+40)), qrcode.PreviewSize(size, true, width))
		}
	}
	assert.Equal(t, 256, qrcode.PreviewSize(256, true, 10))
	assert.Equal(t, 350, qrcode.PreviewSize(500, true, 10))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty content renders a blank code", func(t *testing.T) {
		t.Parallel()
		code := newCode(t, "", true)

		assert.True(t, code.Empty())
		img := code.Image(120)
		assert.Equal(t, 120, img.Bounds().Dx())
		r, g, b, _ := img.At(60, 60).RGBA()
		assert.Equal(t, [3]uint32{0xff, 0xf3, 0xe0}, [3]uint32{r >> 8, g >> 8, b >> 8})
	})

	t.Run("margin adds a quiet zone of four modules per side", func(t *testing.T) {
		t.Parallel()
		with := newCode(t, "https://github.com", true)
		without := newCode(t, "https://github.com", false)

		assert.Equal(t, without.Modules()+8, with.Modules())
	})

	t.Run("content too long for any symbol fails", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.New(qrcode.Options{
			Content: strings.Repeat("x", 8000),
			Level:   qrcode.LevelHigh,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, qrcode.ErrEncode))
	})
}

func TestPNG(t *testing.T) {
	t.Parallel()

	code := newCode(t, "https://example.com", true)
	data, err := code.PNG(300)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())

	// the top-left corner is quiet zone, the finder pattern starts right after it
	cell := 300 / code.Modules()
	assert.Equal(t, color.RGBAModel.Convert(bg), color.RGBAModel.Convert(img.At(1, 1)))
	assert.Equal(t, color.RGBAModel.Convert(fg), color.RGBAModel.Convert(img.At(4*cell+cell/2+1, 4*cell+cell/2+1)))
}

func TestImageWithLogo(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 255, A: 255}
	logo := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(logo, logo.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)

	code, err := qrcode.New(qrcode.Options{
		Content:    "https://example.com",
		Level:      qrcode.LevelHigh,
		Margin:     true,
		Foreground: fg,
		Background: bg,
		Logo:       logo,
		LogoScale:  0.2,
	})
	require.NoError(t, err)

	img := code.Image(200)
	assert.Equal(t, 200, img.Bounds().Dx())
	center := color.RGBAModel.Convert(img.At(100, 100)).(color.RGBA)
	assert.Greater(t, center.R, uint8(200))
	assert.Less(t, center.G, uint8(50))
}

func TestSVG(t *testing.T) {
	t.Parallel()

	code := newCode(t, "hello", false)
	svg := string(code.SVG(256))

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, svg, `width="256" height="256"`)
	assert.Contains(t, svg, `fill="#fff3e0"`)
	assert.Contains(t, svg, `fill="#5d4037"`)
	assert.True(t, strings.HasSuffix(svg, "</svg>"))

	empty := string(newCode(t, "", false).SVG(100))
	assert.NotContains(t, empty, "<path")
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	c, err := qrcode.ParseHexColor("#5d4037")
	require.NoError(t, err)
	assert.Equal(t, fg, c)

	c, err = qrcode.ParseHexColor("fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)

	c, err = qrcode.ParseHexColor("transparent")
	require.NoError(t, err)
	assert.Equal(t, uint8(0), c.A)

	_, err = qrcode.ParseHexColor("#12345")
	assert.ErrorIs(t, err, qrcode.ErrInvalidColor)
	_, err = qrcode.ParseHexColor("#gggggg")
	assert.ErrorIs(t, err, qrcode.ErrInvalidColor)

	assert.Equal(t, "#5d4037", qrcode.HexColor(fg))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, ok := qrcode.ParseLevel("q")
	assert.True(t, ok)
	assert.Equal(t, qrcode.LevelQuartile, l)

	_, ok = qrcode.ParseLevel("X")
	assert.False(t, ok)
}
