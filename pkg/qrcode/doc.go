// Package qrcode renders QR codes as raster images and SVG markup.
//
// Symbol encoding is delegated to github.com/skip2/go-qrcode; the module
// matrix it produces is drawn with github.com/fogleman/gg so that colors,
// module style and an optional center logo can be controlled.
//
// Empty content is not an error: New returns a Code without modules, which
// renders as a blank square in the background color.
//
//	code, err := qrcode.New(qrcode.Options{
//		Content:    "https://example.com",
//		Level:      qrcode.LevelMedium,
//		Margin:     true,
//		Foreground: color.Black,
//		Background: color.White,
//	})
//	if err != nil {
//		// content did not fit into the largest symbol
//	}
//	png, err := code.PNG(qrcode.PreviewSize(256, false, 0))
package qrcode
