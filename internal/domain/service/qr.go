package service

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/pkg/qrcode"
	"github.com/Badsnus/qr-studio/pkg/snapshot"
)

// QrService turns a studio configuration into rendered output: the preview,
// the vector document and raster snapshots.
type QrService struct {
	logo      image.Image
	logoScale float64
}

// NewQrService loads the optional center logo. An empty logoPath disables it.
func NewQrService(logoPath string, logoScale float64) (*QrService, error) {
	s := &QrService{logoScale: logoScale}
	if logoPath == "" {
		return s, nil
	}

	logo, err := gg.LoadImage(logoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load logo: %w", err)
	}
	s.logo = logo
	return s, nil
}

// Code encodes the configuration content with its colors and options.
func (s *QrService) Code(cfg entity.Configuration) (*qrcode.Code, error) {
	fg, err := qrcode.ParseHexColor(cfg.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	bg, err := qrcode.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	level, _ := qrcode.ParseLevel(string(cfg.ErrorCorrection))

	style := qrcode.StyleSquare
	if cfg.Style == entity.ModuleStyleDots {
		style = qrcode.StyleDots
	}

	return qrcode.New(qrcode.Options{
		Content:    cfg.Content,
		Level:      level,
		Margin:     cfg.Margin,
		Foreground: fg,
		Background: bg,
		Style:      style,
		Logo:       s.logo,
		LogoScale:  s.logoScale,
	})
}

// PreviewSize is the edge the code gets inside the preview viewport.
func (s *QrService) PreviewSize(cfg entity.Configuration) int {
	return qrcode.PreviewSize(cfg.Size, cfg.Border.Enabled, cfg.Border.Width)
}

// Preview renders the preview region as PNG, with the code clamped to the
// viewport.
func (s *QrService) Preview(cfg entity.Configuration) ([]byte, error) {
	r, err := s.region(cfg, s.PreviewSize(cfg))
	if err != nil {
		return nil, err
	}
	return snapshot.PNG(r, snapshot.Options{Scale: 1})
}

// SVG serializes the code at the full requested size.
func (s *QrService) SVG(cfg entity.Configuration) ([]byte, error) {
	code, err := s.Code(cfg)
	if err != nil {
		return nil, err
	}
	return code.SVG(cfg.Size), nil
}

// Snapshot renders the full-size region as PNG.
func (s *QrService) Snapshot(cfg entity.Configuration, opts snapshot.Options) ([]byte, error) {
	r, err := s.region(cfg, cfg.Size)
	if err != nil {
		return nil, err
	}
	return snapshot.PNG(r, opts)
}

func (s *QrService) region(cfg entity.Configuration, codeSize int) (snapshot.Region, error) {
	code, err := s.Code(cfg)
	if err != nil {
		return snapshot.Region{}, err
	}

	r := snapshot.Region{
		Code:     code,
		CodeSize: codeSize,
	}
	if r.Background, err = optionalColor(cfg.Background); err != nil {
		return snapshot.Region{}, fmt.Errorf("background: %w", err)
	}

	if cfg.Border.Enabled {
		borderColor, err := optionalColor(cfg.Border.Color)
		if err != nil {
			return snapshot.Region{}, fmt.Errorf("border color: %w", err)
		}
		r.Border = snapshot.Border{Enabled: true, Color: borderColor, Width: cfg.Border.Width}
	}

	if cfg.Caption.Text != "" {
		c := cfg.Caption
		r.Caption = snapshot.Caption{Text: c.Text, Border: c.Border, FontSize: c.FontSize}
		if r.Caption.Color, err = optionalColor(c.Color); err != nil {
			return snapshot.Region{}, fmt.Errorf("caption color: %w", err)
		}
		if r.Caption.Background, err = optionalColor(c.Background); err != nil {
			return snapshot.Region{}, fmt.Errorf("caption background: %w", err)
		}
		if r.Caption.BorderColor, err = optionalColor(c.BorderColor); err != nil {
			return snapshot.Region{}, fmt.Errorf("caption border color: %w", err)
		}
	}

	return r, nil
}

// optionalColor parses hex, mapping an empty string to no color.
func optionalColor(hex string) (color.Color, error) {
	if hex == "" {
		return nil, nil
	}
	c, err := qrcode.ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	return c, nil
}
