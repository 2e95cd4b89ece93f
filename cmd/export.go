package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/adapters/platform"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/clipboard"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/console"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/filesystem"
	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/internal/domain/utils/validator"
)

type exportOptions struct {
	action  string
	text    string
	preset  string
	size    int
	fg      string
	bg      string
	ec      string
	style   string
	caption string
	border  bool
}

func exportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a QR code and run one export action",
		Example: `  qrstudio export --text https://example.com --preset ocean
  qrstudio export --action svg --size 400 --output-dir ./out
  qrstudio export --action share --caption "Scan me"
  qrstudio export --action uri --text hello > qr.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get(viper.GetViper(), configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runExport(ctx, cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.action, "action", "a", "png", "png, svg, copy, share or uri")
	flags.StringVarP(&opts.text, "text", "t", "", "content to encode (default from config)")
	flags.StringVarP(&opts.preset, "preset", "p", "", "color preset id")
	flags.IntVarP(&opts.size, "size", "s", 0, fmt.Sprintf("size in pixels, %d-%d", validator.MinSize, validator.MaxSize))
	flags.StringVar(&opts.fg, "fg", "", "foreground color")
	flags.StringVar(&opts.bg, "bg", "", "background color")
	flags.StringVar(&opts.ec, "ec", "", "error correction level, L|M|Q|H")
	flags.StringVar(&opts.style, "style", "", "module style, square|dots")
	flags.StringVar(&opts.caption, "caption", "", "caption under the code")
	flags.BoolVar(&opts.border, "border", false, "draw a border frame")
	flags.String("output-dir", "", "directory for exported files")
	_ = viper.BindPFlag("export.output-dir", flags.Lookup("output-dir"))

	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts exportOptions) error {
	platformLogger := bot.Named("platform")

	var tgBot *tele.Bot
	if cfg.ShareTarget == platform.ShareTelegram && cfg.Bot.Token != "" {
		b, err := tele.NewBot(tele.Settings{Token: cfg.Bot.Token, Offline: true})
		if err != nil {
			return err
		}
		tgBot = b
	}

	studio, err := bot.NewStudio(cfg, bot.Platform{
		Downloader: filesystem.NewDownloader(cfg.Export.OutputDir, platformLogger),
		Clipboard:  clipboard.New(platformLogger),
		Sharer:     platform.NewSharer(cfg, tgBot, platformLogger),
	}, console.NewPresenter(bot.Named("studio")))
	if err != nil {
		return err
	}

	if err = applyExportOptions(studio, cmd, opts); err != nil {
		return err
	}

	switch opts.action {
	case "png":
		err = studio.DownloadPNG(ctx)
	case "svg":
		err = studio.DownloadSVG(ctx)
	case "copy":
		err = studio.CopyToClipboard(ctx)
	case "share":
		err = studio.Share(ctx)
	case "uri":
		var uri string
		if uri, err = studio.DataURI(cfg.Export.Settings.PNGScale); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
		return err
	default:
		return fmt.Errorf("unknown action %q, want png, svg, copy, share or uri", opts.action)
	}
	if err != nil {
		return err
	}

	if n, ok := studio.Notifications().Current(); ok && n.Kind == entity.NotificationError {
		return errors.New(n.Text)
	}
	return nil
}

func applyExportOptions(studio *service.StudioService, cmd *cobra.Command, opts exportOptions) error {
	changed := cmd.Flags().Changed

	if opts.preset != "" {
		if _, err := studio.ApplyPreset(strings.ToLower(opts.preset)); err != nil {
			return fmt.Errorf("--preset %q: %w", opts.preset, err)
		}
	}

	checks := []struct {
		flag  string
		value string
		valid func(string, map[string]interface{}) bool
		apply func()
	}{
		// ec goes first so the text is checked against the requested level
		{"ec", opts.ec, validator.ErrorCorrection, func() { studio.SetErrorCorrection(entity.ErrorCorrection(strings.ToUpper(opts.ec))) }},
		{"text", opts.text, validator.Content, func() { studio.SetContent(opts.text) }},
		{"size", fmt.Sprint(opts.size), validator.Size, func() { studio.SetSize(opts.size) }},
		{"fg", opts.fg, validator.HexColor, func() { studio.SetForeground(strings.ToLower(opts.fg)) }},
		{"bg", opts.bg, validator.HexColor, func() { studio.SetBackground(strings.ToLower(opts.bg)) }},
		{"style", opts.style, validator.Style, func() { studio.SetStyle(entity.ModuleStyle(strings.ToLower(opts.style))) }},
		{"caption", opts.caption, validator.Caption, func() { studio.SetCaption(opts.caption) }},
	}
	for _, c := range checks {
		if !changed(c.flag) {
			continue
		}
		cfg := studio.Snapshot()
		params := map[string]interface{}{"level": cfg.ErrorCorrection, "content": cfg.Content}
		if !c.valid(c.value, params) {
			return fmt.Errorf("--%s %q: %w", c.flag, c.value, errorz.ErrInvalidInput)
		}
		c.apply()
	}

	if changed("border") {
		studio.SetBorder(opts.border)
	}
	return nil
}
