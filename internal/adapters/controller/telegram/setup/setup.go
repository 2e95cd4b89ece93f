package setup

import (
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/handlers/middlewares"
	"github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/handlers/studio"
)

var commands = []tele.Command{
	{Text: "start", Description: "Open the studio"},
	{Text: "preview", Description: "Show the current QR code"},
	{Text: "preset", Description: "Pick a color preset"},
	{Text: "size", Description: "Set the size in pixels"},
	{Text: "fg", Description: "Set the foreground color"},
	{Text: "bg", Description: "Set the background color"},
	{Text: "caption", Description: "Set the caption text"},
	{Text: "border", Description: "Turn the border on or off"},
	{Text: "generate", Description: "Save the QR code to history"},
	{Text: "history", Description: "Show recent QR codes"},
	{Text: "png", Description: "Download PNG"},
	{Text: "svg", Description: "Download SVG"},
	{Text: "copy", Description: "Copy to clipboard"},
	{Text: "share", Description: "Share the QR code"},
	{Text: "cancel", Description: "Stop waiting for a value"},
	{Text: "help", Description: "List all commands"},
}

func Setup(b *bot.Bot) error {
	// Pre-setup and global middlewares
	middle := middlewares.New(b)
	studioHandler := studio.New(b)

	if b.Config.Debug {
		b.Use(middleware.Logger())
	}
	b.Use(middleware.AutoRespond())
	b.Use(middle.PrivateOnly)
	b.Use(middle.OwnerOnly)

	studioHandler.Setup(b.Group())

	return b.SetCommands(commands)
}
