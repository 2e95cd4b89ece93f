package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/nlypage/intele"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-studio/internal/adapters/config"
	"github.com/Badsnus/qr-studio/internal/adapters/platform"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/clipboard"
	"github.com/Badsnus/qr-studio/internal/adapters/platform/telegram"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type Bot struct {
	*tele.Bot
	Config    *config.Config
	Studio    *service.StudioService
	Presenter *telegram.Presenter
	Input     *intele.InputManager
	Logger    *types.Logger
}

func New(cfg *config.Config) (*Bot, error) {
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot.token is not set")
	}
	if cfg.Bot.OwnerID == 0 {
		return nil, fmt.Errorf("bot.owner-id is not set")
	}

	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}

	b, err := tele.NewBot(tele.Settings{
		Token:     cfg.Bot.Token,
		Poller:    &tele.LongPoller{Timeout: 10 * time.Second},
		ParseMode: tele.ModeHTML,
		OnError: func(err error, ctx tele.Context) {
			if ctx == nil || ctx.Sender() == nil {
				botLogger.Errorf("Error: %v", err)
				return
			}
			if ctx.Callback() == nil {
				botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
			} else {
				botLogger.Errorf("(user: %d) | unique: %s | Error: %v", ctx.Sender().ID, ctx.Callback().Unique, err)
			}
		},
	})
	if err != nil {
		return nil, err
	}

	platformLogger := Named("platform")
	presenter := telegram.NewPresenter(b, cfg.Bot.OwnerID, Named("presenter"))
	studio, err := NewStudio(cfg, Platform{
		Downloader: telegram.NewDownloader(b, cfg.Bot.OwnerID, platformLogger),
		Clipboard:  clipboard.New(platformLogger),
		Sharer:     platform.NewSharer(cfg, b, platformLogger),
	}, presenter)
	if err != nil {
		return nil, err
	}

	return &Bot{
		Bot:       b,
		Config:    cfg,
		Studio:    studio,
		Presenter: presenter,
		Input:     intele.NewInputManager(intele.InputOptions{}),
		Logger:    botLogger,
	}, nil
}

func (b *Bot) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go b.Presenter.Run(ctx)

	if b.Config.Logging.LogToChat {
		hookLogger, err := logger.Named("loghook")
		if err != nil {
			logger.Log.Errorf("Failed to create log hook logger: %v", err)
		} else {
			logger.SetLogHook(telegram.LogHook(b.Bot, b.Config.Bot.OwnerID, b.Config.Logging.ChatLogLevel, hookLogger))
		}
	}

	logger.Log.Info("Bot starting")
	b.Bot.Start()
}
