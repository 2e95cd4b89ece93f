package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/Badsnus/qr-studio/pkg/logger"
)

const envPrefix = "QRSTUDIO"

type Logging struct {
	LogToChat    bool
	ChatLogLevel zapcore.Level
}

type Bot struct {
	Token       string
	OwnerID     int64
	ShareChatID int64
}

type Render struct {
	LogoPath  string
	LogoScale float64
}

type Export struct {
	OutputDir string
	Settings  service.ExportSettings
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
	Domain   string
}

type Config struct {
	Debug    bool
	Logging  Logging
	Location *time.Location

	Bot      Bot
	Defaults entity.Configuration
	Preset   string
	Render   Render
	Export   Export

	NotifyDuration time.Duration
	ShareTarget    string
	SMTP           SMTP
}

func setDefaults(v *viper.Viper) {
	d := entity.DefaultConfiguration()

	v.SetDefault("settings.debug", false)
	v.SetDefault("settings.log-to-file", false)
	v.SetDefault("settings.logs-dir", "logs")
	v.SetDefault("settings.timezone", "UTC")
	v.SetDefault("settings.logging.log-to-chat", false)
	v.SetDefault("settings.logging.chat-log-level", "error")

	v.SetDefault("defaults.content", d.Content)
	v.SetDefault("defaults.size", d.Size)
	v.SetDefault("defaults.foreground", d.Foreground)
	v.SetDefault("defaults.background", d.Background)
	v.SetDefault("defaults.error-correction", string(d.ErrorCorrection))
	v.SetDefault("defaults.margin", d.Margin)
	v.SetDefault("defaults.style", string(d.Style))
	v.SetDefault("defaults.border-color", d.Border.Color)
	v.SetDefault("defaults.border-width", d.Border.Width)
	v.SetDefault("defaults.caption-color", d.Caption.Color)
	v.SetDefault("defaults.caption-border-color", d.Caption.BorderColor)
	v.SetDefault("defaults.caption-font-size", d.Caption.FontSize)
	v.SetDefault("defaults.preset", entity.DefaultPresetID)

	v.SetDefault("render.logo-path", "")
	v.SetDefault("render.logo-scale", 0.2)

	defaults := service.DefaultExportSettings()
	v.SetDefault("export.output-dir", "exports")
	v.SetDefault("export.png-scale", defaults.PNGScale)
	v.SetDefault("export.copy-scale", defaults.CopyScale)
	v.SetDefault("export.share-scale", defaults.ShareScale)
	v.SetDefault("export.transparent-share", defaults.TransparentShare)

	v.SetDefault("notify.duration", service.DefaultNotificationDuration)
	v.SetDefault("share.target", "telegram")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.domain", "localhost")
}

// Load reads .env, config.yaml (or configFile) and QRSTUDIO_* variables into
// v. A missing config file is not an error.
func Load(v *viper.Viper, configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Parse turns loaded settings into a Config.
func Parse(v *viper.Viper) (*Config, error) {
	location, err := time.LoadLocation(v.GetString("settings.timezone"))
	if err != nil {
		return nil, fmt.Errorf("settings.timezone: %w", err)
	}

	var chatLevel zapcore.Level
	if err = chatLevel.UnmarshalText([]byte(v.GetString("settings.logging.chat-log-level"))); err != nil {
		return nil, fmt.Errorf("settings.logging.chat-log-level: %w", err)
	}

	defaults := entity.Configuration{
		Content:         v.GetString("defaults.content"),
		Size:            v.GetInt("defaults.size"),
		Foreground:      v.GetString("defaults.foreground"),
		Background:      v.GetString("defaults.background"),
		ErrorCorrection: entity.ErrorCorrection(strings.ToUpper(v.GetString("defaults.error-correction"))),
		Margin:          v.GetBool("defaults.margin"),
		Border: entity.Border{
			Color: v.GetString("defaults.border-color"),
			Width: v.GetInt("defaults.border-width"),
		},
		Caption: entity.Caption{
			Color:       v.GetString("defaults.caption-color"),
			BorderColor: v.GetString("defaults.caption-border-color"),
			FontSize:    v.GetInt("defaults.caption-font-size"),
		},
		Style: entity.ModuleStyle(v.GetString("defaults.style")),
	}
	if !defaults.ErrorCorrection.Valid() {
		return nil, fmt.Errorf("defaults.error-correction: unknown level %q", defaults.ErrorCorrection)
	}

	preset := v.GetString("defaults.preset")
	if _, ok := entity.PresetByID(preset); !ok {
		return nil, fmt.Errorf("defaults.preset: unknown preset %q", preset)
	}

	shareTarget := v.GetString("share.target")
	switch shareTarget {
	case "telegram", "email", "none":
	default:
		return nil, fmt.Errorf("share.target: must be telegram, email or none, got %q", shareTarget)
	}

	return &Config{
		Debug: v.GetBool("settings.debug"),
		Logging: Logging{
			LogToChat:    v.GetBool("settings.logging.log-to-chat"),
			ChatLogLevel: chatLevel,
		},
		Location: location,
		Bot: Bot{
			Token:       v.GetString("bot.token"),
			OwnerID:     v.GetInt64("bot.owner-id"),
			ShareChatID: v.GetInt64("bot.share-chat-id"),
		},
		Defaults: defaults,
		Preset:   preset,
		Render: Render{
			LogoPath:  v.GetString("render.logo-path"),
			LogoScale: v.GetFloat64("render.logo-scale"),
		},
		Export: Export{
			OutputDir: v.GetString("export.output-dir"),
			Settings: service.ExportSettings{
				PNGScale:         v.GetFloat64("export.png-scale"),
				CopyScale:        v.GetFloat64("export.copy-scale"),
				ShareScale:       v.GetFloat64("export.share-scale"),
				TransparentShare: v.GetBool("export.transparent-share"),
			},
		},
		NotifyDuration: v.GetDuration("notify.duration"),
		ShareTarget:    shareTarget,
		SMTP: SMTP{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			User:     v.GetString("smtp.user"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
			To:       v.GetStringSlice("smtp.to"),
			Domain:   v.GetString("smtp.domain"),
		},
	}, nil
}

// Get loads and parses the configuration and initializes the global logger.
func Get(v *viper.Viper, configFile string) (*Config, error) {
	if err := Load(v, configFile); err != nil {
		return nil, err
	}
	cfg, err := Parse(v)
	if err != nil {
		return nil, err
	}

	err = logger.Init(logger.Config{
		Debug:        cfg.Debug,
		TimeLocation: cfg.Location,
		LogToFile:    v.GetBool("settings.log-to-file"),
		LogsDir:      v.GetString("settings.logs-dir"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, nil
}
