package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/filelinkbot/filelink/internal/config"
	"github.com/filelinkbot/filelink/internal/handlers"
	"github.com/filelinkbot/filelink/internal/logger"
	"github.com/filelinkbot/filelink/internal/server"
	"github.com/filelinkbot/filelink/internal/telegram"
	"github.com/filelinkbot/filelink/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBotAPI,
			provideServerHandler(provideStatusHandler),
			provideServerHandler(provideWebhookHandler),
			provideServerHandler(provideFileHandler),
			provideServerHandler(provideLifecycleHandler),
			provideServerHandler(provideDebugHandler),
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideBotAPI(cfg config.Config, log *slog.Logger) telegram.BotAPI {
	return telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.APIBaseURL, log)
}

func provideStatusHandler(log *slog.Logger) *handlers.StatusHandler {
	return handlers.NewStatusHandler(log)
}

func provideWebhookHandler(log *slog.Logger, api telegram.BotAPI, cfg config.Config) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(log, api, cfg.Telegram)
}

func provideFileHandler(log *slog.Logger, api telegram.BotAPI) *handlers.FileHandler {
	return handlers.NewFileHandler(log, api)
}

func provideLifecycleHandler(log *slog.Logger, api telegram.BotAPI, cfg config.Config) *handlers.LifecycleHandler {
	return handlers.NewLifecycleHandler(log, api, cfg.Telegram)
}

func provideDebugHandler(log *slog.Logger, cfg config.Config) *handlers.DebugHandler {
	return handlers.NewDebugHandler(log, cfg.Telegram)
}

type serverParams struct {
	fx.In
	Logger   *slog.Logger
	Config   config.Config
	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	if err := params.Config.Validate(); err != nil {
		// Keep serving so the misconfiguration is observable over HTTP;
		// the router guard answers requests with a configuration error.
		params.Logger.Error("configuration incomplete", slog.Any("error", err))
	}
	return server.NewServer(
		params.Config.Server.Addr,
		params.Logger,
		params.Config.Telegram.BotToken,
		params.Handlers,
	)
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting filelink %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
