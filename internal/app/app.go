package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"tmenews/internal/adapter/fetcher"
	"tmenews/internal/adapter/parser"
	"tmenews/internal/adapter/printer"
	"tmenews/internal/config"
	"tmenews/internal/logger"
	"tmenews/internal/usecase"

	"github.com/google/uuid"
)

// App связывает конфигурацию, логгер, загрузчик, парсер и вывод в один запуск утилиты.
type App struct {
	config      *config.Config
	logger      *slog.Logger
	closeLogs   func() error
	newsFetcher *usecase.NewsFetchUseCase
	printer     *printer.Printer
}

// New создает приложение. Новости пишутся в stdout, логи - в stderr,
// если в конфигурации не заданы файлы логов.
func New(cfg *config.Config, stdout, stderr io.Writer) (*App, error) {
	appLogger, closeLogs, err := logger.New(cfg.Logger, stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	appLogger = appLogger.With(slog.String("run_id", uuid.NewString()))

	httpFetcher := fetcher.NewHTTPFetcher(
		cfg.Source.FeedURL(),
		cfg.Source.UserAgent,
		cfg.Source.RequestTimeout(),
		appLogger,
	)
	htmlParser := parser.NewHTMLParser(appLogger)
	newsFetcher := usecase.NewNewsFetchUseCase(httpFetcher, htmlParser, cfg.Source.Tags, appLogger)

	return &App{
		config:      cfg,
		logger:      appLogger,
		closeLogs:   closeLogs,
		newsFetcher: newsFetcher,
		printer:     printer.New(stdout),
	}, nil
}

// Run загружает pages страниц и печатает посты по мере загрузки.
// SIGINT и SIGTERM отменяют текущий запрос.
func (a *App) Run(ctx context.Context, pages int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("Starting tmenews",
		slog.String("component", "app"),
		slog.String("feed_url", a.config.Source.FeedURL()),
		slog.Int("pages", pages),
	)
	summary, err := a.newsFetcher.Fetch(ctx, a.config.Token, pages, a.printer.PrintPage)
	if err != nil {
		return err
	}
	a.logger.Info("tmenews finished",
		slog.String("component", "app"),
		slog.Int("items", summary.Items),
	)
	return nil
}

// Close закрывает файлы логов.
func (a *App) Close() error {
	if a.closeLogs == nil {
		return nil
	}
	return a.closeLogs()
}
