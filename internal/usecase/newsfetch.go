package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"
	"tmenews/internal/domain"
)

// NewsFetchUseCase последовательно загружает страницы ленты The Market Ear.
//
// Ошибка загрузки или разбора страницы не прерывает обход: она возвращается
// для этой страницы, а следующие страницы все равно запрашиваются. Курсор
// пагинации продвигают только успешно разобранные страницы. Отмена контекста
// останавливает обход: ошибка отмененной страницы - последняя.
type NewsFetchUseCase struct {
	fetcher PageFetcher
	parser  PageParser
	tags    []string
	log     *slog.Logger
}

// Summary содержит итоги одного запуска.
type Summary struct {
	Pages  int
	Items  int
	Failed int
}

func NewNewsFetchUseCase(fetcher PageFetcher, parser PageParser, tags []string, log *slog.Logger) *NewsFetchUseCase {
	return &NewsFetchUseCase{
		fetcher: fetcher,
		parser:  parser,
		tags:    tags,
		log:     log.With(slog.String("component", "news-fetcher")),
	}
}

// Pages возвращает ленивый итератор по страницам 1..count. Каждая страница
// полностью загружается и разбирается до запроса следующей.
// Пустой токен дает ConfigurationError до любого запроса; count <= 0 дает пустой итератор.
func (uc *NewsFetchUseCase) Pages(ctx context.Context, token string, count int) (iter.Seq2[*domain.Page, error], error) {
	if strings.TrimSpace(token) == "" {
		return nil, &domain.ConfigurationError{Key: "TME_TOKEN", Reason: "session token is not set"}
	}
	cookies := domain.DeriveCookies(token, uc.tags)
	return func(yield func(*domain.Page, error) bool) {
		cursor := ""
		for index := 1; index <= count; index++ {
			if err := ctx.Err(); err != nil {
				yield(nil, &domain.FetchError{Page: index, Err: err})
				return
			}
			page, err := uc.fetchPage(ctx, cookies, domain.PageRequest{Index: index, Cursor: cursor})
			if err != nil {
				if !yield(nil, err) || ctx.Err() != nil {
					return
				}
				continue
			}
			if page.NextCursor != "" {
				cursor = page.NextCursor
			}
			if !yield(page, nil) {
				return
			}
		}
	}, nil
}

func (uc *NewsFetchUseCase) fetchPage(ctx context.Context, cookies domain.CookiePair, req domain.PageRequest) (*domain.Page, error) {
	start := time.Now()
	log := uc.log.With(slog.Int("page", req.Index))

	reader, err := uc.fetcher.Fetch(ctx, cookies, req)
	if err != nil {
		log.Error("Page fetch failed", slog.String("stage", "fetch"), slog.Any("error", err))
		return nil, &domain.FetchError{Page: req.Index, Err: err}
	}
	body, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		log.Error("Page read failed", slog.String("stage", "fetch"), slog.Any("error", err))
		return nil, &domain.FetchError{Page: req.Index, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	page, err := uc.parser.Parse(ctx, bytes.NewReader(body))
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.FetchError{Page: req.Index, Err: err}
		}
		log.Error("Page parsing failed", slog.String("stage", "parse"), slog.Any("error", err))
		return nil, &domain.ParseError{Page: req.Index, Err: err}
	}
	page.Index = req.Index

	log.Info("Page processed",
		slog.Int("items_found", len(page.Items)),
		slog.String("next_cursor", page.NextCursor),
		slog.Duration("duration", time.Since(start)),
	)
	return page, nil
}

// Fetch обходит страницы и передает каждую успешную страницу в emit.
// Возвращает итоги и объединенные (errors.Join) ошибки страниц.
// Ошибка emit прерывает обход и возвращается вместе с накопленными ошибками.
func (uc *NewsFetchUseCase) Fetch(ctx context.Context, token string, count int, emit func(*domain.Page) error) (Summary, error) {
	var summary Summary
	pages, err := uc.Pages(ctx, token, count)
	if err != nil {
		uc.log.Error("Fetch not started", slog.Any("error", err))
		return summary, err
	}
	start := time.Now()
	var errs []error
	for page, err := range pages {
		summary.Pages++
		if err != nil {
			summary.Failed++
			errs = append(errs, err)
			continue
		}
		summary.Items += len(page.Items)
		if err := emit(page); err != nil {
			errs = append(errs, err)
			break
		}
	}
	uc.log.Info("Fetch completed",
		slog.Int("pages", summary.Pages),
		slog.Int("items", summary.Items),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", time.Since(start)),
	)
	return summary, errors.Join(errs...)
}
