package usecase

import (
	"context"
	"io"
	"tmenews/internal/domain"
)

// PageFetcher определяет интерфейс загрузки одной страницы ленты.
// Возвращает io.ReadCloser, который должен быть закрыт после использования.
type PageFetcher interface {
	Fetch(ctx context.Context, cookies domain.CookiePair, req domain.PageRequest) (io.ReadCloser, error)
}

// PageParser определяет интерфейс разбора тела страницы в посты.
type PageParser interface {
	Parse(ctx context.Context, reader io.Reader) (*domain.Page, error)
}
