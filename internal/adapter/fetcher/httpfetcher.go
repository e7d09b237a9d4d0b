package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"tmenews/internal/domain"
)

const (
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	// maxPageBytes ограничивает тело ответа одной страницы.
	maxPageBytes = 8 << 20
)

// ErrPageTooLarge возвращается при чтении тела, превысившего лимит страницы.
var ErrPageTooLarge = errors.New("page body exceeds size limit")

// HTTPFetcher загружает страницы ленты The Market Ear по HTTP.
// Для каждой страницы выполняется ровно один GET с cookie сессии.
type HTTPFetcher struct {
	client    *http.Client
	maxBytes  int64
	feedURL   string
	userAgent string
	log       *slog.Logger
}

// NewHTTPFetcher создает загрузчик для ленты по адресу feedURL.
// timeout применяется к каждому запросу целиком; 0 означает без ограничения.
func NewHTTPFetcher(feedURL, userAgent string, timeout time.Duration, log *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		maxBytes:  maxPageBytes,
		feedURL:   feedURL,
		userAgent: userAgent,
		log:       log.With(slog.String("component", "fetcher")),
	}
}

// PageURL возвращает адрес страницы: ?page=<index>, и &postId=<cursor>, если курсор известен.
func (f *HTTPFetcher) PageURL(req domain.PageRequest) (string, error) {
	u, err := url.Parse(f.feedURL)
	if err != nil {
		return "", fmt.Errorf("invalid feed url %s: %w", f.feedURL, err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(req.Index))
	if req.Cursor != "" {
		q.Set("postId", req.Cursor)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch выполняет запрос страницы и возвращает ее тело, которое нужно закрыть.
// Любой ответ вне диапазона 2xx считается ошибкой. Чтение тела сверх лимита
// завершается ErrPageTooLarge, а не обрезает страницу.
func (f *HTTPFetcher) Fetch(ctx context.Context, cookies domain.CookiePair, req domain.PageRequest) (io.ReadCloser, error) {
	pageURL, err := f.PageURL(req)
	if err != nil {
		return nil, err
	}
	log := f.log.With(slog.Int("page", req.Index), slog.String("url", pageURL))
	log.Debug("Fetching page")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request for url %s: %w", pageURL, err)
	}
	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept", acceptHTML)
	httpReq.Header.Set("Cookie", cookies.Header())

	resp, err := f.client.Do(httpReq)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch url %s: %w", pageURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		log.Error("Unexpected status code", slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("unexpected status code: %d for url %s", resp.StatusCode, pageURL)
	}
	log.Debug("Page fetched", slog.Int("status_code", resp.StatusCode))
	return &limitedBody{
		r:         io.LimitReader(resp.Body, f.maxBytes+1),
		Closer:    resp.Body,
		remaining: f.maxBytes,
		url:       pageURL,
	}, nil
}

// limitedBody читает не больше remaining байт; лишний байт означает превышение лимита.
type limitedBody struct {
	r io.Reader
	io.Closer
	remaining int64
	url       string
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if int64(n) > b.remaining {
		n = int(b.remaining)
		b.remaining = 0
		return n, fmt.Errorf("%w: url %s", ErrPageTooLarge, b.url)
	}
	b.remaining -= int64(n)
	return n, err
}
