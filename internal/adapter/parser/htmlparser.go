package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"tmenews/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// mediaSelector перечисляет узлы, которые удаляются до извлечения текста.
const mediaSelector = "img, picture, figure, svg, source, video"

var (
	errEmptyBody = errors.New("empty response body")
	errNoMarkup  = errors.New("response is not HTML")

	postIDPattern = regexp.MustCompile(`"postId"\s*:\s*"([^"]+)"`)
)

// jsonLD - поля разметки schema.org, которые нас интересуют. image намеренно не читается.
type jsonLD struct {
	Headline    string `json:"headline"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HTMLParser разбирает HTML страницы ленты в список постов.
type HTMLParser struct {
	log *slog.Logger
}

func NewHTMLParser(log *slog.Logger) *HTMLParser {
	return &HTMLParser{
		log: log.With(slog.String("component", "parser")),
	}
}

// Parse читает тело страницы и возвращает посты и курсор следующей страницы.
// Index в результате не заполняется, его выставляет вызывающий код.
func (p *HTMLParser) Parse(ctx context.Context, reader io.Reader) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmptyBody
	}
	if !bytes.ContainsRune(trimmed, '<') {
		return nil, errNoMarkup
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		p.log.Error("Error parsing HTML", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &domain.Page{
		Items:      make([]domain.NewsItem, 0),
		NextCursor: extractCursor(doc, raw),
	}
	seen := make(map[domain.NewsItem]struct{})
	doc.Find("article").Each(func(i int, article *goquery.Selection) {
		item, ok := p.extractItem(article)
		if !ok {
			return
		}
		if _, dup := seen[item]; dup {
			return
		}
		seen[item] = struct{}{}
		page.Items = append(page.Items, item)
	})
	return page, nil
}

// extractItem берет заголовок и описание из JSON-LD статьи, а при его отсутствии -
// из первого заголовка h1..h3 и первого абзаца.
func (p *HTMLParser) extractItem(article *goquery.Selection) (domain.NewsItem, bool) {
	var item domain.NewsItem
	article.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var ld jsonLD
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			p.log.Debug("skipping invalid JSON-LD", slog.Any("error", err))
			return false
		}
		title := ld.Headline
		if title == "" {
			title = ld.Name
		}
		item = domain.NewsItem{
			Title:       cleanText(html.UnescapeString(title)),
			Description: cleanText(html.UnescapeString(ld.Description)),
		}
		return false
	})
	if item.Title != "" || item.Description != "" {
		return item, true
	}

	body := article.Clone()
	body.Find(mediaSelector).Remove()
	body.Find("script, style").Remove()
	for _, heading := range []string{"h1", "h2", "h3"} {
		if h := body.Find(heading).First(); h.Length() > 0 {
			item.Title = cleanText(h.Text())
			break
		}
	}
	item.Description = cleanText(body.Find("p").First().Text())
	return item, item.Title != "" || item.Description != ""
}

// extractCursor ищет id последнего поста: атрибут id у article,
// затем data-post-id, затем "postId" в теле ответа.
func extractCursor(doc *goquery.Document, raw []byte) string {
	cursor := ""
	doc.Find("article[id]").Each(func(i int, s *goquery.Selection) {
		if id := strings.TrimSpace(s.AttrOr("id", "")); id != "" {
			cursor = id
		}
	})
	if cursor != "" {
		return cursor
	}
	if id, ok := doc.Find("[data-post-id]").First().Attr("data-post-id"); ok && id != "" {
		return id
	}
	if m := postIDPattern.FindSubmatch(raw); m != nil {
		return string(m[1])
	}
	return ""
}

// cleanText схлопывает пробельные символы.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
