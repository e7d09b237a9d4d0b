package printer

import (
	"bufio"
	"fmt"
	"io"
	"tmenews/internal/domain"
)

// Printer выводит посты в текстовом виде: заголовок, описание (если есть) и пустая строка.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintPage печатает все посты страницы в порядке ленты.
// Посты без заголовка и описания пропускаются.
func (p *Printer) PrintPage(page *domain.Page) error {
	buf := bufio.NewWriter(p.w)
	for _, item := range page.Items {
		if item.Title == "" && item.Description == "" {
			continue
		}
		fmt.Fprintln(buf, item.Title)
		if item.Description != "" {
			fmt.Fprintln(buf, item.Description)
		}
		fmt.Fprintln(buf)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write page %d: %w", page.Index, err)
	}
	return nil
}
