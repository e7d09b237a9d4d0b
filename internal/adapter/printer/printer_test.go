package printer

import (
	"bytes"
	"errors"
	"testing"
	"tmenews/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_PrintPage(t *testing.T) {
	var out bytes.Buffer
	page := &domain.Page{Index: 1, Items: []domain.NewsItem{
		{Title: "Fed holds rates", Description: "No change announced"},
		{Title: "Title only"},
		{},
		{Title: "Tech rally", Description: "Stocks up 2%"},
	}}

	require.NoError(t, New(&out).PrintPage(page))

	want := "Fed holds rates\nNo change announced\n\n" +
		"Title only\n\n" +
		"Tech rally\nStocks up 2%\n\n"
	assert.Equal(t, want, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrinter_PrintPage_WriteError(t *testing.T) {
	page := &domain.Page{Index: 4, Items: []domain.NewsItem{{Title: "x"}}}

	err := New(failingWriter{}).PrintPage(page)

	assert.ErrorContains(t, err, "failed to write page 4")
}
