package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCookies_DefaultTags(t *testing.T) {
	pair := DeriveCookies("abc123", nil)

	assert.Equal(t, "abc123", pair.U)
	assert.Equal(t, "%7B%22tags%22%3A%5B%22newsfeed%22%5D%7D", pair.P)
	assert.Equal(t, "U=abc123; P=%7B%22tags%22%3A%5B%22newsfeed%22%5D%7D", pair.Header())
}

func TestDeriveCookies_Deterministic(t *testing.T) {
	first := DeriveCookies("tok", []string{"newsfeed", "macro"})
	second := DeriveCookies("tok", []string{"newsfeed", "macro"})

	assert.Equal(t, first, second)
	assert.Equal(t, "%7B%22tags%22%3A%5B%22newsfeed%22%2C%22macro%22%5D%7D", first.P)
}

func TestErrors_MessagesAndUnwrap(t *testing.T) {
	cfgErr := &ConfigurationError{Key: "TME_TOKEN", Reason: "not set"}
	assert.Equal(t, "configuration error: TME_TOKEN: not set", cfgErr.Error())

	fetchErr := &FetchError{Page: 3, Err: context.Canceled}
	assert.Equal(t, "fetch page 3: context canceled", fetchErr.Error())
	assert.True(t, errors.Is(fetchErr, context.Canceled))

	inner := errors.New("empty body")
	wrapped := fmt.Errorf("run: %w", &ParseError{Page: 2, Err: inner})
	var parseErr *ParseError
	assert.True(t, errors.As(wrapped, &parseErr))
	assert.Equal(t, 2, parseErr.Page)
	assert.True(t, errors.Is(wrapped, inner))
}
