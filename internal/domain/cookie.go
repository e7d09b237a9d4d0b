package domain

import (
	"encoding/json"
	"net/url"
)

// DefaultTags - набор тегов ленты, который ожидает сервер по умолчанию.
var DefaultTags = []string{"newsfeed"}

// CookiePair содержит значения cookie U и P, производные от токена сессии.
type CookiePair struct {
	U string
	P string
}

type tagsPayload struct {
	Tags []string `json:"tags"`
}

// DeriveCookies вычисляет пару cookie из токена.
// U - сам токен, P - URL-экранированный компактный JSON {"tags":[...]}.
func DeriveCookies(token string, tags []string) CookiePair {
	if len(tags) == 0 {
		tags = DefaultTags
	}
	// json.Marshal не может упасть на []string
	payload, _ := json.Marshal(tagsPayload{Tags: tags})
	return CookiePair{
		U: token,
		P: url.QueryEscape(string(payload)),
	}
}

// Header возвращает значение заголовка Cookie.
func (c CookiePair) Header() string {
	return "U=" + c.U + "; P=" + c.P
}
