package domain

import "fmt"

// ConfigurationError сообщает о недостающей или некорректной настройке.
// Возвращается до выполнения любых сетевых запросов.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// FetchError - сбой транспорта или неожиданный HTTP-статус при загрузке страницы.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError - ответ страницы не соответствует ожидаемой структуре.
type ParseError struct {
	Page int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse page %d: %v", e.Page, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
