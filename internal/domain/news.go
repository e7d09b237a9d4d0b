package domain

// NewsItem представляет отдельный пост из ленты The Market Ear.
// Содержит только текст: изображения при разборе отбрасываются.
type NewsItem struct {
	Title       string
	Description string
}

// PageRequest описывает запрос одной страницы ленты.
// Index начинается с 1, Cursor - id последнего поста предыдущей страницы (может быть пустым).
type PageRequest struct {
	Index  int
	Cursor string
}

// Page представляет разобранную страницу ленты с постами в порядке ленты.
type Page struct {
	Index      int
	Items      []NewsItem
	NextCursor string
}
