// Package api holds the request and response bodies of the omakase HTTP API.
package api

// OpenSessionRequest открывает (или возвращает уже открытую) сессию пользователя
type OpenSessionRequest struct {
	User string `json:"user"` // имя пользователя
}

// SelectDeckRequest выбирает колоду
type SelectDeckRequest struct {
	Deck string `json:"deck"`
}

// SetFilterRequest задает фильтр выбранной колоды по его метке
type SetFilterRequest struct {
	Filter string `json:"filter"` // например "new cards"
}

// SelectCardRequest выбирает карточку по индексу, -1 снимает выбор
type SelectCardRequest struct {
	Index int `json:"index"`
}

// SetFieldRequest задает текст поля заметки выбранной карточки
type SetFieldRequest struct {
	Value string `json:"value"`
}

// FilterInfo describes one deck filter.
type FilterInfo struct {
	Label string `json:"label"`
	Code  int    `json:"code"`
}
