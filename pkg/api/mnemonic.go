package api

// SchemaInfo describes a mnemonic schema of the catalog.
type SchemaInfo struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Help        string   `json:"help"`       // markdown
	Parameters  []string `json:"parameters"` // одномерные параметры, привязываемые к полям
}

// SetAssociationsRequest привязывает параметры схемы к полям заметки.
// Пустая строка снимает привязку. GenerationOutput == nil оставляет поле вывода как есть.
type SetAssociationsRequest struct {
	Parameters       map[string]string `json:"parameters"`
	GenerationOutput *string           `json:"generation_output,omitempty"`
}

// PromptRequest содержит значения параметров, перекрывающие значения из карточки.
// Значения: строка, объект строк или объект объектов строк.
type PromptRequest struct {
	Params map[string]any `json:"params"`
}

// PromptResponse содержит отрисованный промпт
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// OutputRequest содержит сгенерированный текст для поля вывода
type OutputRequest struct {
	Text string `json:"text"`
}

// RowRequest содержит значения одной строки секции
type RowRequest struct {
	Values []string `json:"values"`
}

// RowResponse содержит запомненную строку
type RowResponse struct {
	Values []string `json:"values,omitempty"`
	Found  bool     `json:"found"`
}
