package chunker

// SourcePDF - единственный поддерживаемый источник чанков
const SourcePDF = "pdf"

// Section - титулованный блок CV (Skills, Projects, ...)
type Section struct {
	Title string // Заголовок секции
	Body  string // Текст до следующего заголовка, без самого заголовка
}

// Chunk представляет единицу поиска: одну секцию одного CV
type Chunk struct {
	ID            string // Уникальный идентификатор (hash)
	Content       string // Имя кандидата + текст секции
	ApplicantName string // Первая строка CV
	Section       string // Заголовок секции
	FileName      string // Имя исходного файла
	Source        string // Всегда "pdf"
}

// Splitter - интерфейс для всех стратегий разбиения CV на секции
type Splitter interface {
	// DetectSections разбивает нормализованный текст CV на секции
	DetectSections(text string) []Section

	// Name возвращает название стратегии для логирования
	Name() string
}
