package document

import (
	"context"
	"strings"
)

// File - загруженный файл: имя и содержимое
type File struct {
	Name string
	Data []byte
}

// Raw - текст CV после извлечения и нормализации
type Raw struct {
	Text     string
	FileName string
}

// Extractor извлекает plain text из загруженного файла
type Extractor interface {
	Extract(ctx context.Context, file File) (string, error)
}

// ApplicantName возвращает первую строку CV - она же имя кандидата
func ApplicantName(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
