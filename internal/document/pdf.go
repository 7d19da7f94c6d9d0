package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFExtractor достаёт текст постранично через ledongthuc/pdf
type PDFExtractor struct {
	logger *zap.Logger
}

func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract возвращает текст всех страниц по порядку, каждая страница заканчивается переводом строки
func (e *PDFExtractor) Extract(ctx context.Context, file File) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	defer func() {
		// ledongthuc/pdf паникует на битых потоках
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf %s: %v", file.Name, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", file.Name, err)
	}

	var buf strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d of %s: %w", i, file.Name, err)
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}

	e.logger.Debug("pdf extracted",
		zap.String("file", file.Name),
		zap.Int("pages", pages),
		zap.Int("chars", buf.Len()),
		zap.Duration("took", time.Since(start)),
	)

	return buf.String(), nil
}
