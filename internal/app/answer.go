package app

import (
	"context"
	"fmt"
	"strings"

	"cv_rag/internal/index"

	"go.uber.org/zap"
)

// NotFoundAnswer - ответ модели, когда в CV нет нужной информации
const NotFoundAnswer = "Không thấy trong CV"

type Answer struct {
	Text    string
	Sources []index.Result
}

// Ask ищет релевантные чанки и делает один вызов модели. Ошибка вызова возвращается как есть.
func (a *App) Ask(ctx context.Context, sess *Session, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if sess == nil || sess.Index == nil {
		return nil, ErrNoSession
	}

	results, err := sess.Index.Retrieve(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	a.logger.Debug("context retrieved", zap.Int("chunks", len(results)))

	text, err := a.completer.Complete(ctx, BuildAnswerPrompt(results, question))
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}

	return &Answer{Text: strings.TrimSpace(text), Sources: results}, nil
}

// BuildAnswerPrompt: контекст из блоков SOURCE, вопрос и фиксированные инструкции
func BuildAnswerPrompt(results []index.Result, question string) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("SOURCE: file=%s; section=%s\n%s", r.Chunk.FileName, r.Chunk.Section, r.Chunk.Content))
	}

	var buf strings.Builder
	buf.WriteString("You are a CV analysis assistant. Based on the following context:\n")
	buf.WriteString(strings.Join(blocks, "\n\n"))
	buf.WriteString("\n\nQuestion: ")
	buf.WriteString(question)
	buf.WriteString("\nRequirements:\n")
	buf.WriteString("- Answer precisely and concisely.\n")
	buf.WriteString("- When searching, match the 'section' together with the 'applicant_name' in the metadata.\n")
	buf.WriteString("- Cite the CV section (SECTION) when possible.\n")
	fmt.Fprintf(&buf, "- If the CV has no such information, answer exactly: '%s'.", NotFoundAnswer)

	return buf.String()
}
