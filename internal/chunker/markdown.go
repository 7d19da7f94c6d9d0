package chunker

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"
)

// MarkdownSplitter режет CV, свёрстанное с markdown-заголовками (# Skills, ## Projects).
// Если заголовков нет, отдаёт работу эвристике.
type MarkdownSplitter struct {
	fallback Splitter
	logger   *zap.Logger
}

// NewMarkdownSplitter создаёт новый markdown splitter
func NewMarkdownSplitter(fallback Splitter, logger *zap.Logger) *MarkdownSplitter {
	return &MarkdownSplitter{fallback: fallback, logger: logger}
}

func (m *MarkdownSplitter) Name() string {
	return "markdown"
}

func (m *MarkdownSplitter) DetectSections(content string) []Section {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var sections []Section
	var body strings.Builder

	flush := func() {
		if len(sections) > 0 {
			sections[len(sections)-1].Body = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Heading:
			if entering {
				flush()
				sections = append(sections, Section{Title: strings.TrimSpace(extractText(node, source))})
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering && len(sections) > 0 {
				body.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					body.WriteString("\n")
				}
			}
		case *ast.String:
			if entering && len(sections) > 0 {
				body.Write(node.Value)
			}
		case *ast.Paragraph, *ast.TextBlock:
			if !entering && len(sections) > 0 {
				body.WriteString("\n")
			}
		}
		return ast.WalkContinue, nil
	})
	flush()

	if len(sections) == 0 {
		m.logger.Debug("no markdown headings, falling back", zap.String("fallback", m.fallback.Name()))
		return m.fallback.DetectSections(content)
	}

	m.logger.Debug("sections split by markdown headings", zap.Int("sections", len(sections)))
	return sections
}

// extractText извлекает текст из узла AST
func extractText(node ast.Node, source []byte) string {
	var buf strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		default:
			buf.WriteString(extractText(child, source))
		}
	}
	return buf.String()
}
