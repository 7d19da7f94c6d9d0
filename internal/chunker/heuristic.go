package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultKeywords - типовые заголовки CV, порядок важен только для логов
var DefaultKeywords = []string{
	"Profile", "Objective", "Education", "Work experience",
	"Skills", "Projects", "Certifications", "Honors & Awards",
	"References", "Activities", "Interests",
}

var headingLine = regexp.MustCompile(`^[A-Z ]{3,}$`)

// HeuristicSplitter ищет заголовки CV двумя способами:
// сначала строки целиком в верхнем регистре, затем строки-ключевые слова.
// Применяется только одна стратегия на документ.
type HeuristicSplitter struct {
	keywords map[string]struct{}
	logger   *zap.Logger
}

// NewHeuristicSplitter создаёт splitter; пустой список ключевых слов заменяется DefaultKeywords
func NewHeuristicSplitter(logger *zap.Logger, keywords ...string) *HeuristicSplitter {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	return &HeuristicSplitter{keywords: set, logger: logger}
}

func (h *HeuristicSplitter) Name() string {
	return "heuristic"
}

func (h *HeuristicSplitter) DetectSections(text string) []Section {
	lines := splitLines(text)

	sections, preamble := splitAtHeadings(lines, isUpperHeading)
	parts := len(sections)
	if preamble > 0 {
		parts++
	}
	if parts >= 2 {
		h.logger.Debug("sections split by upper-case headings", zap.Int("sections", len(sections)))
		h.logPreamble(preamble)
		return sections
	}

	sections, preamble = splitAtHeadings(lines, h.isKeyword)
	if len(sections) == 0 {
		h.logger.Debug("no headings or keywords found, document yields no sections")
		return nil
	}

	h.logger.Debug("sections split by keywords", zap.Int("sections", len(sections)))
	h.logPreamble(preamble)
	return sections
}

// текст до первого заголовка в выдачу не попадает
func (h *HeuristicSplitter) logPreamble(chars int) {
	if chars > 0 {
		h.logger.Debug("preamble dropped", zap.Int("chars", chars))
	}
}

func isUpperHeading(line string) bool {
	return headingLine.MatchString(line) && strings.TrimSpace(line) != ""
}

func (h *HeuristicSplitter) isKeyword(line string) bool {
	_, ok := h.keywords[line]
	return ok
}

// splitAtHeadings режет строки на секции перед каждой строкой-заголовком.
// Заголовок считается заголовком, только если за ним есть ещё хотя бы одна строка.
// Текст до первого заголовка секцией не становится; возвращается его длина в символах.
func splitAtHeadings(lines []string, isHeading func(string) bool) (sections []Section, preamble int) {
	var body, head []string

	flush := func() {
		if len(sections) > 0 {
			sections[len(sections)-1].Body = strings.TrimSpace(strings.Join(body, "\n"))
		}
		body = body[:0]
	}

	for i, line := range lines {
		if i < len(lines)-1 && isHeading(line) {
			flush()
			sections = append(sections, Section{Title: strings.TrimSpace(line)})
			continue
		}
		if len(sections) == 0 {
			head = append(head, line)
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections, utf8.RuneCountInString(strings.TrimSpace(strings.Join(head, "\n")))
}
