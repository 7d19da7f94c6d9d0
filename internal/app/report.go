package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown рендерит отчёт: требования, таблица рейтинга, детали по каждому CV
func (r *ScoreReport) Markdown() string {
	var buf strings.Builder

	buf.WriteString("# CV ranking\n\n")
	fmt.Fprintf(&buf, "**Generated:** %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	buf.WriteString("## Job requirements\n\n")
	reqs := r.Extraction.Requirements
	fmt.Fprintf(&buf, "- Skills: %s\n", joinOrNone(reqs.Skills))
	fmt.Fprintf(&buf, "- Related projects: %s\n", joinOrNone(reqs.ProjectsRelated))
	fmt.Fprintf(&buf, "- Parse status: %s", r.Extraction.Status)
	if r.Extraction.Reason != "" {
		fmt.Fprintf(&buf, " (%s)", r.Extraction.Reason)
	}
	buf.WriteString("\n\n")

	buf.WriteString("## Ranking\n\n")
	buf.WriteString("| # | Applicant | File | Skills (5) | Projects (5) | Total (10) |\n")
	buf.WriteString("|---|---|---|---|---|---|\n")
	for i, s := range r.Ranked {
		fmt.Fprintf(&buf, "| %d | %s | %s | %.1f | %.1f | %.1f |\n",
			i+1, escapeCell(s.ApplicantName), escapeCell(s.FileName), s.SkillsScore, s.ProjectsScore, s.TotalScore)
	}
	buf.WriteString("\n")

	var warned bool
	for _, s := range r.Ranked {
		if len(s.Warnings) == 0 {
			continue
		}
		if !warned {
			buf.WriteString("## Warnings\n\n")
			warned = true
		}
		for _, w := range s.Warnings {
			fmt.Fprintf(&buf, "- %s: %s\n", s.FileName, w)
		}
	}
	if warned {
		buf.WriteString("\n")
	}

	return buf.String()
}

// HTML рендерит Markdown-отчёт через goldmark с таблицами GFM
func (r *ScoreReport) HTML() (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &body); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>CV ranking</title></head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.String(), nil
}

// WriteFile сохраняет отчёт; .html и .htm пишутся как HTML, остальное как Markdown
func (r *ScoreReport) WriteFile(path string) error {
	content := r.Markdown()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		html, err := r.HTML()
		if err != nil {
			return err
		}
		content = html
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
