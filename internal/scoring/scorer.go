package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"cv_rag/internal/chunker"
	"cv_rag/internal/llm"
	"cv_rag/internal/logger"

	"go.uber.org/zap"
)

var (
	skillsTitleKeywords   = []string{"skill", "kỹ năng", "technical", "competence"}
	projectsTitleKeywords = []string{"project", "dự án", "experience", "kinh nghiệm"}

	firstInteger = regexp.MustCompile(`\p{Nd}+`)
)

// Scorer сравнивает секции навыков и проектов CV с требованиями вакансии
type Scorer struct {
	llm       llm.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(completer llm.Completer, log *zap.Logger, maxLogLen int) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{llm: completer, logger: log, maxLogLen: maxLogLen}
}

// Score делает до двух вызовов модели, по одному на навыки и проекты.
// Ошибка вызова не прерывает оценку: подоценка становится 0, причина попадает в Warnings.
func (s *Scorer) Score(ctx context.Context, applicant, fileName string, sections []chunker.Section, reqs JobRequirements) CVScore {
	score := CVScore{ApplicantName: applicant, FileName: fileName}

	skills, projects := findScoredSections(sections)

	if strings.TrimSpace(skills) != "" && len(reqs.Skills) > 0 {
		score.SkillsScore = s.subScore(ctx, &score, "skills", skillsPrompt(skills, reqs.Skills))
	}
	if strings.TrimSpace(projects) != "" && len(reqs.ProjectsRelated) > 0 {
		score.ProjectsScore = s.subScore(ctx, &score, "projects", projectsPrompt(projects, reqs.ProjectsRelated))
	}

	score.TotalScore = score.SkillsScore + score.ProjectsScore

	s.logger.Info("cv scored",
		zap.String("applicant", applicant),
		zap.String("file", fileName),
		zap.Float64("skills", score.SkillsScore),
		zap.Float64("projects", score.ProjectsScore),
		zap.Float64("total", score.TotalScore),
	)

	return score
}

func (s *Scorer) subScore(ctx context.Context, score *CVScore, kind, prompt string) float64 {
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("scoring call failed",
			zap.String("kind", kind),
			zap.String("file", score.FileName),
			zap.Error(err),
		)
		score.Warnings = append(score.Warnings, fmt.Sprintf("%s score defaulted to 0: %v", kind, err))
		return 0
	}

	value := ParseScore(raw)
	s.logger.Debug("sub-score parsed",
		zap.String("kind", kind),
		zap.Float64("value", value),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)
	return value
}

// findScoredSections: при нескольких подходящих заголовках побеждает последний.
// Заголовок, подходящий под навыки, в проекты уже не попадает.
func findScoredSections(sections []chunker.Section) (skills, projects string) {
	for _, sec := range sections {
		title := strings.ToLower(sec.Title)
		switch {
		case containsAny(title, skillsTitleKeywords):
			skills = sec.Body
		case containsAny(title, projectsTitleKeywords):
			projects = sec.Body
		}
	}
	return skills, projects
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ParseScore берёт первое целое из ответа и зажимает в [0,5]; нет числа - 0
func ParseScore(raw string) float64 {
	match := firstInteger.FindString(raw)
	if match == "" {
		return 0
	}

	var n float64
	for _, r := range match {
		n = n*10 + float64(digitValue(r))
		if n > maxSubScore {
			return maxSubScore
		}
	}
	return n
}

// digitValue - значение десятичной цифры любой письменности (٣, ５, 3).
// Каждый диапазон в unicode.Nd начинается с нуля и состоит из целых блоков по 10 цифр.
func digitValue(r rune) int {
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	return 0
}
