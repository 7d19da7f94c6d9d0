package app

import (
	"context"
	"strings"
	"time"

	"cv_rag/internal/scoring"

	"go.uber.org/zap"
)

// ScoreReport - извлечённые требования и отсортированные оценки
type ScoreReport struct {
	Extraction  scoring.Extraction
	Ranked      []scoring.CVScore
	GeneratedAt time.Time
}

// Score извлекает требования один раз, затем оценивает CV по очереди и ранжирует.
// Ошибку возвращает только вызов извлечения требований.
func (a *App) Score(ctx context.Context, cvs []CV, jobDescription string) (*ScoreReport, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	if len(cvs) == 0 {
		return nil, ErrNoSession
	}

	extraction, err := a.requirements.Extract(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	scores := make([]scoring.CVScore, 0, len(cvs))
	for _, cv := range cvs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scores = append(scores, a.scorer.Score(ctx, cv.Applicant(), cv.Raw.FileName, cv.Sections, extraction.Requirements))
	}

	ranked := scoring.Rank(scores)
	if len(ranked) > 0 {
		a.logger.Info("cvs ranked",
			zap.Int("count", len(ranked)),
			zap.String("top", ranked[0].ApplicantName),
			zap.Float64("top_score", ranked[0].TotalScore),
		)
	}

	return &ScoreReport{Extraction: extraction, Ranked: ranked, GeneratedAt: time.Now()}, nil
}
