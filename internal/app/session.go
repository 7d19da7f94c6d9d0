package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cv_rag/internal/chunker"
	"cv_rag/internal/document"
	"cv_rag/internal/index"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CV - извлечённый текст и его секции
type CV struct {
	Raw      document.Raw
	Sections []chunker.Section
}

// Applicant возвращает имя кандидата, а для пустого CV - имя файла
func (cv CV) Applicant() string {
	if name := document.ApplicantName(cv.Raw.Text); name != "" {
		return name
	}
	return cv.Raw.FileName
}

// Session - состояние одного набора загруженных CV. Пересоздаётся целиком при смене содержимого.
type Session struct {
	ID        uuid.UUID
	Hash      string
	CVs       []CV
	Chunks    []chunker.Chunk
	Index     *index.Hybrid
	CreatedAt time.Time
}

// Age - сколько прошло с построения индекса
func (s *Session) Age() time.Duration {
	return time.Since(s.CreatedAt).Round(time.Second)
}

// LoadFiles читает CV с диска
func LoadFiles(paths []string) ([]document.File, error) {
	files := make([]document.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		files = append(files, document.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// Ingest извлекает, нормализует и режет на секции каждый файл.
// Битый или пустой PDF даёт CV без текста и секций.
func (a *App) Ingest(ctx context.Context, files []document.File) []CV {
	cvs := make([]CV, 0, len(files))
	for _, f := range files {
		text, err := a.extractor.Extract(ctx, f)
		if err != nil {
			a.logger.Warn("text extraction failed, continuing with empty text",
				zap.String("file", f.Name),
				zap.Error(err),
			)
			text = ""
		}

		raw := document.Raw{Text: document.Normalize(text), FileName: f.Name}
		sections := a.splitter.DetectSections(raw.Text)

		a.logger.Debug("cv ingested",
			zap.String("file", f.Name),
			zap.Int("chars", len(raw.Text)),
			zap.Int("sections", len(sections)),
		)

		cvs = append(cvs, CV{Raw: raw, Sections: sections})
	}
	return cvs
}

// Prepare возвращает prev, если набор файлов не изменился, иначе строит новую сессию
func (a *App) Prepare(ctx context.Context, prev *Session, files []document.File) (*Session, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	hash := document.FileSetHash(files)
	if prev != nil && prev.Index != nil && prev.Hash == hash {
		a.logger.Info("file set unchanged, reusing index",
			zap.String("session", prev.ID.String()),
			zap.Int("chunks", len(prev.Chunks)),
			zap.Duration("age", prev.Age()),
		)
		return prev, nil
	}

	start := time.Now()
	cvs := a.Ingest(ctx, files)

	var chunks []chunker.Chunk
	for _, cv := range cvs {
		built := chunker.BuildChunks(cv.Raw, cv.Sections)
		if len(built) == 0 {
			a.logger.Warn("cv produced no chunks and is invisible to retrieval",
				zap.String("file", cv.Raw.FileName),
				zap.String("strategy", a.splitter.Name()),
			)
		}
		chunks = append(chunks, built...)
	}

	idx, err := index.Build(ctx, chunks, a.embedder, a.indexOptions(), a.logger.Named("index"))
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	sess := &Session{
		ID:        uuid.New(),
		Hash:      hash,
		CVs:       cvs,
		Chunks:    chunks,
		Index:     idx,
		CreatedAt: time.Now(),
	}

	a.logger.Info("session ready",
		zap.String("session", sess.ID.String()),
		zap.Int("cvs", len(cvs)),
		zap.Int("chunks", len(chunks)),
		zap.Duration("took", time.Since(start)),
	)

	return sess, nil
}
