package chunker

import (
	"strings"

	"cv_rag/internal/document"
)

// BuildChunks превращает секции одного CV в чанки.
// Секции с пустым телом пропускаются.
func BuildChunks(raw document.Raw, sections []Section) []Chunk {
	applicant := document.ApplicantName(raw.Text)

	var chunks []Chunk
	for _, s := range sections {
		body := strings.TrimSpace(s.Body)
		if body == "" {
			continue
		}

		content := applicant + "\n" + body
		chunks = append(chunks, Chunk{
			ID:            ChunkID(raw.FileName, len(chunks), content),
			Content:       content,
			ApplicantName: applicant,
			Section:       s.Title,
			FileName:      raw.FileName,
			Source:        SourcePDF,
		})
	}

	return chunks
}
