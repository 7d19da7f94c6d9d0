package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cv_rag/internal/llm"
	"cv_rag/internal/logger"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const requirementsSchema = `{
  "type": "object",
  "properties": {
    "skills": {"type": "array", "items": {"type": "string"}},
    "projects_related": {"type": "array", "items": {"type": "string"}}
  }
}`

var requirementsSchemaLoader = gojsonschema.NewStringLoader(requirementsSchema)

// Extractor разбирает описание вакансии в JobRequirements одним вызовом модели
type Extractor struct {
	llm       llm.Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(completer llm.Completer, log *zap.Logger, maxLogLen int) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{llm: completer, logger: log, maxLogLen: maxLogLen}
}

// Extract возвращает ошибку только если упал сам вызов модели.
// Неразбираемый ответ даёт StatusDefaulted с пустыми списками.
func (e *Extractor) Extract(ctx context.Context, jobDescription string) (Extraction, error) {
	raw, err := e.llm.Complete(ctx, requirementsPrompt(jobDescription))
	if err != nil {
		return Extraction{}, fmt.Errorf("extract requirements: %w", err)
	}

	result := ParseRequirements(raw)
	if result.Status == StatusDefaulted {
		e.logger.Warn("requirements defaulted",
			zap.String("reason", result.Reason),
			zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
		)
	} else {
		e.logger.Info("requirements extracted",
			zap.Int("skills", len(result.Requirements.Skills)),
			zap.Int("projects_related", len(result.Requirements.ProjectsRelated)),
		)
	}

	return result, nil
}

// ParseRequirements достаёт первый JSON-объект из ответа, проверяет его схемой и декодирует
func ParseRequirements(raw string) Extraction {
	object := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if object == "" {
		return defaulted("no JSON object in response")
	}

	result, err := gojsonschema.Validate(requirementsSchemaLoader, gojsonschema.NewStringLoader(object))
	if err != nil {
		return defaulted(fmt.Sprintf("invalid JSON: %v", err))
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return defaulted("schema mismatch: " + strings.Join(msgs, "; "))
	}

	var reqs JobRequirements
	if err := json.Unmarshal([]byte(object), &reqs); err != nil {
		return defaulted(fmt.Sprintf("decode: %v", err))
	}

	return Extraction{
		Requirements: JobRequirements{
			Skills:          cleanItems(reqs.Skills),
			ProjectsRelated: cleanItems(reqs.ProjectsRelated),
		},
		Status: StatusParsed,
	}
}

func defaulted(reason string) Extraction {
	return Extraction{Requirements: emptyRequirements(), Status: StatusDefaulted, Reason: reason}
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
