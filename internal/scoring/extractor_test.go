package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseRequirements(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		status   Status
		skills   []string
		projects []string
	}{
		{
			name:     "embedded in prose",
			raw:      `Sure! Here is the result: {"skills": ["python"], "projects_related": ["nlp"]} Let me know.`,
			status:   StatusParsed,
			skills:   []string{"python"},
			projects: []string{"nlp"},
		},
		{
			name:     "code fence",
			raw:      "```json\n{\"skills\": [\"go\", \" docker \", \"\"], \"projects_related\": []}\n```",
			status:   StatusParsed,
			skills:   []string{"go", "docker"},
			projects: []string{},
		},
		{
			name:     "missing key",
			raw:      `{"skills": ["sql"]}`,
			status:   StatusParsed,
			skills:   []string{"sql"},
			projects: []string{},
		},
		{
			name:     "no json",
			raw:      "I could not find any requirements.",
			status:   StatusDefaulted,
			skills:   []string{},
			projects: []string{},
		},
		{
			name:     "wrong types",
			raw:      `{"skills": "python", "projects_related": [1, 2]}`,
			status:   StatusDefaulted,
			skills:   []string{},
			projects: []string{},
		},
		{
			name:     "broken json",
			raw:      `{"skills": [python]}`,
			status:   StatusDefaulted,
			skills:   []string{},
			projects: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRequirements(tt.raw)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.skills, got.Requirements.Skills)
			assert.Equal(t, tt.projects, got.Requirements.ProjectsRelated)
			if tt.status == StatusDefaulted {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestExtractorExtract(t *testing.T) {
	stub := &stubCompleter{rules: []stubRule{
		{contains: "Backend developer", reply: `{"skills": ["python"], "projects_related": ["nlp"]}`},
	}}
	e := NewExtractor(stub, zap.NewNop(), 100)

	got, err := e.Extract(context.Background(), "Backend developer. Yêu cầu ứng viên: Python")
	require.NoError(t, err)
	assert.Equal(t, StatusParsed, got.Status)
	assert.Equal(t, JobRequirements{Skills: []string{"python"}, ProjectsRelated: []string{"nlp"}}, got.Requirements)

	require.Equal(t, 1, stub.calls())
	assert.Contains(t, stub.prompts[0], "Backend developer")
	assert.Contains(t, stub.prompts[0], `"projects_related"`)
}

func TestExtractorDefaultsOnGarbage(t *testing.T) {
	stub := &stubCompleter{rules: []stubRule{{contains: "", reply: "no idea"}}}
	e := NewExtractor(stub, nil, 100)

	got, err := e.Extract(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, StatusDefaulted, got.Status)
	assert.NotNil(t, got.Requirements.Skills)
	assert.NotNil(t, got.Requirements.ProjectsRelated)
	assert.Empty(t, got.Requirements.Skills)
}

func TestExtractorPropagatesCallFailure(t *testing.T) {
	stub := &stubCompleter{rules: []stubRule{{contains: "", err: errors.New("connection refused")}}}
	e := NewExtractor(stub, nil, 100)

	_, err := e.Extract(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
