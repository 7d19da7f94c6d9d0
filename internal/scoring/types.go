package scoring

// JobRequirements - требования вакансии, извлечённые моделью
type JobRequirements struct {
	Skills          []string `json:"skills"`
	ProjectsRelated []string `json:"projects_related"`
}

// Status показывает, удалось ли разобрать ответ модели
type Status string

const (
	StatusParsed    Status = "parsed"
	StatusDefaulted Status = "defaulted"
)

// Extraction - результат разбора: либо Parsed с требованиями, либо Defaulted с пустыми списками и причиной
type Extraction struct {
	Requirements JobRequirements
	Status       Status
	Reason       string
}

// CVScore - оценка одного CV: по 0..5 за навыки и проекты, всего 0..10
type CVScore struct {
	ApplicantName string
	FileName      string
	SkillsScore   float64
	ProjectsScore float64
	TotalScore    float64
	Warnings      []string
}

const maxSubScore = 5.0

func emptyRequirements() JobRequirements {
	return JobRequirements{Skills: []string{}, ProjectsRelated: []string{}}
}
