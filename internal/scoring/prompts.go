package scoring

import (
	"fmt"
	"strings"
)

func requirementsPrompt(jobDescription string) string {
	var buf strings.Builder

	buf.WriteString("Analyze the following job description and break it down into concrete skills:\n")
	buf.WriteString(jobDescription)
	buf.WriteString("\n\nRequirements:\n")
	buf.WriteString("1. Find the \"candidate requirements\" (Yêu cầu ứng viên) and \"required skills\" (Kỹ năng cần thiết) sections\n")
	buf.WriteString("2. Split the skills into a concrete list (for example: python, pytorch, tensorflow)\n")
	buf.WriteString("3. Return JSON in the format: {\"skills\": [\"skill1\", \"skill2\"], \"projects_related\": [\"project_type1\", \"project_type2\"]}\n")
	buf.WriteString("4. Return only the JSON, no other text")

	return buf.String()
}

func skillsPrompt(cvSkills string, required []string) string {
	return fmt.Sprintf(
		"Compare the skills in the CV with the job requirements:\n"+
			"CV Skills: %s\n"+
			"Required Skills: %s\n\n"+
			"Count the CV skills that match the requirements (each skill = 1 point, at most 5 points).\n"+
			"Return only the score (0-5), no other text.",
		cvSkills, strings.Join(required, ", "),
	)
}

func projectsPrompt(cvProjects string, required []string) string {
	return fmt.Sprintf(
		"Compare the projects in the CV with the job requirements:\n"+
			"CV Projects: %s\n"+
			"Required Project Types: %s\n\n"+
			"Rate how relevant the projects are (each relevant project = 2 points, at most 5 points).\n"+
			"Return only the score (0-5), no other text.",
		cvProjects, strings.Join(required, ", "),
	)
}
