package dto

type SkillDTO struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	SkillURL    string `json:"skill_url"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority"`
}

// CurrentSkills is a pointer so an absent field can be told apart from an empty list.
type AnalyzeSkillsRequestDTO struct {
	CurrentSkills *[]string `json:"currentSkills"`
}

type AnalyzeSkillsResultDTO struct {
	CurrentSkills []string   `json:"currentSkills"`
	MissingSkills []SkillDTO `json:"missingSkills"`
	TotalMissing  int        `json:"totalMissing"`
}
