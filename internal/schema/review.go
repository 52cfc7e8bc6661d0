package schema

import (
	"encoding/json"
	"fmt"
)

// CVReview is the typed form of a structured review, for callers that need more
// than the serialized text.
type CVReview struct {
	Completeness  Completeness `json:"completeness"`
	Presentation  Presentation `json:"presentation"`
	Content       Content      `json:"content"`
	OverallRemark string       `json:"overall_remark,omitempty"`
	ActionPlan    ActionPlan   `json:"action_plan"`
	Strengths     []string     `json:"strengths,omitempty"`
	Weaknesses    []string     `json:"weaknesses,omitempty"`
	Skills        []string     `json:"skills,omitempty"`
	Keywords      []string     `json:"keywords,omitempty"`
}

type Completeness struct {
	PersonalInfo int               `json:"personal_info"`
	Objective    int               `json:"objective"`
	Experience   int               `json:"experience"`
	Skills       int               `json:"skills"`
	Education    int               `json:"education"`
	Remark       string            `json:"remark,omitempty"`
	Suggestions  map[string]string `json:"suggestions,omitempty"`
}

type Presentation struct {
	Tidiness        int               `json:"tidiness"`
	Professionalism int               `json:"professionalism"`
	Remark          string            `json:"remark,omitempty"`
	Suggestions     map[string]string `json:"suggestions,omitempty"`
}

type Content struct {
	PersonalInfo      string            `json:"personal_info,omitempty"`
	PersonalInfoScore int               `json:"personal_info_score"`
	Experience        string            `json:"experience,omitempty"`
	ExperienceScore   int               `json:"experience_score"`
	Skills            string            `json:"skills,omitempty"`
	SkillsScore       int               `json:"skills_score"`
	Education         string            `json:"education,omitempty"`
	EducationScore    int               `json:"education_score"`
	Suggestions       map[string]string `json:"suggestions,omitempty"`
}

type ActionPlan struct {
	Priorities []string `json:"priorities"`
	Other      []string `json:"other,omitempty"`
	Examples   []string `json:"examples,omitempty"`
}

// Parse validates and decodes a serialized review.
func Parse(data []byte) (*CVReview, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var review CVReview
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}
	return &review, nil
}
