// Package schema defines the structured shape a CV review is requested in.
//
// The shape is declared once as a field tree and rendered both as a *genai.Schema
// (sent to the provider) and as a JSON Schema document (used for local validation).
package schema

import "google.golang.org/genai"

type kind int

const (
	kindObject kind = iota
	kindString
	kindScore
	kindStringList
)

type field struct {
	name        string
	kind        kind
	description string
	required    bool
	children    []field
}

func score(name, description string) field {
	return field{name: name, kind: kindScore, description: description, required: true}
}

func text(name, description string) field {
	return field{name: name, kind: kindString, description: description}
}

func list(name, description string, required bool) field {
	return field{name: name, kind: kindStringList, description: description, required: required}
}

func object(name, description string, required bool, children ...field) field {
	return field{name: name, kind: kindObject, description: description, required: required, children: children}
}

func suggestions(sections ...string) field {
	children := make([]field, 0, len(sections))
	for _, s := range sections {
		children = append(children, text(s, "Concrete suggestion for "+s+"; only when its score is below 80"))
	}
	return object("suggestions", "Improvement suggestions for sections scoring below 80", false, children...)
}

var cvReview = object("", "CV review", true,
	object("completeness", "Whether the CV contains every expected section", true,
		score("personal_info", "Personal information score (0-100)"),
		score("objective", "Career objective / target position score (0-100)"),
		score("experience", "Work or project experience score (0-100)"),
		score("skills", "Knowledge and skills score (0-100)"),
		score("education", "Education and certificates score (0-100)"),
		text("remark", "Remarks on completeness"),
		suggestions("personal_info", "objective", "experience", "skills", "education"),
	),
	object("presentation", "Layout and tone of the document", true,
		score("tidiness", "Tidiness score (0-100)"),
		score("professionalism", "Professionalism score (0-100)"),
		text("remark", "Remarks on presentation"),
		suggestions("tidiness", "professionalism"),
	),
	object("content", "Quality of each subsection's content", true,
		text("personal_info", "Remarks on personal information"),
		score("personal_info_score", "Personal information content score (0-100)"),
		text("experience", "Remarks on work or project experience"),
		score("experience_score", "Experience content score (0-100)"),
		text("skills", "Remarks on skills and knowledge"),
		score("skills_score", "Skills content score (0-100)"),
		text("education", "Remarks on education and certificates"),
		score("education_score", "Education content score (0-100)"),
		suggestions("personal_info", "experience", "skills", "education"),
	),
	text("overall_remark", "Overall remarks about the CV"),
	object("action_plan", "Prioritized improvement actions", true,
		list("priorities", "Actions to take, most important first", true),
		list("other", "Other suggestions", false),
		list("examples", "Concrete examples taken from the CV", false),
	),
	list("strengths", "Notable strengths", false),
	list("weaknesses", "Weaknesses to avoid", false),
	list("skills", "Skills found in the CV", false),
	list("keywords", "Important technology, tool and language keywords in the CV", false),
)

// CVReviewGenAI returns the review shape as a provider response schema.
func CVReviewGenAI() *genai.Schema {
	return toGenAI(cvReview)
}

func toGenAI(f field) *genai.Schema {
	s := &genai.Schema{Description: f.description}
	switch f.kind {
	case kindString:
		s.Type = genai.TypeString
	case kindScore:
		s.Type = genai.TypeInteger
		s.Minimum = genai.Ptr(float64(MinScore))
		s.Maximum = genai.Ptr(float64(MaxScore))
	case kindStringList:
		s.Type = genai.TypeArray
		s.Items = &genai.Schema{Type: genai.TypeString}
	case kindObject:
		s.Type = genai.TypeObject
		s.Properties = make(map[string]*genai.Schema, len(f.children))
		for _, child := range f.children {
			s.Properties[child.name] = toGenAI(child)
			if child.required {
				s.Required = append(s.Required, child.name)
			}
		}
	}
	return s
}
