// Package knowledge models the backend-extracted knowledge base of a user's
// career facts and the single-path editing session over it.
//
// The knowledge base is semi-structured: the backend is free to omit any
// facet, and may attach facets this client does not know about. Known
// facets are typed for rendering; everything else survives a round trip
// untouched.
package knowledge

import "encoding/json"

// Project is one project entry under a career.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Role         string   `json:"role,omitempty"`
}

// Career is one work-history entry.
type Career struct {
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Duration    string    `json:"duration"`
	Description string    `json:"description,omitempty"`
	Projects    []Project `json:"projects,omitempty"`
}

// Education is one education-history entry.
type Education struct {
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Major       string  `json:"major"`
	Duration    string  `json:"duration"`
	GPA         float64 `json:"gpa,omitempty"`
}

// KnowledgeBase holds the known facets plus a passthrough for facets the
// client does not model. Every facet is optional.
type KnowledgeBase struct {
	PersonalInfo map[string]string
	Careers      []Career
	Skills       []string
	Education    []Education

	// Extra preserves facets outside the four the client renders
	// (certifications, awards, languages, ...) so a root-path edit does
	// not silently drop them.
	Extra map[string]json.RawMessage
}

// Facet names the client renders.
const (
	facetPersonalInfo = "personal_info"
	facetCareers      = "careers"
	facetSkills       = "skills"
	facetEducation    = "education"
)

// Parse decodes a knowledge-base payload. A facet that fails to decode into
// its known shape is kept in Extra rather than failing the whole record, so
// one malformed facet cannot blank out the rest of the view.
func Parse(raw json.RawMessage) (*KnowledgeBase, error) {
	if len(raw) == 0 {
		return &KnowledgeBase{}, nil
	}

	var facets map[string]json.RawMessage
	if err := json.Unmarshal(raw, &facets); err != nil {
		return nil, err
	}

	kb := &KnowledgeBase{}
	for name, value := range facets {
		switch name {
		case facetPersonalInfo:
			var info map[string]string
			if json.Unmarshal(value, &info) == nil {
				kb.PersonalInfo = info
				continue
			}
		case facetCareers:
			var careers []Career
			if json.Unmarshal(value, &careers) == nil {
				kb.Careers = careers
				continue
			}
		case facetSkills:
			var skills []string
			if json.Unmarshal(value, &skills) == nil {
				kb.Skills = skills
				continue
			}
		case facetEducation:
			var education []Education
			if json.Unmarshal(value, &education) == nil {
				kb.Education = education
				continue
			}
		}
		if kb.Extra == nil {
			kb.Extra = map[string]json.RawMessage{}
		}
		kb.Extra[name] = value
	}
	return kb, nil
}

// MarshalJSON reassembles the facet map, emitting only facets that are
// present so an absent facet stays absent server-side.
func (kb *KnowledgeBase) MarshalJSON() ([]byte, error) {
	facets := map[string]any{}
	if kb.PersonalInfo != nil {
		facets[facetPersonalInfo] = kb.PersonalInfo
	}
	if kb.Careers != nil {
		facets[facetCareers] = kb.Careers
	}
	if kb.Skills != nil {
		facets[facetSkills] = kb.Skills
	}
	if kb.Education != nil {
		facets[facetEducation] = kb.Education
	}
	for name, value := range kb.Extra {
		facets[name] = value
	}
	return json.Marshal(facets)
}
