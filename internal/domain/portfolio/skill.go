package portfolio

// Skill is a single skill with a 0-100 proficiency
type Skill struct {
	ID               int64  `json:"id,omitempty"`
	SkillName        string `json:"skillName"`
	SkillCategory    string `json:"skillCategory"`
	ProficiencyLevel int    `json:"proficiencyLevel"`
	YearsExperience  int    `json:"yearsExperience"`
	Description      string `json:"description,omitempty"`
	IconURL          string `json:"iconUrl,omitempty"`
	IsFeatured       bool   `json:"isFeatured"`
	DisplayOrder     int    `json:"displayOrder"`
}

// Key returns the record identifier
func (s Skill) Key() int64 { return s.ID }

// Featured reports whether the skill is highlighted
func (s Skill) Featured() bool { return s.IsFeatured }

// Order returns the display order
func (s Skill) Order() int { return s.DisplayOrder }

// Stars maps the 0-100 proficiency to a 1-5 rating. Values of 5 or less
// are taken as already being on the 1-5 scale.
func (s Skill) Stars() int {
	level := s.ProficiencyLevel
	switch {
	case level <= 0:
		return 1
	case level <= 5:
		return level
	case level >= 100:
		return 5
	}
	stars := (level + 19) / 20
	if stars < 1 {
		stars = 1
	}
	return stars
}

// DefaultSkill is the starting record of the create form
func DefaultSkill() Skill {
	return Skill{ProficiencyLevel: 50}
}
