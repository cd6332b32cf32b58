package portfolio

// Experience is one job on the timeline
type Experience struct {
	ID               int64     `json:"id,omitempty"`
	JobTitle         string    `json:"jobTitle"`
	CompanyName      string    `json:"companyName"`
	CompanyLocation  string    `json:"companyLocation,omitempty"`
	StartDate        Date      `json:"startDate"`
	EndDate          Date      `json:"endDate"`
	IsCurrent        bool      `json:"isCurrent"`
	Description      string    `json:"description,omitempty"`
	Responsibilities string    `json:"responsibilities,omitempty"`
	Achievements     string    `json:"achievements,omitempty"`
	Technologies     CommaList `json:"technologies"`
	TechnologiesUsed string    `json:"technologiesUsed,omitempty"`
	KeyAchievements  string    `json:"keyAchievements,omitempty"`
	DisplayOrder     int       `json:"displayOrder"`
	ProfileID        int64     `json:"profileId,omitempty"`
}

// Key returns the record identifier
func (e Experience) Key() int64 { return e.ID }

// Order returns the display order
func (e Experience) Order() int { return e.DisplayOrder }

// Normalize clears the end date of a current position
func (e *Experience) Normalize() {
	if e.IsCurrent {
		e.EndDate = Date{}
	}
}

// Period renders "Jan 2020 - Present" style ranges
func (e Experience) Period() string {
	return period(e.StartDate, e.EndDate, e.IsCurrent)
}

// DefaultExperience is the starting record of the create form
func DefaultExperience() Experience {
	return Experience{Technologies: CommaList{}}
}

func period(start, end Date, current bool) string {
	to := end.Display()
	if current {
		to = "Present"
	}
	switch {
	case start.IsZero() && to == "":
		return ""
	case start.IsZero():
		return to
	case to == "":
		return start.Display()
	}
	return start.Display() + " - " + to
}
