package portfolio

import "github.com/shopspring/decimal"

// Education is one degree or programme
type Education struct {
	ID                  int64               `json:"id,omitempty"`
	Degree              string              `json:"degree"`
	FieldOfStudy        string              `json:"fieldOfStudy,omitempty"`
	InstitutionName     string              `json:"institutionName"`
	InstitutionLocation string              `json:"institutionLocation,omitempty"`
	StartDate           Date                `json:"startDate"`
	EndDate             Date                `json:"endDate"`
	IsCurrent           bool                `json:"isCurrent"`
	GPA                 decimal.NullDecimal `json:"gpa"`
	MaxGPA              decimal.NullDecimal `json:"maxGpa"`
	Description         string              `json:"description,omitempty"`
	DisplayOrder        int                 `json:"displayOrder"`
}

// Key returns the record identifier
func (e Education) Key() int64 { return e.ID }

// Order returns the display order
func (e Education) Order() int { return e.DisplayOrder }

// Normalize clears the end date of an ongoing programme
func (e *Education) Normalize() {
	if e.IsCurrent {
		e.EndDate = Date{}
	}
}

// Period renders the study period
func (e Education) Period() string {
	return period(e.StartDate, e.EndDate, e.IsCurrent)
}

// GPADisplay renders "3.75 / 4.00", or "" when no GPA is recorded
func (e Education) GPADisplay() string {
	if !e.GPA.Valid {
		return ""
	}
	if !e.MaxGPA.Valid || e.MaxGPA.Decimal.IsZero() {
		return e.GPA.Decimal.StringFixed(2)
	}
	return e.GPA.Decimal.StringFixed(2) + " / " + e.MaxGPA.Decimal.StringFixed(2)
}

// DefaultEducation is the starting record of the create form
func DefaultEducation() Education {
	return Education{
		MaxGPA: decimal.NewNullDecimal(decimal.NewFromInt(4)),
	}
}
