package portfolio

import (
	"strings"
)

// Project is a portfolio project
type Project struct {
	ID                   int64     `json:"id,omitempty"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	ShortDescription     string    `json:"shortDescription,omitempty"`
	Technologies         CommaList `json:"technologies"`
	Features             LineList  `json:"features"`
	StartDate            Date      `json:"startDate"`
	EndDate              Date      `json:"endDate"`
	ProjectURL           string    `json:"projectUrl,omitempty"`
	GithubURL            string    `json:"githubUrl,omitempty"`
	DemoURL              string    `json:"demoUrl,omitempty"`
	ImageURL             string    `json:"imageUrl,omitempty"`
	ClientName           string    `json:"clientName,omitempty"`
	TeamSize             int       `json:"teamSize,omitempty"`
	MyRole               string    `json:"myRole,omitempty"`
	CompletionPercentage int       `json:"completionPercentage"`
	IsFeatured           bool      `json:"isFeatured"`
	DisplayOrder         int       `json:"displayOrder"`
	Status               string    `json:"status,omitempty"`
}

// Key returns the record identifier
func (p Project) Key() int64 { return p.ID }

// Featured reports whether the project is highlighted
func (p Project) Featured() bool { return p.IsFeatured }

// Order returns the display order
func (p Project) Order() int { return p.DisplayOrder }

// ResolvedStatus is the status every view and filter uses
func (p Project) ResolvedStatus() Status {
	return ResolveStatus(p.Status, p.CompletionPercentage)
}

// Matches reports whether the project's title, description or technologies
// contain the query, case-insensitively. An empty query matches everything.
func (p Project) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), q) {
			return true
		}
	}
	return false
}

// DefaultProject is the starting record of the create form
func DefaultProject() Project {
	return Project{
		Technologies: CommaList{},
		Features:     LineList{},
		TeamSize:     1,
		Status:       string(StatusPlanning),
	}
}
