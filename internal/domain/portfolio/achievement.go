package portfolio

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AchievementType mirrors the backend enum
type AchievementType string

// Achievement types
const (
	AchievementCertification       AchievementType = "CERTIFICATION"
	AchievementAward               AchievementType = "AWARD"
	AchievementCourseCompletion    AchievementType = "COURSE_COMPLETION"
	AchievementLanguageProficiency AchievementType = "LANGUAGE_PROFICIENCY"
	AchievementPresentation        AchievementType = "PRESENTATION"
	AchievementOther               AchievementType = "OTHER"
)

// AchievementTypes lists the selectable types in form order
var AchievementTypes = []AchievementType{
	AchievementCertification,
	AchievementAward,
	AchievementCourseCompletion,
	AchievementLanguageProficiency,
	AchievementPresentation,
	AchievementOther,
}

// Label returns "Course Completion" style text
func (t AchievementType) Label() string {
	if t == "" {
		return ""
	}
	return Humanize(string(t))
}

// Achievement is a certification, award or similar credential
type Achievement struct {
	ID                  int64           `json:"id,omitempty"`
	Title               string          `json:"title"`
	IssuingOrganization string          `json:"issuingOrganization"`
	IssueDate           Date            `json:"issueDate"`
	ExpiryDate          Date            `json:"expiryDate"`
	CredentialID        string          `json:"credentialId,omitempty"`
	CredentialURL       string          `json:"credentialUrl,omitempty"`
	Description         string          `json:"description,omitempty"`
	AchievementType     AchievementType `json:"achievementType,omitempty"`
	BadgeImageURL       string          `json:"badgeImageUrl,omitempty"`
	DisplayOrder        int             `json:"displayOrder"`
	IsFeatured          bool            `json:"isFeatured"`
}

// Key returns the record identifier
func (a Achievement) Key() int64 { return a.ID }

// Featured reports whether the achievement is highlighted
func (a Achievement) Featured() bool { return a.IsFeatured }

// Order returns the display order
func (a Achievement) Order() int { return a.DisplayOrder }

// IsExpired reports whether the credential expired before now. Achievements
// without an expiry date never expire.
func (a Achievement) IsExpired(now time.Time) bool {
	return !a.ExpiryDate.IsZero() && a.ExpiryDate.Time.Before(now)
}

// DefaultAchievement is the starting record of the create form
func DefaultAchievement() Achievement {
	return Achievement{AchievementType: AchievementCertification}
}

// Humanize turns "IN_PROGRESS" or "in_progress" into "In Progress"
func Humanize(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
	return cases.Title(language.English).String(strings.ToLower(s))
}
