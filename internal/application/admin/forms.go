package admin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
)

// Form is a bound admin form that converts to its record type
type Form[T any] interface {
	ToRecord() (T, error)
}

// FieldError reports a form value that passed binding but could not be
// converted
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func parseDate(field, s string) (portfolio.Date, error) {
	d, err := portfolio.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return d, &FieldError{Field: field, Message: "Use the YYYY-MM-DD format"}
	}
	return d, nil
}

func parseDecimal(field, s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, &FieldError{Field: field, Message: "Must be a number"}
	}
	return decimal.NewNullDecimal(d), nil
}

func formatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// lines splits a textarea into trimmed non-empty lines
func lines(s string) []string {
	return portfolio.ParseFeatures(s)
}

// ParseTechnicalSkills reads "Name: Level" lines. A missing or invalid
// level reads as 0.
func ParseTechnicalSkills(s string) portfolio.TechnicalSkills {
	out := portfolio.TechnicalSkills{}
	for _, line := range lines(s) {
		name, level, _ := strings.Cut(line, ":")
		n, _ := strconv.Atoi(strings.TrimSpace(level))
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, portfolio.TechnicalSkill{Name: name, Level: n})
		}
	}
	return out
}

// FormatTechnicalSkills is the inverse of ParseTechnicalSkills
func FormatTechnicalSkills(skills portfolio.TechnicalSkills) string {
	parts := make([]string, 0, len(skills))
	for _, s := range skills {
		parts = append(parts, fmt.Sprintf("%s: %d", s.Name, s.Level))
	}
	return strings.Join(parts, "\n")
}

// ProfileForm is the profile editor
type ProfileForm struct {
	FullName          string `form:"fullName" binding:"required,max=100"`
	Title             string `form:"title" binding:"required,max=100"`
	Email             string `form:"email" binding:"required,email"`
	Phone             string `form:"phone" binding:"max=30"`
	Location          string `form:"location"`
	BirthDate         string `form:"birthDate"`
	BirthPlace        string `form:"birthPlace"`
	Address           string `form:"address" input:"textarea"`
	CurrentAddress    string `form:"currentAddress" input:"textarea"`
	About             string `form:"about" input:"textarea"`
	PersonalStory     string `form:"personalStory" input:"textarea"`
	ProfileImageURL   string `form:"profileImageUrl" binding:"omitempty,url"`
	CVFileURL         string `form:"cvFileUrl" binding:"omitempty,url"`
	YearsExperience   int    `form:"yearsExperience" binding:"min=0"`
	ProjectsCount     int    `form:"projectsCount" binding:"min=0"`
	DegreesCount      int    `form:"degreesCount" binding:"min=0"`
	CertificatesCount int    `form:"certificatesCount" binding:"min=0"`
	LinkedinURL       string `form:"linkedinUrl" binding:"omitempty,url"`
	GithubURL         string `form:"githubUrl" binding:"omitempty,url"`
	WebsiteURL        string `form:"websiteUrl" binding:"omitempty,url"`
	Roles             string `form:"roles" input:"textarea"`
	TopSkills         string `form:"topSkills" input:"textarea"`
	Values            string `form:"values" input:"textarea"`
	ExpertiseAreas    string `form:"expertiseAreas" input:"textarea"`
	TechnicalSkills   string `form:"technicalSkills" input:"textarea"`
	IsActive          bool   `form:"isActive"`
}

// ToRecord converts the form to a Profile
func (f ProfileForm) ToRecord() (portfolio.Profile, error) {
	birth, err := parseDate("birthDate", f.BirthDate)
	if err != nil {
		return portfolio.Profile{}, err
	}
	return portfolio.Profile{
		FullName:          strings.TrimSpace(f.FullName),
		Title:             strings.TrimSpace(f.Title),
		Email:             strings.TrimSpace(f.Email),
		Phone:             strings.TrimSpace(f.Phone),
		Location:          strings.TrimSpace(f.Location),
		BirthDate:         birth,
		BirthPlace:        strings.TrimSpace(f.BirthPlace),
		Address:           f.Address,
		CurrentAddress:    f.CurrentAddress,
		About:             f.About,
		PersonalStory:     f.PersonalStory,
		ProfileImageURL:   strings.TrimSpace(f.ProfileImageURL),
		CVFileURL:         strings.TrimSpace(f.CVFileURL),
		YearsExperience:   f.YearsExperience,
		ProjectsCount:     f.ProjectsCount,
		DegreesCount:      f.DegreesCount,
		CertificatesCount: f.CertificatesCount,
		LinkedinURL:       strings.TrimSpace(f.LinkedinURL),
		GithubURL:         strings.TrimSpace(f.GithubURL),
		WebsiteURL:        strings.TrimSpace(f.WebsiteURL),
		Roles:             lines(f.Roles),
		TopSkills:         lines(f.TopSkills),
		Values:            lines(f.Values),
		ExpertiseAreas:    lines(f.ExpertiseAreas),
		TechnicalSkills:   ParseTechnicalSkills(f.TechnicalSkills),
		IsActive:          f.IsActive,
	}, nil
}

// NewProfileForm fills the form from p
func NewProfileForm(p portfolio.Profile) ProfileForm {
	return ProfileForm{
		FullName:          p.FullName,
		Title:             p.Title,
		Email:             p.Email,
		Phone:             p.Phone,
		Location:          p.Location,
		BirthDate:         p.BirthDate.String(),
		BirthPlace:        p.BirthPlace,
		Address:           p.Address,
		CurrentAddress:    p.CurrentAddress,
		About:             p.About,
		PersonalStory:     p.PersonalStory,
		ProfileImageURL:   p.ProfileImageURL,
		CVFileURL:         p.CVFileURL,
		YearsExperience:   p.YearsExperience,
		ProjectsCount:     p.ProjectsCount,
		DegreesCount:      p.DegreesCount,
		CertificatesCount: p.CertificatesCount,
		LinkedinURL:       p.LinkedinURL,
		GithubURL:         p.GithubURL,
		WebsiteURL:        p.WebsiteURL,
		Roles:             portfolio.FormatFeatures(p.Roles),
		TopSkills:         portfolio.FormatFeatures(p.TopSkills),
		Values:            portfolio.FormatFeatures(p.Values),
		ExpertiseAreas:    portfolio.FormatFeatures(p.ExpertiseAreas),
		TechnicalSkills:   FormatTechnicalSkills(p.TechnicalSkills),
		IsActive:          p.IsActive,
	}
}

// ExperienceForm is the experience editor
type ExperienceForm struct {
	JobTitle         string `form:"jobTitle" binding:"required,max=100"`
	CompanyName      string `form:"companyName" binding:"required,max=100"`
	CompanyLocation  string `form:"companyLocation"`
	StartDate        string `form:"startDate" binding:"required"`
	EndDate          string `form:"endDate"`
	IsCurrent        bool   `form:"isCurrent"`
	Description      string `form:"description" input:"textarea"`
	Responsibilities string `form:"responsibilities" input:"textarea"`
	Achievements     string `form:"achievements" input:"textarea"`
	Technologies     string `form:"technologies"`
	DisplayOrder     int    `form:"displayOrder"`
}

// ToRecord converts the form to an Experience
func (f ExperienceForm) ToRecord() (portfolio.Experience, error) {
	start, err := parseDate("startDate", f.StartDate)
	if err != nil {
		return portfolio.Experience{}, err
	}
	end, err := parseDate("endDate", f.EndDate)
	if err != nil {
		return portfolio.Experience{}, err
	}
	e := portfolio.Experience{
		JobTitle:         strings.TrimSpace(f.JobTitle),
		CompanyName:      strings.TrimSpace(f.CompanyName),
		CompanyLocation:  strings.TrimSpace(f.CompanyLocation),
		StartDate:        start,
		EndDate:          end,
		IsCurrent:        f.IsCurrent,
		Description:      f.Description,
		Responsibilities: f.Responsibilities,
		Achievements:     f.Achievements,
		Technologies:     portfolio.ParseTechnologies(f.Technologies),
		DisplayOrder:     f.DisplayOrder,
	}
	e.Normalize()
	return e, nil
}

// NewExperienceForm fills the form from e
func NewExperienceForm(e portfolio.Experience) ExperienceForm {
	return ExperienceForm{
		JobTitle:         e.JobTitle,
		CompanyName:      e.CompanyName,
		CompanyLocation:  e.CompanyLocation,
		StartDate:        e.StartDate.String(),
		EndDate:          e.EndDate.String(),
		IsCurrent:        e.IsCurrent,
		Description:      e.Description,
		Responsibilities: e.Responsibilities,
		Achievements:     e.Achievements,
		Technologies:     e.Technologies.String(),
		DisplayOrder:     e.DisplayOrder,
	}
}

// EducationForm is the education editor
type EducationForm struct {
	Degree              string `form:"degree" binding:"required,max=100"`
	FieldOfStudy        string `form:"fieldOfStudy"`
	InstitutionName     string `form:"institutionName" binding:"required,max=150"`
	InstitutionLocation string `form:"institutionLocation"`
	StartDate           string `form:"startDate" binding:"required"`
	EndDate             string `form:"endDate"`
	IsCurrent           bool   `form:"isCurrent"`
	GPA                 string `form:"gpa"`
	MaxGPA              string `form:"maxGpa"`
	Description         string `form:"description" input:"textarea"`
	DisplayOrder        int    `form:"displayOrder"`
}

// ToRecord converts the form to an Education
func (f EducationForm) ToRecord() (portfolio.Education, error) {
	var e portfolio.Education
	var err error
	if e.StartDate, err = parseDate("startDate", f.StartDate); err != nil {
		return e, err
	}
	if e.EndDate, err = parseDate("endDate", f.EndDate); err != nil {
		return e, err
	}
	if e.GPA, err = parseDecimal("gpa", f.GPA); err != nil {
		return e, err
	}
	if e.MaxGPA, err = parseDecimal("maxGpa", f.MaxGPA); err != nil {
		return e, err
	}
	if e.GPA.Valid && e.MaxGPA.Valid && e.GPA.Decimal.GreaterThan(e.MaxGPA.Decimal) {
		return e, &FieldError{Field: "gpa", Message: "GPA cannot exceed the maximum GPA"}
	}
	e.Degree = strings.TrimSpace(f.Degree)
	e.FieldOfStudy = strings.TrimSpace(f.FieldOfStudy)
	e.InstitutionName = strings.TrimSpace(f.InstitutionName)
	e.InstitutionLocation = strings.TrimSpace(f.InstitutionLocation)
	e.IsCurrent = f.IsCurrent
	e.Description = f.Description
	e.DisplayOrder = f.DisplayOrder
	e.Normalize()
	return e, nil
}

// NewEducationForm fills the form from e
func NewEducationForm(e portfolio.Education) EducationForm {
	return EducationForm{
		Degree:              e.Degree,
		FieldOfStudy:        e.FieldOfStudy,
		InstitutionName:     e.InstitutionName,
		InstitutionLocation: e.InstitutionLocation,
		StartDate:           e.StartDate.String(),
		EndDate:             e.EndDate.String(),
		IsCurrent:           e.IsCurrent,
		GPA:                 formatDecimal(e.GPA),
		MaxGPA:              formatDecimal(e.MaxGPA),
		Description:         e.Description,
		DisplayOrder:        e.DisplayOrder,
	}
}

// SkillForm is the skill editor
type SkillForm struct {
	SkillName        string `form:"skillName" binding:"required,max=100"`
	SkillCategory    string `form:"skillCategory" binding:"required,max=50"`
	ProficiencyLevel int    `form:"proficiencyLevel" binding:"min=0,max=100"`
	YearsExperience  int    `form:"yearsExperience" binding:"min=0"`
	Description      string `form:"description" input:"textarea"`
	IconURL          string `form:"iconUrl" binding:"omitempty,url"`
	IsFeatured       bool   `form:"isFeatured"`
	DisplayOrder     int    `form:"displayOrder"`
}

// ToRecord converts the form to a Skill
func (f SkillForm) ToRecord() (portfolio.Skill, error) {
	return portfolio.Skill{
		SkillName:        strings.TrimSpace(f.SkillName),
		SkillCategory:    strings.TrimSpace(f.SkillCategory),
		ProficiencyLevel: f.ProficiencyLevel,
		YearsExperience:  f.YearsExperience,
		Description:      f.Description,
		IconURL:          strings.TrimSpace(f.IconURL),
		IsFeatured:       f.IsFeatured,
		DisplayOrder:     f.DisplayOrder,
	}, nil
}

// NewSkillForm fills the form from s
func NewSkillForm(s portfolio.Skill) SkillForm {
	return SkillForm{
		SkillName:        s.SkillName,
		SkillCategory:    s.SkillCategory,
		ProficiencyLevel: s.ProficiencyLevel,
		YearsExperience:  s.YearsExperience,
		Description:      s.Description,
		IconURL:          s.IconURL,
		IsFeatured:       s.IsFeatured,
		DisplayOrder:     s.DisplayOrder,
	}
}

// AchievementForm is the achievement editor
type AchievementForm struct {
	Title               string `form:"title" binding:"required,max=200"`
	IssuingOrganization string `form:"issuingOrganization" binding:"required,max=200"`
	IssueDate           string `form:"issueDate"`
	ExpiryDate          string `form:"expiryDate"`
	CredentialID        string `form:"credentialId"`
	CredentialURL       string `form:"credentialUrl" binding:"omitempty,url"`
	Description         string `form:"description" input:"textarea"`
	AchievementType     string `form:"achievementType" binding:"omitempty,oneof=CERTIFICATION AWARD COURSE_COMPLETION LANGUAGE_PROFICIENCY PRESENTATION OTHER"`
	BadgeImageURL       string `form:"badgeImageUrl" binding:"omitempty,url"`
	DisplayOrder        int    `form:"displayOrder"`
	IsFeatured          bool   `form:"isFeatured"`
}

// ToRecord converts the form to an Achievement
func (f AchievementForm) ToRecord() (portfolio.Achievement, error) {
	issued, err := parseDate("issueDate", f.IssueDate)
	if err != nil {
		return portfolio.Achievement{}, err
	}
	expires, err := parseDate("expiryDate", f.ExpiryDate)
	if err != nil {
		return portfolio.Achievement{}, err
	}
	if !issued.IsZero() && !expires.IsZero() && expires.Before(issued.Time) {
		return portfolio.Achievement{}, &FieldError{Field: "expiryDate", Message: "Expiry date must be after the issue date"}
	}
	kind := portfolio.AchievementType(f.AchievementType)
	if kind == "" {
		kind = portfolio.AchievementCertification
	}
	return portfolio.Achievement{
		Title:               strings.TrimSpace(f.Title),
		IssuingOrganization: strings.TrimSpace(f.IssuingOrganization),
		IssueDate:           issued,
		ExpiryDate:          expires,
		CredentialID:        strings.TrimSpace(f.CredentialID),
		CredentialURL:       strings.TrimSpace(f.CredentialURL),
		Description:         f.Description,
		AchievementType:     kind,
		BadgeImageURL:       strings.TrimSpace(f.BadgeImageURL),
		DisplayOrder:        f.DisplayOrder,
		IsFeatured:          f.IsFeatured,
	}, nil
}

// NewAchievementForm fills the form from a
func NewAchievementForm(a portfolio.Achievement) AchievementForm {
	return AchievementForm{
		Title:               a.Title,
		IssuingOrganization: a.IssuingOrganization,
		IssueDate:           a.IssueDate.String(),
		ExpiryDate:          a.ExpiryDate.String(),
		CredentialID:        a.CredentialID,
		CredentialURL:       a.CredentialURL,
		Description:         a.Description,
		AchievementType:     string(a.AchievementType),
		BadgeImageURL:       a.BadgeImageURL,
		DisplayOrder:        a.DisplayOrder,
		IsFeatured:          a.IsFeatured,
	}
}

// ProjectForm is the project editor. Technologies are comma separated,
// features one per line.
type ProjectForm struct {
	Title                string `form:"title" binding:"required,max=200"`
	Description          string `form:"description" binding:"required" input:"textarea"`
	ShortDescription     string `form:"shortDescription" binding:"max=300"`
	Technologies         string `form:"technologies"`
	Features             string `form:"features" input:"textarea"`
	StartDate            string `form:"startDate"`
	EndDate              string `form:"endDate"`
	ProjectURL           string `form:"projectUrl" binding:"omitempty,url"`
	GithubURL            string `form:"githubUrl" binding:"omitempty,url"`
	DemoURL              string `form:"demoUrl" binding:"omitempty,url"`
	ImageURL             string `form:"imageUrl" binding:"omitempty,url"`
	ClientName           string `form:"clientName"`
	TeamSize             int    `form:"teamSize" binding:"min=0"`
	MyRole               string `form:"myRole"`
	CompletionPercentage int    `form:"completionPercentage" binding:"min=0,max=100"`
	IsFeatured           bool   `form:"isFeatured"`
	DisplayOrder         int    `form:"displayOrder"`
	Status               string `form:"status" binding:"omitempty,oneof=planning in_progress completed on_hold cancelled"`
}

// ToRecord converts the form to a Project. The status is sent in the
// backend's upper-case vocabulary.
func (f ProjectForm) ToRecord() (portfolio.Project, error) {
	start, err := parseDate("startDate", f.StartDate)
	if err != nil {
		return portfolio.Project{}, err
	}
	end, err := parseDate("endDate", f.EndDate)
	if err != nil {
		return portfolio.Project{}, err
	}
	return portfolio.Project{
		Title:                strings.TrimSpace(f.Title),
		Description:          f.Description,
		ShortDescription:     strings.TrimSpace(f.ShortDescription),
		Technologies:         portfolio.ParseTechnologies(f.Technologies),
		Features:             portfolio.ParseFeatures(f.Features),
		StartDate:            start,
		EndDate:              end,
		ProjectURL:           strings.TrimSpace(f.ProjectURL),
		GithubURL:            strings.TrimSpace(f.GithubURL),
		DemoURL:              strings.TrimSpace(f.DemoURL),
		ImageURL:             strings.TrimSpace(f.ImageURL),
		ClientName:           strings.TrimSpace(f.ClientName),
		TeamSize:             f.TeamSize,
		MyRole:               strings.TrimSpace(f.MyRole),
		CompletionPercentage: f.CompletionPercentage,
		IsFeatured:           f.IsFeatured,
		DisplayOrder:         f.DisplayOrder,
		Status:               strings.ToUpper(f.Status),
	}, nil
}

// NewProjectForm fills the form from p, with the status resolved
func NewProjectForm(p portfolio.Project) ProjectForm {
	return ProjectForm{
		Title:                p.Title,
		Description:          p.Description,
		ShortDescription:     p.ShortDescription,
		Technologies:         p.Technologies.String(),
		Features:             p.Features.String(),
		StartDate:            p.StartDate.String(),
		EndDate:              p.EndDate.String(),
		ProjectURL:           p.ProjectURL,
		GithubURL:            p.GithubURL,
		DemoURL:              p.DemoURL,
		ImageURL:             p.ImageURL,
		ClientName:           p.ClientName,
		TeamSize:             p.TeamSize,
		MyRole:               p.MyRole,
		CompletionPercentage: p.CompletionPercentage,
		IsFeatured:           p.IsFeatured,
		DisplayOrder:         p.DisplayOrder,
		Status:               string(p.ResolvedStatus()),
	}
}
