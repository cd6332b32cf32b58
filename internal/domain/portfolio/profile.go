package portfolio

// Profile is the portfolio owner's public profile. The list fields are kept
// typed here; their JSON string column encoding lives in the list types.
type Profile struct {
	ID                int64           `json:"id,omitempty"`
	FullName          string          `json:"fullName"`
	Title             string          `json:"title"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone,omitempty"`
	Location          string          `json:"location,omitempty"`
	BirthDate         Date            `json:"birthDate"`
	BirthPlace        string          `json:"birthPlace,omitempty"`
	Address           string          `json:"address,omitempty"`
	CurrentAddress    string          `json:"currentAddress,omitempty"`
	About             string          `json:"about,omitempty"`
	PersonalStory     string          `json:"personalStory,omitempty"`
	ProfileImageURL   string          `json:"profileImageUrl,omitempty"`
	CVFileURL         string          `json:"cvFileUrl,omitempty"`
	YearsExperience   int             `json:"yearsExperience"`
	ProjectsCount     int             `json:"projectsCount"`
	DegreesCount      int             `json:"degreesCount"`
	CertificatesCount int             `json:"certificatesCount"`
	LinkedinURL       string          `json:"linkedinUrl,omitempty"`
	GithubURL         string          `json:"githubUrl,omitempty"`
	WebsiteURL        string          `json:"websiteUrl,omitempty"`
	Roles             JSONList        `json:"roles"`
	TopSkills         JSONList        `json:"topSkills"`
	Values            JSONList        `json:"values"`
	ExpertiseAreas    JSONList        `json:"expertiseAreas"`
	TechnicalSkills   TechnicalSkills `json:"technicalSkills"`
	IsActive          bool            `json:"isActive"`

	// Experiences is attached by the public profile read and never sent back.
	Experiences []Experience `json:"-"`
}

// Key returns the record identifier
func (p Profile) Key() int64 { return p.ID }

// DefaultProfile is the starting record of the create form
func DefaultProfile() Profile {
	return Profile{
		Roles:           JSONList{},
		TopSkills:       JSONList{},
		Values:          JSONList{},
		ExpertiseAreas:  JSONList{},
		TechnicalSkills: TechnicalSkills{},
		IsActive:        true,
	}
}
