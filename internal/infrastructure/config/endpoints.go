package config

import (
	"net/url"
	"strings"
)

// Endpoints is the set of fully-qualified REST backend URLs. It is built once
// from SiteConfig.APIBaseURL and never mutated.
type Endpoints struct {
	Auth struct {
		Login    string
		Validate string
	}
	Profiles struct {
		Base   string
		Public string
	}
	Projects struct {
		Base   string
		All    string
		Public struct {
			All      string
			Current  string
			Finished string
		}
	}
	Experiences struct {
		Base string
	}
	Educations struct {
		Base string
	}
	Skills struct {
		Base       string
		Categories string
		Featured   string
		Category   string
	}
	Achievements struct {
		Base     string
		Featured string
	}
	Contacts struct {
		Submit string
	}
	Upload struct {
		Image string
		CV    string
		Files string
	}
}

// NewEndpoints derives every endpoint from apiBaseURL
func NewEndpoints(apiBaseURL string) Endpoints {
	base := strings.TrimRight(apiBaseURL, "/")

	var e Endpoints
	e.Auth.Login = base + "/auth/login"
	e.Auth.Validate = base + "/auth/validate"

	e.Profiles.Base = base + "/profiles"
	e.Profiles.Public = base + "/profiles/public"

	e.Projects.Base = base + "/projects"
	e.Projects.All = base + "/projects"
	e.Projects.Public.All = base + "/projects/public/all"
	e.Projects.Public.Current = base + "/projects/public/current"
	e.Projects.Public.Finished = base + "/projects/public/finished"

	e.Experiences.Base = base + "/experiences"
	e.Educations.Base = base + "/educations"

	e.Skills.Base = base + "/skills"
	e.Skills.Categories = base + "/skills/categories"
	e.Skills.Featured = base + "/skills/featured"
	e.Skills.Category = base + "/skills/category"

	e.Achievements.Base = base + "/achievements"
	e.Achievements.Featured = base + "/achievements/featured"

	e.Contacts.Submit = base + "/contacts/submit"

	e.Upload.Image = base + "/upload/image"
	e.Upload.CV = base + "/upload/cv"
	e.Upload.Files = base + "/upload/files"

	return e
}

// Endpoints returns the endpoint map for the configured backend
func (c *Config) Endpoints() Endpoints {
	return NewEndpoints(c.Site.APIBaseURL)
}

// Item joins a collection endpoint with an escaped path segment, e.g.
// Item(e.Projects.Base, "42") == ".../projects/42".
func Item(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
