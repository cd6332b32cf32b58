package site

import (
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// Links are the navbar and footer contact and social links. Profile links
// override the configured ones.
type Links struct {
	AppName     string
	Email       string
	WhatsApp    string
	GitHub      string
	LinkedIn    string
	Instagram   string
	Twitter     string
	Website     string
	Maps        string
	CVFile      string
	OwnerName   string
	OwnerTitle  string
	NavSections []string
}

// NavSections are the anchors of the public page
var NavSections = []string{"home", "about", "experience", "education", "skills", "achievements", "projects", "contact"}

// NewLinks merges configured links with profile links
func NewLinks(site config.SiteConfig, p portfolio.Profile) Links {
	l := Links{
		AppName:     site.AppName,
		Email:       site.Email,
		WhatsApp:    site.WhatsAppURL,
		GitHub:      site.GitHubURL,
		LinkedIn:    site.LinkedInURL,
		Instagram:   site.InstagramURL,
		Twitter:     site.TwitterURL,
		Maps:        site.MapsURL,
		OwnerName:   p.FullName,
		OwnerTitle:  p.Title,
		CVFile:      p.CVFileURL,
		Website:     p.WebsiteURL,
		NavSections: NavSections,
	}
	if p.Email != "" {
		l.Email = p.Email
	}
	if p.GithubURL != "" {
		l.GitHub = p.GithubURL
	}
	if p.LinkedinURL != "" {
		l.LinkedIn = p.LinkedinURL
	}
	if l.OwnerName == "" {
		l.OwnerName = site.AppName
	}
	return l
}
