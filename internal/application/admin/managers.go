package admin

import (
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
)

// Managers groups the manager of every CMS resource
type Managers struct {
	Profiles     *Manager[portfolio.Profile]
	Experiences  *Manager[portfolio.Experience]
	Educations   *Manager[portfolio.Education]
	Skills       *Manager[portfolio.Skill]
	Achievements *Manager[portfolio.Achievement]
	Projects     *Manager[portfolio.Project]
}

// NewManagers wires a manager per backend resource
func NewManagers(s *api.Services) *Managers {
	return &Managers{
		Profiles: NewManager[portfolio.Profile](s.Profiles.Resource, "Profile", portfolio.DefaultProfile),
		Experiences: NewManager[portfolio.Experience](s.Experiences.Resource, "Experience", portfolio.DefaultExperience,
			WithNormalize((*portfolio.Experience).Normalize),
			WithOrder(portfolio.SortExperiences)),
		Educations: NewManager[portfolio.Education](s.Educations.Resource, "Education", portfolio.DefaultEducation,
			WithNormalize((*portfolio.Education).Normalize),
			WithOrder(portfolio.SortByDisplayOrder[portfolio.Education])),
		Skills: NewManager[portfolio.Skill](s.Skills.Resource, "Skill", portfolio.DefaultSkill,
			WithOrder(portfolio.SortByDisplayOrder[portfolio.Skill])),
		Achievements: NewManager[portfolio.Achievement](s.Achievements.Resource, "Achievement", portfolio.DefaultAchievement,
			WithOrder(portfolio.SortByDisplayOrder[portfolio.Achievement])),
		Projects: NewManager[portfolio.Project](s.Projects.Resource, "Project", portfolio.DefaultProject,
			WithOrder(portfolio.SortByDisplayOrder[portfolio.Project])),
	}
}
