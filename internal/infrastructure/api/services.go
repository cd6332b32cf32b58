package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// ProfileService wraps /profiles
type ProfileService struct {
	Resource[portfolio.Profile]
	experiences *ExperienceService
}

// GetPublic fetches the public profile and attaches the experience list.
// A failed experience read leaves the list empty.
func (s *ProfileService) GetPublic(ctx context.Context) Result[portfolio.Profile] {
	res := do[portfolio.Profile](ctx, s.client, call{
		op:      "profiles.getPublic",
		method:  http.MethodGet,
		url:     s.client.endpoints.Profiles.Public,
		failMsg: "Failed to load profile",
	})
	if !res.OK() {
		return res
	}

	exps := s.experiences.GetAll(ctx)
	if exps.OK() {
		res.Data.Experiences = portfolio.SortExperiences(exps.Data)
	} else {
		s.client.log(ctx).Debug("Public profile without experiences", zap.String("reason", exps.Message()))
		res.Data.Experiences = []portfolio.Experience{}
	}
	return res
}

// ExperienceService wraps /experiences
type ExperienceService struct {
	Resource[portfolio.Experience]
}

// EducationService wraps /educations
type EducationService struct {
	Resource[portfolio.Education]
}

// SkillService wraps /skills
type SkillService struct {
	Resource[portfolio.Skill]
}

// GetFeatured lists featured skills
func (s *SkillService) GetFeatured(ctx context.Context) Result[[]portfolio.Skill] {
	return s.list(ctx, "skills.getFeatured", s.client.endpoints.Skills.Featured)
}

// GetByCategory lists the skills of one category
func (s *SkillService) GetByCategory(ctx context.Context, category string) Result[[]portfolio.Skill] {
	return s.list(ctx, "skills.getByCategory", config.Item(s.client.endpoints.Skills.Category, category))
}

// GetCategories lists the distinct skill categories
func (s *SkillService) GetCategories(ctx context.Context) Result[[]string] {
	res := do[[]string](ctx, s.client, call{
		op:      "skills.getCategories",
		method:  http.MethodGet,
		url:     s.client.endpoints.Skills.Categories,
		failMsg: "Failed to load skill categories",
	})
	if res.OK() && res.Data == nil {
		res.Data = []string{}
	}
	return res
}

// AchievementService wraps /achievements
type AchievementService struct {
	Resource[portfolio.Achievement]
}

// GetFeatured lists featured achievements, newest first
func (s *AchievementService) GetFeatured(ctx context.Context) Result[[]portfolio.Achievement] {
	res := s.list(ctx, "achievements.getFeatured", s.client.endpoints.Achievements.Featured)
	if res.OK() {
		res.Data = portfolio.SortAchievementsByIssueDate(res.Data)
	}
	return res
}

// ProjectService wraps /projects
type ProjectService struct {
	Resource[portfolio.Project]
}

// GetPublicAll lists every public project
func (s *ProjectService) GetPublicAll(ctx context.Context) Result[[]portfolio.Project] {
	return s.list(ctx, "projects.getPublicAll", s.client.endpoints.Projects.Public.All)
}

// GetPublicCurrent lists projects still in progress
func (s *ProjectService) GetPublicCurrent(ctx context.Context) Result[[]portfolio.Project] {
	return s.list(ctx, "projects.getPublicCurrent", s.client.endpoints.Projects.Public.Current)
}

// GetPublicFinished lists finished projects
func (s *ProjectService) GetPublicFinished(ctx context.Context) Result[[]portfolio.Project] {
	return s.list(ctx, "projects.getPublicFinished", s.client.endpoints.Projects.Public.Finished)
}

// Services groups every backend service
type Services struct {
	Profiles     *ProfileService
	Experiences  *ExperienceService
	Educations   *EducationService
	Skills       *SkillService
	Achievements *AchievementService
	Projects     *ProjectService
	Auth         *AuthService
	Contacts     *ContactService
	Uploads      *UploadService
}

// NewServices builds every service over c
func NewServices(c *Client) *Services {
	e := c.endpoints
	experiences := &ExperienceService{newResource[portfolio.Experience](c, e.Experiences.Base, "experiences", "experience")}
	return &Services{
		Profiles:     &ProfileService{Resource: newResource[portfolio.Profile](c, e.Profiles.Base, "profiles", "profile"), experiences: experiences},
		Experiences:  experiences,
		Educations:   &EducationService{newResource[portfolio.Education](c, e.Educations.Base, "educations", "education")},
		Skills:       &SkillService{newResource[portfolio.Skill](c, e.Skills.Base, "skills", "skill")},
		Achievements: &AchievementService{newResource[portfolio.Achievement](c, e.Achievements.Base, "achievements", "achievement")},
		Projects:     &ProjectService{newResource[portfolio.Project](c, e.Projects.Base, "projects", "project")},
		Auth:         &AuthService{client: c},
		Contacts:     NewContactService(c),
		Uploads:      &UploadService{client: c},
	}
}
