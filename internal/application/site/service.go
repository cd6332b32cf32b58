package site

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// ProfileReader reads the public profile
type ProfileReader interface {
	GetPublic(ctx context.Context) api.Result[portfolio.Profile]
}

// ListReader lists a collection
type ListReader[T any] interface {
	GetAll(ctx context.Context) api.Result[[]T]
}

// SkillReader reads the skills tabs: the category list and the skills of
// one category, plus the featured highlights
type SkillReader interface {
	GetCategories(ctx context.Context) api.Result[[]string]
	GetByCategory(ctx context.Context, category string) api.Result[[]portfolio.Skill]
	GetFeatured(ctx context.Context) api.Result[[]portfolio.Skill]
}

// FeaturedAchievements lists featured achievements, newest first
type FeaturedAchievements interface {
	GetFeatured(ctx context.Context) api.Result[[]portfolio.Achievement]
}

// PublicProjects reads public projects
type PublicProjects interface {
	GetPublicAll(ctx context.Context) api.Result[[]portfolio.Project]
	GetPublicCurrent(ctx context.Context) api.Result[[]portfolio.Project]
	GetPublicFinished(ctx context.Context) api.Result[[]portfolio.Project]
	GetByID(ctx context.Context, id int64) api.Result[portfolio.Project]
}

// Sources are the backend reads the public pages need
type Sources struct {
	Profile      ProfileReader
	Experiences  ListReader[portfolio.Experience]
	Educations   ListReader[portfolio.Education]
	Skills       SkillReader
	Achievements FeaturedAchievements
	Projects     PublicProjects
}

// SourcesFrom picks the public reads out of the backend services
func SourcesFrom(s *api.Services) Sources {
	return Sources{
		Profile:      s.Profiles,
		Experiences:  s.Experiences,
		Educations:   s.Educations,
		Skills:       s.Skills,
		Achievements: s.Achievements,
		Projects:     s.Projects,
	}
}

// Query is the page state carried in the URL
type Query struct {
	Category        string
	AchievementPage int
	ProjectPage     int
	Status          string
	Search          string
}

// ParseQuery reads ?category, ?ach, ?proj, ?status and ?q. Invalid page
// numbers read as 0.
func ParseQuery(get func(string) string) Query {
	page := func(key string) int {
		n, err := strconv.Atoi(get(key))
		if err != nil {
			return 0
		}
		return n
	}
	return Query{
		Category:        strings.TrimSpace(get("category")),
		AchievementPage: page("ach"),
		ProjectPage:     page("proj"),
		Status:          strings.TrimSpace(get("status")),
		Search:          strings.TrimSpace(get("q")),
	}
}

// SkillsView is the skills section: the category tabs, the skills of the
// active tab and the featured highlights
type SkillsView struct {
	Section[[]string]
	Active   string
	Skills   Section[[]portfolio.Skill]
	Featured Section[[]portfolio.Skill]
}

// ActiveSkills returns the skills of the active tab
func (v SkillsView) ActiveSkills() []portfolio.Skill {
	return v.Skills.Data
}

// AchievementsView is the achievements carousel
type AchievementsView struct {
	Section[[]portfolio.Achievement]
	Visible []portfolio.Achievement
	Pager   Pager
}

// ProjectsView is the projects carousel with its filter
type ProjectsView struct {
	Section[[]portfolio.Project]
	Visible  []portfolio.Project
	Pager    Pager
	Status   portfolio.Status
	Search   string
	Statuses []portfolio.Status
}

// Home is the view model of the public page
type Home struct {
	Profile      Section[portfolio.Profile]
	Experiences  Section[[]portfolio.Experience]
	Educations   Section[[]portfolio.Education]
	Skills       SkillsView
	Achievements AchievementsView
	Projects     ProjectsView
	Links        Links
	Query        Query
	Now          time.Time
}

// Options controls presentation
type Options struct {
	AchievementsPerSlide int
	ProjectsPerSlide     int
}

// Service builds the public pages
type Service struct {
	src    Sources
	site   config.SiteConfig
	opts   Options
	logger *zap.Logger
}

// NewService creates the public page service
func NewService(src Sources, site config.SiteConfig, opts Options, logger *zap.Logger) *Service {
	if opts.AchievementsPerSlide < 1 {
		opts.AchievementsPerSlide = 3
	}
	if opts.ProjectsPerSlide < 1 {
		opts.ProjectsPerSlide = 3
	}
	return &Service{src: src, site: site, opts: opts, logger: logger}
}

// Home loads every section concurrently. A section failure never fails the
// page.
func (s *Service) Home(ctx context.Context, q Query) *Home {
	h := &Home{Query: q, Now: time.Now()}

	var (
		featured     Section[[]portfolio.Skill]
		achievements Section[[]portfolio.Achievement]
		projects     Section[[]portfolio.Project]
	)
	status, filtered := portfolio.ParseStatus(q.Status)

	var g errgroup.Group
	g.Go(func() error {
		h.Profile = Load(ctx, "profile", s.src.Profile.GetPublic)
		return nil
	})
	g.Go(func() error {
		h.Experiences = Map(Load(ctx, "experience", s.src.Experiences.GetAll), portfolio.SortExperiences)
		return nil
	})
	g.Go(func() error {
		h.Educations = Map(Load(ctx, "education", s.src.Educations.GetAll), portfolio.SortByDisplayOrder[portfolio.Education])
		return nil
	})
	g.Go(func() error {
		h.Skills = s.skillsView(ctx, q.Category)
		return nil
	})
	g.Go(func() error {
		featured = Map(Load(ctx, "featured skills", s.src.Skills.GetFeatured), portfolio.SortByDisplayOrder[portfolio.Skill])
		return nil
	})
	g.Go(func() error {
		achievements = Load(ctx, "achievements", s.src.Achievements.GetFeatured)
		return nil
	})
	g.Go(func() error {
		projects = Load(ctx, "projects", s.projectSource(status, filtered))
		return nil
	})
	_ = g.Wait()

	h.Skills.Featured = featured
	h.Achievements = s.achievementsView(achievements, q.AchievementPage)
	h.Projects = s.projectsView(projects, q)
	h.Links = NewLinks(s.site, h.Profile.Data)
	return h
}

// skillsView loads the category tabs, then the skills of the tab named by
// category, defaulting to the first one
func (s *Service) skillsView(ctx context.Context, category string) SkillsView {
	v := SkillsView{Section: Load(ctx, "skill categories", s.src.Skills.GetCategories)}
	v.Skills = Section[[]portfolio.Skill]{Name: "skills", State: v.State, Message: v.Message}
	if !v.IsReady() {
		return v
	}

	v.Active = v.Data[0]
	for _, c := range v.Data {
		if strings.EqualFold(c, category) {
			v.Active = c
		}
	}
	v.Skills = Map(Load(ctx, "skills", func(ctx context.Context) api.Result[[]portfolio.Skill] {
		return s.src.Skills.GetByCategory(ctx, v.Active)
	}), portfolio.SortByDisplayOrder[portfolio.Skill])
	return v
}

// projectSource picks the backend list matching the status filter. The
// resolved status still filters the result, so every view agrees on it.
func (s *Service) projectSource(status portfolio.Status, filtered bool) func(context.Context) api.Result[[]portfolio.Project] {
	switch {
	case filtered && status == portfolio.StatusCompleted:
		return s.src.Projects.GetPublicFinished
	case filtered && status == portfolio.StatusInProgress:
		return s.src.Projects.GetPublicCurrent
	default:
		return s.src.Projects.GetPublicAll
	}
}

func (s *Service) achievementsView(sec Section[[]portfolio.Achievement], page int) AchievementsView {
	v := AchievementsView{Section: sec}
	v.Visible, v.Pager = paginate(sec.Data, s.opts.AchievementsPerSlide, page)
	return v
}

func (s *Service) projectsView(sec Section[[]portfolio.Project], q Query) ProjectsView {
	status, filtered := portfolio.ParseStatus(q.Status)
	v := ProjectsView{
		Section: Map(sec, func(all []portfolio.Project) []portfolio.Project {
			out := portfolio.SortByDisplayOrder(portfolio.FeaturedOnly(all))
			if filtered {
				out = portfolio.FilterProjectsByStatus(out, status)
			}
			return portfolio.SearchProjects(out, q.Search)
		}),
		Status:   status,
		Search:   q.Search,
		Statuses: portfolio.Statuses,
	}
	v.Visible, v.Pager = paginate(v.Data, s.opts.ProjectsPerSlide, q.ProjectPage)
	return v
}

// ProjectPage is the view model of a project detail page
type ProjectPage struct {
	Project Section[portfolio.Project]
	Links   Links
}

// Project loads one project for its detail page
func (s *Service) Project(ctx context.Context, id int64) *ProjectPage {
	p := &ProjectPage{
		Project: Load(ctx, "project", func(ctx context.Context) api.Result[portfolio.Project] {
			res := s.src.Projects.GetByID(ctx, id)
			if res.Err.IsNotFound() {
				res.Err.Message = "Project not found"
			}
			return res
		}),
	}
	p.Links = NewLinks(s.site, portfolio.Profile{})
	return p
}
