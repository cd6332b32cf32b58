// Package view holds the HTML templates of the site and the admin CMS.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/site"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
)

//go:embed templates/*.html
var templates embed.FS

// New parses every template
func New() (*template.Template, error) {
	t, err := template.New("site").Funcs(Funcs()).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Funcs returns the helpers available to templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":        func(d portfolio.Date) string { return d.Display() },
		"join":        strings.Join,
		"lines":       portfolio.ParseFeatures,
		"add":         func(a, b int) int { return a + b },
		"year":        func() int { return time.Now().Year() },
		"statusLabel": func(p portfolio.Project) string { return p.ResolvedStatus().Label() },
		"statusClass": func(p portfolio.Project) string { return string(p.ResolvedStatus()) },
		"pageURL":     PageURL,
		"tabURL":      TabURL,
		"seq":         seq,
		"humanize":    portfolio.Humanize,
	}
}

// PageURL links to the home page with one carousel moved to page. The
// rest of the query is kept.
func PageURL(q site.Query, key string, page int) string {
	v := values(q)
	v.Set(key, strconv.Itoa(page))
	return "/?" + v.Encode() + "#" + anchor(key)
}

// TabURL links to the home page with the skills tab set to category
func TabURL(q site.Query, category string) string {
	v := values(q)
	v.Set("category", category)
	return "/?" + v.Encode() + "#skills"
}

func values(q site.Query) url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.AchievementPage > 0 {
		v.Set("ach", strconv.Itoa(q.AchievementPage))
	}
	if q.ProjectPage > 0 {
		v.Set("proj", strconv.Itoa(q.ProjectPage))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	return v
}

func anchor(key string) string {
	if key == "ach" {
		return "achievements"
	}
	return "projects"
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
